package services

import (
	"context"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/dto"
)

// JournalReaderSvc defines read operations for journal data.
type JournalReaderSvc interface {
	// GetJournalByID retrieves a specific journal with its lines.
	GetJournalByID(ctx context.Context, entityID string, journalID string) (*domain.JournalEntry, error)

	// ListJournals retrieves a paginated list of journals in an entity.
	ListJournals(ctx context.Context, entityID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}

// JournalWriterSvc defines write operations for journal data.
type JournalWriterSvc interface {
	// PostJournal validates and persists a balanced journal entry with its lines.
	PostJournal(ctx context.Context, entityID string, req dto.PostJournalRequest, creatorUserID string) (*domain.JournalEntry, error)

	// ReverseJournal creates a mirror-image reversal of a posted journal.
	// The original journal is never mutated beyond its status link.
	ReverseJournal(ctx context.Context, entityID string, journalID string, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
