package repositories

import (
	"context"
	"time"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a specific journal entry by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error)

	// ListJournalsByEntity retrieves a paginated list of journal entries for a
	// given entity using token-based pagination. It returns the entries, a
	// token for the next page, and an error.
	ListJournalsByEntity(ctx context.Context, entityID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveJournal persists a journal entry and all of its lines as a single
	// database transaction: either every line is visible or none is.
	SaveJournal(ctx context.Context, journal domain.JournalEntry, lines []domain.JournalLine) error

	// UpdateJournalStatusAndLinks updates the status and reversal linkage of a
	// journal entry. This is the only mutation the append-only ledger allows.
	UpdateJournalStatusAndLinks(ctx context.Context, journalID string, status domain.JournalStatus, reversingJournalID *string, updatedByUserID string, updatedAt time.Time) error
}

// LineReader defines read operations for journal line data
type LineReader interface {
	// FindLinesByJournalID retrieves all lines of a single journal entry.
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	LineReader
}
