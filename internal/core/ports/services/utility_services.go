package services

import (
	"context"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/dto"
)

// UtilityBillReaderSvc defines read operations for utility bills.
type UtilityBillReaderSvc interface {
	// GetBillByID retrieves a specific utility bill.
	GetBillByID(ctx context.Context, entityID string, billID string) (*domain.UtilityBill, error)

	// ListBills retrieves the utility bills of an entity.
	ListBills(ctx context.Context, entityID string) ([]domain.UtilityBill, error)

	// GetAllocations retrieves the allocation rows of a bill.
	GetAllocations(ctx context.Context, entityID string, billID string) ([]domain.UtilityAllocationResult, error)
}

// UtilityBillWriterSvc defines the bill lifecycle operations.
type UtilityBillWriterSvc interface {
	// CreateBill registers a provider invoice as a DRAFT bill.
	CreateBill(ctx context.Context, entityID string, req dto.CreateUtilityBillRequest, creatorUserID string) (*domain.UtilityBill, error)

	// AllocateBill computes and stores the per-lease split of a DRAFT bill and
	// moves it to PROCESSING. Re-running replaces the previous allocations.
	AllocateBill(ctx context.Context, entityID string, billID string, req dto.AllocateBillRequest, userID string) (*domain.UtilityBill, []domain.UtilityAllocationResult, error)

	// ApproveBill moves a fully allocated PROCESSING bill to APPROVED.
	ApproveBill(ctx context.Context, entityID string, billID string, req dto.TransitionBillRequest, userID string) (*domain.UtilityBill, error)

	// PostBill writes the expense journal for an APPROVED bill and moves it to
	// POSTED, linking the journal ID. POSTED is terminal.
	PostBill(ctx context.Context, entityID string, billID string, req dto.TransitionBillRequest, userID string) (*domain.UtilityBill, error)

	// UpdateBill edits mutable details of a bill that has not been posted.
	UpdateBill(ctx context.Context, entityID string, billID string, req dto.UpdateUtilityBillRequest, userID string) (*domain.UtilityBill, error)
}

// UtilityReadingSvc defines meter reading operations.
type UtilityReadingSvc interface {
	// RecordReading validates and stores a meter reading against the latest
	// reading of the same lease utility.
	RecordReading(ctx context.Context, req dto.CreateUtilityReadingRequest, creatorUserID string) (*domain.UtilityReading, error)
}

// UtilitySvcFacade combines all utility-related service interfaces.
type UtilitySvcFacade interface {
	UtilityBillReaderSvc
	UtilityBillWriterSvc
	UtilityReadingSvc
}
