package repositories

import (
	"context"
	"time"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
)

// UtilityBillReader defines read operations for utility bill data
type UtilityBillReader interface {
	// FindBillByID retrieves a specific utility bill by its unique identifier.
	FindBillByID(ctx context.Context, billID string) (*domain.UtilityBill, error)

	// ListBillsByEntity retrieves a paginated list of bills for a given entity.
	ListBillsByEntity(ctx context.Context, entityID string, limit int, offset int) ([]domain.UtilityBill, error)
}

// UtilityBillWriter defines write operations for utility bill data
type UtilityBillWriter interface {
	// SaveBill persists a new bill (DRAFT, version 1).
	SaveBill(ctx context.Context, bill domain.UtilityBill) error

	// UpdateBillDetails updates mutable fields of a non-posted bill, guarded
	// by the expected version. Returns apperrors.ErrConflict on a stale version.
	UpdateBillDetails(ctx context.Context, bill domain.UtilityBill, expectedVersion int64) error

	// TransitionBillStatus moves a bill to a new status, guarded by the
	// expected version so concurrent transitions on the same bill serialize:
	// the loser gets apperrors.ErrConflict and must re-read. postedJournalID
	// is set when transitioning to POSTED.
	TransitionBillStatus(ctx context.Context, billID string, expectedVersion int64, status domain.UtilityBillStatus, postedJournalID *string, updatedByUserID string, updatedAt time.Time) error
}

// AllocationReader defines read operations for allocation data
type AllocationReader interface {
	// FindAllocationsByBillID retrieves all allocation rows for a bill.
	FindAllocationsByBillID(ctx context.Context, billID string) ([]domain.UtilityAllocationResult, error)
}

// AllocationWriter defines write operations for allocation data
type AllocationWriter interface {
	// ReplaceAllocations atomically replaces the allocation set of a bill.
	// Re-allocating a DRAFT bill discards any earlier computation.
	ReplaceAllocations(ctx context.Context, billID string, allocations []domain.UtilityAllocationResult) error
}

// ReadingReader defines read operations for meter reading data
type ReadingReader interface {
	// FindLatestReading retrieves the most recent reading for a lease-utility
	// pairing, or apperrors.ErrNotFound when none has been recorded.
	FindLatestReading(ctx context.Context, leaseUtilityID string) (*domain.UtilityReading, error)
}

// ReadingWriter defines write operations for meter reading data
type ReadingWriter interface {
	// SaveReading persists a validated meter reading.
	SaveReading(ctx context.Context, reading domain.UtilityReading) error
}

// UtilityRepositoryFacade combines all utility-billing repository interfaces
type UtilityRepositoryFacade interface {
	UtilityBillReader
	UtilityBillWriter
	AllocationReader
	AllocationWriter
	ReadingReader
	ReadingWriter
}
