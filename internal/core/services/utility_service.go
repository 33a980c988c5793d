package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/apperrors"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	portsrepo "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/repositories"
	portssvc "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/services"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/dto"
	"github.com/shopspring/decimal"
)

const defaultBillListLimit = 100

// utilityService drives the bill lifecycle (DRAFT -> PROCESSING -> APPROVED
// -> POSTED) and meter reading intake. Status transitions go through the
// domain guards first and then through a version-guarded repository write, so
// concurrent transitions on the same bill serialize instead of racing.
type utilityService struct {
	BaseService
	utilityRepo portsrepo.UtilityRepositoryFacade
	journalSvc  portssvc.JournalSvcFacade
}

// NewUtilityService creates a new UtilityService.
func NewUtilityService(utilityRepo portsrepo.UtilityRepositoryFacade, journalSvc portssvc.JournalSvcFacade) portssvc.UtilitySvcFacade {
	return &utilityService{
		utilityRepo: utilityRepo,
		journalSvc:  journalSvc,
	}
}

var _ portssvc.UtilitySvcFacade = (*utilityService)(nil)

// getOwnedBill retrieves a bill and verifies it belongs to the entity.
func (s *utilityService) getOwnedBill(ctx context.Context, entityID string, billID string) (*domain.UtilityBill, error) {
	bill, err := s.utilityRepo.FindBillByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill.EntityID != entityID {
		return nil, fmt.Errorf("%w: bill %s", apperrors.ErrNotFound, billID)
	}
	return bill, nil
}

// GetBillByID retrieves a specific utility bill.
func (s *utilityService) GetBillByID(ctx context.Context, entityID string, billID string) (*domain.UtilityBill, error) {
	return s.getOwnedBill(ctx, entityID, billID)
}

// ListBills retrieves the utility bills of an entity.
func (s *utilityService) ListBills(ctx context.Context, entityID string) ([]domain.UtilityBill, error) {
	bills, err := s.utilityRepo.ListBillsByEntity(ctx, entityID, defaultBillListLimit, 0)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bills", slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to list bills for entity %s: %w", entityID, err)
	}
	if bills == nil {
		bills = []domain.UtilityBill{}
	}
	return bills, nil
}

// GetAllocations retrieves the allocation rows of a bill.
func (s *utilityService) GetAllocations(ctx context.Context, entityID string, billID string) ([]domain.UtilityAllocationResult, error) {
	if _, err := s.getOwnedBill(ctx, entityID, billID); err != nil {
		return nil, err
	}
	allocations, err := s.utilityRepo.FindAllocationsByBillID(ctx, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to load allocations for bill %s: %w", billID, err)
	}
	if allocations == nil {
		allocations = []domain.UtilityAllocationResult{}
	}
	return allocations, nil
}

// CreateBill registers a provider invoice as a DRAFT bill at version 1.
func (s *utilityService) CreateBill(ctx context.Context, entityID string, req dto.CreateUtilityBillRequest, creatorUserID string) (*domain.UtilityBill, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	method := domain.SplitMethod(req.SplitMethod)
	if !method.Valid() {
		return nil, fmt.Errorf("%w: unknown split method %q", apperrors.ErrValidation, req.SplitMethod)
	}

	now := time.Now()
	bill := domain.UtilityBill{
		BillID:       uuid.NewString(),
		EntityID:     entityID,
		PropertyID:   req.PropertyID,
		Provider:     req.Provider,
		UtilityType:  req.UtilityType,
		Status:       domain.BillDraft,
		TotalAmount:  req.TotalAmount,
		SplitMethod:  method,
		BillDate:     req.BillDate,
		DueDate:      req.DueDate,
		ImportMethod: req.ImportMethod,
		Version:      1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.utilityRepo.SaveBill(ctx, bill); err != nil {
		s.LogError(ctx, err, "Failed to save bill", slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	s.LogInfo(ctx, "Utility bill created",
		slog.String("bill_id", bill.BillID),
		slog.String("utility_type", bill.UtilityType),
		slog.String("total", bill.TotalAmount.String()))
	return &bill, nil
}

// AllocateBill computes the per-lease split of a DRAFT bill, stores the
// allocation set, and moves the bill to PROCESSING. Re-running on a DRAFT
// bill replaces the previous allocations wholesale.
func (s *utilityService) AllocateBill(ctx context.Context, entityID string, billID string, req dto.AllocateBillRequest, userID string) (*domain.UtilityBill, []domain.UtilityAllocationResult, error) {
	bill, err := s.getOwnedBill(ctx, entityID, billID)
	if err != nil {
		return nil, nil, err
	}
	if err := domain.AssertNotPosted(*bill); err != nil {
		return nil, nil, err
	}
	if err := domain.CanAllocate(*bill); err != nil {
		return nil, nil, err
	}

	allocations, err := domain.ComputeAllocations(bill.TotalAmount, bill.SplitMethod, dto.ToAllocationBases(req.Bases))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	for i := range allocations {
		allocations[i].AllocationID = uuid.NewString()
		allocations[i].BillID = billID
		allocations[i].AuditFields = audit
	}

	if err := s.utilityRepo.ReplaceAllocations(ctx, billID, allocations); err != nil {
		s.LogError(ctx, err, "Failed to store allocations", slog.String("bill_id", billID))
		return nil, nil, fmt.Errorf("failed to store allocations for bill %s: %w", billID, err)
	}

	if err := s.utilityRepo.TransitionBillStatus(ctx, billID, req.Version, domain.BillProcessing, nil, userID, now); err != nil {
		return nil, nil, s.transitionError(ctx, err, billID, domain.BillProcessing)
	}

	bill.Status = domain.BillProcessing
	bill.Version++
	bill.LastUpdatedAt = now
	bill.LastUpdatedBy = userID

	s.LogInfo(ctx, "Bill allocated",
		slog.String("bill_id", billID),
		slog.Int("leases", len(allocations)),
		slog.String("method", string(bill.SplitMethod)))
	return bill, allocations, nil
}

// ApproveBill moves a fully allocated PROCESSING bill to APPROVED, after the
// allocation set reconciles with the bill total.
func (s *utilityService) ApproveBill(ctx context.Context, entityID string, billID string, req dto.TransitionBillRequest, userID string) (*domain.UtilityBill, error) {
	bill, err := s.getOwnedBill(ctx, entityID, billID)
	if err != nil {
		return nil, err
	}
	if err := domain.AssertNotPosted(*bill); err != nil {
		return nil, err
	}

	allocations, err := s.utilityRepo.FindAllocationsByBillID(ctx, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to load allocations for bill %s: %w", billID, err)
	}
	if err := domain.CanApprove(*bill, allocations); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.utilityRepo.TransitionBillStatus(ctx, billID, req.Version, domain.BillApproved, nil, userID, now); err != nil {
		return nil, s.transitionError(ctx, err, billID, domain.BillApproved)
	}

	bill.Status = domain.BillApproved
	bill.Version++
	bill.LastUpdatedAt = now
	bill.LastUpdatedBy = userID

	s.LogInfo(ctx, "Bill approved", slog.String("bill_id", billID))
	return bill, nil
}

// PostBill writes the expense journal for an APPROVED bill (debit Utility
// Expense, credit Accounts Payable) and moves the bill to its terminal
// POSTED status with the journal linked. If the status transition loses a
// concurrent race the journal is reversed so the ledger stays consistent.
func (s *utilityService) PostBill(ctx context.Context, entityID string, billID string, req dto.TransitionBillRequest, userID string) (*domain.UtilityBill, error) {
	bill, err := s.getOwnedBill(ctx, entityID, billID)
	if err != nil {
		return nil, err
	}
	if err := domain.AssertNotPosted(*bill); err != nil {
		return nil, err
	}
	if err := domain.CanPost(*bill); err != nil {
		return nil, err
	}

	journalReq := dto.PostJournalRequest{
		Date:        time.Now(),
		Description: fmt.Sprintf("Utility bill %s (%s, %s)", billID, bill.UtilityType, bill.Provider),
		Reference:   &bill.BillID,
		Lines: []dto.JournalLineRequest{
			{AccountCode: domain.CodeUtilityExpense, Debit: bill.TotalAmount, Memo: fmt.Sprintf("%s expense for property %s", bill.UtilityType, bill.PropertyID)},
			{AccountCode: domain.CodeAccountsPayable, Credit: bill.TotalAmount, Memo: fmt.Sprintf("Payable to %s", bill.Provider)},
		},
	}

	journal, err := s.journalSvc.PostJournal(ctx, entityID, journalReq, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to post journal for bill", slog.String("bill_id", billID))
		return nil, fmt.Errorf("failed to post journal for bill %s: %w", billID, err)
	}

	now := time.Now()
	if err := s.utilityRepo.TransitionBillStatus(ctx, billID, req.Version, domain.BillPosted, &journal.JournalID, userID, now); err != nil {
		// The ledger entry exists but the bill did not reach POSTED; undo the
		// entry through a reversal so the books reconcile with bill state.
		if _, revErr := s.journalSvc.ReverseJournal(ctx, entityID, journal.JournalID, userID); revErr != nil {
			s.LogError(ctx, revErr, "Failed to reverse journal after bill transition failure",
				slog.String("bill_id", billID),
				slog.String("journal_id", journal.JournalID))
		}
		return nil, s.transitionError(ctx, err, billID, domain.BillPosted)
	}

	bill.Status = domain.BillPosted
	bill.PostedJournalID = &journal.JournalID
	bill.Version++
	bill.LastUpdatedAt = now
	bill.LastUpdatedBy = userID

	s.LogInfo(ctx, "Bill posted to ledger",
		slog.String("bill_id", billID),
		slog.String("journal_id", journal.JournalID),
		slog.String("amount", bill.TotalAmount.String()))
	return bill, nil
}

// UpdateBill edits the mutable details of a bill that has not been posted.
func (s *utilityService) UpdateBill(ctx context.Context, entityID string, billID string, req dto.UpdateUtilityBillRequest, userID string) (*domain.UtilityBill, error) {
	bill, err := s.getOwnedBill(ctx, entityID, billID)
	if err != nil {
		return nil, err
	}
	if err := domain.AssertNotPosted(*bill); err != nil {
		return nil, err
	}

	if req.Provider != nil {
		bill.Provider = *req.Provider
	}
	if req.DueDate != nil {
		if req.DueDate.Before(bill.BillDate) {
			return nil, fmt.Errorf("%w: due date %s is before bill date %s", apperrors.ErrValidation,
				req.DueDate.Format(time.DateOnly), bill.BillDate.Format(time.DateOnly))
		}
		bill.DueDate = *req.DueDate
	}

	now := time.Now()
	bill.LastUpdatedAt = now
	bill.LastUpdatedBy = userID

	if err := s.utilityRepo.UpdateBillDetails(ctx, *bill, req.Version); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: bill %s was updated concurrently", apperrors.ErrConflict, billID)
		}
		s.LogError(ctx, err, "Failed to update bill", slog.String("bill_id", billID))
		return nil, fmt.Errorf("failed to update bill %s: %w", billID, err)
	}

	bill.Version++
	return bill, nil
}

// RecordReading validates a meter reading against the latest one for the
// same lease utility and stores it. The first reading for a meter passes the
// monotonic check by definition.
func (s *utilityService) RecordReading(ctx context.Context, req dto.CreateUtilityReadingRequest, creatorUserID string) (*domain.UtilityReading, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var previous *decimal.Decimal
	latest, err := s.utilityRepo.FindLatestReading(ctx, req.LeaseUtilityID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to load latest reading", slog.String("lease_utility_id", req.LeaseUtilityID))
		return nil, fmt.Errorf("failed to load latest reading for %s: %w", req.LeaseUtilityID, err)
	}
	if latest != nil {
		previous = &latest.ReadingValue
	}

	if err := domain.ValidateNewReading(req.ReadingValue, previous); err != nil {
		return nil, err
	}

	now := time.Now()
	reading := domain.UtilityReading{
		ReadingID:      uuid.NewString(),
		LeaseUtilityID: req.LeaseUtilityID,
		ReadingValue:   req.ReadingValue,
		ReadingDate:    req.ReadingDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.utilityRepo.SaveReading(ctx, reading); err != nil {
		s.LogError(ctx, err, "Failed to save reading", slog.String("lease_utility_id", req.LeaseUtilityID))
		return nil, fmt.Errorf("failed to record reading: %w", err)
	}

	s.LogDebug(ctx, "Meter reading recorded",
		slog.String("reading_id", reading.ReadingID),
		slog.String("lease_utility_id", reading.LeaseUtilityID),
		slog.String("value", reading.ReadingValue.String()))
	return &reading, nil
}

// transitionError normalizes a failed status transition into either a
// conflict (stale version, caller should re-read) or an internal failure.
func (s *utilityService) transitionError(ctx context.Context, err error, billID string, target domain.UtilityBillStatus) error {
	if errors.Is(err, apperrors.ErrConflict) {
		s.LogDebug(ctx, "Bill transition lost version race",
			slog.String("bill_id", billID),
			slog.String("target_status", string(target)))
		return fmt.Errorf("%w: bill %s changed concurrently, re-read and retry", apperrors.ErrConflict, billID)
	}
	s.LogError(ctx, err, "Failed to transition bill status",
		slog.String("bill_id", billID),
		slog.String("target_status", string(target)))
	return fmt.Errorf("failed to move bill %s to %s: %w", billID, target, err)
}
