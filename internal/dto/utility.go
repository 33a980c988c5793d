package dto

import (
	"fmt"
	"time"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/apperrors"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateUtilityBillRequest defines the payload for registering a provider
// invoice as a DRAFT bill. Structural constraints (positive total, due date
// not before bill date) are checked here, before any lifecycle guard runs.
type CreateUtilityBillRequest struct {
	PropertyID   string          `json:"propertyID" binding:"required"`
	Provider     string          `json:"provider" binding:"required"`
	UtilityType  string          `json:"utilityType" binding:"required"`
	TotalAmount  decimal.Decimal `json:"totalAmount" binding:"required"`
	SplitMethod  string          `json:"splitMethod" binding:"required,oneof=EQUAL OCCUPANCY_BASED SQ_FOOTAGE SUB_METERED CUSTOM_RATIO AI_OPTIMIZED"`
	BillDate     time.Time       `json:"billDate" binding:"required"`
	DueDate      time.Time       `json:"dueDate" binding:"required"`
	ImportMethod string          `json:"importMethod"`
}

// Validate enforces the structural constraints binding tags cannot express.
func (r CreateUtilityBillRequest) Validate() error {
	if !r.TotalAmount.IsPositive() {
		return fmt.Errorf("%w: bill total must be positive, got %s", apperrors.ErrValidation, r.TotalAmount.String())
	}
	if r.DueDate.Before(r.BillDate) {
		return fmt.Errorf("%w: due date %s is before bill date %s", apperrors.ErrValidation,
			r.DueDate.Format(time.DateOnly), r.BillDate.Format(time.DateOnly))
	}
	return nil
}

// AllocationBasisRequest carries one lease's allocation inputs. Which fields
// matter depends on the bill's split method.
type AllocationBasisRequest struct {
	LeaseID       string          `json:"leaseID" binding:"required"`
	Occupants     int64           `json:"occupants"`
	SquareFootage decimal.Decimal `json:"squareFootage"`
	SubMeterUsage decimal.Decimal `json:"subMeterUsage"`
	CustomRatio   decimal.Decimal `json:"customRatio"`
}

// AllocateBillRequest defines the payload for computing a bill's allocations.
type AllocateBillRequest struct {
	Version int64                    `json:"version" binding:"required"`
	Bases   []AllocationBasisRequest `json:"bases" binding:"required,min=1,dive"`
}

// TransitionBillRequest carries the version snapshot for approve/post calls.
type TransitionBillRequest struct {
	Version int64 `json:"version" binding:"required"`
}

// UpdateUtilityBillRequest defines the mutable details of a non-posted bill.
type UpdateUtilityBillRequest struct {
	Version  int64      `json:"version" binding:"required"`
	Provider *string    `json:"provider"`
	DueDate  *time.Time `json:"dueDate"`
}

// CreateUtilityReadingRequest defines the payload for recording a meter reading.
type CreateUtilityReadingRequest struct {
	LeaseUtilityID string          `json:"leaseUtilityID" binding:"required"`
	ReadingValue   decimal.Decimal `json:"readingValue"`
	ReadingDate    time.Time       `json:"readingDate" binding:"required"`
}

// Validate enforces the structural reading constraints.
func (r CreateUtilityReadingRequest) Validate() error {
	if r.ReadingValue.IsNegative() {
		return fmt.Errorf("%w: reading value must be non-negative, got %s", apperrors.ErrValidation, r.ReadingValue.String())
	}
	return nil
}

// UtilityBillResponse defines the data returned for a utility bill.
type UtilityBillResponse struct {
	BillID          string                   `json:"billID"`
	PropertyID      string                   `json:"propertyID"`
	Provider        string                   `json:"provider"`
	UtilityType     string                   `json:"utilityType"`
	Status          domain.UtilityBillStatus `json:"status"`
	TotalAmount     decimal.Decimal          `json:"totalAmount"`
	SplitMethod     domain.SplitMethod       `json:"splitMethod"`
	BillDate        time.Time                `json:"billDate"`
	DueDate         time.Time                `json:"dueDate"`
	ImportMethod    string                   `json:"importMethod,omitempty"`
	PostedJournalID *string                  `json:"postedJournalID,omitempty"`
	Version         int64                    `json:"version"`
}

// AllocationResponse defines the data returned for one allocation row.
type AllocationResponse struct {
	AllocationID string          `json:"allocationID"`
	LeaseID      string          `json:"leaseID"`
	Amount       decimal.Decimal `json:"amount"`
	Percentage   decimal.Decimal `json:"percentage"`
	Basis        string          `json:"basis"`
}

// UtilityReadingResponse defines the data returned for a meter reading.
type UtilityReadingResponse struct {
	ReadingID      string          `json:"readingID"`
	LeaseUtilityID string          `json:"leaseUtilityID"`
	ReadingValue   decimal.Decimal `json:"readingValue"`
	ReadingDate    time.Time       `json:"readingDate"`
}

// ToUtilityBillResponse converts a domain.UtilityBill to its response DTO.
func ToUtilityBillResponse(b *domain.UtilityBill) UtilityBillResponse {
	return UtilityBillResponse{
		BillID:          b.BillID,
		PropertyID:      b.PropertyID,
		Provider:        b.Provider,
		UtilityType:     b.UtilityType,
		Status:          b.Status,
		TotalAmount:     b.TotalAmount,
		SplitMethod:     b.SplitMethod,
		BillDate:        b.BillDate,
		DueDate:         b.DueDate,
		ImportMethod:    b.ImportMethod,
		PostedJournalID: b.PostedJournalID,
		Version:         b.Version,
	}
}

// ToAllocationResponses converts domain allocations to response DTOs.
func ToAllocationResponses(allocations []domain.UtilityAllocationResult) []AllocationResponse {
	responses := make([]AllocationResponse, len(allocations))
	for i, a := range allocations {
		responses[i] = AllocationResponse{
			AllocationID: a.AllocationID,
			LeaseID:      a.LeaseID,
			Amount:       a.Amount,
			Percentage:   a.Percentage,
			Basis:        a.Basis,
		}
	}
	return responses
}

// ToUtilityReadingResponse converts a domain.UtilityReading to its response DTO.
func ToUtilityReadingResponse(r *domain.UtilityReading) UtilityReadingResponse {
	return UtilityReadingResponse{
		ReadingID:      r.ReadingID,
		LeaseUtilityID: r.LeaseUtilityID,
		ReadingValue:   r.ReadingValue,
		ReadingDate:    r.ReadingDate,
	}
}

// ToAllocationBases converts request bases to the domain input shape.
func ToAllocationBases(bases []AllocationBasisRequest) []domain.AllocationBasis {
	out := make([]domain.AllocationBasis, len(bases))
	for i, b := range bases {
		out[i] = domain.AllocationBasis{
			LeaseID:       b.LeaseID,
			Occupants:     b.Occupants,
			SquareFootage: b.SquareFootage,
			SubMeterUsage: b.SubMeterUsage,
			CustomRatio:   b.CustomRatio,
		}
	}
	return out
}
