package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UtilityBillStatus is the lifecycle state of a utility bill.
// DRAFT -> PROCESSING -> APPROVED -> POSTED, strictly in order.
type UtilityBillStatus string

const (
	BillDraft      UtilityBillStatus = "DRAFT"
	BillProcessing UtilityBillStatus = "PROCESSING"
	BillApproved   UtilityBillStatus = "APPROVED"
	BillPosted     UtilityBillStatus = "POSTED" // Terminal, immutable
)

// SplitMethod selects how a bill's total is allocated across leases.
type SplitMethod string

const (
	SplitEqual       SplitMethod = "EQUAL"
	SplitOccupancy   SplitMethod = "OCCUPANCY_BASED"
	SplitSquareFeet  SplitMethod = "SQ_FOOTAGE"
	SplitSubMetered  SplitMethod = "SUB_METERED"
	SplitCustomRatio SplitMethod = "CUSTOM_RATIO"
	SplitAIOptimized SplitMethod = "AI_OPTIMIZED"
)

// Valid reports whether m is a known split method.
func (m SplitMethod) Valid() bool {
	switch m {
	case SplitEqual, SplitOccupancy, SplitSquareFeet, SplitSubMetered, SplitCustomRatio, SplitAIOptimized:
		return true
	}
	return false
}

// UtilityBill represents one provider invoice for a property/period.
// Version supports optimistic locking on status transitions so that two
// callers cannot both approve or post the same bill from a stale read.
type UtilityBill struct {
	BillID          string            `json:"billID"`   // Primary key (UUID)
	EntityID        string            `json:"entityID"` // FK -> financial_entities.entity_id
	PropertyID      string            `json:"propertyID"`
	Provider        string            `json:"provider"`
	UtilityType     string            `json:"utilityType"` // e.g. WATER, ELECTRIC, GAS
	Status          UtilityBillStatus `json:"status"`
	TotalAmount     decimal.Decimal   `json:"totalAmount"`
	SplitMethod     SplitMethod       `json:"splitMethod"`
	BillDate        time.Time         `json:"billDate"`
	DueDate         time.Time         `json:"dueDate"` // >= BillDate
	ImportMethod    string            `json:"importMethod"`
	PostedJournalID *string           `json:"postedJournalID,omitempty"` // Set when POSTED
	Version         int64             `json:"version"`
	AuditFields
}

// UtilityAllocationResult is one lease's share of a bill.
// The amounts for a bill must reconcile to the bill total within
// MonetaryTolerance; the percentages must sum to 1 within RatioTolerance.
type UtilityAllocationResult struct {
	AllocationID string          `json:"allocationID"` // Primary key (UUID)
	BillID       string          `json:"billID"`       // FK -> utility_bills.bill_id
	LeaseID      string          `json:"leaseID"`
	Amount       decimal.Decimal `json:"amount"`
	Percentage   decimal.Decimal `json:"percentage"` // Share of the total, 0..1
	Basis        string          `json:"basis"`      // Human-readable basis, e.g. "occupants=3"
	AuditFields
}

// AllocationBasis carries the per-lease inputs the split methods draw from.
type AllocationBasis struct {
	LeaseID       string
	Occupants     int64
	SquareFootage decimal.Decimal
	SubMeterUsage decimal.Decimal
	CustomRatio   decimal.Decimal // Used by CUSTOM_RATIO; 0..1
}

// UtilityReading is a meter reading tied to a lease-utility pairing.
// Values are non-negative and monotonically non-decreasing per meter.
type UtilityReading struct {
	ReadingID      string          `json:"readingID"` // Primary key (UUID)
	LeaseUtilityID string          `json:"leaseUtilityID"`
	ReadingValue   decimal.Decimal `json:"readingValue"`
	ReadingDate    time.Time       `json:"readingDate"`
	AuditFields
}
