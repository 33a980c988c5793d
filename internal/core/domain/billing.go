package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Utility bill lifecycle guards. These are pure decision functions: given a
// state snapshot they return nil or a typed rejection, perform no I/O, and
// leave serialization of concurrent transitions to the storage layer.

var (
	// ErrBillNotDraft rejects allocation of a bill that already left DRAFT.
	ErrBillNotDraft = errors.New("bill can only be allocated from DRAFT status")

	// ErrBillNotProcessing rejects approval of a bill outside PROCESSING.
	ErrBillNotProcessing = errors.New("bill can only be approved from PROCESSING status")

	// ErrNoAllocations rejects approval of a bill with an empty allocation set.
	ErrNoAllocations = errors.New("bill has no allocations to approve")

	// ErrAllocationSumMismatch rejects approval when the allocation amounts do
	// not reconcile with the bill total within MonetaryTolerance.
	ErrAllocationSumMismatch = errors.New("allocation amounts do not reconcile with bill total")

	// ErrBillNotApproved rejects posting of a bill that is not APPROVED.
	ErrBillNotApproved = errors.New("bill must be approved before posting")

	// ErrBillPosted rejects any mutation of a POSTED bill.
	ErrBillPosted = errors.New("posted bill is immutable")
)

// PostedBillError is returned by AssertNotPosted for mutation attempts
// against a POSTED bill. It carries the bill id and a stable code so the
// caller can surface the violation without parsing the message.
type PostedBillError struct {
	BillID string
	Code   string
}

func (e *PostedBillError) Error() string {
	return fmt.Sprintf("bill %s is posted and immutable (%s)", e.BillID, e.Code)
}

func (e *PostedBillError) Unwrap() error {
	return ErrBillPosted
}

// AllocationSumError details a failed allocation-sum reconciliation.
type AllocationSumError struct {
	BillID     string
	Total      decimal.Decimal
	Allocated  decimal.Decimal
	Difference decimal.Decimal
}

func (e *AllocationSumError) Error() string {
	return fmt.Sprintf("allocations for bill %s sum to %s, bill total is %s (difference %s)",
		e.BillID, e.Allocated.String(), e.Total.String(), e.Difference.String())
}

func (e *AllocationSumError) Unwrap() error {
	return ErrAllocationSumMismatch
}

// CanAllocate reports whether allocations may be computed for the bill.
// Allowed only from DRAFT.
func CanAllocate(bill UtilityBill) error {
	if bill.Status != BillDraft {
		return fmt.Errorf("%w: status is %s", ErrBillNotDraft, bill.Status)
	}
	return nil
}

// CanApprove reports whether the bill may move PROCESSING -> APPROVED.
// Checks run in priority order: status, allocation presence, sum
// reconciliation; exactly one rejection is ever returned.
func CanApprove(bill UtilityBill, allocations []UtilityAllocationResult) error {
	if bill.Status != BillProcessing {
		return fmt.Errorf("%w: status is %s", ErrBillNotProcessing, bill.Status)
	}
	if len(allocations) == 0 {
		return ErrNoAllocations
	}
	sum := decimal.Zero
	for _, alloc := range allocations {
		sum = sum.Add(alloc.Amount)
	}
	if !WithinMonetaryTolerance(sum, bill.TotalAmount) {
		return &AllocationSumError{
			BillID:     bill.BillID,
			Total:      bill.TotalAmount,
			Allocated:  sum,
			Difference: sum.Sub(bill.TotalAmount).Abs(),
		}
	}
	return nil
}

// CanPost reports whether the bill may move APPROVED -> POSTED.
func CanPost(bill UtilityBill) error {
	if bill.Status != BillApproved {
		return fmt.Errorf("%w: status is %s", ErrBillNotApproved, bill.Status)
	}
	return nil
}

// AssertNotPosted guards every bill mutation path: POSTED bills are part of
// the historical financial record and must never change.
func AssertNotPosted(bill UtilityBill) error {
	if bill.Status == BillPosted {
		return &PostedBillError{BillID: bill.BillID, Code: "BILL_POSTED"}
	}
	return nil
}
