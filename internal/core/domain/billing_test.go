package domain_test

import (
	"errors"
	"testing"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func billWithStatus(status domain.UtilityBillStatus) domain.UtilityBill {
	return domain.UtilityBill{
		BillID:      "bill-1",
		Status:      status,
		TotalAmount: decimal.NewFromFloat(1000.00),
	}
}

func allocs(amounts ...float64) []domain.UtilityAllocationResult {
	out := make([]domain.UtilityAllocationResult, len(amounts))
	for i, a := range amounts {
		out[i] = domain.UtilityAllocationResult{Amount: decimal.NewFromFloat(a)}
	}
	return out
}

func TestCanAllocate(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.UtilityBillStatus
		wantErr error
	}{
		{"draft is allowed", domain.BillDraft, nil},
		{"processing is rejected", domain.BillProcessing, domain.ErrBillNotDraft},
		{"approved is rejected", domain.BillApproved, domain.ErrBillNotDraft},
		{"posted is rejected", domain.BillPosted, domain.ErrBillNotDraft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.CanAllocate(billWithStatus(tt.status))
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCanApprove(t *testing.T) {
	tests := []struct {
		name        string
		status      domain.UtilityBillStatus
		allocations []domain.UtilityAllocationResult
		wantErr     error
	}{
		{
			name:        "processing with reconciled allocations",
			status:      domain.BillProcessing,
			allocations: allocs(600.00, 400.00),
			wantErr:     nil,
		},
		{
			name:        "within one cent tolerance",
			status:      domain.BillProcessing,
			allocations: allocs(600.00, 399.99),
			wantErr:     nil,
		},
		{
			name:        "wrong status wins over missing allocations",
			status:      domain.BillDraft,
			allocations: nil,
			wantErr:     domain.ErrBillNotProcessing,
		},
		{
			name:        "no allocations",
			status:      domain.BillProcessing,
			allocations: nil,
			wantErr:     domain.ErrNoAllocations,
		},
		{
			name:        "sum mismatch beyond tolerance",
			status:      domain.BillProcessing,
			allocations: allocs(600.00, 399.50),
			wantErr:     domain.ErrAllocationSumMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.CanApprove(billWithStatus(tt.status), tt.allocations)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCanApprove_SumMismatchDetails(t *testing.T) {
	err := domain.CanApprove(billWithStatus(domain.BillProcessing), allocs(600.00, 399.50))
	require.Error(t, err)

	var sumErr *domain.AllocationSumError
	require.True(t, errors.As(err, &sumErr))
	assert.Equal(t, "bill-1", sumErr.BillID)
	assert.True(t, sumErr.Difference.Equal(decimal.NewFromFloat(0.50)),
		"expected difference 0.50, got %s", sumErr.Difference)
}

func TestCanPost(t *testing.T) {
	assert.NoError(t, domain.CanPost(billWithStatus(domain.BillApproved)))

	for _, status := range []domain.UtilityBillStatus{domain.BillDraft, domain.BillProcessing, domain.BillPosted} {
		err := domain.CanPost(billWithStatus(status))
		assert.ErrorIs(t, err, domain.ErrBillNotApproved, "status %s", status)
	}
}

func TestAssertNotPosted(t *testing.T) {
	for _, status := range []domain.UtilityBillStatus{domain.BillDraft, domain.BillProcessing, domain.BillApproved} {
		assert.NoError(t, domain.AssertNotPosted(billWithStatus(status)), "status %s", status)
	}

	err := domain.AssertNotPosted(billWithStatus(domain.BillPosted))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBillPosted)

	var postedErr *domain.PostedBillError
	require.True(t, errors.As(err, &postedErr))
	assert.Equal(t, "bill-1", postedErr.BillID)
	assert.Equal(t, "BILL_POSTED", postedErr.Code)
}

func TestStateMachineOrdering(t *testing.T) {
	// No transition can be reached out of order regardless of call sequence:
	// for each status exactly one guard admits the bill.
	admitted := map[domain.UtilityBillStatus]string{
		domain.BillDraft:      "allocate",
		domain.BillProcessing: "approve",
		domain.BillApproved:   "post",
		domain.BillPosted:     "",
	}

	for status, want := range admitted {
		bill := billWithStatus(status)
		got := ""
		if domain.CanAllocate(bill) == nil {
			got = "allocate"
		}
		if domain.CanApprove(bill, allocs(1000.00)) == nil {
			require.Empty(t, got, "status %s admits more than one transition", status)
			got = "approve"
		}
		if domain.CanPost(bill) == nil {
			require.Empty(t, got, "status %s admits more than one transition", status)
			got = "post"
		}
		assert.Equal(t, want, got, "status %s", status)
	}
}
