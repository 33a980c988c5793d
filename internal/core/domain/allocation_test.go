package domain_test

import (
	"testing"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAllocationSum(t *testing.T) {
	total := decimal.NewFromFloat(1000.00)

	tests := []struct {
		name    string
		amounts []float64
		wantErr error
	}{
		{"exact sum", []float64{600.00, 400.00}, nil},
		{"one cent under is within tolerance", []float64{600.00, 399.99}, nil},
		{"one cent over is within tolerance", []float64{600.00, 400.01}, nil},
		{"fifty cents off is rejected", []float64{600.00, 399.50}, domain.ErrAllocationSumMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateAllocationSum(allocs(tt.amounts...), total)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePercentageSum(t *testing.T) {
	ratios := func(vals ...float64) []decimal.Decimal {
		out := make([]decimal.Decimal, len(vals))
		for i, v := range vals {
			out[i] = decimal.NewFromFloat(v)
		}
		return out
	}

	assert.NoError(t, domain.ValidatePercentageSum(ratios(0.5, 0.3, 0.2)))
	assert.NoError(t, domain.ValidatePercentageSum(ratios(0.33335, 0.33335, 0.33335)))
	assert.ErrorIs(t, domain.ValidatePercentageSum(ratios(0.5, 0.3)), domain.ErrRatioSumInvalid)
	assert.ErrorIs(t, domain.ValidatePercentageSum(ratios(0.5, 0.501)), domain.ErrRatioSumInvalid)
}

func TestValidateCustomRatio(t *testing.T) {
	assert.NoError(t, domain.ValidateCustomRatio(decimal.Zero))
	assert.NoError(t, domain.ValidateCustomRatio(decimal.NewFromFloat(0.25)))
	assert.NoError(t, domain.ValidateCustomRatio(decimal.NewFromInt(1)))
	assert.ErrorIs(t, domain.ValidateCustomRatio(decimal.NewFromFloat(-0.1)), domain.ErrInvalidRatio)
	assert.ErrorIs(t, domain.ValidateCustomRatio(decimal.NewFromFloat(1.1)), domain.ErrInvalidRatio)
}

func sumAmounts(results []domain.UtilityAllocationResult) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range results {
		sum = sum.Add(r.Amount)
	}
	return sum
}

func TestComputeAllocations_EqualSplitIsExact(t *testing.T) {
	total := decimal.NewFromFloat(100.00)
	bases := []domain.AllocationBasis{
		{LeaseID: "l1"}, {LeaseID: "l2"}, {LeaseID: "l3"},
	}

	results, err := domain.ComputeAllocations(total, domain.SplitEqual, bases)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// 100.00 does not divide by three; the result must still sum exactly.
	assert.True(t, sumAmounts(results).Equal(total), "sum is %s", sumAmounts(results))
	assert.NoError(t, domain.ValidateAllocationSum(results, total))

	pcts := make([]decimal.Decimal, len(results))
	for i, r := range results {
		pcts[i] = r.Percentage
	}
	assert.NoError(t, domain.ValidatePercentageSum(pcts))
}

func TestComputeAllocations_Occupancy(t *testing.T) {
	total := decimal.NewFromFloat(900.00)
	bases := []domain.AllocationBasis{
		{LeaseID: "l1", Occupants: 1},
		{LeaseID: "l2", Occupants: 2},
	}

	results, err := domain.ComputeAllocations(total, domain.SplitOccupancy, bases)
	require.NoError(t, err)
	assert.True(t, results[0].Amount.Equal(decimal.NewFromFloat(300.00)), "got %s", results[0].Amount)
	assert.True(t, results[1].Amount.Equal(decimal.NewFromFloat(600.00)), "got %s", results[1].Amount)
}

func TestComputeAllocations_SubMeteredZeroUsage(t *testing.T) {
	bases := []domain.AllocationBasis{
		{LeaseID: "l1", SubMeterUsage: decimal.Zero},
		{LeaseID: "l2", SubMeterUsage: decimal.Zero},
	}

	_, err := domain.ComputeAllocations(decimal.NewFromFloat(100.00), domain.SplitSubMetered, bases)
	assert.ErrorIs(t, err, domain.ErrZeroAllocationWeight)
}

func TestComputeAllocations_CustomRatio(t *testing.T) {
	total := decimal.NewFromFloat(1000.00)
	bases := []domain.AllocationBasis{
		{LeaseID: "l1", CustomRatio: decimal.NewFromFloat(0.6)},
		{LeaseID: "l2", CustomRatio: decimal.NewFromFloat(0.4)},
	}

	results, err := domain.ComputeAllocations(total, domain.SplitCustomRatio, bases)
	require.NoError(t, err)
	assert.True(t, results[0].Amount.Equal(decimal.NewFromFloat(600.00)))
	assert.True(t, results[1].Amount.Equal(decimal.NewFromFloat(400.00)))
}

func TestComputeAllocations_CustomRatioRejectsBadInput(t *testing.T) {
	total := decimal.NewFromFloat(1000.00)

	_, err := domain.ComputeAllocations(total, domain.SplitCustomRatio, []domain.AllocationBasis{
		{LeaseID: "l1", CustomRatio: decimal.NewFromFloat(1.5)},
		{LeaseID: "l2", CustomRatio: decimal.NewFromFloat(-0.5)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRatio)

	_, err = domain.ComputeAllocations(total, domain.SplitCustomRatio, []domain.AllocationBasis{
		{LeaseID: "l1", CustomRatio: decimal.NewFromFloat(0.3)},
		{LeaseID: "l2", CustomRatio: decimal.NewFromFloat(0.3)},
	})
	assert.ErrorIs(t, err, domain.ErrRatioSumInvalid)
}

func TestComputeAllocations_AIOptimizedBlend(t *testing.T) {
	total := decimal.NewFromFloat(500.00)
	bases := []domain.AllocationBasis{
		{LeaseID: "l1", Occupants: 2, SquareFootage: decimal.NewFromInt(500)},
		{LeaseID: "l2", Occupants: 2, SquareFootage: decimal.NewFromInt(1500)},
	}

	results, err := domain.ComputeAllocations(total, domain.SplitAIOptimized, bases)
	require.NoError(t, err)
	assert.True(t, sumAmounts(results).Equal(total))
	// Same occupancy, l2 has three times the area: l2 must get the larger share.
	assert.True(t, results[1].Amount.GreaterThan(results[0].Amount))
}

func TestComputeAllocations_RoundingNeverLosesACent(t *testing.T) {
	// Awkward totals across awkward weights: the invariant is that the output
	// always reconciles exactly.
	totals := []float64{100.00, 33.35, 999.99, 0.05, 741.23}
	bases := []domain.AllocationBasis{
		{LeaseID: "l1", Occupants: 3},
		{LeaseID: "l2", Occupants: 1},
		{LeaseID: "l3", Occupants: 7},
	}

	for _, tf := range totals {
		total := decimal.NewFromFloat(tf)
		results, err := domain.ComputeAllocations(total, domain.SplitOccupancy, bases)
		require.NoError(t, err)
		assert.True(t, sumAmounts(results).Equal(total), "total %s, sum %s", total, sumAmounts(results))
	}
}

func TestComputeAllocations_EmptyInput(t *testing.T) {
	_, err := domain.ComputeAllocations(decimal.NewFromFloat(10.00), domain.SplitEqual, nil)
	assert.ErrorIs(t, err, domain.ErrEmptyAllocationInput)
}
