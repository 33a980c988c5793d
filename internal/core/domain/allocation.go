package domain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyAllocationInput rejects allocation over an empty lease set.
	ErrEmptyAllocationInput = errors.New("no leases to allocate across")

	// ErrZeroAllocationWeight rejects a split whose weights sum to zero
	// (e.g. sub-metered split with no recorded usage).
	ErrZeroAllocationWeight = errors.New("allocation weights sum to zero")

	// ErrInvalidRatio rejects a custom ratio outside [0, 1].
	ErrInvalidRatio = errors.New("ratio must be between 0 and 1")

	// ErrRatioSumInvalid rejects custom ratios that do not sum to 1.
	ErrRatioSumInvalid = errors.New("ratios must sum to 1")
)

var one = decimal.NewFromInt(1)
var cent = decimal.NewFromFloat(0.01)

// ValidateAllocationSum checks that the allocation amounts reconcile with the
// bill total within MonetaryTolerance.
func ValidateAllocationSum(allocations []UtilityAllocationResult, billTotal decimal.Decimal) error {
	sum := decimal.Zero
	for _, alloc := range allocations {
		sum = sum.Add(alloc.Amount)
	}
	if !WithinMonetaryTolerance(sum, billTotal) {
		return &AllocationSumError{
			Total:      billTotal,
			Allocated:  sum,
			Difference: sum.Sub(billTotal).Abs(),
		}
	}
	return nil
}

// ValidatePercentageSum checks that the given ratios sum to 1 within
// RatioTolerance.
func ValidatePercentageSum(percentages []decimal.Decimal) error {
	sum := decimal.Zero
	for _, p := range percentages {
		sum = sum.Add(p)
	}
	if sum.Sub(one).Abs().GreaterThan(RatioTolerance) {
		return fmt.Errorf("%w: sum is %s", ErrRatioSumInvalid, sum.String())
	}
	return nil
}

// ValidateCustomRatio checks a single ratio bound: 0 <= ratio <= 1.
func ValidateCustomRatio(ratio decimal.Decimal) error {
	if ratio.IsNegative() || ratio.GreaterThan(one) {
		return fmt.Errorf("%w: got %s", ErrInvalidRatio, ratio.String())
	}
	return nil
}

// ComputeAllocations splits a bill total across leases according to the
// split method. Amounts are rounded to cents with largest-remainder
// distribution so the result always sums exactly to the total (and therefore
// always satisfies ValidateAllocationSum). Percentages are adjusted the same
// way to sum exactly to 1.
//
// AI_OPTIMIZED has no model behind it in this core; it resolves to an even
// blend of the occupancy and square-footage bases. Callers wanting a real
// optimizer supply CUSTOM_RATIO.
func ComputeAllocations(total decimal.Decimal, method SplitMethod, bases []AllocationBasis) ([]UtilityAllocationResult, error) {
	if len(bases) == 0 {
		return nil, ErrEmptyAllocationInput
	}

	weights, basisLabels, err := allocationWeights(method, bases)
	if err != nil {
		return nil, err
	}

	sumWeights := decimal.Zero
	for _, w := range weights {
		sumWeights = sumWeights.Add(w)
	}
	if sumWeights.IsZero() {
		return nil, fmt.Errorf("%w: method %s", ErrZeroAllocationWeight, method)
	}

	type share struct {
		idx       int
		raw       decimal.Decimal
		amount    decimal.Decimal
		remainder decimal.Decimal
	}

	shares := make([]share, len(bases))
	amountSum := decimal.Zero
	for i, w := range weights {
		raw := total.Mul(w).Div(sumWeights)
		amt := raw.Truncate(2)
		shares[i] = share{idx: i, raw: raw, amount: amt, remainder: raw.Sub(amt)}
		amountSum = amountSum.Add(amt)
	}

	// Hand out the truncated cents to the largest remainders, then pin any
	// sub-cent residue on the largest remainder so the sum is exact.
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].remainder.GreaterThan(shares[j].remainder)
	})
	leftover := total.Sub(amountSum)
	centCount := leftover.Div(cent).IntPart()
	for i := int64(0); i < centCount && i < int64(len(shares)); i++ {
		shares[i].amount = shares[i].amount.Add(cent)
		leftover = leftover.Sub(cent)
	}
	if !leftover.IsZero() {
		shares[0].amount = shares[0].amount.Add(leftover)
	}

	results := make([]UtilityAllocationResult, len(bases))
	pctSum := decimal.Zero
	for _, s := range shares {
		pct := weights[s.idx].Div(sumWeights).Round(6)
		pctSum = pctSum.Add(pct)
		results[s.idx] = UtilityAllocationResult{
			LeaseID:    bases[s.idx].LeaseID,
			Amount:     s.amount,
			Percentage: pct,
			Basis:      basisLabels[s.idx],
		}
	}
	// Absorb percentage rounding drift into the largest share.
	if drift := one.Sub(pctSum); !drift.IsZero() {
		big := shares[0].idx
		results[big].Percentage = results[big].Percentage.Add(drift)
	}

	return results, nil
}

// allocationWeights derives the per-lease weight and basis label for a split
// method.
func allocationWeights(method SplitMethod, bases []AllocationBasis) ([]decimal.Decimal, []string, error) {
	weights := make([]decimal.Decimal, len(bases))
	labels := make([]string, len(bases))

	switch method {
	case SplitEqual:
		for i := range bases {
			weights[i] = one
			labels[i] = fmt.Sprintf("equal split across %d leases", len(bases))
		}
	case SplitOccupancy:
		for i, b := range bases {
			weights[i] = decimal.NewFromInt(b.Occupants)
			labels[i] = fmt.Sprintf("occupants=%d", b.Occupants)
		}
	case SplitSquareFeet:
		for i, b := range bases {
			weights[i] = b.SquareFootage
			labels[i] = fmt.Sprintf("sqft=%s", b.SquareFootage.String())
		}
	case SplitSubMetered:
		for i, b := range bases {
			weights[i] = b.SubMeterUsage
			labels[i] = fmt.Sprintf("submeter=%s", b.SubMeterUsage.String())
		}
	case SplitCustomRatio:
		ratios := make([]decimal.Decimal, len(bases))
		for i, b := range bases {
			if err := ValidateCustomRatio(b.CustomRatio); err != nil {
				return nil, nil, fmt.Errorf("lease %s: %w", b.LeaseID, err)
			}
			ratios[i] = b.CustomRatio
			weights[i] = b.CustomRatio
			labels[i] = fmt.Sprintf("ratio=%s", b.CustomRatio.String())
		}
		if err := ValidatePercentageSum(ratios); err != nil {
			return nil, nil, err
		}
	case SplitAIOptimized:
		// Blend occupancy and square footage, each normalized, half weight each.
		occTotal, sqftTotal := decimal.Zero, decimal.Zero
		for _, b := range bases {
			occTotal = occTotal.Add(decimal.NewFromInt(b.Occupants))
			sqftTotal = sqftTotal.Add(b.SquareFootage)
		}
		if occTotal.IsZero() && sqftTotal.IsZero() {
			return nil, nil, fmt.Errorf("%w: method %s", ErrZeroAllocationWeight, method)
		}
		for i, b := range bases {
			w := decimal.Zero
			if !occTotal.IsZero() {
				w = w.Add(decimal.NewFromInt(b.Occupants).Div(occTotal))
			}
			if !sqftTotal.IsZero() {
				w = w.Add(b.SquareFootage.Div(sqftTotal))
			}
			weights[i] = w
			labels[i] = fmt.Sprintf("blended occupancy/sqft (occupants=%d, sqft=%s)", b.Occupants, b.SquareFootage.String())
		}
	default:
		return nil, nil, fmt.Errorf("unknown split method %q", method)
	}

	return weights, labels, nil
}
