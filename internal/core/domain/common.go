package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}

// MonetaryTolerance is the absolute tolerance used wherever two currency
// amounts are compared for equality: the posting engine's debit/credit
// balance check and the allocation-sum reconciliation. One cent.
var MonetaryTolerance = decimal.NewFromFloat(0.01)

// RatioTolerance is the absolute tolerance for sums of computed ratios
// (percentages are derived quantities, not currency, so the bound is tighter).
var RatioTolerance = decimal.NewFromFloat(0.0001)

// WithinMonetaryTolerance reports whether a and b differ by at most
// MonetaryTolerance.
func WithinMonetaryTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(MonetaryTolerance)
}
