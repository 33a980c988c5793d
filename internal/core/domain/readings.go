package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrNegativeReading rejects meter values below zero.
	ErrNegativeReading = errors.New("meter reading cannot be negative")

	// ErrDecreasingReading rejects a reading lower than the previous one for
	// the same meter; meters do not run backward absent tampering or data error.
	ErrDecreasingReading = errors.New("meter reading is lower than the previous reading")
)

// DecreasingReadingError details a monotonicity violation.
type DecreasingReadingError struct {
	Previous decimal.Decimal
	New      decimal.Decimal
}

func (e *DecreasingReadingError) Error() string {
	return fmt.Sprintf("reading %s is lower than previous reading %s", e.New.String(), e.Previous.String())
}

func (e *DecreasingReadingError) Unwrap() error {
	return ErrDecreasingReading
}

// ValidateNonNegativeReading rejects negative meter values.
func ValidateNonNegativeReading(value decimal.Decimal) error {
	if value.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeReading, value.String())
	}
	return nil
}

// ValidateMonotonicReading rejects a reading strictly lower than the
// immediately preceding reading for the same meter. A nil previous reading
// (first reading) always passes.
func ValidateMonotonicReading(newValue decimal.Decimal, previous *decimal.Decimal) error {
	if previous == nil {
		return nil
	}
	if newValue.LessThan(*previous) {
		return &DecreasingReadingError{Previous: *previous, New: newValue}
	}
	return nil
}

// ValidateNewReading composes the non-negative and monotonic checks,
// short-circuiting on the first failure.
func ValidateNewReading(newValue decimal.Decimal, previous *decimal.Decimal) error {
	if err := ValidateNonNegativeReading(newValue); err != nil {
		return err
	}
	return ValidateMonotonicReading(newValue, previous)
}
