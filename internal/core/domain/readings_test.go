package domain_test

import (
	"errors"
	"testing"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func TestValidateNonNegativeReading(t *testing.T) {
	assert.NoError(t, domain.ValidateNonNegativeReading(decimal.Zero))
	assert.NoError(t, domain.ValidateNonNegativeReading(decimal.NewFromFloat(120.5)))
	assert.ErrorIs(t, domain.ValidateNonNegativeReading(decimal.NewFromFloat(-0.01)), domain.ErrNegativeReading)
}

func TestValidateMonotonicReading(t *testing.T) {
	tests := []struct {
		name     string
		newValue float64
		previous *decimal.Decimal
		wantErr  error
	}{
		{"first reading always passes", 0, nil, nil},
		{"equal reading passes", 120, decimalPtr(120), nil},
		{"increasing reading passes", 130, decimalPtr(120), nil},
		{"decreasing reading rejected", 115, decimalPtr(120), domain.ErrDecreasingReading},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateMonotonicReading(decimal.NewFromFloat(tt.newValue), tt.previous)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateNewReading_ShortCircuits(t *testing.T) {
	// A negative value is reported as negative even when it would also be
	// decreasing.
	err := domain.ValidateNewReading(decimal.NewFromFloat(-5), decimalPtr(120))
	assert.ErrorIs(t, err, domain.ErrNegativeReading)
	assert.NotErrorIs(t, err, domain.ErrDecreasingReading)

	err = domain.ValidateNewReading(decimal.NewFromFloat(115), decimalPtr(120))
	require.Error(t, err)

	var decErr *domain.DecreasingReadingError
	require.True(t, errors.As(err, &decErr))
	assert.True(t, decErr.Previous.Equal(decimal.NewFromFloat(120)))
	assert.True(t, decErr.New.Equal(decimal.NewFromFloat(115)))
}
