package accounting_test

import (
	"testing"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSumLines(t *testing.T) {
	lines := []domain.JournalLine{
		{Debit: decimal.NewFromFloat(100.00), Credit: decimal.Zero},
		{Debit: decimal.NewFromFloat(50.00), Credit: decimal.Zero},
		{Debit: decimal.Zero, Credit: decimal.NewFromFloat(150.00)},
	}

	debits, credits := accounting.SumLines(lines)
	assert.True(t, debits.Equal(decimal.NewFromFloat(150.00)))
	assert.True(t, credits.Equal(decimal.NewFromFloat(150.00)))
}

func TestBalanceFromSums(t *testing.T) {
	debits := decimal.NewFromFloat(300.00)
	credits := decimal.NewFromFloat(100.00)

	tests := []struct {
		accountType domain.AccountType
		want        float64
	}{
		{domain.Asset, 200.00},
		{domain.Expense, 200.00},
		{domain.Liability, -200.00},
		{domain.Equity, -200.00},
		{domain.Income, -200.00},
	}

	for _, tt := range tests {
		t.Run(string(tt.accountType), func(t *testing.T) {
			got := accounting.BalanceFromSums(tt.accountType, debits, credits)
			assert.True(t, got.Equal(decimal.NewFromFloat(tt.want)), "got %s", got)
		})
	}
}
