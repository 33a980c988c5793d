package domain_test

import (
	"testing"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccountType_NormalSide(t *testing.T) {
	tests := []struct {
		accountType domain.AccountType
		want        domain.BalanceSide
	}{
		{domain.Asset, domain.DebitSide},
		{domain.Expense, domain.DebitSide},
		{domain.Liability, domain.CreditSide},
		{domain.Equity, domain.CreditSide},
		{domain.Income, domain.CreditSide},
	}

	for _, tt := range tests {
		t.Run(string(tt.accountType), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.accountType.NormalSide())
		})
	}
}

func TestJournalLine_SignedAmount(t *testing.T) {
	debit := domain.JournalLine{Debit: decimal.NewFromFloat(100.00), Credit: decimal.Zero}
	credit := domain.JournalLine{Debit: decimal.Zero, Credit: decimal.NewFromFloat(100.00)}

	hundred := decimal.NewFromFloat(100.00)

	// Debit increases a debit-normal account, decreases a credit-normal one.
	assert.True(t, debit.SignedAmount(domain.Asset).Equal(hundred))
	assert.True(t, debit.SignedAmount(domain.Income).Equal(hundred.Neg()))

	// Credit is the mirror image.
	assert.True(t, credit.SignedAmount(domain.Asset).Equal(hundred.Neg()))
	assert.True(t, credit.SignedAmount(domain.Liability).Equal(hundred))
}

func TestSystemChartOfAccounts(t *testing.T) {
	chart := domain.SystemChartOfAccounts()
	assert.Len(t, chart, 14)

	seen := make(map[string]bool)
	for _, spec := range chart {
		assert.False(t, seen[spec.Code], "duplicate code %s", spec.Code)
		seen[spec.Code] = true
		assert.True(t, spec.Type.Valid(), "invalid type for %s", spec.Code)
	}

	assert.True(t, seen[domain.CodeCash])
	assert.True(t, seen[domain.CodeUtilityExpense])
	assert.True(t, seen[domain.CodeAccountsPayable])
}
