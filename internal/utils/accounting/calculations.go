package accounting

import (
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SumLines totals the debit and credit sides of a set of journal lines.
// This is used by the posting engine's balance check and by reporting.
func SumLines(lines []domain.JournalLine) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	return debits, credits
}

// BalanceFromSums derives an account balance from its lifetime debit and
// credit totals, signed by the account's normal side:
// debit-normal accounts carry debits minus credits, credit-normal accounts
// the reverse. Balances are always derived this way, never stored.
func BalanceFromSums(accountType domain.AccountType, debits, credits decimal.Decimal) decimal.Decimal {
	if accountType.NormalSide() == domain.DebitSide {
		return debits.Sub(credits)
	}
	return credits.Sub(debits)
}
