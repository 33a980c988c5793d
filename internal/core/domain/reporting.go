package domain

import "github.com/shopspring/decimal"

// AccountActivity holds the lifetime debit and credit totals of one account,
// as summed from journal lines. Balances are derived from this, never stored.
type AccountActivity struct {
	Debits  decimal.Decimal `json:"debits"`
	Credits decimal.Decimal `json:"credits"`
}

// TrialBalanceRow is one account's line in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Debits      decimal.Decimal `json:"debits"`
	Credits     decimal.Decimal `json:"credits"`
	Balance     decimal.Decimal `json:"balance"` // Signed by the account's normal side
}
