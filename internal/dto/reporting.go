package dto

import (
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse is one account's line in the trial balance report.
type TrialBalanceRowResponse struct {
	AccountID   string             `json:"accountID"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"accountType"`
	Debits      decimal.Decimal    `json:"debits"`
	Credits     decimal.Decimal    `json:"credits"`
	Balance     decimal.Decimal    `json:"balance"`
}

// TrialBalanceResponse wraps the report rows with the grand totals. Equal
// TotalDebits and TotalCredits confirm the ledger is balanced.
type TrialBalanceResponse struct {
	Rows         []TrialBalanceRowResponse `json:"rows"`
	TotalDebits  decimal.Decimal           `json:"totalDebits"`
	TotalCredits decimal.Decimal           `json:"totalCredits"`
}

// ToTrialBalanceResponse converts report rows to the response DTO, computing
// the grand totals.
func ToTrialBalanceResponse(rows []domain.TrialBalanceRow) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		Rows:         make([]TrialBalanceRowResponse, len(rows)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}
	for i, row := range rows {
		resp.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			Code:        row.Code,
			Name:        row.Name,
			AccountType: row.AccountType,
			Debits:      row.Debits,
			Credits:     row.Credits,
			Balance:     row.Balance,
		}
		resp.TotalDebits = resp.TotalDebits.Add(row.Debits)
		resp.TotalCredits = resp.TotalCredits.Add(row.Credits)
	}
	return resp
}
