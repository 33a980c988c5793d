package dto

import (
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the payload for creating an on-demand account
// (system accounts come from setup, not from this request).
type CreateAccountRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	AccountType string `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string             `json:"accountID"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"accountType"`
	IsSystem    bool               `json:"isSystem"`
	IsActive    bool               `json:"isActive"`
}

// AccountBalanceResponse carries a derived account balance. The balance is
// recomputed from journal lines on every request.
type AccountBalanceResponse struct {
	AccountCode string          `json:"accountCode"`
	AccountType domain.AccountType `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		Code:        a.Code,
		Name:        a.Name,
		AccountType: a.AccountType,
		IsSystem:    a.IsSystem,
		IsActive:    a.IsActive,
	}
}

// ToAccountResponses converts a slice of domain.Account to responses.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
