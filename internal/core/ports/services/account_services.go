package services

import (
	"context"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, entityID string, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its ledger code within an entity.
	GetAccountByCode(ctx context.Context, entityID string, code string) (*domain.Account, error)

	// ListAccounts retrieves the chart of accounts of an entity.
	ListAccounts(ctx context.Context, entityID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data.
type AccountWriterSvc interface {
	// CreateAccount persists a new non-system account.
	CreateAccount(ctx context.Context, entityID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// DeactivateAccount marks a non-system account as inactive.
	DeactivateAccount(ctx context.Context, entityID string, accountID string, requestingUserID string) error
}

// AccountCalculatorSvc defines balance calculations over account activity.
type AccountCalculatorSvc interface {
	// CalculateAccountBalance derives the current balance of an account from
	// its posted journal lines, signed by the account's normal side.
	CalculateAccountBalance(ctx context.Context, entityID string, accountID string) (decimal.Decimal, error)
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountCalculatorSvc
}
