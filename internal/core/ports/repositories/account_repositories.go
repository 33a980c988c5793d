package repositories

import (
	"context"
	"time"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its stable code within an entity.
	FindAccountByCode(ctx context.Context, entityID string, code string) (*domain.Account, error)

	// FindAccountsByCodes retrieves multiple accounts by code within an entity,
	// keyed by code. Codes with no matching account are absent from the map.
	FindAccountsByCodes(ctx context.Context, entityID string, codes []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts for a given entity.
	ListAccounts(ctx context.Context, entityID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountActivityReader defines the derived-balance read path. Balances are
// never stored; they are recomputed from journal lines on every query.
type AccountActivityReader interface {
	// SumLineAmountsByAccount returns the lifetime debit and credit totals of
	// all journal lines referencing the account.
	SumLineAmountsByAccount(ctx context.Context, accountID string) (debits, credits decimal.Decimal, err error)

	// SumLineAmountsByEntity returns per-account debit/credit totals for all
	// accounts of an entity, keyed by account ID. Accounts with no lines map
	// to zero activity.
	SumLineAmountsByEntity(ctx context.Context, entityID string) (map[string]domain.AccountActivity, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountActivityReader
}
