package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/apperrors"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	portsrepo "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountSelectQuery = `
	SELECT account_id, entity_id, code, name, account_type, is_system, is_active,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM accounts
`

func scanAccountRow(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.AccountID,
		&a.EntityID,
		&a.Code,
		&a.Name,
		&a.AccountType,
		&a.IsSystem,
		&a.IsActive,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan account row", err)
	}
	return &a, nil
}

// FindAccountByID retrieves an account by its unique identifier.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := accountSelectQuery + ` WHERE account_id = $1;`
	return scanAccountRow(r.Pool.QueryRow(ctx, query, accountID))
}

// FindAccountByCode retrieves an account by its stable code within an entity.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, entityID string, code string) (*domain.Account, error) {
	query := accountSelectQuery + ` WHERE entity_id = $1 AND code = $2;`
	return scanAccountRow(r.Pool.QueryRow(ctx, query, entityID, code))
}

// FindAccountsByCodes retrieves accounts for the given codes, keyed by code.
// Codes with no matching account are simply absent from the result.
func (r *PgxAccountRepository) FindAccountsByCodes(ctx context.Context, entityID string, codes []string) (map[string]domain.Account, error) {
	query := accountSelectQuery + ` WHERE entity_id = $1 AND code = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, entityID, codes)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by codes", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(codes))
	for rows.Next() {
		account, err := scanAccountRow(rows)
		if err != nil {
			return nil, err
		}
		accounts[account.Code] = *account
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read account rows", err)
	}
	return accounts, nil
}

// ListAccounts retrieves the accounts of an entity ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, entityID string, limit int, offset int) ([]domain.Account, error) {
	query := accountSelectQuery + ` WHERE entity_id = $1 ORDER BY code LIMIT $2 OFFSET $3;`
	rows, err := r.Pool.Query(ctx, query, entityID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts for entity "+entityID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		account, err := scanAccountRow(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read account rows", err)
	}
	return accounts, nil
}

// SaveAccount persists a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (
			account_id, entity_id, code, name, account_type, is_system, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.EntityID,
		account.Code,
		account.Name,
		account.AccountType,
		account.IsSystem,
		account.IsActive,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save account "+account.AccountID, err)
	}
	return nil
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SumLineAmountsByAccount returns the lifetime debit and credit totals of all
// journal lines referencing the account.
func (r *PgxAccountRepository) SumLineAmountsByAccount(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM journal_lines
		WHERE account_id = $1;
	`
	var debits, credits decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&debits, &credits); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to sum journal lines for account "+accountID, err)
	}
	return debits, credits, nil
}

// SumLineAmountsByEntity returns per-account debit/credit totals for all
// accounts of an entity. Accounts with no lines appear with zero activity.
func (r *PgxAccountRepository) SumLineAmountsByEntity(ctx context.Context, entityID string) (map[string]domain.AccountActivity, error) {
	query := `
		SELECT a.account_id, COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM accounts a
		LEFT JOIN journal_lines l ON l.account_id = a.account_id
		WHERE a.entity_id = $1
		GROUP BY a.account_id;
	`
	rows, err := r.Pool.Query(ctx, query, entityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to sum journal lines for entity "+entityID, err)
	}
	defer rows.Close()

	activity := make(map[string]domain.AccountActivity)
	for rows.Next() {
		var accountID string
		var act domain.AccountActivity
		if err := rows.Scan(&accountID, &act.Debits, &act.Credits); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan activity row", err)
		}
		activity[accountID] = act
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read activity rows", err)
	}
	return activity, nil
}
