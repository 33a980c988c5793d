package pgsql

import (
	"context"
	"errors"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/apperrors"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	portsrepo "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxEntityRepository struct {
	BaseRepository
}

// newPgxEntityRepository creates a new repository for financial entity data.
func newPgxEntityRepository(pool *pgxpool.Pool) portsrepo.EntityRepositoryFacade {
	return &PgxEntityRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.EntityRepositoryFacade = (*PgxEntityRepository)(nil)

const entitySelectQuery = `
	SELECT entity_id, organization_id, name, created_at, created_by, last_updated_at, last_updated_by
	FROM financial_entities
`

func scanEntity(row pgx.Row) (*domain.FinancialEntity, error) {
	var e domain.FinancialEntity
	err := row.Scan(
		&e.EntityID,
		&e.OrganizationID,
		&e.Name,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan financial entity", err)
	}
	return &e, nil
}

// FindEntityByID retrieves a financial entity by its ID.
func (r *PgxEntityRepository) FindEntityByID(ctx context.Context, entityID string) (*domain.FinancialEntity, error) {
	query := entitySelectQuery + ` WHERE entity_id = $1;`
	return scanEntity(r.Pool.QueryRow(ctx, query, entityID))
}

// FindEntityByOrganizationID retrieves the financial entity of an organization.
func (r *PgxEntityRepository) FindEntityByOrganizationID(ctx context.Context, organizationID string) (*domain.FinancialEntity, error) {
	query := entitySelectQuery + ` WHERE organization_id = $1;`
	return scanEntity(r.Pool.QueryRow(ctx, query, organizationID))
}

// CreateEntityWithAccounts persists the entity and its system chart of
// accounts in one transaction. The unique index on organization_id carries
// the idempotency: when a concurrent or earlier setup already inserted the
// entity, the insert affects no rows and the existing entity is returned.
func (r *PgxEntityRepository) CreateEntityWithAccounts(ctx context.Context, entity domain.FinancialEntity, accounts []domain.Account) (*domain.FinancialEntity, bool, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer r.Rollback(ctx, tx)

	entityQuery := `
		INSERT INTO financial_entities (
			entity_id, organization_id, name,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (organization_id) DO NOTHING;
	`
	tag, err := tx.Exec(ctx, entityQuery,
		entity.EntityID,
		entity.OrganizationID,
		entity.Name,
		entity.CreatedAt,
		entity.CreatedBy,
		entity.LastUpdatedAt,
		entity.LastUpdatedBy,
	)
	if err != nil {
		return nil, false, apperrors.NewAppError(500, "failed to insert financial entity for organization "+entity.OrganizationID, err)
	}

	if tag.RowsAffected() == 0 {
		// Someone got here first; hand back what they created.
		existing, err := r.FindEntityByOrganizationID(ctx, entity.OrganizationID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	batch := &pgx.Batch{}
	accountQuery := `
		INSERT INTO accounts (
			account_id, entity_id, code, name, account_type, is_system, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, account := range accounts {
		batch.Queue(accountQuery,
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
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, false, apperrors.NewAppError(500, "failed to insert system accounts for entity "+entity.EntityID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, false, err
	}
	return &entity, true, nil
}
