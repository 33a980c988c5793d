package repositories

import (
	"context"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
)

// EntityReader defines read operations for financial entity data
type EntityReader interface {
	// FindEntityByID retrieves a specific financial entity by its ID.
	FindEntityByID(ctx context.Context, entityID string) (*domain.FinancialEntity, error)

	// FindEntityByOrganizationID retrieves the financial entity owned by an organization.
	FindEntityByOrganizationID(ctx context.Context, organizationID string) (*domain.FinancialEntity, error)
}

// EntityWriter defines write operations for financial entity data
type EntityWriter interface {
	// CreateEntityWithAccounts persists a financial entity together with its
	// system chart of accounts in a single transaction. The unique constraint
	// on organization_id makes the operation idempotent: when an entity
	// already exists for the organization, the existing entity is returned
	// and created is false.
	CreateEntityWithAccounts(ctx context.Context, entity domain.FinancialEntity, accounts []domain.Account) (result *domain.FinancialEntity, created bool, err error)
}

// EntityRepositoryFacade combines all entity-related repository interfaces
type EntityRepositoryFacade interface {
	EntityReader
	EntityWriter
}
