package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/apperrors"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	portsrepo "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/repositories"
	portssvc "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/services"
)

// setupService provisions the financial side of an organization.
type setupService struct {
	BaseService
	entityRepo portsrepo.EntityRepositoryFacade
}

// NewSetupService creates a new SetupService.
func NewSetupService(entityRepo portsrepo.EntityRepositoryFacade) portssvc.SetupSvcFacade {
	return &setupService{entityRepo: entityRepo}
}

var _ portssvc.SetupSvcFacade = (*setupService)(nil)

// SetupFinancials creates the financial entity and the system chart of
// accounts for an organization in one transaction. The operation is
// idempotent: a second call for the same organization returns the entity
// created by the first call and writes nothing.
func (s *setupService) SetupFinancials(ctx context.Context, organizationID string, orgName string, creatorUserID string) (*domain.FinancialEntity, error) {
	if organizationID == "" {
		return nil, fmt.Errorf("%w: organization ID is required", apperrors.ErrValidation)
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	entity := domain.FinancialEntity{
		EntityID:       uuid.NewString(),
		OrganizationID: organizationID,
		Name:           orgName,
		AuditFields:    audit,
	}

	specs := domain.SystemChartOfAccounts()
	accounts := make([]domain.Account, len(specs))
	for i, spec := range specs {
		accounts[i] = domain.Account{
			AccountID:   uuid.NewString(),
			EntityID:    entity.EntityID,
			Code:        spec.Code,
			Name:        spec.Name,
			AccountType: spec.Type,
			IsSystem:    true,
			IsActive:    true,
			AuditFields: audit,
		}
	}

	result, created, err := s.entityRepo.CreateEntityWithAccounts(ctx, entity, accounts)
	if err != nil {
		s.LogError(ctx, err, "Failed to set up financials", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to set up financials for organization %s: %w", organizationID, err)
	}

	if created {
		s.LogInfo(ctx, "Financials set up for organization",
			slog.String("organization_id", organizationID),
			slog.String("entity_id", result.EntityID),
			slog.Int("system_accounts", len(accounts)))
	} else {
		s.LogDebug(ctx, "Financials already set up, returning existing entity",
			slog.String("organization_id", organizationID),
			slog.String("entity_id", result.EntityID))
	}
	return result, nil
}

// FindEntityByOrganizationID retrieves the financial entity of an organization.
func (s *setupService) FindEntityByOrganizationID(ctx context.Context, organizationID string) (*domain.FinancialEntity, error) {
	entity, err := s.entityRepo.FindEntityByOrganizationID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return entity, nil
}
