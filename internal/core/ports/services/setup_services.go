package services

import (
	"context"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
)

// SetupWriterSvc defines the financial onboarding operations for an organization.
type SetupWriterSvc interface {
	// SetupFinancials provisions the financial entity and the system chart of
	// accounts for an organization. Calling it again for the same organization
	// returns the existing entity without creating anything.
	SetupFinancials(ctx context.Context, organizationID string, orgName string, creatorUserID string) (*domain.FinancialEntity, error)
}

// SetupReaderSvc defines read operations for financial entities.
type SetupReaderSvc interface {
	// FindEntityByOrganizationID retrieves the financial entity of an organization.
	FindEntityByOrganizationID(ctx context.Context, organizationID string) (*domain.FinancialEntity, error)
}

// SetupSvcFacade combines all setup-related service interfaces.
type SetupSvcFacade interface {
	SetupWriterSvc
	SetupReaderSvc
}
