package dto

import (
	"time"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
)

// SetupFinancialsRequest defines the payload for onboarding an organization
// into the ledger.
type SetupFinancialsRequest struct {
	OrgName string `json:"orgName" binding:"required"`
}

// FinancialEntityResponse defines the data returned for a financial entity.
type FinancialEntityResponse struct {
	EntityID       string    `json:"entityID"`
	OrganizationID string    `json:"organizationID"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToFinancialEntityResponse converts a domain.FinancialEntity to its response DTO.
func ToFinancialEntityResponse(e *domain.FinancialEntity) FinancialEntityResponse {
	return FinancialEntityResponse{
		EntityID:       e.EntityID,
		OrganizationID: e.OrganizationID,
		Name:           e.Name,
		CreatedAt:      e.CreatedAt,
	}
}
