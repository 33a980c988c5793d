package domain

// FinancialEntity is the ledger's tenancy boundary: every organization owns
// exactly one, created once at onboarding. Accounts, journals and utility
// bills all hang off an entity.
type FinancialEntity struct {
	EntityID       string `json:"entityID"`       // Primary key (UUID)
	OrganizationID string `json:"organizationID"` // Unique; the owning organization
	Name           string `json:"name"`           // Display name, usually the org name
	AuditFields
}
