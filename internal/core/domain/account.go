package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// BalanceSide identifies which side of an entry increases an account.
type BalanceSide string

const (
	DebitSide  BalanceSide = "DEBIT"
	CreditSide BalanceSide = "CREDIT"
)

// NormalSide returns the normal balance side implied by the account type:
// ASSET/EXPENSE accounts are debit-normal, the rest are credit-normal.
func (t AccountType) NormalSide() BalanceSide {
	switch t {
	case Asset, Expense:
		return DebitSide
	default:
		return CreditSide
	}
}

// Valid reports whether t is one of the five closed account types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// Account represents a ledger account within a financial entity.
// (entityID, code) is unique; accounts referenced by journal lines are never
// deleted, only deactivated.
type Account struct {
	AccountID   string      `json:"accountID"` // Primary key (UUID)
	EntityID    string      `json:"entityID"`  // FK -> financial_entities.entity_id
	Code        string      `json:"code"`      // Stable identifier, e.g. "1000"
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	IsSystem    bool        `json:"isSystem"` // Protected default account from setup
	IsActive    bool        `json:"isActive"`
	AuditFields
}

// System account codes created by SetupFinancials for every entity.
const (
	CodeCash                  = "1000"
	CodeAccountsReceivable    = "1100"
	CodeUndepositedFunds      = "1200"
	CodeAccountsPayable       = "2000"
	CodeSecurityDepositsHeld  = "2100"
	CodePrepaidRent           = "2200"
	CodeOwnerEquity           = "3000"
	CodeRentalIncome          = "4000"
	CodeUtilityRecoveryIncome = "4100"
	CodeLateFeeIncome         = "4200"
	CodeMaintenanceIncome     = "4300"
	CodeMaintenanceExpense    = "5000"
	CodeUtilityExpense        = "5100"
	CodeManagementFees        = "5200"
)

// SystemAccountSpec describes one default account in the chart of accounts.
type SystemAccountSpec struct {
	Code string
	Name string
	Type AccountType
}

// SystemChartOfAccounts is the fixed chart created for every new entity.
func SystemChartOfAccounts() []SystemAccountSpec {
	return []SystemAccountSpec{
		{CodeCash, "Cash", Asset},
		{CodeAccountsReceivable, "Accounts Receivable", Asset},
		{CodeUndepositedFunds, "Undeposited Funds", Asset},
		{CodeAccountsPayable, "Accounts Payable", Liability},
		{CodeSecurityDepositsHeld, "Security Deposits Held", Liability},
		{CodePrepaidRent, "Prepaid Rent", Liability},
		{CodeOwnerEquity, "Owner Equity", Equity},
		{CodeRentalIncome, "Rental Income", Income},
		{CodeUtilityRecoveryIncome, "Utility Recovery Income", Income},
		{CodeLateFeeIncome, "Late Fee Income", Income},
		{CodeMaintenanceIncome, "Maintenance Income", Income},
		{CodeMaintenanceExpense, "Maintenance Expense", Expense},
		{CodeUtilityExpense, "Utility Expense", Expense},
		{CodeManagementFees, "Management Fees", Expense},
	}
}
