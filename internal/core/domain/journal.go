package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// JournalEntry represents a single, balanced financial event composed of
// multiple lines. Entries are append-only: once persisted they are never
// mutated, and corrections happen through reversing entries.
type JournalEntry struct {
	JournalID      string        `json:"journalID"` // Primary key (UUID)
	EntityID       string        `json:"entityID"`  // FK -> financial_entities.entity_id
	OrganizationID string        `json:"organizationID"`
	Date           time.Time     `json:"date"` // Date the event occurred
	Description    string        `json:"description"`
	Reference      *string       `json:"reference,omitempty"` // Caller-supplied external reference
	Status         JournalStatus `json:"status"`              // Default: POSTED
	// Reversal linkage. OriginalJournalID is set on the reversing entry,
	// ReversingJournalID on the reversed one.
	OriginalJournalID  *string       `json:"originalJournalID,omitempty"`
	ReversingJournalID *string       `json:"reversingJournalID,omitempty"`
	Lines              []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is a single line within a journal entry, affecting one account.
// A line carries exactly one side of the entry: either a debit or a credit,
// both non-negative and never both zero.
type JournalLine struct {
	LineID      string          `json:"lineID"`      // Primary key (UUID)
	JournalID   string          `json:"journalID"`   // FK -> journal_entries.journal_id
	AccountID   string          `json:"accountID"`   // FK -> accounts.account_id
	AccountCode string          `json:"accountCode"` // Denormalized stable code, e.g. "1000"
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Memo        string          `json:"memo,omitempty"`
	AuditFields
}

// IsDebit reports whether the line carries a debit amount.
func (l JournalLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// SignedAmount returns the line's effect on an account of the given type:
// positive when the line lands on the account's normal side, negative
// otherwise.
func (l JournalLine) SignedAmount(accountType AccountType) decimal.Decimal {
	net := l.Debit.Sub(l.Credit)
	if accountType.NormalSide() == CreditSide {
		return net.Neg()
	}
	return net
}
