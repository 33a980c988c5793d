package services

import (
	"context"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
)

// ReportingService defines ledger reporting operations.
type ReportingService interface {
	// TrialBalance derives the debit/credit totals and balance of every active
	// account in an entity from its journal lines.
	TrialBalance(ctx context.Context, entityID string) ([]domain.TrialBalanceRow, error)
}
