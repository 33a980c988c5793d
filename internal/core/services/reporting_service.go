package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	portsrepo "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/repositories"
	portssvc "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/services"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/utils/accounting"
)

// reportingService derives ledger reports from journal line activity.
// Nothing here reads a stored balance; every figure is recomputed.
type reportingService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.ReportingService {
	return &reportingService{accountRepo: accountRepo}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance lists every account of the entity with its lifetime debit and
// credit totals and the derived balance, ordered by account code. For a
// ledger containing only balanced journals the debit and credit grand totals
// are equal.
func (s *reportingService) TrialBalance(ctx context.Context, entityID string) ([]domain.TrialBalanceRow, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, entityID, defaultAccountListLimit, 0)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for trial balance", slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to list accounts for entity %s: %w", entityID, err)
	}

	activity, err := s.accountRepo.SumLineAmountsByEntity(ctx, entityID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum journal lines for trial balance", slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to sum activity for entity %s: %w", entityID, err)
	}

	rows := make([]domain.TrialBalanceRow, 0, len(accounts))
	for _, account := range accounts {
		act := activity[account.AccountID]
		rows = append(rows, domain.TrialBalanceRow{
			AccountID:   account.AccountID,
			Code:        account.Code,
			Name:        account.Name,
			AccountType: account.AccountType,
			Debits:      act.Debits,
			Credits:     act.Credits,
			Balance:     accounting.BalanceFromSums(account.AccountType, act.Debits, act.Credits),
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })
	return rows, nil
}
