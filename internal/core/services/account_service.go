package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/apperrors"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	portsrepo "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/repositories"
	portssvc "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/services"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/dto"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const defaultAccountListLimit = 200

var (
	ErrSystemAccountImmutable = errors.New("system accounts cannot be deactivated")
)

// accountService handles business logic for the chart of accounts.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new non-system account in the entity's chart.
func (s *accountService) CreateAccount(ctx context.Context, entityID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	accountType := domain.AccountType(req.AccountType)
	if !accountType.Valid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	existing, err := s.accountRepo.FindAccountByCode(ctx, entityID, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account code uniqueness", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to check account code %s: %w", req.Code, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: account code %s already exists in entity", apperrors.ErrDuplicate, req.Code)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		EntityID:    entityID,
		Code:        req.Code,
		Name:        req.Name,
		AccountType: accountType,
		IsSystem:    false,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("code", req.Code), slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves an account and verifies it belongs to the entity.
func (s *accountService) GetAccountByID(ctx context.Context, entityID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.EntityID != entityID {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return account, nil
}

// GetAccountByCode retrieves an account by its ledger code within an entity.
func (s *accountService) GetAccountByCode(ctx context.Context, entityID string, code string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByCode(ctx, entityID, code)
}

// ListAccounts retrieves the chart of accounts of an entity.
func (s *accountService) ListAccounts(ctx context.Context, entityID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, entityID, defaultAccountListLimit, 0)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to list accounts for entity %s: %w", entityID, err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

// DeactivateAccount marks a non-system account inactive. Accounts referenced
// by journal lines stay in the chart; deactivation only blocks new postings.
func (s *accountService) DeactivateAccount(ctx context.Context, entityID string, accountID string, requestingUserID string) error {
	account, err := s.GetAccountByID(ctx, entityID, accountID)
	if err != nil {
		return err
	}
	if account.IsSystem {
		return fmt.Errorf("%w: account %s", ErrSystemAccountImmutable, account.Code)
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, requestingUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}

	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}

// CalculateAccountBalance derives the account's balance from the lifetime
// debit and credit totals of its journal lines, signed by its normal side.
func (s *accountService) CalculateAccountBalance(ctx context.Context, entityID string, accountID string) (decimal.Decimal, error) {
	account, err := s.GetAccountByID(ctx, entityID, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	debits, credits, err := s.accountRepo.SumLineAmountsByAccount(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum journal lines for account", slog.String("account_id", accountID))
		return decimal.Zero, fmt.Errorf("failed to calculate balance for account %s: %w", accountID, err)
	}

	return accounting.BalanceFromSums(account.AccountType, debits, credits), nil
}
