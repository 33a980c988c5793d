package services_test

import (
	"context"
	"time"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	portsrepo "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock EntityRepository ---

type MockEntityRepository struct {
	mock.Mock
}

var _ portsrepo.EntityRepositoryFacade = (*MockEntityRepository)(nil)

func (m *MockEntityRepository) FindEntityByID(ctx context.Context, entityID string) (*domain.FinancialEntity, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialEntity), args.Error(1)
}

func (m *MockEntityRepository) FindEntityByOrganizationID(ctx context.Context, organizationID string) (*domain.FinancialEntity, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialEntity), args.Error(1)
}

func (m *MockEntityRepository) CreateEntityWithAccounts(ctx context.Context, entity domain.FinancialEntity, accounts []domain.Account) (*domain.FinancialEntity, bool, error) {
	args := m.Called(ctx, entity, accounts)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.FinancialEntity), args.Bool(1), args.Error(2)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, entityID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, entityID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, entityID string, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, entityID, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, entityID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, entityID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) SumLineAmountsByAccount(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockAccountRepository) SumLineAmountsByEntity(ctx context.Context, entityID string) (map[string]domain.AccountActivity, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.AccountActivity), args.Error(1)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListJournalsByEntity(ctx context.Context, entityID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, entityID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, journal, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateJournalStatusAndLinks(ctx context.Context, journalID string, status domain.JournalStatus, reversingJournalID *string, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, journalID, status, reversingJournalID, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

// --- Mock UtilityRepository ---

type MockUtilityRepository struct {
	mock.Mock
}

var _ portsrepo.UtilityRepositoryFacade = (*MockUtilityRepository)(nil)

func (m *MockUtilityRepository) FindBillByID(ctx context.Context, billID string) (*domain.UtilityBill, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UtilityBill), args.Error(1)
}

func (m *MockUtilityRepository) ListBillsByEntity(ctx context.Context, entityID string, limit int, offset int) ([]domain.UtilityBill, error) {
	args := m.Called(ctx, entityID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UtilityBill), args.Error(1)
}

func (m *MockUtilityRepository) SaveBill(ctx context.Context, bill domain.UtilityBill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockUtilityRepository) UpdateBillDetails(ctx context.Context, bill domain.UtilityBill, expectedVersion int64) error {
	args := m.Called(ctx, bill, expectedVersion)
	return args.Error(0)
}

func (m *MockUtilityRepository) TransitionBillStatus(ctx context.Context, billID string, expectedVersion int64, status domain.UtilityBillStatus, postedJournalID *string, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, billID, expectedVersion, status, postedJournalID, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockUtilityRepository) FindAllocationsByBillID(ctx context.Context, billID string) ([]domain.UtilityAllocationResult, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UtilityAllocationResult), args.Error(1)
}

func (m *MockUtilityRepository) ReplaceAllocations(ctx context.Context, billID string, allocations []domain.UtilityAllocationResult) error {
	args := m.Called(ctx, billID, allocations)
	return args.Error(0)
}

func (m *MockUtilityRepository) FindLatestReading(ctx context.Context, leaseUtilityID string) (*domain.UtilityReading, error) {
	args := m.Called(ctx, leaseUtilityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UtilityReading), args.Error(1)
}

func (m *MockUtilityRepository) SaveReading(ctx context.Context, reading domain.UtilityReading) error {
	args := m.Called(ctx, reading)
	return args.Error(0)
}
