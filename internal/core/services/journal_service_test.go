package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	portssvc "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/services"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/services"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	mockEntityRepo  *MockEntityRepository
	service         portssvc.JournalSvcFacade

	entityID string
	userID   string
	entity   *domain.FinancialEntity

	cashAccount    domain.Account
	payableAccount domain.Account
	expenseAccount domain.Account
}

func (s *JournalServiceTestSuite) SetupTest() {
	s.mockJournalRepo = new(MockJournalRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockEntityRepo = new(MockEntityRepository)
	s.service = services.NewJournalService(s.mockJournalRepo, s.mockAccountRepo, s.mockEntityRepo)

	s.entityID = uuid.NewString()
	s.userID = uuid.NewString()
	s.entity = &domain.FinancialEntity{
		EntityID:       s.entityID,
		OrganizationID: uuid.NewString(),
		Name:           "Test Org",
	}

	s.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		EntityID:    s.entityID,
		Code:        domain.CodeCash,
		Name:        "Cash",
		AccountType: domain.Asset,
		IsSystem:    true,
		IsActive:    true,
	}
	s.payableAccount = domain.Account{
		AccountID:   uuid.NewString(),
		EntityID:    s.entityID,
		Code:        domain.CodeAccountsPayable,
		Name:        "Accounts Payable",
		AccountType: domain.Liability,
		IsSystem:    true,
		IsActive:    true,
	}
	s.expenseAccount = domain.Account{
		AccountID:   uuid.NewString(),
		EntityID:    s.entityID,
		Code:        domain.CodeUtilityExpense,
		Name:        "Utility Expense",
		AccountType: domain.Expense,
		IsSystem:    true,
		IsActive:    true,
	}
}

func (s *JournalServiceTestSuite) balancedRequest(amount decimal.Decimal) dto.PostJournalRequest {
	return dto.PostJournalRequest{
		Date:        time.Now(),
		Description: "Pay utility invoice",
		Lines: []dto.JournalLineRequest{
			{AccountCode: domain.CodeUtilityExpense, Debit: amount},
			{AccountCode: domain.CodeAccountsPayable, Credit: amount},
		},
	}
}

func (s *JournalServiceTestSuite) TestPostJournal_Success() {
	ctx := context.Background()
	amount := decimal.NewFromFloat(125.50)
	req := s.balancedRequest(amount)

	s.mockEntityRepo.On("FindEntityByID", ctx, s.entityID).Return(s.entity, nil).Once()
	s.mockAccountRepo.On("FindAccountsByCodes", ctx, s.entityID, []string{domain.CodeUtilityExpense, domain.CodeAccountsPayable}).
		Return(map[string]domain.Account{
			domain.CodeUtilityExpense:  s.expenseAccount,
			domain.CodeAccountsPayable: s.payableAccount,
		}, nil).Once()
	s.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	journal, err := s.service.PostJournal(ctx, s.entityID, req, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(journal)
	s.NotEmpty(journal.JournalID)
	s.Equal(s.entityID, journal.EntityID)
	s.Equal(s.entity.OrganizationID, journal.OrganizationID)
	s.Equal(domain.Posted, journal.Status)
	s.Equal(s.userID, journal.CreatedBy)
	s.Require().Len(journal.Lines, 2)
	s.Equal(s.expenseAccount.AccountID, journal.Lines[0].AccountID)
	s.True(journal.Lines[0].Debit.Equal(amount))
	s.True(journal.Lines[1].Credit.Equal(amount))
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestPostJournal_Unbalanced() {
	ctx := context.Background()
	req := dto.PostJournalRequest{
		Date:        time.Now(),
		Description: "Broken entry",
		Lines: []dto.JournalLineRequest{
			{AccountCode: domain.CodeUtilityExpense, Debit: decimal.NewFromInt(100)},
			{AccountCode: domain.CodeAccountsPayable, Credit: decimal.NewFromFloat(99.50)},
		},
	}

	journal, err := s.service.PostJournal(ctx, s.entityID, req, s.userID)

	s.Require().Error(err)
	s.Nil(journal)
	s.ErrorIs(err, services.ErrUnbalancedEntry)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveJournal")
}

func (s *JournalServiceTestSuite) TestPostJournal_WithinTolerance() {
	// A sub-cent rounding difference still posts.
	ctx := context.Background()
	req := dto.PostJournalRequest{
		Date:        time.Now(),
		Description: "Rounding difference",
		Lines: []dto.JournalLineRequest{
			{AccountCode: domain.CodeUtilityExpense, Debit: decimal.NewFromFloat(100.004)},
			{AccountCode: domain.CodeAccountsPayable, Credit: decimal.NewFromInt(100)},
		},
	}

	s.mockEntityRepo.On("FindEntityByID", ctx, s.entityID).Return(s.entity, nil).Once()
	s.mockAccountRepo.On("FindAccountsByCodes", ctx, s.entityID, mock.Anything).
		Return(map[string]domain.Account{
			domain.CodeUtilityExpense:  s.expenseAccount,
			domain.CodeAccountsPayable: s.payableAccount,
		}, nil).Once()
	s.mockJournalRepo.On("SaveJournal", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	journal, err := s.service.PostJournal(ctx, s.entityID, req, s.userID)

	s.Require().NoError(err)
	s.NotNil(journal)
}

func (s *JournalServiceTestSuite) TestPostJournal_SingleLine() {
	ctx := context.Background()
	req := dto.PostJournalRequest{
		Date:        time.Now(),
		Description: "One-legged entry",
		Lines: []dto.JournalLineRequest{
			{AccountCode: domain.CodeCash, Debit: decimal.NewFromInt(50)},
		},
	}

	_, err := s.service.PostJournal(ctx, s.entityID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrJournalMinEntries)
}

func (s *JournalServiceTestSuite) TestPostJournal_SingleAccount() {
	ctx := context.Background()
	req := dto.PostJournalRequest{
		Date:        time.Now(),
		Description: "Self-balancing entry on one account",
		Lines: []dto.JournalLineRequest{
			{AccountCode: domain.CodeCash, Debit: decimal.NewFromInt(50)},
			{AccountCode: domain.CodeCash, Credit: decimal.NewFromInt(50)},
		},
	}

	_, err := s.service.PostJournal(ctx, s.entityID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrJournalMinEntries)
}

func (s *JournalServiceTestSuite) TestPostJournal_LineWithBothSides() {
	ctx := context.Background()
	req := dto.PostJournalRequest{
		Date:        time.Now(),
		Description: "Line with both sides",
		Lines: []dto.JournalLineRequest{
			{AccountCode: domain.CodeCash, Debit: decimal.NewFromInt(50), Credit: decimal.NewFromInt(50)},
			{AccountCode: domain.CodeAccountsPayable, Credit: decimal.NewFromInt(50)},
		},
	}

	_, err := s.service.PostJournal(ctx, s.entityID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrLineSideInvalid)
}

func (s *JournalServiceTestSuite) TestPostJournal_LineWithNoAmount() {
	ctx := context.Background()
	req := dto.PostJournalRequest{
		Date:        time.Now(),
		Description: "Zero line",
		Lines: []dto.JournalLineRequest{
			{AccountCode: domain.CodeCash},
			{AccountCode: domain.CodeAccountsPayable},
		},
	}

	_, err := s.service.PostJournal(ctx, s.entityID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrLineSideInvalid)
}

func (s *JournalServiceTestSuite) TestPostJournal_UnknownAccountCode() {
	ctx := context.Background()
	req := dto.PostJournalRequest{
		Date:        time.Now(),
		Description: "Bad account code",
		Lines: []dto.JournalLineRequest{
			{AccountCode: "9999", Debit: decimal.NewFromInt(10)},
			{AccountCode: domain.CodeAccountsPayable, Credit: decimal.NewFromInt(10)},
		},
	}

	s.mockEntityRepo.On("FindEntityByID", ctx, s.entityID).Return(s.entity, nil).Once()
	s.mockAccountRepo.On("FindAccountsByCodes", ctx, s.entityID, mock.Anything).
		Return(map[string]domain.Account{
			domain.CodeAccountsPayable: s.payableAccount,
		}, nil).Once()

	_, err := s.service.PostJournal(ctx, s.entityID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrUnknownAccount)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveJournal")
}

func (s *JournalServiceTestSuite) TestPostJournal_InactiveAccount() {
	ctx := context.Background()
	inactive := s.expenseAccount
	inactive.IsActive = false
	req := s.balancedRequest(decimal.NewFromInt(30))

	s.mockEntityRepo.On("FindEntityByID", ctx, s.entityID).Return(s.entity, nil).Once()
	s.mockAccountRepo.On("FindAccountsByCodes", ctx, s.entityID, mock.Anything).
		Return(map[string]domain.Account{
			domain.CodeUtilityExpense:  inactive,
			domain.CodeAccountsPayable: s.payableAccount,
		}, nil).Once()

	_, err := s.service.PostJournal(ctx, s.entityID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrInactiveAccount)
}

func (s *JournalServiceTestSuite) TestReverseJournal_Success() {
	ctx := context.Background()
	journalID := uuid.NewString()
	original := &domain.JournalEntry{
		JournalID:      journalID,
		EntityID:       s.entityID,
		OrganizationID: s.entity.OrganizationID,
		Description:    "Original entry",
		Status:         domain.Posted,
		Lines: []domain.JournalLine{
			{LineID: uuid.NewString(), JournalID: journalID, AccountID: s.expenseAccount.AccountID, AccountCode: domain.CodeUtilityExpense, Debit: decimal.NewFromInt(75), Credit: decimal.Zero},
			{LineID: uuid.NewString(), JournalID: journalID, AccountID: s.payableAccount.AccountID, AccountCode: domain.CodeAccountsPayable, Debit: decimal.Zero, Credit: decimal.NewFromInt(75)},
		},
	}

	s.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(original, nil).Once()
	s.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()
	s.mockJournalRepo.On("UpdateJournalStatusAndLinks", ctx, journalID, domain.Reversed, mock.AnythingOfType("*string"), s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	reversal, err := s.service.ReverseJournal(ctx, s.entityID, journalID, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(reversal)
	s.Require().NotNil(reversal.OriginalJournalID)
	s.Equal(journalID, *reversal.OriginalJournalID)
	s.Equal(domain.Posted, reversal.Status)
	s.Require().Len(reversal.Lines, 2)
	// Debits and credits are swapped.
	s.True(reversal.Lines[0].Credit.Equal(decimal.NewFromInt(75)))
	s.True(reversal.Lines[0].Debit.IsZero())
	s.True(reversal.Lines[1].Debit.Equal(decimal.NewFromInt(75)))
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestReverseJournal_AlreadyReversed() {
	ctx := context.Background()
	journalID := uuid.NewString()
	reversed := &domain.JournalEntry{
		JournalID: journalID,
		EntityID:  s.entityID,
		Status:    domain.Reversed,
		Lines: []domain.JournalLine{
			{AccountCode: domain.CodeCash, Debit: decimal.NewFromInt(1)},
			{AccountCode: domain.CodeAccountsPayable, Credit: decimal.NewFromInt(1)},
		},
	}

	s.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(reversed, nil).Once()

	_, err := s.service.ReverseJournal(ctx, s.entityID, journalID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrAlreadyReversed)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveJournal")
}

func (s *JournalServiceTestSuite) TestListJournals_ClampsLimit() {
	ctx := context.Background()

	s.mockJournalRepo.On("ListJournalsByEntity", ctx, s.entityID, 100, (*string)(nil)).
		Return([]domain.JournalEntry{}, nil, nil).Once()

	resp, err := s.service.ListJournals(ctx, s.entityID, dto.ListJournalsParams{Limit: 5000})

	s.Require().NoError(err)
	s.NotNil(resp)
	s.Empty(resp.Journals)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
