package services_test

import (
	"context"
	"testing"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/apperrors"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	portssvc "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/services"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SetupServiceTestSuite struct {
	suite.Suite
	mockEntityRepo *MockEntityRepository
	service        portssvc.SetupSvcFacade

	organizationID string
	userID         string
}

func (s *SetupServiceTestSuite) SetupTest() {
	s.mockEntityRepo = new(MockEntityRepository)
	s.service = services.NewSetupService(s.mockEntityRepo)
	s.organizationID = uuid.NewString()
	s.userID = uuid.NewString()
}

func (s *SetupServiceTestSuite) TestSetupFinancials_CreatesEntityAndChart() {
	ctx := context.Background()

	var capturedAccounts []domain.Account
	s.mockEntityRepo.On("CreateEntityWithAccounts", ctx, mock.AnythingOfType("domain.FinancialEntity"), mock.AnythingOfType("[]domain.Account")).
		Run(func(args mock.Arguments) {
			entity := args.Get(1).(domain.FinancialEntity)
			capturedAccounts = args.Get(2).([]domain.Account)
			s.Equal(s.organizationID, entity.OrganizationID)
			s.Equal("Acme Property Mgmt", entity.Name)
		}).
		Return(&domain.FinancialEntity{EntityID: uuid.NewString(), OrganizationID: s.organizationID, Name: "Acme Property Mgmt"}, true, nil).
		Once()

	entity, err := s.service.SetupFinancials(ctx, s.organizationID, "Acme Property Mgmt", s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(entity)
	s.Equal(s.organizationID, entity.OrganizationID)

	s.Require().Len(capturedAccounts, 14)
	byCode := make(map[string]domain.Account, len(capturedAccounts))
	for _, account := range capturedAccounts {
		s.True(account.IsSystem)
		s.True(account.IsActive)
		s.Equal(s.userID, account.CreatedBy)
		byCode[account.Code] = account
	}
	s.Equal(domain.Asset, byCode[domain.CodeCash].AccountType)
	s.Equal(domain.Liability, byCode[domain.CodeAccountsPayable].AccountType)
	s.Equal(domain.Liability, byCode[domain.CodePrepaidRent].AccountType)
	s.Equal(domain.Equity, byCode[domain.CodeOwnerEquity].AccountType)
	s.Equal(domain.Income, byCode[domain.CodeUtilityRecoveryIncome].AccountType)
	s.Equal(domain.Expense, byCode[domain.CodeUtilityExpense].AccountType)
	s.mockEntityRepo.AssertExpectations(s.T())
}

func (s *SetupServiceTestSuite) TestSetupFinancials_IdempotentOnRerun() {
	ctx := context.Background()
	existing := &domain.FinancialEntity{
		EntityID:       uuid.NewString(),
		OrganizationID: s.organizationID,
		Name:           "Acme Property Mgmt",
	}

	// The repository reports that nothing was created and hands back the
	// entity from the first run.
	s.mockEntityRepo.On("CreateEntityWithAccounts", ctx, mock.Anything, mock.Anything).
		Return(existing, false, nil).Once()

	entity, err := s.service.SetupFinancials(ctx, s.organizationID, "Acme Property Mgmt", s.userID)

	s.Require().NoError(err)
	s.Equal(existing.EntityID, entity.EntityID)
	s.mockEntityRepo.AssertExpectations(s.T())
}

func (s *SetupServiceTestSuite) TestSetupFinancials_MissingOrganization() {
	_, err := s.service.SetupFinancials(context.Background(), "", "No Org", s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockEntityRepo.AssertNotCalled(s.T(), "CreateEntityWithAccounts")
}

func (s *SetupServiceTestSuite) TestFindEntityByOrganizationID() {
	ctx := context.Background()
	existing := &domain.FinancialEntity{EntityID: uuid.NewString(), OrganizationID: s.organizationID}

	s.mockEntityRepo.On("FindEntityByOrganizationID", ctx, s.organizationID).Return(existing, nil).Once()

	entity, err := s.service.FindEntityByOrganizationID(ctx, s.organizationID)

	s.Require().NoError(err)
	s.Equal(existing.EntityID, entity.EntityID)
}

func TestSetupServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SetupServiceTestSuite))
}
