package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/services"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/dto"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests for the chart of accounts.
type accountHandler struct {
	accountSvc portssvc.AccountSvcFacade
	setupSvc   portssvc.SetupSvcFacade
}

func newAccountHandler(accountSvc portssvc.AccountSvcFacade, setupSvc portssvc.SetupSvcFacade) *accountHandler {
	return &accountHandler{accountSvc: accountSvc, setupSvc: setupSvc}
}

// createAccount godoc
// @Summary Create an account
// @Description Adds a non-system account to the organization's chart of accounts
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Account code already exists"
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, organizationID, ok := requireIdentity(c)
	if !ok {
		return
	}
	entity, ok := resolveEntity(c, h.setupSvc, organizationID)
	if !ok {
		return
	}

	account, err := h.accountSvc.CreateAccount(c.Request.Context(), entity.EntityID, req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List the chart of accounts
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.ListAccountsResponse
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	_, organizationID, ok := requireIdentity(c)
	if !ok {
		return
	}
	entity, ok := resolveEntity(c, h.setupSvc, organizationID)
	if !ok {
		return
	}

	accounts, err := h.accountSvc.ListAccounts(c.Request.Context(), entity.EntityID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToAccountResponses(accounts)})
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	_, organizationID, ok := requireIdentity(c)
	if !ok {
		return
	}
	entity, ok := resolveEntity(c, h.setupSvc, organizationID)
	if !ok {
		return
	}

	account, err := h.accountSvc.GetAccountByID(c.Request.Context(), entity.EntityID, c.Param("accountID"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getAccountBalance godoc
// @Summary Get the derived balance of an account
// @Description The balance is recomputed from posted journal lines on every call.
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID}/balance [get]
func (h *accountHandler) getAccountBalance(c *gin.Context) {
	_, organizationID, ok := requireIdentity(c)
	if !ok {
		return
	}
	entity, ok := resolveEntity(c, h.setupSvc, organizationID)
	if !ok {
		return
	}

	accountID := c.Param("accountID")
	account, err := h.accountSvc.GetAccountByID(c.Request.Context(), entity.EntityID, accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	balance, err := h.accountSvc.CalculateAccountBalance(c.Request.Context(), entity.EntityID, accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AccountBalanceResponse{
		AccountCode: account.Code,
		AccountType: account.AccountType,
		Balance:     balance,
	})
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Marks a non-system account inactive. System accounts are protected.
// @Tags accounts
// @Param   accountID path string true "Account ID"
// @Success 204 "Account deactivated"
// @Failure 409 {object} map[string]string "System account"
// @Router /accounts/{accountID} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	userID, organizationID, ok := requireIdentity(c)
	if !ok {
		return
	}
	entity, ok := resolveEntity(c, h.setupSvc, organizationID)
	if !ok {
		return
	}

	if err := h.accountSvc.DeactivateAccount(c.Request.Context(), entity.EntityID, c.Param("accountID"), userID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// registerAccountRoutes registers chart of accounts routes.
func registerAccountRoutes(group *gin.RouterGroup, accountSvc portssvc.AccountSvcFacade, setupSvc portssvc.SetupSvcFacade) {
	handler := newAccountHandler(accountSvc, setupSvc)

	accounts := group.Group("/accounts")
	{
		accounts.POST("", handler.createAccount)
		accounts.GET("", handler.listAccounts)
		accounts.GET("/:accountID", handler.getAccount)
		accounts.GET("/:accountID/balance", handler.getAccountBalance)
		accounts.DELETE("/:accountID", handler.deactivateAccount)
	}
}
