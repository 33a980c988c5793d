package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/services"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/dto"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
)

// setupHandler handles HTTP requests for financial onboarding.
type setupHandler struct {
	setupSvc portssvc.SetupSvcFacade
}

func newSetupHandler(setupSvc portssvc.SetupSvcFacade) *setupHandler {
	return &setupHandler{setupSvc: setupSvc}
}

// setupFinancials godoc
// @Summary Set up financials for the caller's organization
// @Description Creates the financial entity and the system chart of accounts. Safe to call repeatedly.
// @Tags setup
// @Accept  json
// @Produce  json
// @Param   setup body dto.SetupFinancialsRequest true "Organization details"
// @Success 200 {object} dto.FinancialEntityResponse "The organization's financial entity"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /setup/financials [post]
func (h *setupHandler) setupFinancials(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SetupFinancialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for setupFinancials", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, organizationID, ok := requireIdentity(c)
	if !ok {
		return
	}

	entity, err := h.setupSvc.SetupFinancials(c.Request.Context(), organizationID, req.OrgName, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFinancialEntityResponse(entity))
}

// getEntity godoc
// @Summary Get the caller's financial entity
// @Tags setup
// @Produce  json
// @Success 200 {object} dto.FinancialEntityResponse
// @Failure 404 {object} map[string]string "Financials not set up"
// @Router /setup/financials [get]
func (h *setupHandler) getEntity(c *gin.Context) {
	_, organizationID, ok := requireIdentity(c)
	if !ok {
		return
	}

	entity, ok := resolveEntity(c, h.setupSvc, organizationID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.ToFinancialEntityResponse(entity))
}

// registerSetupRoutes registers financial onboarding routes.
func registerSetupRoutes(group *gin.RouterGroup, setupSvc portssvc.SetupSvcFacade) {
	handler := newSetupHandler(setupSvc)

	setup := group.Group("/setup")
	{
		setup.POST("/financials", handler.setupFinancials)
		setup.GET("/financials", handler.getEntity)
	}
}
