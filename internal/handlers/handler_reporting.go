package handlers

import (
	"net/http"

	portssvc "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/services"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for ledger reports.
type reportingHandler struct {
	reportingSvc portssvc.ReportingService
	setupSvc     portssvc.SetupSvcFacade
}

func newReportingHandler(reportingSvc portssvc.ReportingService, setupSvc portssvc.SetupSvcFacade) *reportingHandler {
	return &reportingHandler{reportingSvc: reportingSvc, setupSvc: setupSvc}
}

// trialBalance godoc
// @Summary Trial balance report
// @Description Derives per-account debit/credit totals and balances from journal lines
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.TrialBalanceResponse
// @Router /reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	_, organizationID, ok := requireIdentity(c)
	if !ok {
		return
	}
	entity, ok := resolveEntity(c, h.setupSvc, organizationID)
	if !ok {
		return
	}

	rows, err := h.reportingSvc.TrialBalance(c.Request.Context(), entity.EntityID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(rows))
}

// registerReportingRoutes registers ledger reporting routes.
func registerReportingRoutes(group *gin.RouterGroup, reportingSvc portssvc.ReportingService, setupSvc portssvc.SetupSvcFacade) {
	handler := newReportingHandler(reportingSvc, setupSvc)

	reports := group.Group("/reports")
	{
		reports.GET("/trial-balance", handler.trialBalance)
	}
}
