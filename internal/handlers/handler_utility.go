package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	portssvc "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/services"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/dto"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
)

// utilityHandler handles HTTP requests for the utility bill lifecycle.
type utilityHandler struct {
	utilitySvc portssvc.UtilitySvcFacade
	setupSvc   portssvc.SetupSvcFacade
}

func newUtilityHandler(utilitySvc portssvc.UtilitySvcFacade, setupSvc portssvc.SetupSvcFacade) *utilityHandler {
	return &utilityHandler{utilitySvc: utilitySvc, setupSvc: setupSvc}
}

// createBill godoc
// @Summary Create a utility bill
// @Description Registers a provider invoice as a DRAFT bill
// @Tags utility-bills
// @Accept  json
// @Produce  json
// @Param   bill body dto.CreateUtilityBillRequest true "Bill details"
// @Success 201 {object} dto.UtilityBillResponse
// @Failure 400 {object} map[string]string "Invalid bill"
// @Router /utility-bills [post]
func (h *utilityHandler) createBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateUtilityBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBill", slog.String("error", err.Error()))
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

	bill, err := h.utilitySvc.CreateBill(c.Request.Context(), entity.EntityID, req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUtilityBillResponse(bill))
}

// listBills godoc
// @Summary List utility bills
// @Tags utility-bills
// @Produce  json
// @Success 200 {array} dto.UtilityBillResponse
// @Router /utility-bills [get]
func (h *utilityHandler) listBills(c *gin.Context) {
	_, organizationID, ok := requireIdentity(c)
	if !ok {
		return
	}
	entity, ok := resolveEntity(c, h.setupSvc, organizationID)
	if !ok {
		return
	}

	bills, err := h.utilitySvc.ListBills(c.Request.Context(), entity.EntityID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	responses := make([]dto.UtilityBillResponse, len(bills))
	for i := range bills {
		responses[i] = dto.ToUtilityBillResponse(&bills[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getBill godoc
// @Summary Get a utility bill
// @Tags utility-bills
// @Produce  json
// @Param   billID path string true "Bill ID"
// @Success 200 {object} dto.UtilityBillResponse
// @Failure 404 {object} map[string]string "Bill not found"
// @Router /utility-bills/{billID} [get]
func (h *utilityHandler) getBill(c *gin.Context) {
	_, organizationID, ok := requireIdentity(c)
	if !ok {
		return
	}
	entity, ok := resolveEntity(c, h.setupSvc, organizationID)
	if !ok {
		return
	}

	bill, err := h.utilitySvc.GetBillByID(c.Request.Context(), entity.EntityID, c.Param("billID"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUtilityBillResponse(bill))
}

// updateBill godoc
// @Summary Update a utility bill
// @Description Edits mutable details of a bill that has not been posted
// @Tags utility-bills
// @Accept  json
// @Produce  json
// @Param   billID path string true "Bill ID"
// @Param   bill body dto.UpdateUtilityBillRequest true "Fields to update"
// @Success 200 {object} dto.UtilityBillResponse
// @Failure 409 {object} map[string]string "Bill is posted or was updated concurrently"
// @Router /utility-bills/{billID} [patch]
func (h *utilityHandler) updateBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateUtilityBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateBill", slog.String("error", err.Error()))
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

	bill, err := h.utilitySvc.UpdateBill(c.Request.Context(), entity.EntityID, c.Param("billID"), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUtilityBillResponse(bill))
}

// allocateBill godoc
// @Summary Allocate a utility bill across leases
// @Description Computes the split per the bill's method and moves the bill to PROCESSING
// @Tags utility-bills
// @Accept  json
// @Produce  json
// @Param   billID path string true "Bill ID"
// @Param   allocation body dto.AllocateBillRequest true "Per-lease allocation inputs"
// @Success 200 {object} map[string]any "Updated bill and its allocations"
// @Failure 409 {object} map[string]string "Bill is not in DRAFT"
// @Router /utility-bills/{billID}/allocate [post]
func (h *utilityHandler) allocateBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AllocateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for allocateBill", slog.String("error", err.Error()))
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

	bill, allocations, err := h.utilitySvc.AllocateBill(c.Request.Context(), entity.EntityID, c.Param("billID"), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bill":        dto.ToUtilityBillResponse(bill),
		"allocations": dto.ToAllocationResponses(allocations),
	})
}

// getAllocations godoc
// @Summary Get the allocations of a bill
// @Tags utility-bills
// @Produce  json
// @Param   billID path string true "Bill ID"
// @Success 200 {array} dto.AllocationResponse
// @Router /utility-bills/{billID}/allocations [get]
func (h *utilityHandler) getAllocations(c *gin.Context) {
	_, organizationID, ok := requireIdentity(c)
	if !ok {
		return
	}
	entity, ok := resolveEntity(c, h.setupSvc, organizationID)
	if !ok {
		return
	}

	allocations, err := h.utilitySvc.GetAllocations(c.Request.Context(), entity.EntityID, c.Param("billID"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAllocationResponses(allocations))
}

// approveBill godoc
// @Summary Approve an allocated bill
// @Description Moves a PROCESSING bill whose allocations reconcile to APPROVED
// @Tags utility-bills
// @Accept  json
// @Produce  json
// @Param   billID path string true "Bill ID"
// @Param   transition body dto.TransitionBillRequest true "Version snapshot"
// @Success 200 {object} dto.UtilityBillResponse
// @Failure 409 {object} map[string]string "Guard rejection or stale version"
// @Router /utility-bills/{billID}/approve [post]
func (h *utilityHandler) approveBill(c *gin.Context) {
	h.transitionBill(c, h.utilitySvc.ApproveBill)
}

// postBill godoc
// @Summary Post an approved bill to the ledger
// @Description Writes the expense journal and moves the bill to its terminal POSTED status
// @Tags utility-bills
// @Accept  json
// @Produce  json
// @Param   billID path string true "Bill ID"
// @Param   transition body dto.TransitionBillRequest true "Version snapshot"
// @Success 200 {object} dto.UtilityBillResponse
// @Failure 409 {object} map[string]string "Guard rejection or stale version"
// @Router /utility-bills/{billID}/post [post]
func (h *utilityHandler) postBill(c *gin.Context) {
	h.transitionBill(c, h.utilitySvc.PostBill)
}

type billTransition func(ctx context.Context, entityID string, billID string, req dto.TransitionBillRequest, userID string) (*domain.UtilityBill, error)

// transitionBill is the shared request path of approve and post.
func (h *utilityHandler) transitionBill(c *gin.Context, transition billTransition) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransitionBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for bill transition", slog.String("error", err.Error()))
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

	bill, err := transition(c.Request.Context(), entity.EntityID, c.Param("billID"), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUtilityBillResponse(bill))
}

// recordReading godoc
// @Summary Record a meter reading
// @Description Stores a reading after the non-negative and monotonic checks pass
// @Tags utility-readings
// @Accept  json
// @Produce  json
// @Param   reading body dto.CreateUtilityReadingRequest true "Reading details"
// @Success 201 {object} dto.UtilityReadingResponse
// @Failure 400 {object} map[string]string "Negative or decreasing reading"
// @Router /utility-readings [post]
func (h *utilityHandler) recordReading(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateUtilityReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordReading", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, _, ok := requireIdentity(c)
	if !ok {
		return
	}

	reading, err := h.utilitySvc.RecordReading(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUtilityReadingResponse(reading))
}

// registerUtilityRoutes registers utility billing routes.
func registerUtilityRoutes(group *gin.RouterGroup, utilitySvc portssvc.UtilitySvcFacade, setupSvc portssvc.SetupSvcFacade) {
	handler := newUtilityHandler(utilitySvc, setupSvc)

	bills := group.Group("/utility-bills")
	{
		bills.POST("", handler.createBill)
		bills.GET("", handler.listBills)
		bills.GET("/:billID", handler.getBill)
		bills.PATCH("/:billID", handler.updateBill)
		bills.POST("/:billID/allocate", handler.allocateBill)
		bills.GET("/:billID/allocations", handler.getAllocations)
		bills.POST("/:billID/approve", handler.approveBill)
		bills.POST("/:billID/post", handler.postBill)
	}

	readings := group.Group("/utility-readings")
	{
		readings.POST("", handler.recordReading)
	}
}
