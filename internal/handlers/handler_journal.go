package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/services"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/dto"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests for the posting engine.
type journalHandler struct {
	journalSvc portssvc.JournalSvcFacade
	setupSvc   portssvc.SetupSvcFacade
}

func newJournalHandler(journalSvc portssvc.JournalSvcFacade, setupSvc portssvc.SetupSvcFacade) *journalHandler {
	return &journalHandler{journalSvc: journalSvc, setupSvc: setupSvc}
}

// postJournal godoc
// @Summary Post a journal entry
// @Description Validates and persists a balanced set of debit/credit lines as one atomic entry
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journal body dto.PostJournalRequest true "Journal entry"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Unbalanced or malformed entry"
// @Router /journals [post]
func (h *journalHandler) postJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for postJournal", slog.String("error", err.Error()))
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

	journal, err := h.journalSvc.PostJournal(c.Request.Context(), entity.EntityID, req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// getJournal godoc
// @Summary Get a journal entry with its lines
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Router /journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	_, organizationID, ok := requireIdentity(c)
	if !ok {
		return
	}
	entity, ok := resolveEntity(c, h.setupSvc, organizationID)
	if !ok {
		return
	}

	journal, err := h.journalSvc.GetJournalByID(c.Request.Context(), entity.EntityID, c.Param("journalID"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary List journal entries
// @Tags journals
// @Produce  json
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListJournalsResponse
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	_, organizationID, ok := requireIdentity(c)
	if !ok {
		return
	}
	entity, ok := resolveEntity(c, h.setupSvc, organizationID)
	if !ok {
		return
	}

	params := dto.ListJournalsParams{}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		params.Limit = limit
	}
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}

	resp, err := h.journalSvc.ListJournals(c.Request.Context(), entity.EntityID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// reverseJournal godoc
// @Summary Reverse a journal entry
// @Description Creates a mirror-image entry that cancels the original. The original is never edited.
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 201 {object} dto.JournalResponse "The reversing entry"
// @Failure 409 {object} map[string]string "Journal already reversed"
// @Router /journals/{journalID}/reverse [post]
func (h *journalHandler) reverseJournal(c *gin.Context) {
	userID, organizationID, ok := requireIdentity(c)
	if !ok {
		return
	}
	entity, ok := resolveEntity(c, h.setupSvc, organizationID)
	if !ok {
		return
	}

	reversal, err := h.journalSvc.ReverseJournal(c.Request.Context(), entity.EntityID, c.Param("journalID"), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalResponse(reversal))
}

// registerJournalRoutes registers posting engine routes.
func registerJournalRoutes(group *gin.RouterGroup, journalSvc portssvc.JournalSvcFacade, setupSvc portssvc.SetupSvcFacade) {
	handler := newJournalHandler(journalSvc, setupSvc)

	journals := group.Group("/journals")
	{
		journals.POST("", handler.postJournal)
		journals.GET("", handler.listJournals)
		journals.GET("/:journalID", handler.getJournal)
		journals.POST("/:journalID/reverse", handler.reverseJournal)
	}
}
