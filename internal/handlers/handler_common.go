package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/apperrors"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	portssvc "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/services"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/services"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondWithError maps service and domain errors to HTTP statuses. Lifecycle
// guard rejections come back as 409 because the resource exists but is in the
// wrong state for the request.
func respondWithError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, services.ErrUnbalancedEntry),
		errors.Is(err, services.ErrJournalMinEntries),
		errors.Is(err, services.ErrUnknownAccount),
		errors.Is(err, services.ErrInactiveAccount),
		errors.Is(err, services.ErrLineSideInvalid),
		errors.Is(err, domain.ErrNegativeReading),
		errors.Is(err, domain.ErrDecreasingReading):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, domain.ErrBillPosted),
		errors.Is(err, domain.ErrBillNotDraft),
		errors.Is(err, domain.ErrBillNotProcessing),
		errors.Is(err, domain.ErrNoAllocations),
		errors.Is(err, domain.ErrAllocationSumMismatch),
		errors.Is(err, domain.ErrBillNotApproved),
		errors.Is(err, services.ErrAlreadyReversed),
		errors.Is(err, services.ErrSystemAccountImmutable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// requireIdentity pulls the authenticated user and organization out of the
// context, aborting with 401 when either is missing.
func requireIdentity(c *gin.Context) (userID string, organizationID string, ok bool) {
	userID, ok = middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	organizationID, ok = middleware.GetOrganizationIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	return userID, organizationID, true
}

// resolveEntity loads the caller's financial entity. Routes other than setup
// require that SetupFinancials already ran for the organization.
func resolveEntity(c *gin.Context, setupSvc portssvc.SetupReaderSvc, organizationID string) (*domain.FinancialEntity, bool) {
	entity, err := setupSvc.FindEntityByOrganizationID(c.Request.Context(), organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Financials not set up for this organization"})
			return nil, false
		}
		respondWithError(c, err)
		return nil, false
	}
	return entity, true
}
