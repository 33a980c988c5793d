package handlers

import (
	portssvc "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/services"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/middleware"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Health check stays outside the authenticated group
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// per-module route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerSetupRoutes(v1, services.Setup)
	registerAccountRoutes(v1, services.Account, services.Setup)
	registerJournalRoutes(v1, services.Journal, services.Setup)
	registerUtilityRoutes(v1, services.Utility, services.Setup)
	registerReportingRoutes(v1, services.Reporting, services.Setup)
}
