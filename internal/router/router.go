package router

import (
	"github.com/gin-gonic/gin"

	"hawafiz/internal/config"
	"hawafiz/internal/handler"
	"hawafiz/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, reportH *handler.ReportHandler, healthH *handler.HealthHandler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	reports := v1.Group("/reports")
	reports.GET("/bonus", reportH.Monthly)
	reports.GET("/bonus/export", reportH.Export)

	return r
}
