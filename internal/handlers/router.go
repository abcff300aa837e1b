package handlers

import (
	"net/http"

	"github.com/epeers/varstress/internal/middleware"
	"github.com/epeers/varstress/internal/services"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the health check and all risk endpoints on router.
func RegisterRoutes(router *gin.Engine, riskSvc *services.RiskService) {
	riskHandler := NewRiskHandler(riskSvc)
	runHandler := NewRunHandler(riskSvc)

	router.Use(middleware.ValidateUser())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	risk := router.Group("/risk")
	{
		risk.GET("/classes", riskHandler.Classes)
		risk.GET("/scenarios", riskHandler.Scenarios)
		risk.GET("/confidence-levels", riskHandler.ConfidenceLevels)
		risk.POST("/var", riskHandler.VaR)
		risk.POST("/stress", riskHandler.Stress)
		risk.POST("/report", riskHandler.Report)
		risk.POST("/report/csv", riskHandler.ReportCSV)
		risk.POST("/sensitivity", riskHandler.Sensitivity)
		risk.GET("/runs/:id", runHandler.Get)
	}

	// User routes
	router.GET("/users/:user_id/runs", middleware.RequireSelf(), runHandler.ListUserRuns)
}
