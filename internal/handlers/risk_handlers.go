package handlers

import (
	"errors"
	"net/http"

	"github.com/epeers/varstress/internal/catalog"
	"github.com/epeers/varstress/internal/export"
	"github.com/epeers/varstress/internal/input"
	"github.com/epeers/varstress/internal/middleware"
	"github.com/epeers/varstress/internal/models"
	"github.com/epeers/varstress/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// RiskHandler handles VaR and stress endpoints
type RiskHandler struct {
	riskSvc *services.RiskService
}

// NewRiskHandler creates a new RiskHandler
func NewRiskHandler(riskSvc *services.RiskService) *RiskHandler {
	return &RiskHandler{
		riskSvc: riskSvc,
	}
}

// VaR handles POST /risk/var
// @Summary Compute Delta-Normal VaR
// @Description Compute per-allocation VaR and the total for one horizon and confidence level
// @Tags risk
// @Accept json
// @Produce json
// @Param request body models.RiskRequest true "Portfolio and parameters"
// @Success 200 {object} models.VaRResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /risk/var [post]
func (h *RiskHandler) VaR(c *gin.Context) {
	var req models.RiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.riskSvc.ComputeVaR(c.Request.Context(), &req)
	if err != nil {
		writeRiskError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Stress handles POST /risk/stress
// @Summary Run stress scenarios
// @Description Apply stress scenarios to the allocations. Uses the configured scenarios when none are given.
// @Tags risk
// @Accept json
// @Produce json
// @Param request body models.StressRequest true "Allocations and optional scenarios"
// @Success 200 {object} models.StressResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /risk/stress [post]
func (h *RiskHandler) Stress(c *gin.Context) {
	var req models.StressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}
	if req.NetAssetValue < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "net_asset_value must not be negative",
		})
		return
	}

	ctx, wc := services.NewWarningContext(c.Request.Context())
	results, err := h.riskSvc.ComputeStress(ctx, req.Scenarios, req.Allocations, req.NetAssetValue)
	if err != nil {
		writeRiskError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StressResponse{
		Results:  results,
		Warnings: wc.GetWarnings(),
	})
}

// Report handles POST /risk/report
// @Summary Compute and store a risk report
// @Description Run VaR and all configured stress scenarios, then persist the report
// @Tags risk
// @Accept json
// @Produce json
// @Param X-User-ID header int false "Owner of the run"
// @Param request body models.RiskRequest true "Portfolio and parameters"
// @Success 201 {object} models.RiskReport
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /risk/report [post]
func (h *RiskHandler) Report(c *gin.Context) {
	var req models.RiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	ownerID, _ := middleware.GetUserID(c)
	report, err := h.riskSvc.Run(c.Request.Context(), ownerID, &req)
	if err != nil {
		writeRiskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

// ReportCSV handles POST /risk/report/csv
// @Summary Compute a risk report from an allocation CSV
// @Description Multipart upload: a "metadata" JSON field with net_asset_value, horizon_days and confidence, and an "allocations" CSV file with risk_class_id,percent_of_nav columns
// @Tags risk
// @Accept multipart/form-data
// @Produce json
// @Param X-User-ID header int false "Owner of the run"
// @Param metadata formData string true "RiskRequest JSON without allocations"
// @Param allocations formData file true "Allocation CSV"
// @Success 201 {object} models.RiskReport
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /risk/report/csv [post]
func (h *RiskHandler) ReportCSV(c *gin.Context) {
	metadata := c.PostForm("metadata")
	if metadata == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "metadata field is required",
		})
		return
	}

	var req models.RiskRequest
	if err := binding.JSON.BindBody([]byte(metadata), &req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "invalid metadata: " + err.Error(),
		})
		return
	}

	fileHeader, err := c.FormFile("allocations")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "allocations file is required",
		})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "failed to open allocations file",
		})
		return
	}
	defer file.Close()

	allocations, warnings, err := export.ParseAllocationCSV(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}
	req.Allocations = allocations

	ctx, _ := services.NewWarningContext(c.Request.Context())
	services.AddWarnings(ctx, warnings)

	ownerID, _ := middleware.GetUserID(c)
	report, err := h.riskSvc.Run(ctx, ownerID, &req)
	if err != nil {
		writeRiskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

// Sensitivity handles POST /risk/sensitivity
// @Summary Total VaR grid
// @Description Compute the total VaR for every configured horizon and confidence level
// @Tags risk
// @Accept json
// @Produce json
// @Param request body models.SensitivityRequest true "Portfolio"
// @Success 200 {object} models.SensitivityResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /risk/sensitivity [post]
func (h *RiskHandler) Sensitivity(c *gin.Context) {
	var req models.SensitivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}
	if req.NetAssetValue <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "net_asset_value must be positive",
		})
		return
	}

	resp, err := h.riskSvc.Sensitivity(c.Request.Context(), &req)
	if err != nil {
		writeRiskError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Classes handles GET /risk/classes
// @Summary List risk classes
// @Tags catalog
// @Produce json
// @Success 200 {object} models.CatalogResponse
// @Router /risk/classes [get]
func (h *RiskHandler) Classes(c *gin.Context) {
	cfg := h.riskSvc.Config()
	c.JSON(http.StatusOK, models.CatalogResponse{
		TradingDaysPerYear: cfg.TradingDaysPerYear,
		Classes:            cfg.RiskClasses,
	})
}

// Scenarios handles GET /risk/scenarios
// @Summary List stress scenarios
// @Tags catalog
// @Produce json
// @Success 200 {array} models.StressScenario
// @Router /risk/scenarios [get]
func (h *RiskHandler) Scenarios(c *gin.Context) {
	scenarios := h.riskSvc.Config().Scenarios
	if scenarios == nil {
		scenarios = []models.StressScenario{}
	}
	c.JSON(http.StatusOK, scenarios)
}

// ConfidenceLevels handles GET /risk/confidence-levels
// @Summary List confidence levels and horizons
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /risk/confidence-levels [get]
func (h *RiskHandler) ConfidenceLevels(c *gin.Context) {
	cfg := h.riskSvc.Config()
	c.JSON(http.StatusOK, gin.H{
		"confidence_levels": cfg.ConfidenceLevels,
		"horizons":          cfg.Horizons,
	})
}

// writeRiskError maps service errors to HTTP responses.
func writeRiskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnknownRiskClass),
		errors.Is(err, services.ErrInvalidParameter),
		errors.Is(err, input.ErrInvalidHorizon),
		errors.Is(err, input.ErrUnknownConfidence),
		errors.Is(err, input.ErrInvalidNAV),
		errors.Is(err, catalog.ErrInvalidCatalog):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrRunNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "risk run not found",
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}
