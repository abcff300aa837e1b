package handlers

import (
	"net/http"
	"strconv"

	"github.com/epeers/varstress/internal/models"
	"github.com/epeers/varstress/internal/services"
	"github.com/gin-gonic/gin"
)

// RunHandler serves stored risk reports
type RunHandler struct {
	riskSvc *services.RiskService
}

// NewRunHandler creates a new RunHandler
func NewRunHandler(riskSvc *services.RiskService) *RunHandler {
	return &RunHandler{
		riskSvc: riskSvc,
	}
}

// Get handles GET /risk/runs/:id
// @Summary Get a stored risk report
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} models.RiskReport
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /risk/runs/{id} [get]
func (h *RunHandler) Get(c *gin.Context) {
	report, err := h.riskSvc.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRiskError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ListUserRuns handles GET /users/:user_id/runs
// @Summary List user's risk runs
// @Description Get the stored risk reports of a user, newest first
// @Tags users
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {array} models.RunListItem
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /users/{user_id}/runs [get]
func (h *RunHandler) ListUserRuns(c *gin.Context) {
	userIDStr := c.Param("user_id")
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "invalid user ID",
		})
		return
	}

	runs, err := h.riskSvc.ListRuns(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	// Return empty array if no runs
	if runs == nil {
		runs = []models.RunListItem{}
	}

	c.JSON(http.StatusOK, runs)
}
