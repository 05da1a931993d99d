package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ucm-dct/sigac-api/internal/dto"
	appErrors "github.com/ucm-dct/sigac-api/pkg/errors"
	"github.com/ucm-dct/sigac-api/pkg/response"
)

type dashboardService interface {
	Summary(ctx context.Context, year int) (*dto.DashboardResponse, error)
}

// DashboardHandler exposes the direction-office monitoring summary.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Summary godoc
// @Summary Per-faculty activity counts for a year
// @Tags Dashboard
// @Produce json
// @Param year query int true "Year"
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("year"))
	if raw == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "year is required"))
		return
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "year must be a number"))
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}
