package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ucm-dct/sigac-api/internal/dto"
	"github.com/ucm-dct/sigac-api/internal/models"
	"github.com/ucm-dct/sigac-api/internal/service"
	appErrors "github.com/ucm-dct/sigac-api/pkg/errors"
	"github.com/ucm-dct/sigac-api/pkg/response"
)

type activityService interface {
	Edition() models.WorkflowEdition
	List(ctx context.Context, filter dto.ActivityListFilter) ([]models.Activity, error)
	Get(ctx context.Context, id string) (*models.Activity, error)
	Create(ctx context.Context, actor models.Actor, req service.CreateActivityRequest) (*models.Activity, error)
	UpdateStatus(ctx context.Context, actor models.Actor, id string, req service.UpdateStatusRequest) (*models.Activity, error)
	UpdateExecutionDate(ctx context.Context, actor models.Actor, id string, req service.UpdateExecutionDateRequest) (*models.Activity, error)
	SetEvidence(ctx context.Context, actor models.Actor, id string, req service.SetEvidenceRequest) (*models.Activity, error)
	Delete(ctx context.Context, actor models.Actor, id string) error
}

// ActivityHandler wires the activity service to HTTP endpoints.
type ActivityHandler struct {
	service activityService
}

// NewActivityHandler constructs the handler.
func NewActivityHandler(service activityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// List godoc
// @Summary List activities
// @Tags Activities
// @Produce json
// @Param year query int false "Filter by year"
// @Param facultyId query string false "Filter by faculty"
// @Success 200 {object} response.Envelope
// @Router /activities [get]
func (h *ActivityHandler) List(c *gin.Context) {
	filter := dto.ActivityListFilter{
		FacultyID: strings.TrimSpace(c.Query("facultyId")),
	}
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "year must be a number"))
			return
		}
		filter.Year = year
	}

	activities, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, activities, map[string]interface{}{
		"edition": h.service.Edition(),
		"count":   len(activities),
	})
}

// Get godoc
// @Summary Get one activity
// @Tags Activities
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} response.Envelope
// @Router /activities/{id} [get]
func (h *ActivityHandler) Get(c *gin.Context) {
	activity, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, activity)
}

// Create godoc
// @Summary Record a new activity
// @Tags Activities
// @Accept json
// @Produce json
// @Param payload body service.CreateActivityRequest true "Activity payload"
// @Success 201 {object} response.Envelope
// @Router /activities [post]
func (h *ActivityHandler) Create(c *gin.Context) {
	var req service.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid JSON payload"))
		return
	}
	created, err := h.service.Create(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// UpdateStatus godoc
// @Summary Change activity lifecycle state
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Param payload body service.UpdateStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Router /activities/{id}/status [put]
func (h *ActivityHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid JSON payload"))
		return
	}
	updated, err := h.service.UpdateStatus(c.Request.Context(), actorFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated)
}

// UpdateExecutionDate godoc
// @Summary Record the execution date
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Param payload body service.UpdateExecutionDateRequest true "Execution date payload"
// @Success 200 {object} response.Envelope
// @Router /activities/{id}/execution-date [put]
func (h *ActivityHandler) UpdateExecutionDate(c *gin.Context) {
	var req service.UpdateExecutionDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid JSON payload"))
		return
	}
	updated, err := h.service.UpdateExecutionDate(c.Request.Context(), actorFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated)
}

// SetEvidence godoc
// @Summary Replace evidence links
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Param payload body service.SetEvidenceRequest true "Evidence payload"
// @Success 200 {object} response.Envelope
// @Router /activities/{id}/evidence [put]
func (h *ActivityHandler) SetEvidence(c *gin.Context) {
	var req service.SetEvidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid JSON payload"))
		return
	}
	updated, err := h.service.SetEvidence(c.Request.Context(), actorFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete an activity
// @Tags Activities
// @Param id path string true "Activity ID"
// @Success 204
// @Router /activities/{id} [delete]
func (h *ActivityHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), actorFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
