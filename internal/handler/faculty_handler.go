package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ucm-dct/sigac-api/internal/models"
	"github.com/ucm-dct/sigac-api/pkg/response"
)

type facultyService interface {
	Faculties(ctx context.Context) ([]models.Faculty, error)
}

// FacultyHandler exposes the faculty catalogue.
type FacultyHandler struct {
	service facultyService
}

// NewFacultyHandler constructs the handler.
func NewFacultyHandler(service facultyService) *FacultyHandler {
	return &FacultyHandler{service: service}
}

// List godoc
// @Summary List faculties
// @Tags Faculties
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /faculties [get]
func (h *FacultyHandler) List(c *gin.Context) {
	faculties, err := h.service.Faculties(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faculties)
}
