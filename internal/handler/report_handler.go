package handler

import (
	"context"
	"fmt"
	"io"
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

type reportService interface {
	Render(ctx context.Context, filter dto.ReportFilter) (*service.RenderedReport, error)
	CreateJob(ctx context.Context, filter dto.ReportFilter) (*dto.ReportJobResponse, error)
	GetJob(ctx context.Context, id string) (*dto.ReportJobResponse, error)
	ResolveDownload(ctx context.Context, token string) (*service.ReportDownload, error)
}

// ReportHandler exposes synchronous report downloads and the
// asynchronous job flow.
type ReportHandler struct {
	service reportService
}

// NewReportHandler constructs the handler.
func NewReportHandler(service reportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func reportFilterFromQuery(c *gin.Context) (dto.ReportFilter, error) {
	filter := dto.ReportFilter{
		Period:    models.Period(strings.TrimSpace(c.Query("period"))),
		FacultyID: strings.TrimSpace(c.Query("facultyId")),
		State:     models.State(strings.TrimSpace(c.Query("state"))),
		Format:    models.ReportFormat(strings.ToUpper(strings.TrimSpace(c.Query("format")))),
	}
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return filter, appErrors.Clone(appErrors.ErrValidation, "year must be a number")
		}
		filter.Year = year
	}
	return filter, nil
}

// Download godoc
// @Summary Generate and download a report
// @Tags Reports
// @Produce html
// @Param year query int true "Year"
// @Param period query string false "Period (T1..T4, ANNUAL)"
// @Param facultyId query string false "Faculty filter"
// @Param state query string false "State filter"
// @Param format query string false "HTML, CSV or PDF (default HTML)"
// @Success 200 {string} string "Report body"
// @Router /reports [get]
func (h *ReportHandler) Download(c *gin.Context) {
	filter, err := reportFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	rendered, err := h.service.Render(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rendered.Filename))
	c.Data(http.StatusOK, rendered.ContentType, rendered.Body)
}

// CreateJob godoc
// @Summary Queue a report for background generation
// @Tags Reports
// @Produce json
// @Param year query int true "Year"
// @Param period query string false "Period (T1..T4, ANNUAL)"
// @Param facultyId query string false "Faculty filter"
// @Param state query string false "State filter"
// @Param format query string false "HTML, CSV or PDF (default HTML)"
// @Success 202 {object} response.Envelope
// @Router /reports/jobs [post]
func (h *ReportHandler) CreateJob(c *gin.Context) {
	filter, err := reportFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	job, err := h.service.CreateJob(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, job)
}

// GetJob godoc
// @Summary Report job status
// @Tags Reports
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /reports/jobs/{id} [get]
func (h *ReportHandler) GetJob(c *gin.Context) {
	job, err := h.service.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job)
}

// DownloadResult godoc
// @Summary Download a finished report by signed token
// @Tags Reports
// @Param token path string true "Signed download token"
// @Success 200 {string} string "Report body"
// @Router /reports/download/{token} [get]
func (h *ReportHandler) DownloadResult(c *gin.Context) {
	download, err := h.service.ResolveDownload(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer download.File.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.Filename))
	c.Header("Content-Type", download.ContentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, download.File)
}
