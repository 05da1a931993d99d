package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ucm-dct/sigac-api/internal/models"
	appErrors "github.com/ucm-dct/sigac-api/pkg/errors"
	"github.com/ucm-dct/sigac-api/pkg/response"
)

// importBodyLimit caps uploaded backup documents.
const importBodyLimit = 8 << 20

type documentService interface {
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, body []byte) error
	Reset(ctx context.Context, actor models.Actor) (*models.Document, error)
}

// DocumentHandler exposes whole-document backup and reset endpoints.
type DocumentHandler struct {
	service documentService
}

// NewDocumentHandler constructs the handler.
func NewDocumentHandler(service documentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// Export godoc
// @Summary Download the whole document as JSON
// @Tags Document
// @Produce json
// @Success 200 {string} string "JSON document"
// @Router /document/export [get]
func (h *DocumentHandler) Export(c *gin.Context) {
	body, err := h.service.Export(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="sigac-export.json"`)
	c.Data(http.StatusOK, "application/json", body)
}

// Import godoc
// @Summary Restore a previously exported document
// @Tags Document
// @Accept json
// @Success 204
// @Router /document/import [post]
func (h *DocumentHandler) Import(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, importBodyLimit))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to read request body"))
		return
	}
	if err := h.service.Import(c.Request.Context(), body); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Reset godoc
// @Summary Reset the document to seed data
// @Tags Document
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /document/reset [post]
func (h *DocumentHandler) Reset(c *gin.Context) {
	doc, err := h.service.Reset(c.Request.Context(), actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"faculties":  len(doc.Faculties),
		"activities": len(doc.Activities),
	})
}
