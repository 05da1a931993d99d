package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucm-dct/sigac-api/internal/middleware"
	"github.com/ucm-dct/sigac-api/internal/models"
	"github.com/ucm-dct/sigac-api/internal/service"
	"github.com/ucm-dct/sigac-api/internal/store"
	"github.com/ucm-dct/sigac-api/pkg/docstore"
)

func newDocumentRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.New(docstore.NewMemory(), store.Config{Edition: models.EditionValidation})
	router := gin.New()
	router.Use(middleware.Actor())
	h := NewDocumentHandler(service.NewDocumentService(st, nil))
	router.GET("/document/export", h.Export)
	router.POST("/document/import", h.Import)
	router.POST("/document/reset", h.Reset)
	return router
}

func TestDocumentExportEndpoint(t *testing.T) {
	router := newDocumentRouter(t)

	recorder := perform(router, http.MethodGet, "/document/export", nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Disposition"), "sigac-export.json")

	var doc models.Document
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &doc))
	assert.Len(t, doc.Faculties, 9)
}

func TestDocumentImportEndpoint(t *testing.T) {
	router := newDocumentRouter(t)

	exported := perform(router, http.MethodGet, "/document/export", nil, nil)
	require.Equal(t, http.StatusOK, exported.Code)

	req := httptest.NewRequest(http.MethodPost, "/document/import", bytes.NewReader(exported.Body.Bytes()))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = perform(router, http.MethodPost, "/document/import", map[string]interface{}{"faculties": []string{}}, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestDocumentResetEndpoint(t *testing.T) {
	router := newDocumentRouter(t)

	// faculty staff may not reset
	recorder := perform(router, http.MethodPost, "/document/reset", nil, facultyHeaders)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = perform(router, http.MethodPost, "/document/reset", nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "faculties")
}
