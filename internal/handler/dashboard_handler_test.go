package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucm-dct/sigac-api/internal/dto"
	"github.com/ucm-dct/sigac-api/internal/models"
	"github.com/ucm-dct/sigac-api/internal/service"
	"github.com/ucm-dct/sigac-api/internal/store"
	"github.com/ucm-dct/sigac-api/pkg/docstore"
)

func newDashboardRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.New(docstore.NewMemory(), store.Config{Edition: models.EditionValidation})
	router := gin.New()
	router.GET("/dashboard", NewDashboardHandler(service.NewDashboardService(st, nil)).Summary)
	return router
}

func TestDashboardEndpoint(t *testing.T) {
	router := newDashboardRouter(t)

	recorder := perform(router, http.MethodGet, "/dashboard?year=2026", nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var summary dto.DashboardResponse
	decodeData(t, recorder, &summary)
	assert.Equal(t, 2026, summary.Year)
	assert.Equal(t, 2, summary.Total)
	assert.Len(t, summary.Faculties, 9)
}

func TestDashboardRequiresYear(t *testing.T) {
	router := newDashboardRouter(t)

	recorder := perform(router, http.MethodGet, "/dashboard", nil, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = perform(router, http.MethodGet, "/dashboard?year=abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
