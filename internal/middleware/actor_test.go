package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucm-dct/sigac-api/internal/models"
)

func performActor(t *testing.T, headers map[string]string) (*httptest.ResponseRecorder, models.Actor, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var captured models.Actor
	var ok bool
	router := gin.New()
	router.Use(Actor())
	router.GET("/probe", func(c *gin.Context) {
		value, exists := c.Get(ContextActorKey)
		if exists {
			captured, ok = value.(models.Actor), true
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder, captured, ok
}

func TestActorDefaultsToDirection(t *testing.T) {
	recorder, actor, ok := performActor(t, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.True(t, ok)
	assert.Equal(t, models.ActorDirection, actor.Profile)
	assert.Empty(t, actor.FacultyID)
}

func TestActorReadsHeaders(t *testing.T) {
	recorder, actor, ok := performActor(t, map[string]string{
		HeaderActorProfile: "FACULTY",
		HeaderFacultyID:    "F03",
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	require.True(t, ok)
	assert.Equal(t, models.ActorFaculty, actor.Profile)
	assert.Equal(t, "F03", actor.FacultyID)
}

func TestActorRejectsUnknownProfile(t *testing.T) {
	recorder, _, ok := performActor(t, map[string]string{HeaderActorProfile: "ADMIN"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.False(t, ok)
}
