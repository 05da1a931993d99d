package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ucm-dct/sigac-api/internal/models"
	appErrors "github.com/ucm-dct/sigac-api/pkg/errors"
	"github.com/ucm-dct/sigac-api/pkg/response"
)

// ContextActorKey is the gin context key storing the declared actor.
const ContextActorKey = "currentActor"

// Header names carrying the declared profile. There is no credential
// behind them; clients simply state which profile they act under.
const (
	HeaderActorProfile = "X-Actor-Profile"
	HeaderFacultyID    = "X-Faculty-ID"
)

// Actor extracts the declared actor from request headers. An absent
// profile defaults to the direction office; an unknown one is rejected.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := models.Actor{
			Profile:   models.ActorProfile(c.GetHeader(HeaderActorProfile)),
			FacultyID: c.GetHeader(HeaderFacultyID),
		}
		if actor.Profile == "" {
			actor.Profile = models.ActorDirection
		}
		if !models.ValidActorProfile(actor.Profile) {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown actor profile"))
			c.Abort()
			return
		}
		c.Set(ContextActorKey, actor)
		c.Next()
	}
}
