package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ucm-dct/sigac-api/internal/middleware"
	"github.com/ucm-dct/sigac-api/internal/models"
)

func actorFromContext(c *gin.Context) models.Actor {
	value, exists := c.Get(middleware.ContextActorKey)
	if !exists {
		return models.Actor{Profile: models.ActorDirection}
	}
	actor, ok := value.(models.Actor)
	if !ok {
		return models.Actor{Profile: models.ActorDirection}
	}
	return actor
}
