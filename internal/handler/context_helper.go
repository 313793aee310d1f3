package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/otelqr/guest-services-api/internal/middleware"
	"github.com/otelqr/guest-services-api/internal/models"
	"github.com/otelqr/guest-services-api/internal/service"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func actorFromContext(c *gin.Context) service.ActorMeta {
	actor := service.ActorMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if claims := claimsFromContext(c); claims != nil {
		actor.UserID = claims.UserID
	}
	return actor
}
