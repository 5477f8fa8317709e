package routers

import (
	"github.com/gin-gonic/gin"
	"github.com/mlmarch/mlmarch-gateway/auth"
	"github.com/mlmarch/mlmarch-gateway/users"
)

func RegisterUserRoutes(h *users.ProfileHandler, jwtSecret string, route *gin.Engine) {
	api := route.Group("/api", auth.JWTMiddleware(jwtSecret))

	api.GET("/me", h.GetMe)
	api.PUT("/me", h.UpdateMe)
	api.POST("/me/complete", h.CompleteMe)
	api.GET("/users", h.ListUsers)
}
