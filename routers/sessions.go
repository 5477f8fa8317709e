package routers

import (
	"github.com/gin-gonic/gin"
	"github.com/mlmarch/mlmarch-gateway/auth"
	"github.com/mlmarch/mlmarch-gateway/sessions"
)

func RegisterSessionRoutes(h *sessions.SessionHandler, jwtSecret string, route *gin.Engine) {
	public := route.Group("/api/sessions")
	public.GET("", h.List)
	public.GET("/:id", h.Get)

	mine := route.Group("/api/me/sessions", auth.JWTMiddleware(jwtSecret))
	mine.GET("", h.Mine)
	mine.POST("/:id", h.Register)
	mine.DELETE("/:id", h.Unregister)
}
