package routers

import (
	"github.com/gin-gonic/gin"
	"github.com/mlmarch/mlmarch-gateway/auth"
	"github.com/mlmarch/mlmarch-gateway/auth/handlers"
)

func RegisterAuthRoutes(h *handlers.AuthHandler, providers []*handlers.OAuthHandler, jwtSecret string, route *gin.Engine) {
	authGroup := route.Group("/auth")

	authGroup.POST("/refresh", h.Refresh)
	authGroup.POST("/logout", h.Logout)
	authGroup.GET("/me", auth.JWTMiddleware(jwtSecret), h.Me)

	for _, p := range providers {
		pg := authGroup.Group("/" + p.Provider())
		pg.GET("/state", p.NewState)
		pg.GET("/callback", p.Callback)
	}
}
