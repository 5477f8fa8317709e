package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mlmarch/mlmarch-gateway/auth/handlers"
	"github.com/mlmarch/mlmarch-gateway/health"
	"github.com/mlmarch/mlmarch-gateway/logger"
	"github.com/mlmarch/mlmarch-gateway/logging"
	"github.com/mlmarch/mlmarch-gateway/middleware"
	"github.com/mlmarch/mlmarch-gateway/ratelimit"
	"github.com/mlmarch/mlmarch-gateway/responses"
	"github.com/mlmarch/mlmarch-gateway/routers"
	"github.com/mlmarch/mlmarch-gateway/sessions"
	"github.com/mlmarch/mlmarch-gateway/tracing"
	"github.com/mlmarch/mlmarch-gateway/users"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const (
	requestsPerWindow = 100
	rateLimitWindow   = time.Minute
)

func BuildRouter(app *App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	applyCors(r, app)
	applyTracing(r, app)
	applyLogging(r, app)
	applyRateLimiting(r, app)
	applySwagger(r, app)

	registerRoutes(r, app, app.Services)

	return r
}

func applyCors(r *gin.Engine, app *App) {
	origins := strings.Split(app.Config.CorsConfig.Origins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	r.Use(cors.New(
		cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", logging.RequestIDHeader},
			ExposeHeaders:    []string{logging.RequestIDHeader},
			AllowCredentials: true,
		},
	))
}

func applyLogging(r *gin.Engine, app *App) {
	baseLogger := logger.CreateLogger(app.Config.Env)
	r.Use(logging.LoggerMiddleware(baseLogger))
}

func applyRateLimiting(r *gin.Engine, app *App) {
	rateLimiter := ratelimit.NewRedisRateLimiter(app.Redis)
	r.Use(middleware.RateLimiterMiddleware(rateLimiter, requestsPerWindow, rateLimitWindow))
}

func applyTracing(r *gin.Engine, app *App) {
	if !app.Config.Tracing {
		return
	}

	tp, err := tracing.StartTracing(context.Background())
	if err != nil {
		slog.Error("failed to start tracing, continuing without it", "error", err)
		return
	}

	app.TracerProvider = tp
	r.Use(otelgin.Middleware(tracing.ServiceName))
}

func applySwagger(r *gin.Engine, app *App) {
	if app.Config.Env == "PROD" {
		return
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func registerRoutes(r *gin.Engine, app *App, s *Services) {
	secureCookies := app.Config.Env != "DEV"
	jwtSecret := app.Config.JWTConfig.SecretKey

	r.GET("/test", func(ctx *gin.Context) {
		responses.JSONSuccess(ctx, "ok")
	})

	health.RegisterHealthRoutes(
		health.NewHealthHandler(
			health.NewRedisCheck(app.Redis),
			s.Stores.identities,
			s.Backend,
		),
		r,
	)

	routers.RegisterAuthRoutes(
		handlers.NewAuthHandler(s.Auth, secureCookies),
		[]*handlers.OAuthHandler{
			handlers.NewOAuthHandler(app.Config.FrontendURL, s.Providers.Github, s.Auth, secureCookies),
			handlers.NewOAuthHandler(app.Config.FrontendURL, s.Providers.Google, s.Auth, secureCookies),
		},
		jwtSecret,
		r,
	)

	routers.RegisterUserRoutes(
		users.NewProfileHandler(s.Profiles),
		jwtSecret,
		r,
	)

	routers.RegisterSessionRoutes(
		sessions.NewSessionHandler(s.Sessions),
		jwtSecret,
		r,
	)
}
