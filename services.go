package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mlmarch/mlmarch-gateway/auth"
	"github.com/mlmarch/mlmarch-gateway/auth/oauth"
	"github.com/mlmarch/mlmarch-gateway/backend"
	"github.com/mlmarch/mlmarch-gateway/services"
	"github.com/mlmarch/mlmarch-gateway/services/caching"
	"github.com/mlmarch/mlmarch-gateway/store"
)

const oauthClientTimeout = 10 * time.Second

type Stores struct {
	identities store.IdentityStore
	states     store.OAuthStateStore
}

type Providers struct {
	Github oauth.Provider
	Google oauth.Provider
}

type Services struct {
	Auth     services.AuthService
	Profiles services.ProfileService
	Sessions services.SessionService

	Backend *backend.BreakerRequester

	Stores *Stores

	Providers *Providers
}

type Shutdowner interface {
	Shutdown(context.Context) error
}

func BuildServices(app *App) (*Services, error) {
	requester, err := backend.New(*app.Config.BackendConfig, app.Backend)
	if err != nil {
		return nil, fmt.Errorf("init backend client: %w", err)
	}

	userAPI := backend.NewUserAPI(requester)
	sessionAPI := backend.NewSessionAPI(requester)

	identityStore := store.NewIdentityStore(app.DynamoDB, app.Config.DynamoDBConfig.IdentitiesTableName)
	stateStore := store.NewRedisStateStore(app.Redis)

	oauthClient := auth.NewClient(oauthClientTimeout)
	githubProvider := oauth.NewGithubProvider(app.Config.GithubConfig, oauthClient)
	googleProvider := oauth.NewGoogleProvider(app.Config.GoogleConfig, oauthClient)

	authSvc := services.NewAuthServiceImpl(userAPI, identityStore, stateStore, app.Config.JWTConfig.SecretKey, app.Config.JWTConfig.RefreshSecretKey)
	profileSvc := services.NewProfileService(userAPI)
	sessionSvc := services.NewSessionService(sessionAPI, newCache(app), app.Config.CacheConfig.SessionsTTL)

	return &Services{
		Auth:     authSvc,
		Profiles: profileSvc,
		Sessions: sessionSvc,

		Backend: requester,

		Stores: &Stores{
			identities: identityStore,
			states:     stateStore,
		},

		Providers: &Providers{
			Github: githubProvider,
			Google: googleProvider,
		},
	}, nil
}

// newCache uses Redis when it answers at startup and no cache otherwise.
func newCache(app *App) caching.CachingService {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := app.Redis.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unavailable, session cache disabled", "error", err)
		return caching.NewNullCachingService()
	}
	return caching.NewRedisCachingService(app.Redis)
}

func (s *Services) Shutdown(ctx context.Context) error {
	slog.Info("shutting down services")

	if s.Stores != nil {
		if err := s.Stores.Shutdown(ctx); err != nil {
			slog.Error("stores shutdown error", "error", err)
		}
	}

	slog.Info("services shutdown complete")
	return nil
}

func (s *Stores) Shutdown(ctx context.Context) error {
	shutdownIfPossible := func(name string, v any) {
		if sh, ok := v.(Shutdowner); ok {
			if err := sh.Shutdown(ctx); err != nil {
				slog.Error("store shutdown error", "store", name, "error", err)
			}
		}
	}

	shutdownIfPossible("identities", s.identities)
	shutdownIfPossible("states", s.states)

	return nil
}
