package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mlmarch/mlmarch-gateway/backend"
	"github.com/mlmarch/mlmarch-gateway/logging"
	"github.com/mlmarch/mlmarch-gateway/services/caching"
)

const (
	allSessionsKey     = "sessions:list"
	sessionKeyPrefix   = "session:"
	userSessionsPrefix = "user-sessions:"
)

type SessionService interface {
	List(ctx context.Context) ([]backend.Session, error)
	Get(ctx context.Context, id string) (*backend.Session, error)
	ForUser(ctx context.Context, email string) ([]backend.Session, error)
	Register(ctx context.Context, email, sessionID string) (*backend.RegistrationResult, error)
	Unregister(ctx context.Context, email, sessionID string) (*backend.RegistrationResult, error)
}

// SessionServiceImpl reads sessions through a cache. Cache failures are
// logged and treated as misses; the backend stays the source of truth.
type SessionServiceImpl struct {
	sessions SessionDirectory
	cache    caching.CachingService
	ttl      time.Duration
}

func NewSessionService(sessions SessionDirectory, cache caching.CachingService, ttl time.Duration) *SessionServiceImpl {
	if cache == nil {
		cache = caching.NewNullCachingService()
	}
	return &SessionServiceImpl{
		sessions: sessions,
		cache:    cache,
		ttl:      ttl,
	}
}

func (s *SessionServiceImpl) List(ctx context.Context) ([]backend.Session, error) {
	return readThrough(ctx, s, allSessionsKey, func() ([]backend.Session, error) {
		return s.sessions.ListSessions(ctx)
	})
}

func (s *SessionServiceImpl) Get(ctx context.Context, id string) (*backend.Session, error) {
	return readThrough(ctx, s, sessionKeyPrefix+id, func() (*backend.Session, error) {
		return s.sessions.GetSession(ctx, id)
	})
}

func (s *SessionServiceImpl) ForUser(ctx context.Context, email string) ([]backend.Session, error) {
	return readThrough(ctx, s, userSessionsPrefix+email, func() ([]backend.Session, error) {
		return s.sessions.UserSessions(ctx, email)
	})
}

func (s *SessionServiceImpl) Register(ctx context.Context, email, sessionID string) (*backend.RegistrationResult, error) {
	res, err := s.sessions.Register(ctx, email, sessionID)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userSessionsPrefix+email)
	return res, nil
}

func (s *SessionServiceImpl) Unregister(ctx context.Context, email, sessionID string) (*backend.RegistrationResult, error) {
	res, err := s.sessions.Unregister(ctx, email, sessionID)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userSessionsPrefix+email)
	return res, nil
}

func (s *SessionServiceImpl) invalidate(ctx context.Context, key string) {
	if err := s.cache.Delete(ctx, key); err != nil {
		logging.FromContext(ctx).Warn("cache invalidation failed", "key", key, "error", err)
	}
}

func readThrough[T any](ctx context.Context, s *SessionServiceImpl, key string, load func() (T, error)) (T, error) {
	log := logging.FromContext(ctx)

	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Warn("cache read failed", "key", key, "error", err)
	}
	if cached != "" {
		var v T
		if err := json.Unmarshal([]byte(cached), &v); err == nil {
			return v, nil
		}
		log.Warn("discarding unreadable cache entry", "key", key)
	}

	v, err := load()
	if err != nil {
		return v, err
	}

	if payload, err := json.Marshal(v); err == nil {
		if err := s.cache.Set(ctx, key, string(payload), s.ttl); err != nil {
			log.Warn("cache write failed", "key", key, "error", err)
		}
	}
	return v, nil
}
