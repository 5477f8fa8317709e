package services

import (
	"context"

	"github.com/mlmarch/mlmarch-gateway/backend"
)

// UserDirectory is the backend's user API. *backend.UserAPI implements it.
type UserDirectory interface {
	GetUser(ctx context.Context, email string) (backend.UserRecord, error)
	ListUsers(ctx context.Context) ([]backend.UserRecord, error)
	SyncUser(ctx context.Context, attrs backend.UserRecord) (backend.UserRecord, error)
}

// SessionDirectory is the backend's session API. *backend.SessionAPI implements it.
type SessionDirectory interface {
	ListSessions(ctx context.Context) ([]backend.Session, error)
	GetSession(ctx context.Context, id string) (*backend.Session, error)
	UserSessions(ctx context.Context, email string) ([]backend.Session, error)
	Register(ctx context.Context, email, sessionID string) (*backend.RegistrationResult, error)
	Unregister(ctx context.Context, email, sessionID string) (*backend.RegistrationResult, error)
}
