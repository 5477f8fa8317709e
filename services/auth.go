package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mlmarch/mlmarch-gateway/auth/types"
	"github.com/mlmarch/mlmarch-gateway/backend"
	"github.com/mlmarch/mlmarch-gateway/errors"
	"github.com/mlmarch/mlmarch-gateway/logging"
	"github.com/mlmarch/mlmarch-gateway/store"
	"github.com/mlmarch/mlmarch-gateway/tokens"
)

type LoginResponse struct {
	AccessToken  string
	RefreshToken string
	Email        string
	User         backend.UserRecord
}

type AuthService interface {
	SaveState(ctx context.Context, key string) error
	ValidateState(ctx context.Context, key string) (bool, error)
	LoginOAuth(ctx context.Context, user types.OAuthUser) (*LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*tokens.TokenPair, error)
}

type AuthServiceImpl struct {
	users      UserDirectory
	identities store.IdentityStore
	states     store.OAuthStateStore
	secrets    tokens.Secrets
	now        func() time.Time
}

func NewAuthServiceImpl(users UserDirectory, identities store.IdentityStore, states store.OAuthStateStore, jwtAccessSecret, jwtRefreshSecret string) *AuthServiceImpl {
	return &AuthServiceImpl{
		users:      users,
		identities: identities,
		states:     states,
		secrets: tokens.Secrets{
			Access:  jwtAccessSecret,
			Refresh: jwtRefreshSecret,
		},
		now: time.Now,
	}
}

func (s *AuthServiceImpl) SaveState(ctx context.Context, key string) error {
	return s.states.Create(ctx, key)
}

func (s *AuthServiceImpl) ValidateState(ctx context.Context, key string) (bool, error) {
	return s.states.IsStateExists(ctx, key)
}

// ProfileAttributes maps a provider account onto backend user fields. Blank
// values are left out so a sync never clears what the user already entered.
func ProfileAttributes(u types.OAuthUser) backend.UserRecord {
	attrs := backend.UserRecord{
		"email":        u.Email,
		"authProvider": u.Provider,
	}

	first, last := u.SplitName()
	if first != "" {
		attrs["firstName"] = first
	}
	if last != "" {
		attrs["lastName"] = last
	}
	if u.AvatarURL != "" {
		attrs["photoURL"] = u.AvatarURL
	}
	return attrs
}

// LoginOAuth upserts the provider user into the backend, records the identity
// link and issues a token pair for the user's email.
func (s *AuthServiceImpl) LoginOAuth(ctx context.Context, user types.OAuthUser) (*LoginResponse, error) {
	if user.Email == "" {
		return nil, fmt.Errorf("%w: provider returned no email", errors.ErrUnauthorized)
	}
	log := logging.FromContext(ctx).With("email", user.Email, "provider", user.Provider)

	synced, err := s.users.SyncUser(ctx, ProfileAttributes(user))
	if err != nil {
		return nil, fmt.Errorf("sync user: %w", err)
	}

	now := s.now().UTC()
	err = s.identities.Upsert(ctx, store.Identity{
		Email:       user.Email,
		Provider:    user.Provider,
		ProviderID:  user.ProviderID,
		Username:    user.Username,
		AvatarURL:   user.AvatarURL,
		BackendID:   synced.ID(),
		LastLoginAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: save identity: %w", errors.ErrInternalServer, err)
	}

	pair, err := tokens.Issue(user.Email, s.secrets)
	if err != nil {
		return nil, err
	}

	log.Info("user signed in")

	return &LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Email:        user.Email,
		User:         synced,
	}, nil
}

func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*tokens.TokenPair, error) {
	claims, err := tokens.ParseRefresh(refreshToken, s.secrets.Refresh)
	if err != nil {
		return nil, err
	}

	if _, err := s.identities.GetByEmail(ctx, claims.Subject); err != nil {
		return nil, err
	}

	return tokens.Issue(claims.Subject, s.secrets)
}
