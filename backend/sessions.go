package backend

import (
	"context"
	"encoding/json"
	"fmt"
)

type SessionAPI struct {
	requester Requester
}

func NewSessionAPI(r Requester) *SessionAPI {
	return &SessionAPI{requester: r}
}

func (a *SessionAPI) ListSessions(ctx context.Context) ([]Session, error) {
	raw, err := a.requester.Request(ctx, "/api/sessions", MethodGet, nil)
	if err != nil {
		return nil, err
	}
	return decodeSessions(raw)
}

func (a *SessionAPI) GetSession(ctx context.Context, id string) (*Session, error) {
	raw, err := a.requester.Request(ctx, "/api/sessions/"+id, MethodGet, nil)
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

func (a *SessionAPI) UserSessions(ctx context.Context, email string) ([]Session, error) {
	raw, err := a.requester.Request(ctx, "/api/user-sessions/"+email, MethodGet, nil)
	if err != nil {
		return nil, err
	}
	return decodeSessions(raw)
}

func (a *SessionAPI) Register(ctx context.Context, email, sessionID string) (*RegistrationResult, error) {
	return a.registration(ctx, MethodPost, email, sessionID)
}

func (a *SessionAPI) Unregister(ctx context.Context, email, sessionID string) (*RegistrationResult, error) {
	return a.registration(ctx, MethodDelete, email, sessionID)
}

func (a *SessionAPI) registration(ctx context.Context, method Method, email, sessionID string) (*RegistrationResult, error) {
	raw, err := a.requester.Request(ctx, "/api/register", method, registration{
		Email:     email,
		SessionID: sessionID,
	})
	if err != nil {
		return nil, err
	}

	var res RegistrationResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("decode registration: %w", err)
	}
	return &res, nil
}

func decodeSessions(raw json.RawMessage) ([]Session, error) {
	sessions := []Session{}
	if err := json.Unmarshal(raw, &sessions); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}
	return sessions, nil
}
