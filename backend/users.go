package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mlmarch/mlmarch-gateway/logging"
)

type UserAPI struct {
	requester Requester
}

func NewUserAPI(r Requester) *UserAPI {
	return &UserAPI{requester: r}
}

func (a *UserAPI) GetUser(ctx context.Context, email string) (UserRecord, error) {
	raw, err := a.requester.Request(ctx, "/api/users/"+email, MethodGet, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord(raw)
}

// SaveUser creates or updates rec and returns the backend's answer verbatim.
func (a *UserAPI) SaveUser(ctx context.Context, rec UserRecord) (UserRecord, error) {
	raw, err := a.requester.Request(ctx, "/api/users", MethodPost, rec)
	if err != nil {
		return nil, err
	}
	return decodeRecord(raw)
}

func (a *UserAPI) ListUsers(ctx context.Context) ([]UserRecord, error) {
	raw, err := a.requester.Request(ctx, "/api/users", MethodGet, nil)
	if err != nil {
		return nil, err
	}

	var users []UserRecord
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// SyncUser upserts attrs into the backend, keyed by attrs' email. An existing
// record is merged with attrs (attrs win); a missing one is created from attrs.
// Any lookup failure other than "not found" is returned unchanged.
//
// Nothing serializes concurrent syncs for one email; the last save wins.
func (a *UserAPI) SyncUser(ctx context.Context, attrs UserRecord) (UserRecord, error) {
	email := attrs.Email()
	if email == "" {
		return nil, ErrEmailRequired
	}
	log := logging.FromContext(ctx).With("email", email)

	existing, err := a.GetUser(ctx, email)
	if err != nil {
		if IsNotFound(err) {
			log.Info("creating user in backend")
			return a.SaveUser(ctx, attrs)
		}
		return nil, err
	}

	log.Debug("user found in backend, merging")
	return a.SaveUser(ctx, existing.Merge(attrs))
}

func decodeRecord(raw json.RawMessage) (UserRecord, error) {
	var rec UserRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return rec, nil
}
