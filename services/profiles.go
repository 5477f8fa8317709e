package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mlmarch/mlmarch-gateway/backend"
	"github.com/mlmarch/mlmarch-gateway/logging"
)

const profileCompleteField = "isProfileComplete"

// ErrIncompleteProfile is returned by Complete when a required answer is blank.
var ErrIncompleteProfile = errors.New("incomplete profile")

// ProfileUpdate carries the fields a user may edit on their own profile.
// Nil fields are left untouched.
type ProfileUpdate struct {
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Institution *string `json:"institution,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	PhotoURL    *string `json:"photoURL,omitempty"`
}

// ProfileCompletion is the onboarding form a new user fills in once.
type ProfileCompletion struct {
	Phone          string   `json:"phone"`
	Institution    string   `json:"institution" binding:"required"`
	EducationLevel string   `json:"educationLevel" binding:"required"`
	MLExperience   string   `json:"mlExperience" binding:"required"`
	Interests      []string `json:"interests"`
}

type ProfileService interface {
	Get(ctx context.Context, email string) (backend.UserRecord, error)
	Update(ctx context.Context, email string, update ProfileUpdate) (backend.UserRecord, error)
	Complete(ctx context.Context, email string, form ProfileCompletion) (backend.UserRecord, error)
	List(ctx context.Context) ([]backend.UserRecord, error)
}

type ProfileServiceImpl struct {
	users UserDirectory
}

func NewProfileService(users UserDirectory) *ProfileServiceImpl {
	return &ProfileServiceImpl{users: users}
}

// Get returns the stored profile with isProfileComplete always present.
func (s *ProfileServiceImpl) Get(ctx context.Context, email string) (backend.UserRecord, error) {
	rec, err := s.users.GetUser(ctx, email)
	if err != nil {
		return nil, err
	}
	return withCompleteFlag(rec), nil
}

func (s *ProfileServiceImpl) Update(ctx context.Context, email string, update ProfileUpdate) (backend.UserRecord, error) {
	attrs := backend.UserRecord{"email": email}
	setIfPresent(attrs, "firstName", update.FirstName)
	setIfPresent(attrs, "lastName", update.LastName)
	setIfPresent(attrs, "phone", update.Phone)
	setIfPresent(attrs, "institution", update.Institution)
	setIfPresent(attrs, "bio", update.Bio)
	setIfPresent(attrs, "photoURL", update.PhotoURL)

	return s.sync(ctx, attrs)
}

// Complete stores the onboarding answers and marks the profile complete.
func (s *ProfileServiceImpl) Complete(ctx context.Context, email string, form ProfileCompletion) (backend.UserRecord, error) {
	required := []struct{ key, value string }{
		{"institution", form.Institution},
		{"educationLevel", form.EducationLevel},
		{"mlExperience", form.MLExperience},
	}

	attrs := backend.UserRecord{
		"email":              email,
		"interests":          strings.Join(form.Interests, ","),
		profileCompleteField: true,
	}
	for _, f := range required {
		v := strings.TrimSpace(f.value)
		if v == "" {
			return nil, fmt.Errorf("%w: %s is required", ErrIncompleteProfile, f.key)
		}
		attrs[f.key] = v
	}
	if phone := strings.TrimSpace(form.Phone); phone != "" {
		attrs["phone"] = phone
	}

	rec, err := s.sync(ctx, attrs)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("profile completed", "email", email)
	return rec, nil
}

func (s *ProfileServiceImpl) List(ctx context.Context) ([]backend.UserRecord, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i, u := range users {
		users[i] = withCompleteFlag(u)
	}
	return users, nil
}

// sync upserts attrs and reads the profile back, since the backend's save
// answer only carries the record id.
func (s *ProfileServiceImpl) sync(ctx context.Context, attrs backend.UserRecord) (backend.UserRecord, error) {
	if _, err := s.users.SyncUser(ctx, attrs); err != nil {
		return nil, err
	}
	return s.Get(ctx, attrs.Email())
}

func setIfPresent(attrs backend.UserRecord, key string, v *string) {
	if v != nil {
		attrs[key] = strings.TrimSpace(*v)
	}
}

func withCompleteFlag(rec backend.UserRecord) backend.UserRecord {
	if _, ok := rec[profileCompleteField]; ok {
		return rec
	}
	out := rec.Clone()
	out[profileCompleteField] = false
	return out
}
