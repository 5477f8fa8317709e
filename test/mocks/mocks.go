// Package mocks holds testify mocks for the gateway's service dependencies.
package mocks

import (
	"context"

	"github.com/mlmarch/mlmarch-gateway/backend"
	"github.com/mlmarch/mlmarch-gateway/store"
	"github.com/stretchr/testify/mock"
)

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) ResetMock() {
	m.ExpectedCalls = nil
	m.Calls = nil
}

func (m *MockUserDirectory) GetUser(ctx context.Context, email string) (backend.UserRecord, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(backend.UserRecord), args.Error(1)
}

func (m *MockUserDirectory) ListUsers(ctx context.Context) ([]backend.UserRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]backend.UserRecord), args.Error(1)
}

func (m *MockUserDirectory) SyncUser(ctx context.Context, attrs backend.UserRecord) (backend.UserRecord, error) {
	args := m.Called(ctx, attrs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(backend.UserRecord), args.Error(1)
}

type MockSessionDirectory struct {
	mock.Mock
}

func (m *MockSessionDirectory) ResetMock() {
	m.ExpectedCalls = nil
	m.Calls = nil
}

func (m *MockSessionDirectory) ListSessions(ctx context.Context) ([]backend.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]backend.Session), args.Error(1)
}

func (m *MockSessionDirectory) GetSession(ctx context.Context, id string) (*backend.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.Session), args.Error(1)
}

func (m *MockSessionDirectory) UserSessions(ctx context.Context, email string) ([]backend.Session, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]backend.Session), args.Error(1)
}

func (m *MockSessionDirectory) Register(ctx context.Context, email, sessionID string) (*backend.RegistrationResult, error) {
	args := m.Called(ctx, email, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.RegistrationResult), args.Error(1)
}

func (m *MockSessionDirectory) Unregister(ctx context.Context, email, sessionID string) (*backend.RegistrationResult, error) {
	args := m.Called(ctx, email, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.RegistrationResult), args.Error(1)
}

type MockIdentityStore struct {
	mock.Mock
}

func (m *MockIdentityStore) ResetMock() {
	m.ExpectedCalls = nil
	m.Calls = nil
}

func (m *MockIdentityStore) GetByEmail(ctx context.Context, email string) (*store.Identity, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Identity), args.Error(1)
}

func (m *MockIdentityStore) Upsert(ctx context.Context, identity store.Identity) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

func (m *MockIdentityStore) IsReady(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockIdentityStore) Name() string {
	return "MockIdentityStore"
}

type MockStateStore struct {
	mock.Mock
}

func (m *MockStateStore) ResetMock() {
	m.ExpectedCalls = nil
	m.Calls = nil
}

func (m *MockStateStore) Create(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStateStore) IsStateExists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
