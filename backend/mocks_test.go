package backend

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"
)

type MockRequester struct {
	mock.Mock
}

func (m *MockRequester) Request(ctx context.Context, path string, method Method, data any) (json.RawMessage, error) {
	args := m.Called(ctx, path, method, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}
