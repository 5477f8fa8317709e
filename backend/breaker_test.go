package backend

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const consecutiveFailures = 3

func newTestBreaker() *gobreaker.CircuitBreaker[json.RawMessage] {
	return NewBreaker(BreakerSettings{
		Name:                "test",
		MaxRequests:         1,
		Interval:            30 * time.Second,
		Timeout:             50 * time.Millisecond,
		ConsecutiveFailures: consecutiveFailures,
	})
}

func TestBreaker_BackendAnswersDoNotTrip(t *testing.T) {
	m := new(MockRequester)
	m.On("Request", mock.Anything, "/api/users/a@x.com", MethodGet, nil).
		Return(nil, &RequestError{StatusCode: 404, Message: "User not found"})

	b := NewBreakerRequester(m, newTestBreaker(), 0)

	for i := 0; i < consecutiveFailures*2; i++ {
		_, err := b.Request(context.Background(), "/api/users/a@x.com", MethodGet, nil)
		assert.True(t, IsNotFound(err))
	}

	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestBreaker_TripsOnTransportFailures(t *testing.T) {
	transportErr := errors.New("connection refused")

	m := new(MockRequester)
	m.On("Request", mock.Anything, "/api/sessions", MethodGet, nil).Return(nil, transportErr)

	b := NewBreakerRequester(m, newTestBreaker(), 0)

	for i := 0; i < consecutiveFailures; i++ {
		_, err := b.Request(context.Background(), "/api/sessions", MethodGet, nil)
		assert.Same(t, transportErr, err)
	}
	require.Equal(t, gobreaker.StateOpen, b.State())

	_, err := b.Request(context.Background(), "/api/sessions", MethodGet, nil)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	m.AssertNumberOfCalls(t, "Request", consecutiveFailures)
}

func TestBreaker_RecoversAfterCooldown(t *testing.T) {
	m := new(MockRequester)
	m.On("Request", mock.Anything, "/api/sessions", MethodGet, nil).Return(nil, errors.New("timeout")).Times(consecutiveFailures)
	m.On("Request", mock.Anything, "/api/sessions", MethodGet, nil).Return(json.RawMessage(`[]`), nil)

	b := NewBreakerRequester(m, newTestBreaker(), 0)

	for i := 0; i < consecutiveFailures; i++ {
		_, _ = b.Request(context.Background(), "/api/sessions", MethodGet, nil)
	}
	require.Equal(t, gobreaker.StateOpen, b.State())

	time.Sleep(80 * time.Millisecond)

	raw, err := b.Request(context.Background(), "/api/sessions", MethodGet, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestBreaker_AppliesCallTimeout(t *testing.T) {
	m := new(MockRequester)
	m.On("Request", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), "/api/sessions", MethodGet, nil).Return(json.RawMessage(`[]`), nil).Once()

	b := NewBreakerRequester(m, newTestBreaker(), time.Second)

	_, err := b.Request(context.Background(), "/api/sessions", MethodGet, nil)
	require.NoError(t, err)
	m.AssertExpectations(t)
}
