package backend

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

type BreakerSettings struct {
	Name                string
	MaxRequests         uint32
	Interval            time.Duration
	Timeout             time.Duration
	ConsecutiveFailures uint32
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:                "backend",
		MaxRequests:         5,
		Interval:            30 * time.Second,
		Timeout:             10 * time.Second,
		ConsecutiveFailures: 5,
	}
}

// BreakerRequester guards a Requester with a circuit breaker. Only failures to
// reach the backend count against it; a backend that answers with an error is
// healthy.
type BreakerRequester struct {
	next        Requester
	breaker     *gobreaker.CircuitBreaker[json.RawMessage]
	callTimeout time.Duration
}

func NewBreaker(st BreakerSettings) *gobreaker.CircuitBreaker[json.RawMessage] {
	return gobreaker.NewCircuitBreaker[json.RawMessage](gobreaker.Settings{
		Name: st.Name,

		MaxRequests: st.MaxRequests,
		Interval:    st.Interval,
		Timeout:     st.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= st.ConsecutiveFailures
		},

		IsSuccessful: countsAsSuccess,

		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	var reqErr *RequestError
	return errors.As(err, &reqErr) ||
		errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, context.Canceled)
}

// NewBreakerRequester wraps next. callTimeout of zero leaves the caller's
// context untouched.
func NewBreakerRequester(next Requester, breaker *gobreaker.CircuitBreaker[json.RawMessage], callTimeout time.Duration) *BreakerRequester {
	return &BreakerRequester{
		next:        next,
		breaker:     breaker,
		callTimeout: callTimeout,
	}
}

func (b *BreakerRequester) Request(ctx context.Context, path string, method Method, data any) (json.RawMessage, error) {
	return b.breaker.Execute(func() (json.RawMessage, error) {
		callCtx := ctx
		if b.callTimeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, b.callTimeout)
			defer cancel()
		}
		return b.next.Request(callCtx, path, method, data)
	})
}

func (b *BreakerRequester) State() gobreaker.State {
	return b.breaker.State()
}

var ErrBackendUnavailable = errors.New("backend circuit open")

// IsReady fails while the breaker is open so the gateway reports not ready
// instead of sending traffic it will fast-fail.
func (b *BreakerRequester) IsReady(ctx context.Context) error {
	if b.breaker.State() == gobreaker.StateOpen {
		return ErrBackendUnavailable
	}
	return nil
}

func (b *BreakerRequester) Name() string {
	return "Backend[" + b.breaker.Name() + "]"
}
