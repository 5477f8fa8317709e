package backend

import (
	"fmt"
	"net/http"

	"github.com/mlmarch/mlmarch-gateway/config"
)

// New builds the Requester selected by cfg.Encoding, guarded by a circuit breaker.
func New(cfg config.BackendConfig, httpClient *http.Client) (*BreakerRequester, error) {
	var (
		inner Requester
		err   error
	)

	switch cfg.Encoding {
	case config.EncodingQuery, "":
		inner, err = NewQueryClient(cfg.URL, httpClient)
	case config.EncodingREST:
		inner, err = NewRESTClient(cfg.URL, httpClient)
	default:
		return nil, fmt.Errorf("unknown backend encoding %q", cfg.Encoding)
	}
	if err != nil {
		return nil, err
	}

	return NewBreakerRequester(inner, NewBreaker(DefaultBreakerSettings()), cfg.Timeout), nil
}
