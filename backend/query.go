package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mlmarch/mlmarch-gateway/logging"
)

// QueryClient encodes every logical route into the query string of one GET:
// ?path=<route>&method=<verb>[&data=<json>]. The backend reads the intended
// method and payload from those parameters.
type QueryClient struct {
	base *url.URL
	http *http.Client
}

func parseBase(baseURL string) (*url.URL, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend url %q must be absolute", baseURL)
	}
	return u, nil
}

func NewQueryClient(baseURL string, httpClient *http.Client) (*QueryClient, error) {
	u, err := parseBase(baseURL)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &QueryClient{
		base: u,
		http: httpClient,
	}, nil
}

// EncodeURL builds the request URL for a route. Other query parameters on the
// base URL are kept; path, method and data always carry this call's values.
func (c *QueryClient) EncodeURL(path string, method Method, data any) (string, error) {
	u := *c.base
	q := u.Query()
	q.Set("path", path)
	q.Set("method", string(method))
	q.Del("data")

	if data != nil && method.carriesData() {
		payload, err := json.Marshal(data)
		if err != nil {
			return "", fmt.Errorf("%w: encode data: %w", ErrInvalidRequest, err)
		}
		q.Set("data", string(payload))
	}

	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *QueryClient) Request(ctx context.Context, path string, method Method, data any) (json.RawMessage, error) {
	if err := validate(path, method); err != nil {
		return nil, err
	}

	target, err := c.EncodeURL(path, method, data)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug("backend request",
		"route", path,
		"method", method,
		"with_data", data != nil && method.carriesData(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return decodeResponse(resp)
}
