package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mlmarch/mlmarch-gateway/logging"
)

// RESTClient sends each logical route with its real HTTP verb and the payload
// as a JSON body. Error classification matches QueryClient.
//
// The logical route becomes a real URL path here, so characters that would end
// the path ("?", "#", "%") are escaped. A "/" inside a path segment still reads
// as a separator.
type RESTClient struct {
	base *url.URL
	http *http.Client
}

func NewRESTClient(baseURL string, httpClient *http.Client) (*RESTClient, error) {
	u, err := parseBase(baseURL)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &RESTClient{
		base: u,
		http: httpClient,
	}, nil
}

func (c *RESTClient) Request(ctx context.Context, path string, method Method, data any) (json.RawMessage, error) {
	if err := validate(path, method); err != nil {
		return nil, err
	}

	var body io.Reader
	if data != nil && method.carriesData() {
		payload, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("%w: encode data: %w", ErrInvalidRequest, err)
		}
		body = bytes.NewReader(payload)
	}

	logging.FromContext(ctx).Debug("backend request", "route", path, "method", method)

	req, err := http.NewRequestWithContext(ctx, string(method), c.routeURL(path), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return decodeResponse(resp)
}

func (c *RESTClient) routeURL(path string) string {
	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	u.RawPath = ""
	return u.String()
}
