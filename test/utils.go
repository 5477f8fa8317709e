package test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mlmarch/mlmarch-gateway/tokens"
)

// PerformRequest sends a request through r. Headers are "Name: value" strings.
// With withAuth set, an access token for email signed with secret is attached
// as the jwt cookie.
func PerformRequest(
	r http.Handler,
	t *testing.T,
	method, url string,
	body io.Reader,
	headers []string,
	withAuth bool,
	secret, email string,
) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	for _, h := range headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			t.Fatalf("malformed header %q", h)
		}
		req.Header.Set(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	if withAuth {
		token, err := tokens.SignAccess(email, secret)
		if err != nil {
			t.Fatalf("Failed to sign token: %v", err)
		}
		req.AddCookie(&http.Cookie{Name: tokens.AccessCookieName, Value: token})
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
