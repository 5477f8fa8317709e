package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/mlmarch/mlmarch-gateway/auth/handlers"
	"github.com/mlmarch/mlmarch-gateway/auth/types"
	"github.com/mlmarch/mlmarch-gateway/backend"
	"github.com/mlmarch/mlmarch-gateway/routers"
	"github.com/mlmarch/mlmarch-gateway/services"
	"github.com/mlmarch/mlmarch-gateway/store"
	"github.com/mlmarch/mlmarch-gateway/test"
	"github.com/mlmarch/mlmarch-gateway/test/mocks"
	"github.com/mlmarch/mlmarch-gateway/tokens"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	accessSecret  = "handler-access"
	refreshSecret = "handler-refresh"
	frontendURL   = "http://localhost:3000"
)

type fakeProvider struct {
	user     types.OAuthUser
	exchange error
}

func (p *fakeProvider) Name() string { return "github" }

func (p *fakeProvider) ExchangeCode(ctx context.Context, code string) (string, error) {
	if p.exchange != nil {
		return "", p.exchange
	}
	return "token-for-" + code, nil
}

func (p *fakeProvider) GetOAuthUser(ctx context.Context, token string) (types.OAuthUser, error) {
	return p.user, nil
}

type fixture struct {
	router     *gin.Engine
	provider   *fakeProvider
	users      *mocks.MockUserDirectory
	identities *mocks.MockIdentityStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	f := &fixture{
		provider: &fakeProvider{user: types.OAuthUser{
			Name:       "Ada Lovelace",
			Email:      "ada@example.com",
			Provider:   "github",
			ProviderID: "101",
			Username:   "ada",
		}},
		users:      &mocks.MockUserDirectory{},
		identities: &mocks.MockIdentityStore{},
	}

	authSvc := services.NewAuthServiceImpl(f.users, f.identities, store.NewRedisStateStore(rdb), accessSecret, refreshSecret)

	f.router = gin.New()
	routers.RegisterAuthRoutes(
		handlers.NewAuthHandler(authSvc, false),
		[]*handlers.OAuthHandler{handlers.NewOAuthHandler(frontendURL, f.provider, authSvc, false)},
		accessSecret,
		f.router,
	)
	return f
}

func (f *fixture) newState(t *testing.T) string {
	t.Helper()
	w := test.PerformRequest(f.router, t, "GET", "/auth/github/state", nil, nil, false, "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.StateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.State)
	return resp.State
}

func cookieValue(w *httptest.ResponseRecorder, name string) string {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func TestCallback_SyncsUserAndSetsCookies(t *testing.T) {
	f := newFixture(t)
	state := f.newState(t)

	f.users.On("SyncUser", mock.Anything, mock.MatchedBy(func(attrs backend.UserRecord) bool {
		return attrs.Email() == "ada@example.com" && attrs["firstName"] == "Ada" && attrs["lastName"] == "Lovelace"
	})).Return(backend.UserRecord{"id": "u1", "created": true}, nil)
	f.identities.On("Upsert", mock.Anything, mock.AnythingOfType("store.Identity")).Return(nil)

	w := test.PerformRequest(f.router, t, "GET", "/auth/github/callback?code=abc&state="+state, nil, nil, false, "", "")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, frontendURL, w.Header().Get("Location"))

	claims, err := tokens.ParseAccess(cookieValue(w, tokens.AccessCookieName), accessSecret)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", claims.Subject)
	assert.NotEmpty(t, cookieValue(w, tokens.RefreshCookieName))

	f.users.AssertExpectations(t)
	f.identities.AssertExpectations(t)
}

func TestCallback_StateIsSingleUse(t *testing.T) {
	f := newFixture(t)
	state := f.newState(t)

	f.users.On("SyncUser", mock.Anything, mock.Anything).Return(backend.UserRecord{"id": "u1"}, nil)
	f.identities.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	w := test.PerformRequest(f.router, t, "GET", "/auth/github/callback?code=abc&state="+state, nil, nil, false, "", "")
	require.Equal(t, http.StatusFound, w.Code)

	w = test.PerformRequest(f.router, t, "GET", "/auth/github/callback?code=abc&state="+state, nil, nil, false, "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid state")
}

func TestCallback_MissingParams(t *testing.T) {
	f := newFixture(t)

	w := test.PerformRequest(f.router, t, "GET", "/auth/github/callback?state=x", nil, nil, false, "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "code")

	w = test.PerformRequest(f.router, t, "GET", "/auth/github/callback?code=x", nil, nil, false, "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "state")
}

func TestCallback_ExchangeFailure(t *testing.T) {
	f := newFixture(t)
	f.provider.exchange = errors.New("bad_verification_code")
	state := f.newState(t)

	w := test.PerformRequest(f.router, t, "GET", "/auth/github/callback?code=abc&state="+state, nil, nil, false, "", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	f.users.AssertNotCalled(t, "SyncUser", mock.Anything, mock.Anything)
}

func TestCallback_BackendDown(t *testing.T) {
	f := newFixture(t)
	state := f.newState(t)

	f.users.On("SyncUser", mock.Anything, mock.Anything).Return(nil, errors.New("dial tcp: connection refused"))

	w := test.PerformRequest(f.router, t, "GET", "/auth/github/callback?code=abc&state="+state, nil, nil, false, "", "")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Empty(t, cookieValue(w, tokens.AccessCookieName))
}

func TestRefresh(t *testing.T) {
	f := newFixture(t)

	pair, err := tokens.Issue("ada@example.com", tokens.Secrets{Access: accessSecret, Refresh: refreshSecret})
	require.NoError(t, err)

	f.identities.On("GetByEmail", mock.Anything, "ada@example.com").
		Return(&store.Identity{Email: "ada@example.com"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: tokens.RefreshCookieName, Value: pair.RefreshToken})
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, cookieValue(w, tokens.AccessCookieName))

	w = test.PerformRequest(f.router, t, "POST", "/auth/refresh", nil, nil, false, "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutClearsCookies(t *testing.T) {
	f := newFixture(t)

	w := test.PerformRequest(f.router, t, "POST", "/auth/logout", nil, nil, false, "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	for _, c := range w.Result().Cookies() {
		assert.True(t, c.MaxAge < 0, c.Name)
	}
	assert.True(t, strings.Contains(w.Body.String(), "logged out"))
}

func TestMe(t *testing.T) {
	f := newFixture(t)

	w := test.PerformRequest(f.router, t, "GET", "/auth/me", nil, nil, true, accessSecret, "ada@example.com")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"ada@example.com"}`, w.Body.String())

	w = test.PerformRequest(f.router, t, "GET", "/auth/me", nil, nil, false, "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
