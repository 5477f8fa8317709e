package sessions_test

import (
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mlmarch/mlmarch-gateway/backend"
	"github.com/mlmarch/mlmarch-gateway/routers"
	"github.com/mlmarch/mlmarch-gateway/services"
	"github.com/mlmarch/mlmarch-gateway/services/caching"
	"github.com/mlmarch/mlmarch-gateway/sessions"
	"github.com/mlmarch/mlmarch-gateway/test"
	"github.com/mlmarch/mlmarch-gateway/test/mocks"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const secret = "sessions-secret"

var (
	r         *gin.Engine
	directory *mocks.MockSessionDirectory
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	directory = &mocks.MockSessionDirectory{}
	svc := services.NewSessionService(directory, caching.NewNullCachingService(), time.Minute)

	r = gin.New()
	routers.RegisterSessionRoutes(sessions.NewSessionHandler(svc), secret, r)

	os.Exit(m.Run())
}

func TestList(t *testing.T) {
	directory.ResetMock()
	directory.On("ListSessions", mock.Anything).Return([]backend.Session{
		{ID: "s1", Title: "Intro to ML", Status: "upcoming"},
	}, nil)

	w := test.PerformRequest(r, t, "GET", "/api/sessions", nil, nil, false, "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Intro to ML"`)
}

func TestList_EmptyIsArray(t *testing.T) {
	directory.ResetMock()
	directory.On("ListSessions", mock.Anything).Return(nil, nil)

	w := test.PerformRequest(r, t, "GET", "/api/sessions", nil, nil, false, "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sessions":[]}`, w.Body.String())
}

func TestList_BreakerOpen(t *testing.T) {
	directory.ResetMock()
	directory.On("ListSessions", mock.Anything).Return(nil, gobreaker.ErrOpenState)

	w := test.PerformRequest(r, t, "GET", "/api/sessions", nil, nil, false, "", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGet_NotFound(t *testing.T) {
	directory.ResetMock()
	directory.On("GetSession", mock.Anything, "nope").
		Return(nil, &backend.RequestError{StatusCode: 404, Message: "Session not found"})

	w := test.PerformRequest(r, t, "GET", "/api/sessions/nope", nil, nil, false, "", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Session not found")
}

func TestMine(t *testing.T) {
	directory.ResetMock()
	directory.On("UserSessions", mock.Anything, "ada@example.com").
		Return([]backend.Session{{ID: "s1", Attended: true}}, nil)

	w := test.PerformRequest(r, t, "GET", "/api/me/sessions", nil, nil, true, secret, "ada@example.com")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"attended":true`)

	w = test.PerformRequest(r, t, "GET", "/api/me/sessions", nil, nil, false, "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterAndUnregister(t *testing.T) {
	directory.ResetMock()
	directory.On("Register", mock.Anything, "ada@example.com", "s1").
		Return(&backend.RegistrationResult{Registered: true, SessionID: "s1"}, nil)
	directory.On("Unregister", mock.Anything, "ada@example.com", "s1").
		Return(&backend.RegistrationResult{Unregistered: true, SessionID: "s1"}, nil)

	w := test.PerformRequest(r, t, "POST", "/api/me/sessions/s1", nil, nil, true, secret, "ada@example.com")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"registered":true`)

	w = test.PerformRequest(r, t, "DELETE", "/api/me/sessions/s1", nil, nil, true, secret, "ada@example.com")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"unregistered":true`)
}

func TestRegister_AlreadyRegistered(t *testing.T) {
	directory.ResetMock()
	directory.On("Register", mock.Anything, "ada@example.com", "s1").
		Return(nil, &backend.RequestError{StatusCode: 400, Message: "Already registered"})

	w := test.PerformRequest(r, t, "POST", "/api/me/sessions/s1", nil, nil, true, secret, "ada@example.com")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Already registered"}`, w.Body.String())
}
