package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/mlmarch/mlmarch-gateway/health"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCheck struct{}

func (failingCheck) IsReady(context.Context) error { return errors.New("table missing") }
func (failingCheck) Name() string                  { return "IdentityStore[identities]" }

func serve(t *testing.T, h *health.HealthHandler, path string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	health.RegisterHealthRoutes(h, r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestReady_AllChecksPass(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer rdb.Close()

	w := serve(t, health.NewHealthHandler(health.NewRedisCheck(rdb)), "/health/ready")

	require.Equal(t, http.StatusOK, w.Code)
	var resp health.ReadyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ready", resp.Status)
	assert.Equal(t, "ok", resp.Checks["redis"])
}

func TestReady_FailingCheck(t *testing.T) {
	w := serve(t, health.NewHealthHandler(failingCheck{}), "/health/ready")

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "table missing")
}

func TestLive(t *testing.T) {
	w := serve(t, health.NewHealthHandler(), "/health/live")
	assert.Equal(t, http.StatusOK, w.Code)
}
