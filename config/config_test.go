package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://mlmarch.streamlit.app")
	t.Setenv("BACKEND_ENCODING", "")
	t.Setenv("SESSIONS_CACHE_TTL", "")
	t.Setenv("BACKEND_TIMEOUT", "")

	cfg := LoadConfig()

	assert.Equal(t, EncodingQuery, cfg.BackendConfig.Encoding)
	assert.Equal(t, time.Duration(0), cfg.BackendConfig.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.CacheConfig.SessionsTTL)
	assert.Equal(t, "https://mlmarch.streamlit.app", cfg.BackendConfig.URL)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("BACKEND_ENCODING", "REST")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("TRACING", "true")

	cfg := LoadConfig()

	assert.Equal(t, EncodingREST, cfg.BackendConfig.Encoding)
	assert.Equal(t, 3*time.Second, cfg.BackendConfig.Timeout)
	assert.True(t, cfg.Tracing)
}

func TestValidateAllSecrets(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://localhost:8501")
	t.Setenv("JWT_SECRET_KEY", "access")
	t.Setenv("JWT_REFRESH_SECRET_KEY", "refresh")

	cfg := LoadConfig()
	require.NoError(t, cfg.ValidateAllSecrets())

	cfg.BackendConfig.Encoding = "soap"
	err := cfg.ValidateAllSecrets()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BACKEND_ENCODING")

	cfg.BackendConfig.Encoding = EncodingQuery
	cfg.JWTConfig.SecretKey = ""
	err = cfg.ValidateAllSecrets()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET_KEY")
}
