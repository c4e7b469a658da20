package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://portal.example.org
  timeout: 5s
store:
  backend: memory
observability:
  log_level: debug
  log_format: json
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://portal.example.org", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "token", cfg.API.CookieName, "defaults fill unset fields")
	assert.Equal(t, StoreMemory, cfg.Store.Backend)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
	assert.Equal(t, "json", cfg.Observability.LogFormat)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://file.example.org
store:
  backend: memory
`)
	t.Setenv("PORTAL_API_URL", "https://env.example.org")
	t.Setenv("PORTAL_TIMEOUT", "2s")
	t.Setenv("PORTAL_STORE", "nats")
	t.Setenv("NATS_URL", "nats://127.0.0.1:4222")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("ENV", "production")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.org", cfg.API.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.API.Timeout)
	assert.Equal(t, StoreNATS, cfg.Store.Backend)
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.NATS.URL)
	assert.Equal(t, "warn", cfg.Observability.LogLevel)
	assert.Equal(t, "production", cfg.Observability.Environment)
}

func TestLoadConfig_MissingFileUsesEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PORTAL_STORE_DIR", dir)
	t.Setenv("PORTAL_PROFILE", "judge-laptop")

	cfg, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, StoreFile, cfg.Store.Backend)
	assert.Equal(t, dir, cfg.Store.Dir)
	assert.Equal(t, "judge-laptop", cfg.Store.Profile)
	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "bad yaml", body: "api: [unclosed"},
		{name: "unknown backend", body: "store:\n  backend: redis\n"},
		{name: "nats without url", body: "store:\n  backend: nats\n"},
		{name: "bad timeout", body: "store:\n  backend: memory\n", env: map[string]string{"PORTAL_TIMEOUT": "soon"}},
		{name: "bad rate", body: "store:\n  backend: memory\n", env: map[string]string{"PORTAL_RATE_LIMIT": "fast"}},
		{name: "zero timeout", body: "api:\n  timeout: 0s\nstore:\n  backend: memory\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NATS_URL", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
