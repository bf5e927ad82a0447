package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ==========================
// Loading Tests
// ==========================

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  seed: directory
sessions:
  backend: memory
loadtest:
  service_url: http://localhost:9000
  stages:
    - target: 2
      duration: 1000
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "directory", cfg.Server.Seed)
	assert.Equal(t, "http://localhost:9000", cfg.LoadTest.ServiceURL)
	require.Len(t, cfg.LoadTest.Stages, 1)
	assert.Equal(t, 2, cfg.LoadTest.Stages[0].Target)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

// ==========================
// Defaults Tests
// ==========================

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "pizza-mock", cfg.App.Name)
	assert.Equal(t, "127.0.0.1:4600", cfg.Server.Addr())
	assert.Equal(t, "127.0.0.1:4601", cfg.Server.MetricsAddr())
	assert.Equal(t, "basic", cfg.Server.Seed)
	assert.Equal(t, "memory", cfg.Sessions.Backend)
	assert.Equal(t, "d@jwt.com", cfg.LoadTest.Email)
	assert.Equal(t, "diner", cfg.LoadTest.Password)
	assert.Equal(t, 30000, cfg.LoadTest.GracefulStop)

	// The default ramp profile mirrors the recorded load run.
	require.Len(t, cfg.LoadTest.Stages, 4)
	assert.Equal(t, StageConfig{Target: 5, Duration: 30000}, cfg.LoadTest.Stages[0])
	assert.Equal(t, StageConfig{Target: 15, Duration: 60000}, cfg.LoadTest.Stages[1])
	assert.Equal(t, StageConfig{Target: 0, Duration: 30000}, cfg.LoadTest.Stages[3])
}

// ==========================
// Validation Tests
// ==========================

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "unknown session backend",
			mutate:  func(c *Config) { c.Sessions.Backend = "postgres" },
			wantErr: "sessions.backend",
		},
		{
			name:    "redis backend needs an address",
			mutate:  func(c *Config) { c.Sessions.Backend = "redis" },
			wantErr: "sessions.redis.address",
		},
		{
			name:    "unknown seed",
			mutate:  func(c *Config) { c.Server.Seed = "everything" },
			wantErr: "server.seed",
		},
		{
			name:    "negative stage target",
			mutate:  func(c *Config) { c.LoadTest.Stages[0].Target = -1 },
			wantErr: "target",
		},
		{
			name:    "zero stage duration",
			mutate:  func(c *Config) { c.LoadTest.Stages[0].Duration = 0 },
			wantErr: "duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			applyDefaults(cfg)
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}
