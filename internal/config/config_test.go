package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8095, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)

	assert.Equal(t, "./model", cfg.Model.Dir)
	assert.Equal(t, "./registries/link-types.json", cfg.Model.LinkRegistry)
	assert.Equal(t, "./registries/relationship-types.json", cfg.Model.RelationshipRegistry)
	assert.True(t, cfg.Model.Watch)

	assert.False(t, cfg.Validation.Strict)
	assert.Equal(t, 5, cfg.Validation.MaxHops)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 100, cfg.Security.RateLimit)
	assert.Equal(t, []string{"*"}, cfg.Security.AllowedOrigins)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
model:
  dir: /srv/model
  watch: false
validation:
  strict: true
  max_hops: 3
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "/srv/model", cfg.Model.Dir)
	assert.False(t, cfg.Model.Watch)
	assert.True(t, cfg.Validation.Strict)
	assert.Equal(t, 3, cfg.Validation.MaxHops)

	// Untouched keys keep their defaults.
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "./registries/link-types.json", cfg.Model.LinkRegistry)
}

func TestLoad_MissingExplicitFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8095, cfg.Server.Port)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Setenv("AL_SERVER_PORT", "8200")
	t.Setenv("AL_VALIDATION_MAX_HOPS", "7")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8200, cfg.Server.Port)
	assert.Equal(t, 7, cfg.Validation.MaxHops)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "port out of range",
			env:     map[string]string{"AL_SERVER_PORT": "70000"},
			wantErr: "invalid server port",
		},
		{
			name:    "zero max hops",
			env:     map[string]string{"AL_VALIDATION_MAX_HOPS": "0"},
			wantErr: "invalid max hops",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not: a mapping"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
