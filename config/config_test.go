package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
oauth:
  client_id: file-id
  client_secret: file-secret
  redirect_uri: https://app.example.com/callback
  scope: read write
  refresh_token: rt-1
api:
  timeout: 10s
  firm_id: 42
filters:
  unpaid: "!Paid"
logging:
  level: debug
  format: json
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "file-id", cfg.OAuth.ClientID)
	assert.Equal(t, "file-secret", cfg.OAuth.ClientSecret)
	assert.Equal(t, "read write", cfg.OAuth.Scope)
	assert.True(t, cfg.OAuth.HasToken())
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, int64(42), cfg.API.FirmID)
	assert.Equal(t, "https://www.facturation.pro", cfg.API.BaseURL)
	assert.Equal(t, "!Paid", cfg.Filters["unpaid"])
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Logging.Color)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FACTURATION_OAUTH_CLIENT_SECRET", "env-secret")
	t.Setenv("FACTURATION_API_FIRM_ID", "7")
	t.Setenv("FACTURATION_LOGGING_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "file-id", cfg.OAuth.ClientID)
	assert.Equal(t, "env-secret", cfg.OAuth.ClientSecret)
	assert.Equal(t, int64(7), cfg.API.FirmID)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadEnvOnly(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FACTURATION_OAUTH_CLIENT_ID", "env-id")
	t.Setenv("FACTURATION_OAUTH_CLIENT_SECRET", "env-secret")
	t.Setenv("FACTURATION_API_TIMEOUT", "5s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-id", cfg.OAuth.ClientID)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.False(t, cfg.OAuth.HasToken())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	keys := []string{"FACTURATION_OAUTH_CLIENT_ID", "FACTURATION_OAUTH_CLIENT_SECRET"}
	for _, key := range keys {
		require.NoError(t, os.Unsetenv(key))
	}
	t.Cleanup(func() {
		for _, key := range keys {
			_ = os.Unsetenv(key)
		}
	})

	dotenv := "FACTURATION_OAUTH_CLIENT_ID=dotenv-id\nFACTURATION_OAUTH_CLIENT_SECRET=dotenv-secret\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(dotenv), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv-id", cfg.OAuth.ClientID)
	assert.Equal(t, "dotenv-secret", cfg.OAuth.ClientSecret)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, "oauth:\n  client_id: id\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			OAuth:   OAuthConfig{ClientID: "id", ClientSecret: "secret"},
			API:     APIConfig{Timeout: 30 * time.Second},
			Logging: LoggingConfig{Level: "info", Format: "console"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing client id",
			mutate:  func(c *Config) { c.OAuth.ClientID = "" },
			wantErr: "oauth.client_id is required",
		},
		{
			name:    "placeholder secret",
			mutate:  func(c *Config) { c.OAuth.ClientSecret = "your-client-secret" },
			wantErr: "oauth.client_secret",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.API.Timeout = 0 },
			wantErr: "api.timeout must be positive",
		},
		{
			name:    "negative firm",
			mutate:  func(c *Config) { c.API.FirmID = -1 },
			wantErr: "invalid api.firm_id",
		},
		{
			name:    "bad level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid logging level",
		},
		{
			name:    "bad format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format",
		},
		{
			name:    "empty filter",
			mutate:  func(c *Config) { c.Filters = FilterConfig{"blank": " "} },
			wantErr: "empty expression",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
