package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noelruault/lazyops/internal/auth"
	"github.com/noelruault/lazyops/internal/i18n"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LAZYOPS_BASE_URL", "LAZYOPS_WEB_URL", "LAZYOPS_TOKEN", "LAZYOPS_CSRF_TOKEN",
		"LAZYOPS_TENANT", "LAZYOPS_LOCALE", "LAZYOPS_LOG_LEVEL", "LAZYOPS_LOG_FORMAT",
		"LAZYOPS_EXPORT_BUCKET", "LAZYOPS_EXPORT_PREFIX", "LAZYOPS_CAPABILITIES",
		"AWS_REGION", "AWS_DEFAULT_REGION",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultBaseURL, cfg.WebURL)
	assert.Equal(t, "zh", cfg.Locale)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, time.Duration(0), cfg.API.Timeout)
	assert.False(t, cfg.Export.Enabled())
	assert.False(t, cfg.Auth().Ready())
	assert.Equal(t, i18n.ZH, cfg.Language())
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
base_url: https://ops.example.com/
token: file-token
csrf_token: csrf-1
tenant: t-1
capabilities: [alert:read]
locale: en
api:
  timeout: 15s
export:
  bucket: ops-exports
  prefix: console
log:
  format: console
`), 0o600))

	t.Setenv("LAZYOPS_TOKEN", "env-token")
	t.Setenv("LAZYOPS_CAPABILITIES", "alert:write, billing:write,,")
	t.Setenv("AWS_REGION", "eu-west-1")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://ops.example.com", cfg.BaseURL)
	assert.Equal(t, "env-token", cfg.Token)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, "ops-exports", cfg.Export.Bucket)
	assert.Equal(t, "eu-west-1", cfg.Export.Region)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, i18n.EN, cfg.Language())

	ac := cfg.Auth()
	assert.True(t, ac.Ready())
	assert.Equal(t, "csrf-1", ac.CSRFToken())
	assert.Equal(t, "t-1", ac.TenantID())
	assert.True(t, ac.Can(auth.AlertWrite))
	assert.True(t, ac.Can(auth.BillingWrite))
	assert.False(t, ac.Can(auth.AlertRead))
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("base_url: [unterminated"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestGetDefaultRegion(t *testing.T) {
	clearEnv(t)
	assert.Equal(t, "us-east-1", GetDefaultRegion())

	t.Setenv("AWS_DEFAULT_REGION", "ap-east-1")
	assert.Equal(t, "ap-east-1", GetDefaultRegion())

	t.Setenv("AWS_REGION", "cn-north-1")
	assert.Equal(t, "cn-north-1", GetDefaultRegion())
}

func TestLogPath(t *testing.T) {
	cfg := &Config{Log: LogConfig{File: "/tmp/custom.log"}}
	path, err := cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.log", path)

	cfg.Log.File = ""
	path, err = cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, LogFileName, filepath.Base(path))
}
