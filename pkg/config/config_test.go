package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromReaderLayersOnDefault(t *testing.T) {
	c, err := NewFromReader(strings.NewReader(`
api:
  baseURL: https://garage.example.com
screens: [parts, users]
`))
	require.NoError(t, err)
	require.NoError(t, c.Validate())
	assert.Equal(t, "https://garage.example.com", c.API.BaseURL)
	assert.Equal(t, []string{"parts", "users"}, c.Screens)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, 5, c.LowStockThreshold)
	assert.Len(t, Default.Screens, 6, "Default must not be modified")
}

func TestValidateRejects(t *testing.T) {
	testcases := map[string]string{
		"unknown screen":   "screens: [parts, garages]",
		"duplicate screen": "screens: [parts, parts]",
		"bad level":        "log: {level: loud}",
		"bad url":          "api: {baseURL: not-a-url}",
		"bad threshold":    "lowStockThreshold: 0",
	}
	for name, doc := range testcases {
		c, err := NewFromReader(strings.NewReader(doc))
		require.NoError(t, err, name)
		assert.Error(t, c.Validate(), name)
	}
}

func TestApplyEnv(t *testing.T) {
	c := Default
	env := map[string]string{EnvAPIURL: "http://10.0.0.2:9000", EnvLogLevel: "debug"}
	c.ApplyEnv(func(k string) (string, bool) { v, ok := env[k]; return v, ok })
	assert.Equal(t, "http://10.0.0.2:9000", c.API.BaseURL)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "", c.Log.File)
}

func TestLoadMissingFileUsesDefault(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default.API.BaseURL, c.API.BaseURL)
}

func TestLoadFile(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://override:1")
	path := filepath.Join(t.TempDir(), "wrench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: {baseURL: 'http://file:2'}\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://override:1", c.API.BaseURL)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, loadDotEnv(filepath.Join(dir, "missing.env")))

	bad := filepath.Join(dir, "bad.env")
	require.NoError(t, os.WriteFile(bad, []byte("WRENCH_API_URL=\"http://unterminated\n"), 0o600))
	err := loadDotEnv(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
}
