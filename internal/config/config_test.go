package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every override so file values and defaults show through.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvToken, EnvBaseURL, EnvVersion, EnvLogLevel, EnvScriptsDir} {
		t.Setenv(k, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	c := &Config{}

	assert.Equal(t, "", c.Token())
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, DefaultVersion, c.APIVersion())
	assert.Equal(t, 30*time.Second, c.Timeout())
	assert.Equal(t, "info", c.LogLevel())
	assert.Equal(t, DefaultScriptsDir(), c.ScriptsDir())
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	c := &Config{
		Notion:  Notion{Token: "file-token", BaseURL: "http://file.example"},
		Log:     Log{Level: "warn"},
		Scripts: Scripts{Dir: "/file/scripts"},
	}
	assert.Equal(t, "file-token", c.Token())
	assert.Equal(t, "http://file.example", c.BaseURL())

	t.Setenv(EnvToken, "env-token")
	t.Setenv(EnvBaseURL, "http://env.example")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvScriptsDir, "/env/scripts")

	assert.Equal(t, "env-token", c.Token())
	assert.Equal(t, "http://env.example", c.BaseURL())
	assert.Equal(t, "debug", c.LogLevel())
	assert.Equal(t, "/env/scripts", c.ScriptsDir())

	lvl, err := c.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestRequireToken(t *testing.T) {
	clearEnv(t)
	c := &Config{}

	_, err := c.RequireToken()
	require.ErrorIs(t, err, ErrNoToken)
	assert.Contains(t, err.Error(), "notionmcp config notion.token")

	t.Setenv(EnvToken, " secret ")
	tok, err := c.RequireToken()
	require.NoError(t, err)
	assert.Equal(t, "secret", tok)
}

func TestSet(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		key, value, want string
	}{
		{"notion.base_url", "http://localhost:9000/v1/", "http://localhost:9000/v1"},
		{"notion.version", "2025-09-03", "2025-09-03"},
		{"notion.timeout", "45", "45"},
		{"log.level", "WARN", "warn"},
		{"scripts.dir", "/tmp/scripts", "/tmp/scripts"},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			c := &Config{}
			require.NoError(t, c.Set(tc.key, tc.value))
			assert.True(t, c.IsSet(tc.key))

			got, err := c.Get(tc.key)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSet_Errors(t *testing.T) {
	tests := []struct {
		name, key, value string
		want             error
	}{
		{"unknown key", "author.name", "x", ErrUnknownKey},
		{"timeout not a number", "notion.timeout", "soon", ErrInvalidValue},
		{"timeout too large", "notion.timeout", "601", ErrInvalidValue},
		{"timeout zero", "notion.timeout", "0", ErrInvalidValue},
		{"bad level", "log.level", "loud", ErrInvalidValue},
		{"bad url", "notion.base_url", "ftp://example.com", ErrInvalidValue},
		{"relative url", "notion.base_url", "/v1", ErrInvalidValue},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := &Config{}
			assert.ErrorIs(t, c.Set(tc.key, tc.value), tc.want)
		})
	}
}

func TestGet_MasksToken(t *testing.T) {
	clearEnv(t)
	c := &Config{}
	require.NoError(t, c.Set("notion.token", "secret_abcdefghijkl"))

	got, err := c.Get("notion.token")
	require.NoError(t, err)
	assert.Equal(t, "********ijkl", got)
	assert.NotContains(t, c.All()["notion.token"], "secret")

	_, err = c.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "", MaskToken(""))
	assert.Equal(t, "*****", MaskToken("short"))
	assert.Equal(t, "********6789", MaskToken("ntn_0123456789"))
}

func TestAll_ListsEveryKey(t *testing.T) {
	clearEnv(t)
	all := (&Config{}).All()
	for _, k := range ValidKeys() {
		assert.Contains(t, all, k)
		assert.True(t, IsValidKey(k))
	}
	assert.False(t, IsValidKey("sync.files"))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"Info", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestSaveAndLoadLocal(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	c, err := LoadScope(ScopeLocal)
	require.NoError(t, err)
	require.NoError(t, c.Set("notion.token", "secret_token_value"))
	require.NoError(t, c.Set("notion.timeout", "10"))
	require.NoError(t, c.Save())

	info, err := os.Stat(LocalPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ScopeLocal, loaded.Scope())
	assert.Equal(t, "secret_token_value", loaded.Token())
	assert.Equal(t, 10*time.Second, loaded.Timeout())
}

func TestLoad_Malformed(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	require.NoError(t, os.MkdirAll(filepath.Dir(LocalPath()), 0755))
	require.NoError(t, os.WriteFile(LocalPath(), []byte("notion: [unclosed"), 0600))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed config file")
}

func TestLoad_InvalidValue(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	require.NoError(t, os.MkdirAll(filepath.Dir(LocalPath()), 0755))
	require.NoError(t, os.WriteFile(LocalPath(), []byte("notion:\n  timeout: 9000\n"), 0600))

	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalidValue)
}
