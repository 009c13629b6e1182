package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("list shows every key", func(t *testing.T) {
		env := newTestEnv(t).without("NOTION_TOKEN")

		out := env.run("config")
		for _, key := range []string{"notion.token", "notion.base_url", "notion.version", "notion.timeout", "log.level", "scripts.dir"} {
			env.contains(out, key)
		}
	})

	t.Run("token is masked", func(t *testing.T) {
		env := newTestEnv(t).without("NOTION_TOKEN")

		out := env.run("config", "notion.token", "secret_abcdefgh1234")
		env.contains(out, "********1234")
		assert.NotContains(t, out, "secret_abcdefgh")

		out = env.run("config", "notion.token")
		env.contains(out, "********1234")
	})

	t.Run("global file is written", func(t *testing.T) {
		env := newTestEnv(t)

		env.run("config", "notion.timeout", "60")
		data, err := os.ReadFile(filepath.Join(env.dir, "config", "notionmcp", "config.yaml"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "timeout: 60")

		out := env.run("config", "notion.timeout")
		env.contains(out, "60")
	})

	t.Run("local scope", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("config", "log.level", "DEBUG", "--local")
		env.contains(out, "log.level = debug (local)")
		_, err := os.Stat(filepath.Join(env.dir, ".notionmcp", "config.yaml"))
		assert.NoError(t, err)
	})
}

func TestConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown key", []string{"config", "author.name", "x"}},
		{"bad timeout", []string{"config", "notion.timeout", "soon"}},
		{"timeout out of range", []string{"config", "notion.timeout", "0"}},
		{"bad level", []string{"config", "log.level", "loud"}},
		{"bad url", []string{"config", "notion.base_url", "ftp://example.com"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			_, err := env.runErr(tc.args...)
			assert.Error(t, err)
		})
	}
}

func TestConfig_TokenFromFile(t *testing.T) {
	env := newTestEnv(t).without("NOTION_TOKEN")

	// The hint names the command that fixes the missing token.
	out, err := env.runErr("page", testPageID)
	assert.Error(t, err)
	env.contains(out, "notionmcp config notion.token")

	env.run("config", "notion.token", testToken)
	out = env.run("page", testPageID)
	env.contains(out, "Page info:")
}

func TestGuide(t *testing.T) {
	t.Run("main guide", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("guide")
		env.contains(out, "# notionmcp")
	})

	t.Run("topic", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("guide", "scripts")
		env.contains(out, "# Script files")
	})

	t.Run("lists available on not found", func(t *testing.T) {
		env := newTestEnv(t)

		out, err := env.runErr("guide", "nonexistent")
		assert.Error(t, err)
		env.contains(out, "Available:")
		env.contains(out, "markdown")
	})

	t.Run("json", func(t *testing.T) {
		env := newTestEnv(t)

		out, err := env.runStdout("guide", "tools", "-o", "json")
		require.NoError(t, err)
		var got map[string]string
		env.decodeJSON(out, &got)
		assert.Equal(t, "tools", got["topic"])
		assert.Contains(t, got["content"], "Page info:")
	})
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t).without("NOTION_TOKEN")

	out := env.run("version")
	env.contains(out, "Build Tag:")
	env.contains(out, "Notion API:   2022-06-28")
	env.contains(out, "Extensions:   ")

	out, err := env.runStdout("version", "-o", "json")
	require.NoError(t, err)
	var got struct {
		APIVersion string   `json:"api_version"`
		Extensions []string `json:"extensions"`
	}
	env.decodeJSON(out, &got)
	assert.Equal(t, "2022-06-28", got.APIVersion)
	assert.ElementsMatch(t, []string{"core", "database", "page", "script"}, got.Extensions)
}

func TestAudit(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("audit")
	env.contains(out, "No audit entries.")

	env.run("search", "road")
	_, _ = env.runErr("page", "ffffffffffffffffffffffffffffffff")

	out = env.run("audit")
	env.contains(out, "tools:search_notion")
	env.contains(out, "tools:get_page")

	out = env.run("audit", "--source", "tools:search_notion")
	env.contains(out, "tools:search_notion")
	assert.NotContains(t, out, "tools:get_page")

	out, err := env.runStdout("audit", "-n", "1", "-o", "json")
	require.NoError(t, err)
	var got []map[string]any
	env.decodeJSON(out, &got)
	assert.Len(t, got, 1)
}

func TestLogLevel(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.runErr("version", "--log-level", "verbose")
	assert.Error(t, err)
}
