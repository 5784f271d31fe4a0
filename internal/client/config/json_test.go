package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"api_base_url":    "https://jobs.example.com/api",
		"request_timeout": "15s",
		"page_size":       50,
		"status_policy":   "forward",
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "https://jobs.example.com/api", cfg.APIBaseURL)
		assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 50, cfg.PageSize)
		assert.Equal(t, PolicyForward, cfg.StatusPolicy)
		// keys absent from the file keep the defaults
		assert.Equal(t, "jobboard.db", cfg.SessionDB)
	})

	t.Run("nanosecond timeout", func(t *testing.T) {
		p := writeTempJSON(t, dir, "ns.json", map[string]any{"request_timeout": 2000000000})
		os.Args = []string{"testbin", "-c", p}

		cfg := &Config{}
		parseJson(cfg)
		assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{APIBaseURL: "http://defaults/api", RequestTimeout: 42 * time.Second}
		parseJson(cfg)

		assert.Equal(t, "http://defaults/api", cfg.APIBaseURL)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "nope.json")}
		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
