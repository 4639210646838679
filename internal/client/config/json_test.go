package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/flagx"
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

func Test_parseJSON(t *testing.T) {
	t.Setenv(flagx.ConfigEnvVar, "")

	t.Run("loads from flag", func(t *testing.T) {
		path := writeTempJSON(t, "", "", map[string]any{
			"server_url":            "http://www.example:9000",
			"online_check_interval": "10s",
		})
		var c Config
		c.LoadDefaults()

		require.NoError(t, parseJSON(&c, []string{"-config", path}))
		assert.Equal(t, "http://www.example:9000", c.ServerURL)
		assert.Equal(t, 10*time.Second, c.OnlineCheckInterval)
		assert.Equal(t, 10*time.Second, c.RequestTimeout)
	})

	t.Run("loads from environment", func(t *testing.T) {
		path := writeTempJSON(t, "", "", map[string]any{"request_timeout": 2000000000})
		t.Setenv(flagx.ConfigEnvVar, path)

		var c Config
		c.LoadDefaults()
		require.NoError(t, parseJSON(&c, nil))
		assert.Equal(t, 2*time.Second, c.RequestTimeout)
		assert.Equal(t, "http://127.0.0.1:8080", c.ServerURL)
	})

	t.Run("invalid json", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

		var c Config
		assert.Error(t, parseJSON(&c, []string{"-c", path}))
	})
}
