package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ADDR", "WEB_DIR", "TZ_NAME", "LOG_LEVEL", "LOG_FORMAT", "SEED_DAYS"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glucolog.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
addr = ":9090"
web_dir = "dist"
timezone = "Asia/Singapore"
seed_days = 21

[log]
level = "debug"
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "dist", cfg.WebDir)
	assert.Equal(t, 21, cfg.SeedDays)
	assert.Equal(t, LogConfig{Level: "debug", Format: "json"}, cfg.Log)

	t.Setenv("ADDR", ":7070")
	t.Setenv("SEED_DAYS", "0")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, 0, cfg.SeedDays)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "dist", cfg.WebDir)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Singapore", loc.String())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "bad toml", file: "addr = "},
		{name: "bad seed days", env: map[string]string{"SEED_DAYS": "lots"}},
		{name: "negative seed days", env: map[string]string{"SEED_DAYS": "-3"}},
		{name: "bad timezone", env: map[string]string{"TZ_NAME": "Mars/Olympus"}},
		{name: "bad level", env: map[string]string{"LOG_LEVEL": "chatty"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			path := ""
			if tc.file != "" {
				path = writeConfig(t, tc.file)
			}
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.Log = LogConfig{Level: "warn", Format: "json"}

	log := cfg.NewLogger(&buf)
	log.Info("dropped")
	log.Warn("kept", "k", 1)

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.True(t, strings.HasPrefix(out, "{"), "expected JSON output, got %q", out)
	assert.Contains(t, out, `"msg":"kept"`)
}
