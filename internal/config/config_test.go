package config

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/tablekeys/internal/input/key"
)

type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	s, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(s), nil
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, key.ModCtrl|key.ModShift, cfg.StructuralModifier())
	assert.Equal(t, key.ModAlt, cfg.ExitModifier())
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.Equal(t, 1000, cfg.History.MaxEntries)
	assert.True(t, cfg.Dispatcher.RecoverPanics)
	assert.False(t, cfg.Dispatcher.Metrics)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("/none.toml", WithFS(memFS{}), WithoutEnv())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadLayers(t *testing.T) {
	files := memFS{"/tk.toml": `
[log]
level = "debug"

[keys]
structural = "Ctrl+Alt"

[history]
max_entries = 25
`}
	t.Setenv("TK_HISTORY_MAX_ENTRIES", "7")
	t.Setenv("TK_EXIT", "Meta")

	cfg, err := Load("/tk.toml", WithFS(files), WithEnvPrefix("TK_"))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, key.ModCtrl|key.ModAlt, cfg.StructuralModifier())
	assert.Equal(t, key.ModMeta, cfg.ExitModifier())
	assert.Equal(t, 7, cfg.History.MaxEntries, "environment overrides the file")
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	files := memFS{"/tk.toml": "[keys]\nstructual = \"Ctrl\"\n"}
	_, err := Load("/tk.toml", WithFS(files), WithoutEnv())
	require.Error(t, err)
}

func TestLoadFromReader(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(`
[log]
format = "json"

[dispatcher]
metrics = true
`))
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Dispatcher.Metrics)
	assert.Equal(t, "Ctrl+Shift", cfg.Keys.Structural)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"unknown modifier", func(c *Config) { c.Keys.Structural = "Hyper" }, "keys.structural"},
		{"empty structural", func(c *Config) { c.Keys.Structural = "" }, "keys.structural"},
		{"exit equals structural", func(c *Config) { c.Keys.Exit = "C-S" }, "keys.exit"},
		{"zero history", func(c *Config) { c.History.MaxEntries = 0 }, "history.max_entries"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidValue)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.path, verr.Path)
		})
	}

	cfg := Default()
	cfg.Keys.Exit = "none"
	assert.NoError(t, cfg.Validate(), "an empty exit chord is allowed")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.Log.Format = "json"
	cfg.Log.Level = "warn"

	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "key", "Tab")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"key":"Tab"`)
}

func TestString(t *testing.T) {
	s := Default().String()
	assert.Contains(t, s, "[keys]")
	assert.Contains(t, s, "Ctrl+Shift")
	assert.Contains(t, s, "max_entries = 1000")
}
