package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dshills/tablekeys/internal/config/loader"
	"github.com/dshills/tablekeys/internal/input/key"
)

// DefaultFile is the config file name looked up when no path is given.
const DefaultFile = "tablekeys.toml"

// Config holds every tablekeys setting.
type Config struct {
	Log        LogConfig        `toml:"log"`
	Keys       KeysConfig       `toml:"keys"`
	History    HistoryConfig    `toml:"history"`
	Dispatcher DispatcherConfig `toml:"dispatcher"`
}

// LogConfig controls the slog logger built by NewLogger.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `toml:"level"`

	// Format is "text" or "json".
	Format string `toml:"format"`
}

// KeysConfig selects the modifier combinations the table handler reacts to.
type KeysConfig struct {
	// Structural is the chord that turns arrows and Delete into row and
	// column edits, e.g. "Ctrl+Shift".
	Structural string `toml:"structural"`

	// Exit is the chord that leaves the table with vertical arrows.
	Exit string `toml:"exit"`
}

// HistoryConfig bounds the undo stack.
type HistoryConfig struct {
	MaxEntries int `toml:"max_entries"`
}

// DispatcherConfig mirrors dispatcher.Config.
type DispatcherConfig struct {
	RecoverPanics bool `toml:"recover_panics"`
	Metrics       bool `toml:"metrics"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Keys: KeysConfig{
			Structural: "Ctrl+Shift",
			Exit:       "Alt",
		},
		History: HistoryConfig{
			MaxEntries: 1000,
		},
		Dispatcher: DispatcherConfig{
			RecoverPanics: true,
		},
	}
}

type loadOptions struct {
	fs        loader.FileSystem
	envPrefix string
	useEnv    bool
}

// Option configures Load.
type Option func(*loadOptions)

// WithFS reads the config file through fs instead of the OS.
func WithFS(fs loader.FileSystem) Option {
	return func(o *loadOptions) {
		o.fs = fs
	}
}

// WithEnvPrefix overrides the TABLEKEYS_ environment prefix.
func WithEnvPrefix(prefix string) Option {
	return func(o *loadOptions) {
		o.envPrefix = prefix
		o.useEnv = true
	}
}

// WithoutEnv ignores environment variables.
func WithoutEnv() Option {
	return func(o *loadOptions) {
		o.useEnv = false
	}
}

// Load builds a Config from defaults, the TOML file at path and the
// environment. A missing file is not an error; an empty path skips the file.
// The result is validated.
func Load(path string, opts ...Option) (*Config, error) {
	o := loadOptions{
		fs:        loader.DefaultFS(),
		envPrefix: loader.DefaultEnvPrefix,
		useEnv:    true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var layers []map[string]any
	if path != "" {
		m, err := loader.ReadTOML(o.fs, path)
		if err != nil {
			return nil, err
		}
		layers = append(layers, m)
	}
	if o.useEnv {
		m, err := loader.NewEnvLoader(o.envPrefix).Load()
		if err != nil {
			return nil, err
		}
		layers = append(layers, m)
	}

	return fromMap(loader.Merge(layers...))
}

// LoadFromReader builds a Config from defaults and TOML read from r.
// The environment is not consulted.
func LoadFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	m, err := loader.ParseTOML("<reader>", data)
	if err != nil {
		return nil, err
	}
	return fromMap(m)
}

func fromMap(m map[string]any) (*Config, error) {
	cfg := Default()
	if err := loader.Decode(m, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting and returns the first failure.
func (c *Config) Validate() error {
	if _, ok := parseLevel(c.Log.Level); !ok {
		return &ValidationError{Path: "log.level", Message: "must be debug, info, warn or error", Value: c.Log.Level}
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return &ValidationError{Path: "log.format", Message: "must be text or json", Value: c.Log.Format}
	}

	structural, err := key.ParseModifiers(c.Keys.Structural)
	if err != nil {
		return &ValidationError{Path: "keys.structural", Message: err.Error(), Value: c.Keys.Structural}
	}
	if structural.IsEmpty() {
		return &ValidationError{Path: "keys.structural", Message: "must name at least one modifier", Value: c.Keys.Structural}
	}
	exit, err := key.ParseModifiers(c.Keys.Exit)
	if err != nil {
		return &ValidationError{Path: "keys.exit", Message: err.Error(), Value: c.Keys.Exit}
	}
	if exit == structural {
		return &ValidationError{Path: "keys.exit", Message: "must differ from keys.structural", Value: c.Keys.Exit}
	}

	if c.History.MaxEntries <= 0 {
		return &ValidationError{Path: "history.max_entries", Message: "must be positive", Value: c.History.MaxEntries}
	}
	return nil
}

// StructuralModifier returns the parsed keys.structural chord.
// It returns ModNone for an invalid setting; call Validate first.
func (c *Config) StructuralModifier() key.Modifier {
	m, _ := key.ParseModifiers(c.Keys.Structural)
	return m
}

// ExitModifier returns the parsed keys.exit chord.
func (c *Config) ExitModifier() key.Modifier {
	m, _ := key.ParseModifiers(c.Keys.Exit)
	return m
}

// SlogLevel returns log.level as a slog.Level, defaulting to Info.
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

// NewLogger builds a logger writing to w in the configured format and level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// String renders the config as TOML.
func (c *Config) String() string {
	var b strings.Builder
	if err := loader.Encode(&b, c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
