// Package app wires configuration, logging, the dispatcher and the engine
// together for the tablekeys command line.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dshills/tablekeys/internal/config"
	"github.com/dshills/tablekeys/internal/dispatcher"
	"github.com/dshills/tablekeys/internal/dispatcher/handler"
	tablehandler "github.com/dshills/tablekeys/internal/dispatcher/handlers/table"
	"github.com/dshills/tablekeys/internal/engine"
	"github.com/dshills/tablekeys/internal/fixture"
)

// Options configures an Application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty means
	// config.DefaultFile in the working directory.
	ConfigPath string

	// LogLevel overrides log.level when set.
	LogLevel string

	// ReadOnly makes every engine reject document edits.
	ReadOnly bool

	// Metrics turns on dispatch metrics regardless of dispatcher.metrics.
	Metrics bool

	// LogOutput receives log records. Defaults to os.Stderr.
	LogOutput io.Writer
}

// Application holds the components shared by every replay.
type Application struct {
	opts       Options
	cfg        *config.Config
	logger     *slog.Logger
	dispatcher *dispatcher.Dispatcher
}

// New loads configuration and builds the dispatcher.
func New(opts Options) (*Application, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultFile
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return NewWithConfig(cfg, opts)
}

// NewWithConfig builds an Application from an already loaded config.
func NewWithConfig(cfg *config.Config, opts Options) (*Application, error) {
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.Metrics {
		cfg.Dispatcher.Metrics = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}

	a := &Application{
		opts:   opts,
		cfg:    cfg,
		logger: cfg.NewLogger(opts.LogOutput),
	}

	dcfg := dispatcher.DefaultConfig().
		WithPanicRecovery(cfg.Dispatcher.RecoverPanics).
		WithLogger(a.logger)
	if cfg.Dispatcher.Metrics {
		dcfg = dcfg.WithMetrics()
	}
	a.dispatcher = dispatcher.New(dcfg)

	h := tablehandler.NewHandler(
		tablehandler.WithStructural(cfg.StructuralModifier()),
		tablehandler.WithExit(cfg.ExitModifier()),
		tablehandler.WithLogger(a.logger),
	)
	if err := a.dispatcher.Register(h.Name(), h, 0); err != nil {
		return nil, err
	}
	a.dispatcher.RegisterPostHook(dispatcher.PostDispatchFunc(a.logDispatch))

	a.logger.Debug("application ready",
		"handlers", a.dispatcher.Registry().Names(),
		"structural", cfg.Keys.Structural,
		"exit", cfg.Keys.Exit,
		"metrics", cfg.Dispatcher.Metrics)
	return a, nil
}

// logDispatch writes one record per dispatched key.
func (a *Application) logDispatch(info dispatcher.Dispatched, result *handler.Result) {
	if result.IsError() {
		a.logger.Warn("dispatch failed",
			"key", info.Event.String(),
			"handler", info.Handler,
			"error", result.Error)
		return
	}
	a.logger.Debug("dispatch",
		"key", info.Event.String(),
		"handler", info.Handler,
		"status", result.Status.String(),
		"duration", info.Duration)
}

// Config returns the effective configuration.
func (a *Application) Config() *config.Config {
	return a.cfg
}

// Logger returns the application logger.
func (a *Application) Logger() *slog.Logger {
	return a.logger
}

// Dispatcher returns the shared dispatcher.
func (a *Application) Dispatcher() *dispatcher.Dispatcher {
	return a.dispatcher
}

// NewEngine starts an editing session on the fixture's document and selection.
func (a *Application) NewEngine(f *fixture.Fixture) (*engine.Engine, error) {
	opts := []engine.Option{
		engine.WithSelection(f.Selection),
		engine.WithDispatcher(a.dispatcher),
		engine.WithMaxUndoEntries(a.cfg.History.MaxEntries),
		engine.WithLogger(a.logger),
	}
	if a.opts.ReadOnly {
		opts = append(opts, engine.WithReadOnly())
	}
	return engine.New(f.Document, opts...)
}
