package app_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/tablekeys/internal/app"
	"github.com/dshills/tablekeys/internal/config"
	"github.com/dshills/tablekeys/internal/dispatcher/handler"
	"github.com/dshills/tablekeys/internal/engine"
	"github.com/dshills/tablekeys/internal/fixture"
	"github.com/dshills/tablekeys/internal/table"
)

const grid = `
document:
  type: document
  nodes:
    - type: table
      key: t
      nodes:
        - type: row
          nodes:
            - {type: cell, key: a, text: A}
            - {type: cell, key: b, text: B}
        - type: row
          nodes:
            - {type: cell, key: c, text: C}
            - {type: cell, key: d, text: D}
selection:
  anchor: {key: d, offset: 0}
`

func newApp(t *testing.T, mutate func(*config.Config), opts app.Options) (*app.Application, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	var logs bytes.Buffer
	opts.LogOutput = &logs
	a, err := app.NewWithConfig(cfg, opts)
	require.NoError(t, err)
	return a, &logs
}

func parse(t *testing.T, y string) *fixture.Fixture {
	t.Helper()
	f, err := fixture.Parse([]byte(y))
	require.NoError(t, err)
	return f
}

func locate(t *testing.T, run *app.Run) table.Info {
	t.Helper()
	doc, sel := run.Snapshot()
	info, err := table.Locate(doc, sel)
	require.NoError(t, err)
	return info
}

func shape(t *testing.T, run *app.Run) (width, height int) {
	t.Helper()
	doc, _ := run.Snapshot()
	tbl, ok := doc.Get("t")
	require.True(t, ok)
	width, height, err := table.Shape(tbl)
	require.NoError(t, err)
	return width, height
}

func TestReplayTabFromCorner(t *testing.T) {
	a, _ := newApp(t, nil, app.Options{})

	run, err := a.Replay(parse(t, grid), "Tab")
	require.NoError(t, err)
	require.Len(t, run.Steps, 1)
	assert.Equal(t, "Tab", run.Steps[0].Key)
	assert.Equal(t, handler.StatusApply, run.Steps[0].Status)

	info := locate(t, run)
	assert.Equal(t, 3, info.Height)
	assert.Equal(t, 0, info.X)
	assert.Equal(t, 2, info.Y)
}

func TestReplayUsesFixtureKeysFirst(t *testing.T) {
	a, _ := newApp(t, nil, app.Options{})
	f := parse(t, grid)
	f.Keys = []string{"Ctrl+Shift+Right"}

	run, err := a.Replay(f, ":undo", ":redo", ":redo")
	require.NoError(t, err)
	require.Len(t, run.Steps, 4)
	assert.Equal(t, "Ctrl+Shift+Right", run.Steps[0].Key)
	assert.Equal(t, handler.StatusApply, run.Steps[1].Status)
	assert.Equal(t, handler.StatusApply, run.Steps[2].Status)
	assert.Equal(t, handler.StatusSuppress, run.Steps[3].Status, "redo with an empty stack")
	assert.Equal(t, ":undo: apply (fixture keys)", run.Steps[1].String())

	width, _ := shape(t, run)
	assert.Equal(t, 3, width)
}

func TestReplayUndoesFixtureKeysTogether(t *testing.T) {
	a, _ := newApp(t, nil, app.Options{})
	f := parse(t, grid)
	f.Keys = []string{"Ctrl+Shift+Right", "Ctrl+Shift+Down", "Tab"}

	run, err := a.Replay(f, "Ctrl+Shift+Up", ":undo", ":undo")
	require.NoError(t, err)
	require.Len(t, run.Steps, 6)
	assert.Equal(t, "Ctrl+Shift+Up", run.Steps[4].Message)
	assert.Equal(t, app.FixtureGroup, run.Steps[5].Message)

	width, height := shape(t, run)
	assert.Equal(t, [2]int{2, 2}, [2]int{width, height}, "one undo reverts every fixture key")
	assert.Equal(t, 2, run.Engine.RedoCount())
}

func TestReplayStopsAtBadKey(t *testing.T) {
	a, _ := newApp(t, nil, app.Options{})
	run, err := a.Replay(parse(t, grid), "Up", "Hyper+Q", "Down")
	require.ErrorIs(t, err, app.ErrBadKey)
	require.Len(t, run.Steps, 1)
}

const ragged = `
document:
  type: table
  nodes:
    - {type: row, nodes: [{type: cell, key: a, text: A}, {type: cell, text: B}]}
    - {type: row, nodes: [{type: cell, text: C}]}
`

func TestReplayReportsErrors(t *testing.T) {
	a, _ := newApp(t, nil, app.Options{})
	run, err := a.Replay(parse(t, ragged), "Tab")
	require.ErrorIs(t, err, engine.ErrKeyFailed)
	require.ErrorIs(t, err, table.ErrMalformedTable)
	require.Len(t, run.Steps, 1)
	assert.Contains(t, run.Steps[0].String(), "Tab: error")
}

func TestConfiguredModifiers(t *testing.T) {
	a, _ := newApp(t, func(c *config.Config) {
		c.Keys.Structural = "Meta"
	}, app.Options{})

	run, err := a.Replay(parse(t, grid), "Ctrl+Shift+Down")
	require.NoError(t, err)
	_, height := shape(t, run)
	assert.Equal(t, 2, height, "the default chord no longer inserts")

	run, err = a.Replay(parse(t, grid), "Meta+Down")
	require.NoError(t, err)
	_, height = shape(t, run)
	assert.Equal(t, 3, height)
}

func TestReadOnly(t *testing.T) {
	a, _ := newApp(t, nil, app.Options{ReadOnly: true})
	run, err := a.Replay(parse(t, grid), "Up")
	require.NoError(t, err)
	assert.Equal(t, 0, locate(t, run).Y)

	_, err = a.Replay(parse(t, grid), "Tab")
	require.ErrorIs(t, err, engine.ErrReadOnly)
}

func TestMetricsAndLogs(t *testing.T) {
	a, logs := newApp(t, func(c *config.Config) {
		c.Dispatcher.Metrics = true
		c.Log.Level = "debug"
	}, app.Options{})

	_, err := a.Replay(parse(t, grid), "Left", "Tab")
	require.NoError(t, err)

	m := a.Dispatcher().Metrics()
	require.NotNil(t, m)
	assert.Equal(t, uint64(2), m.TotalDispatches())
	assert.Contains(t, logs.String(), "msg=dispatch key=Left handler=\"\" status=decline")
	assert.Contains(t, logs.String(), "msg=dispatch key=Tab handler=table status=apply")
	assert.Contains(t, logs.String(), "replay finished")
}

func TestFailedDispatchIsLogged(t *testing.T) {
	a, logs := newApp(t, nil, app.Options{})
	_, err := a.Replay(parse(t, ragged), "Tab")
	require.ErrorIs(t, err, table.ErrMalformedTable)
	assert.Contains(t, logs.String(), "level=WARN msg=\"dispatch failed\" key=Tab handler=table")
}

func TestNewLoadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tk.toml")
	require.NoError(t, os.WriteFile(path, []byte("[history]\nmax_entries = 3\n"), 0o644))

	a, err := app.New(app.Options{ConfigPath: path, LogLevel: "error", LogOutput: &bytes.Buffer{}})
	require.NoError(t, err)
	assert.Equal(t, 3, a.Config().History.MaxEntries)
	assert.Equal(t, "error", a.Config().Log.Level)

	_, err = app.New(app.Options{ConfigPath: path, LogLevel: "chatty"})
	require.ErrorIs(t, err, app.ErrConfig)
}
