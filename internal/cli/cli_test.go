package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/tablekeys/internal/app"
	"github.com/dshills/tablekeys/internal/fixture"
)

const grid = `document:
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

// syncBuffer is a bytes.Buffer safe for a writer goroutine and a reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.toml"), "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestReplayText(t *testing.T) {
	path := writeFixture(t, grid)

	out, err := execute(t, "replay", path, "Tab", "Left")
	require.NoError(t, err)
	assert.Contains(t, out, "Tab: apply\n")
	assert.Contains(t, out, "Left: decline\n")
	assert.Contains(t, out, "│ | │")
	assert.Equal(t, 1, strings.Count(out, "|"))
}

func TestReplayYAML(t *testing.T) {
	path := writeFixture(t, grid)

	out, err := execute(t, "replay", path, "-q", "-o", "yaml", "Up")
	require.NoError(t, err)
	assert.NotContains(t, out, "Up: apply")

	f, err := fixture.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, "b.text", f.Selection.Focus.Key.String())
}

func TestReplayStats(t *testing.T) {
	path := writeFixture(t, grid)

	out, err := execute(t, "replay", path, "--stats", "Left", "Left", "Tab")
	require.NoError(t, err)
	assert.Contains(t, out, "Left")
	assert.Contains(t, out, "TOTAL")
}

func TestReplayErrors(t *testing.T) {
	path := writeFixture(t, grid)

	_, err := execute(t, "replay", path, "Up", "Hyper+X")
	require.ErrorIs(t, err, app.ErrBadKey)

	_, err = execute(t, "replay", path, "-o", "json")
	require.ErrorContains(t, err, "unknown output format")

	_, err = execute(t, "replay", filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = execute(t, "replay")
	require.Error(t, err)

	out, err := execute(t, "--read-only", "replay", path, "Tab")
	require.Error(t, err)
	assert.Contains(t, out, "Tab: error")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "tablekeys "+Version))
}

func TestWatchReplaysOnChange(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file watching test in short mode")
	}
	path := writeFixture(t, grid)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "none.toml"), "--log-level", "error",
		"watch", path, "--debounce", "20ms", "-q"})

	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Count(out.String(), "== ") == 1
	}, 2*time.Second, 10*time.Millisecond)

	changed := strings.Replace(grid, "text: A}", "text: Changed}", 1)
	require.NoError(t, os.WriteFile(path, []byte(changed), 0o644))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Changed")
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchReplaysPendingChangeOnExit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file watching test in short mode")
	}
	path := writeFixture(t, grid)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "none.toml"), "--log-level", "error",
		"watch", path, "--debounce", "1h", "-q"})

	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Count(out.String(), "== ") == 1
	}, 2*time.Second, 10*time.Millisecond)

	changed := strings.Replace(grid, "text: B}", "text: Saved}", 1)
	require.NoError(t, os.WriteFile(path, []byte(changed), 0o644))
	time.Sleep(300 * time.Millisecond)
	assert.NotContains(t, out.String(), "Saved", "still inside the debounce window")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
	assert.Equal(t, 2, strings.Count(out.String(), "== "))
	assert.Contains(t, out.String(), "Saved")
}
