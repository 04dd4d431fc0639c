package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/tablekeys/internal/watcher"
)

func newWatchCommand(g *globalFlags) *cobra.Command {
	flags := &replayFlags{}
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "watch FIXTURE [KEY...]",
		Short: "Replay keys every time the fixture changes",
		Long: `Run a replay, then run it again each time FIXTURE is written.
Stop with Ctrl+C.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.validate(); err != nil {
				return err
			}
			return watchFile(cmd.Context(), cmd, g, args[0], args[1:], flags, delay)
		},
	}
	flags.register(cmd)
	cmd.Flags().DurationVar(&delay, "debounce", watcher.DefaultDebounceDelay, "wait this long after the last change before replaying")
	return cmd
}

func watchFile(ctx context.Context, cmd *cobra.Command, g *globalFlags, path string, keys []string, flags *replayFlags, delay time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	a, err := g.newApp(cmd, flags.stats)
	if err != nil {
		return err
	}
	logger := a.Logger()

	inner, err := watcher.NewFSNotifyWatcher(watcher.WithEventFilter(func(ev watcher.Event) bool {
		return ev.Op.IsChange()
	}))
	if err != nil {
		return err
	}
	w := watcher.NewDebouncedWatcher(inner, delay)
	defer func() { _ = w.Close() }()

	if err := w.WatchFile(path); err != nil {
		return err
	}

	replay := func() {
		_, _ = fmt.Fprintf(out, "== %s (%s)\n", path, time.Now().Format(time.TimeOnly))
		if err := replayFile(out, a, path, keys, flags); err != nil {
			printError(out, err)
		}
	}
	replay()

	onChange := func(ev watcher.Event) {
		logger.Debug("fixture changed", "path", ev.Path, "op", ev.Op.String())
		replay()
	}

	logger.Info("watching fixture", "path", path, "debounce", delay)
	err = watcher.Run(ctx, w, onChange, func(err error) {
		logger.Warn("watch error", "error", err)
	})
	if errors.Is(err, context.Canceled) {
		// A save inside the debounce window still gets its replay.
		if n := w.Drain(onChange); n > 0 {
			logger.Info("replayed pending change before exit", "events", n)
		}
		return nil
	}
	return err
}

func printError(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "error: %v\n", err)
}
