package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/tablekeys/internal/app"
	"github.com/dshills/tablekeys/internal/fixture"
	"github.com/dshills/tablekeys/internal/render"
)

// Output formats.
const (
	OutputText = "text"
	OutputYAML = "yaml"
)

type replayFlags struct {
	output string
	stats  bool
	quiet  bool
}

func (f *replayFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", OutputText, "document output format (text|yaml)")
	cmd.Flags().BoolVar(&f.stats, "stats", false, "print per-key dispatch statistics")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "do not print each step")

	_ = cmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{OutputText, OutputYAML}, cobra.ShellCompDirectiveNoFileComp
	})
}

func (f *replayFlags) validate() error {
	switch f.output {
	case OutputText, OutputYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want %s or %s)", f.output, OutputText, OutputYAML)
}

func newReplayCommand(g *globalFlags) *cobra.Command {
	flags := &replayFlags{}

	cmd := &cobra.Command{
		Use:   "replay FIXTURE [KEY...]",
		Short: "Apply keys to a fixture and print the result",
		Long: `Load a YAML fixture, apply the fixture's keys followed by the KEY
arguments, and print every step and the final document.`,
		Example: `  tablekeys replay grid.yaml Tab Tab Ctrl+Shift+Down
  tablekeys replay grid.yaml "<C-S-Right>" :undo -o yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.validate(); err != nil {
				return err
			}
			a, err := g.newApp(cmd, flags.stats)
			if err != nil {
				return err
			}
			return replayFile(cmd.OutOrStdout(), a, args[0], args[1:], flags)
		},
	}
	flags.register(cmd)
	return cmd
}

// replayFile loads the fixture at path and replays keys against it. The
// steps and document are printed even when a key fails.
func replayFile(w io.Writer, a *app.Application, path string, keys []string, flags *replayFlags) error {
	f, err := fixture.Load(path)
	if err != nil {
		return err
	}

	run, replayErr := a.Replay(f, keys...)
	if run == nil {
		return replayErr
	}

	if !flags.quiet {
		for _, s := range run.Steps {
			_, _ = fmt.Fprintln(w, s.String())
		}
		if len(run.Steps) > 0 {
			_, _ = fmt.Fprintln(w)
		}
	}

	doc, sel := run.Snapshot()
	switch flags.output {
	case OutputYAML:
		if err := fixture.Encode(w, doc, sel); err != nil {
			return err
		}
	default:
		if err := render.WriteText(w, doc, sel); err != nil {
			return err
		}
	}

	if flags.stats {
		_, _ = fmt.Fprintln(w)
		render.Metrics(w, a.Dispatcher().Metrics())
	}
	return replayErr
}
