// Package cli provides the tablekeys command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/tablekeys/internal/app"
)

// Version information (set at build time).
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	readOnly   bool
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "tablekeys",
		Short: "Replay table editing keys against a document",
		Long: `tablekeys interprets structural editing keys (Tab, Enter, arrows, Delete)
inside tables of a document tree.

Documents are YAML fixtures. Keys are written like "Tab", "Ctrl+Shift+Down"
or "<C-S-Down>"; ":undo" and ":redo" step through history.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	rootCmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "config file (default: ./tablekeys.toml)")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().BoolVar(&g.readOnly, "read-only", false, "reject keys that edit the document")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newReplayCommand(g))
	rootCmd.AddCommand(newWatchCommand(g))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// newApp builds the application, logging to the command's stderr.
func (g *globalFlags) newApp(cmd *cobra.Command, metrics bool) (*app.Application, error) {
	return app.New(app.Options{
		ConfigPath: g.configPath,
		LogLevel:   g.logLevel,
		ReadOnly:   g.readOnly,
		Metrics:    metrics,
		LogOutput:  cmd.ErrOrStderr(),
	})
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "tablekeys %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
		},
	}
}
