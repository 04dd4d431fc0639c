// Package main is the entry point for the tablekeys command.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/tablekeys/internal/cli"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cli.Version, cli.GitCommit, cli.BuildDate = version, commit, date

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		return 1
	}
	return 0
}
