// Command lrutrace replays cache scenarios and prints the resulting recency order.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/lrucache/pkg/logger"
)

var version = "dev"

// flushTimeout bounds how long exit waits for Sentry delivery.
const flushTimeout = 2 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer logger.Flush(flushTimeout)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "lrutrace:", err)
		return 1
	}

	if err := newRootCmd(cfg, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "lrutrace:", err)
		return 1
	}
	return 0
}

func newRootCmd(cfg Config, stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "lrutrace",
		Short:         "Replay LRU cache scenarios",
		Long:          "lrutrace replays YAML scenarios against the identity-keyed LRU cache and reports the recency order they produce.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&cfg.Log.Format, "log-format", cfg.Log.Format, "log format: json or text")

	root.AddCommand(
		newReplayCmd(&cfg),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			},
		},
	)

	return root
}

func newLogger(cfg Config, w io.Writer) (*slog.Logger, error) {
	return logger.New(cfg.Log, w)
}
