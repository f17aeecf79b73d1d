package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/lrucache/internal/metrics"
	"github.com/dmitrymomot/lrucache/internal/trace"
	"github.com/dmitrymomot/lrucache/pkg/logger"
)

// errReplayFailed is returned when at least one scenario did not pass.
var errReplayFailed = errors.New("one or more scenarios failed")

type replayFlags struct {
	capacity int
	metrics  bool
}

// replayOutcome is the result of one file, kept in argument order.
type replayOutcome struct {
	res  *trace.Result
	err  error
	file string
}

func newReplayCmd(cfg *Config) *cobra.Command {
	var flags replayFlags

	cmd := &cobra.Command{
		Use:   "replay FILE...",
		Short: "Replay scenario files and print the final recency order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(*cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runReplay(cmd.Context(), log, cmd.OutOrStdout(), *cfg, flags, args)
		},
	}

	cmd.Flags().IntVar(&flags.capacity, "capacity", -1, "override scenario capacity (negative keeps the file value)")
	cmd.Flags().BoolVar(&flags.metrics, "metrics", false, "print Prometheus metrics of every replayed cache")
	cmd.Flags().IntVar(&cfg.Parallel, "parallel", cfg.Parallel, "number of scenarios replayed at once")

	return cmd
}

func runReplay(ctx context.Context, log *slog.Logger, w io.Writer, cfg Config, flags replayFlags, files []string) error {
	outcomes := make([]replayOutcome, len(files))

	// Each scenario owns its cache, so replays never share one.
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Parallel, 1))
	for i, file := range files {
		g.Go(func() error {
			outcomes[i] = replayFile(ctx, log, file, flags.capacity)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := renderTable(w, outcomes)

	if flags.metrics {
		if err := writeMetrics(w, outcomes); err != nil {
			return err
		}
	}

	if failed > 0 {
		log.Warn("replay finished with failures", slog.Int("failed", failed), slog.Int("total", len(files)))
		return fmt.Errorf("%w: %d of %d", errReplayFailed, failed, len(files))
	}
	return nil
}

func replayFile(ctx context.Context, log *slog.Logger, file string, capacity int) replayOutcome {
	ctx = logger.WithAttrs(ctx, slog.String("file", file))

	sc, err := trace.LoadFile(file)
	if err != nil {
		log.ErrorContext(ctx, "failed to load scenario", slog.String("error", err.Error()))
		return replayOutcome{file: file, err: err}
	}

	res, err := trace.Run(ctx, sc, trace.WithLogger(log), trace.WithCapacity(capacity))
	return replayOutcome{file: file, res: res, err: err}
}

func renderTable(w io.Writer, outcomes []replayOutcome) int {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"File", "Scenario", "Steps", "Size", "Front", "Back", "Status"})

	failed := 0
	for _, o := range outcomes {
		status := "ok"
		if o.err != nil {
			status = o.err.Error()
			failed++
		}

		if o.res == nil {
			t.AppendRow(table.Row{o.file, "", 0, 0, "", "", status})
			continue
		}
		f := o.res.Final
		t.AppendRow(table.Row{o.file, o.res.Name, o.res.Steps, f.Size, f.Front(), f.Back(), status})
	}

	t.Render()
	return failed
}

func writeMetrics(w io.Writer, outcomes []replayOutcome) error {
	reg := prometheus.NewPedanticRegistry()
	for i, o := range outcomes {
		if o.res == nil {
			continue
		}
		name := fmt.Sprintf("%d:%s", i, o.res.Name)
		if err := reg.Register(metrics.NewCollector(name, o.res.Cache)); err != nil {
			return err
		}
	}

	families, err := reg.Gather()
	if err != nil {
		return err
	}

	var sb strings.Builder
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(&sb, mf); err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, sb.String())
	return err
}
