package commands

import (
	"log/slog"

	"github.com/thatguysimon/docs.pact.io/internal/config"
	"github.com/thatguysimon/docs.pact.io/internal/logfields"
	"github.com/thatguysimon/docs.pact.io/internal/metrics"
	"github.com/thatguysimon/docs.pact.io/internal/sync"
)

// SyncCmd implements the 'sync' command.
type SyncCmd struct {
	DryRun      bool     `name:"dry-run" help:"Transform files without writing them"`
	Job         []string `short:"j" help:"Only run the named job (repeatable)"`
	Report      string   `help:"Write a JSON run report to this path" type:"path"`
	MetricsFile string   `name:"metrics-file" help:"Write Prometheus text-format metrics to this path" type:"path"`
}

func (s *SyncCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	source, err := openSource(cfg)
	if err != nil {
		return err
	}

	var writer sync.Writer = sync.NewFSWriter(cfg.Destination.Root)
	if s.DryRun {
		writer = sync.NewDryRunWriter(writer)
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if s.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	runner := sync.NewRunner(cfg, source, writer,
		sync.WithRecorder(recorder),
		sync.WithDryRun(s.DryRun),
		sync.WithJobs(s.Job...))
	report, runErr := runner.Run(g.context())

	if s.Report != "" && report != nil {
		if err := report.WriteJSON(s.Report); err != nil {
			slog.Warn("Failed to write report", logfields.Path(s.Report), logfields.Error(err))
		}
	}
	if prom != nil {
		if err := prom.WriteTextfile(s.MetricsFile); err != nil {
			slog.Warn("Failed to write metrics", logfields.Path(s.MetricsFile), logfields.Error(err))
		}
	}
	return runErr
}
