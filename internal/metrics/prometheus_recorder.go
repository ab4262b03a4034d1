package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
)

const namespace = "docsync"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry      *prom.Registry
	runDuration   prom.Histogram
	runOutcome    *prom.CounterVec
	fetchDuration *prom.HistogramVec
	fileResults   *prom.CounterVec
	linkOutcomes  *prom.CounterVec
	lastRun       prom.Gauge
}

// NewPrometheusRecorder constructs the metrics and registers them on reg. A nil reg
// gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Total sync run duration",
			Buckets:   prom.DefBuckets,
		}),
		runOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Sync runs by final status",
		}, []string{"outcome"}),
		fetchDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of individual file fetches",
			Buckets:   prom.DefBuckets,
		}, []string{"job"}),
		fileResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "files_total",
			Help:      "Synced files by job and result",
		}, []string{"job", "result"}),
		linkOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "links_total",
			Help:      "Link targets seen during absolutization, by outcome",
		}, []string{"job", "outcome"}),
		lastRun: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
	}
	reg.MustRegister(pr.runDuration, pr.runOutcome, pr.fetchDuration, pr.fileResults, pr.linkOutcomes, pr.lastRun)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.registry }

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
	p.lastRun.SetToCurrentTime()
}

func (p *PrometheusRecorder) IncRunOutcome(outcome RunOutcome) {
	if p == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveFetchDuration(job string, d time.Duration) {
	if p == nil {
		return
	}
	p.fetchDuration.WithLabelValues(job).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncFileResult(job string, result FileResult) {
	if p == nil {
		return
	}
	p.fileResults.WithLabelValues(job, string(result)).Inc()
}

func (p *PrometheusRecorder) AddLinkOutcomes(job string, outcome string, n int) {
	if p == nil || n <= 0 {
		return
	}
	p.linkOutcomes.WithLabelValues(job, outcome).Add(float64(n))
}

// WriteTextfile writes the registry to path in Prometheus text format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return errors.FileSystemError("failed to write metrics file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}
