package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveRunDuration(time.Second)
	r.IncRunOutcome(RunSuccess)
	r.ObserveFetchDuration("job", time.Millisecond)
	r.IncFileResult("job", FileCreated)
	r.AddLinkOutcomes("job", "local", 3)
}

func TestPrometheusRecorder(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.ObserveRunDuration(500 * time.Millisecond)
	pr.IncRunOutcome(RunSuccess)
	pr.ObserveFetchDuration("pact-js", 20*time.Millisecond)
	pr.IncFileResult("pact-js", FileCreated)
	pr.IncFileResult("pact-js", FileCreated)
	pr.IncFileResult("pact-js", FileUnchanged)
	pr.AddLinkOutcomes("pact-js", "remote", 4)
	pr.AddLinkOutcomes("pact-js", "remote", 0)

	assert.InDelta(t, 2, counterValue(t, pr.Registry(), "docsync_files_total", "result", "created"), 0)
	assert.InDelta(t, 1, counterValue(t, pr.Registry(), "docsync_files_total", "result", "unchanged"), 0)
	assert.InDelta(t, 4, counterValue(t, pr.Registry(), "docsync_links_total", "outcome", "remote"), 0)
	assert.InDelta(t, 1, counterValue(t, pr.Registry(), "docsync_run_outcomes_total", "outcome", "success"), 0)
}

// counterValue returns the value of the counter in family name whose label
// key equals value.
func counterValue(t *testing.T, reg *prom.Registry, name, key, value string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == key && lp.GetValue() == value {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	t.Fatalf("no %s{%s=%q}", name, key, value)
	return 0
}

func TestPrometheusRecorder_NilReceiver(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveRunDuration(time.Second)
	pr.IncFileResult("job", FileFailed)
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncFileResult("pact-go", FileUpdated)

	path := filepath.Join(t.TempDir(), "docsync.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `docsync_files_total{job="pact-go",result="updated"} 1`))

	err = pr.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	require.Error(t, err)
}
