// Package metrics records sync run observations.
//
// Components receive a Recorder; NoopRecorder is the default so callers never
// nil-check. PrometheusRecorder backs the CLI's --metrics-file flag, which writes
// the registry in Prometheus text format for node_exporter's textfile collector.
package metrics
