package metrics

import "time"

// FileResult is the outcome of syncing one file.
type FileResult string

const (
	FileCreated   FileResult = "created"
	FileUpdated   FileResult = "updated"
	FileUnchanged FileResult = "unchanged"
	FileSkipped   FileResult = "skipped" // dry run
	FileFailed    FileResult = "failed"
)

// RunOutcome is the final status of a run.
type RunOutcome string

const (
	RunSuccess  RunOutcome = "success"
	RunFailed   RunOutcome = "failed"
	RunCanceled RunOutcome = "canceled"
)

// Recorder defines the observability hooks of a sync run.
type Recorder interface {
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome RunOutcome)
	ObserveFetchDuration(job string, d time.Duration)
	IncFileResult(job string, result FileResult)
	AddLinkOutcomes(job string, outcome string, n int)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveRunDuration(time.Duration)           {}
func (NoopRecorder) IncRunOutcome(RunOutcome)                   {}
func (NoopRecorder) ObserveFetchDuration(string, time.Duration) {}
func (NoopRecorder) IncFileResult(string, FileResult)           {}
func (NoopRecorder) AddLinkOutcomes(string, string, int)        {}
