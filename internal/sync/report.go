package sync

import (
	"encoding/json"
	"os"
	"time"

	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
	"github.com/thatguysimon/docs.pact.io/internal/metrics"
)

// Report summarizes a run.
type Report struct {
	RunID      string                     `json:"run_id"`
	Repository string                     `json:"repository"`
	Branch     string                     `json:"branch"`
	StartedAt  time.Time                  `json:"started_at"`
	Duration   time.Duration              `json:"duration_ns"`
	DryRun     bool                       `json:"dry_run"`
	Files      []FileReport               `json:"files"`
	Counts     map[metrics.FileResult]int `json:"counts"`
}

func (r *Report) add(f FileReport) {
	r.Files = append(r.Files, f)
	if r.Counts == nil {
		r.Counts = make(map[metrics.FileResult]int)
	}
	r.Counts[f.Result]++
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.InternalError("failed to encode sync report").WithCause(err).Build()
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.FileSystemError("failed to write sync report").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}
