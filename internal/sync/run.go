package sync

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/thatguysimon/docs.pact.io/internal/actions"
	"github.com/thatguysimon/docs.pact.io/internal/config"
	"github.com/thatguysimon/docs.pact.io/internal/forge"
	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
	"github.com/thatguysimon/docs.pact.io/internal/links"
	"github.com/thatguysimon/docs.pact.io/internal/logfields"
	"github.com/thatguysimon/docs.pact.io/internal/metrics"
	"github.com/thatguysimon/docs.pact.io/internal/pathmap"
	"github.com/thatguysimon/docs.pact.io/internal/util/sets"
)

// Runner executes the configured jobs against one source repository.
type Runner struct {
	cfg      *config.Config
	source   Source
	writer   Writer
	urls     forge.URLBuilder
	recorder metrics.Recorder
	dryRun   bool
	jobs     []string
	now      func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(rn *Runner) {
		if r != nil {
			rn.recorder = r
		}
	}
}

// WithDryRun transforms files without writing them.
func WithDryRun(dryRun bool) Option {
	return func(rn *Runner) { rn.dryRun = dryRun }
}

// WithJobs restricts the run to the named jobs.
func WithJobs(names ...string) Option {
	return func(rn *Runner) { rn.jobs = names }
}

// NewRunner returns a Runner reading from source and writing through writer.
func NewRunner(cfg *config.Config, source Source, writer Writer, opts ...Option) *Runner {
	r := &Runner{
		cfg:      cfg,
		source:   source,
		writer:   writer,
		urls:     forge.NewURLBuilder(cfg.Source),
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.dryRun {
		r.writer = dryRun(r.writer)
	}
	return r
}

// PlannedFile is a source file selected by a job and its destination.
type PlannedFile struct {
	Job         string `json:"job"`
	Path        string `json:"path"`
	Destination string `json:"destination"`
}

// jobPlan is a job resolved against the repository listing.
type jobPlan struct {
	job    config.Job
	mapper *pathmap.Mapper
	files  []string
}

func (r *Runner) selectedJobs() ([]config.Job, error) {
	if len(r.jobs) == 0 {
		return r.cfg.Jobs, nil
	}
	var out []config.Job
	for _, name := range r.jobs {
		idx := slices.IndexFunc(r.cfg.Jobs, func(j config.Job) bool { return j.Name == name })
		if idx < 0 {
			return nil, errors.ValidationError("unknown job").WithContext("job", name).Build()
		}
		out = append(out, r.cfg.Jobs[idx])
	}
	return out, nil
}

func (r *Runner) plan(paths []string) ([]jobPlan, error) {
	jobs, err := r.selectedJobs()
	if err != nil {
		return nil, err
	}

	plans := make([]jobPlan, 0, len(jobs))
	for _, job := range jobs {
		filter, err := pathmap.NewGlobFilter(job.Include, job.Exclude)
		if err != nil {
			if classified, ok := errors.AsClassified(err); ok {
				return nil, classified.WithContext("job", job.Name)
			}
			return nil, err
		}
		p := jobPlan{
			job: job,
			mapper: pathmap.NewMapper(pathmap.Rules{
				Rename:      job.Paths.Rename,
				StripPrefix: job.Paths.StripPrefix,
				Lowercase:   job.Paths.Lowercase,
				Prefix:      job.Paths.Prefix,
			}),
		}
		for _, path := range paths {
			if filter.Match(path) {
				p.files = append(p.files, path)
			}
		}
		plans = append(plans, p)
	}
	return plans, nil
}

// Plan lists the files each job would sync and where they would be written.
func (r *Runner) Plan(ctx context.Context) ([]PlannedFile, error) {
	paths, err := r.source.ListFiles(ctx)
	if err != nil {
		return nil, err
	}
	plans, err := r.plan(paths)
	if err != nil {
		return nil, err
	}

	var out []PlannedFile
	for _, p := range plans {
		for _, path := range p.files {
			out = append(out, PlannedFile{Job: p.job.Name, Path: path, Destination: p.mapper.Transform(path)})
		}
	}
	return out, nil
}

// Run syncs every selected job and returns the report, which is populated up
// to the failing file when an error stops the run.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := r.now()
	report := &Report{
		RunID:      uuid.NewString(),
		Repository: r.cfg.Source.Repository,
		Branch:     r.cfg.Source.Branch,
		StartedAt:  start,
		DryRun:     r.dryRun,
	}
	log := slog.With(logfields.RunID(report.RunID))
	log.Info("Starting sync",
		logfields.Repository(report.Repository),
		logfields.Branch(report.Branch),
		slog.Bool("dry_run", r.dryRun))

	err := r.run(ctx, log, report)

	report.Duration = r.now().Sub(start)
	r.recorder.ObserveRunDuration(report.Duration)
	switch {
	case err == nil:
		r.recorder.IncRunOutcome(metrics.RunSuccess)
		log.Info("Sync complete",
			logfields.Count(len(report.Files)),
			slog.Int(string(metrics.FileCreated), report.Counts[metrics.FileCreated]),
			slog.Int(string(metrics.FileUpdated), report.Counts[metrics.FileUpdated]),
			slog.Int(string(metrics.FileUnchanged), report.Counts[metrics.FileUnchanged]),
			logfields.Duration(report.Duration))
	case ctx.Err() != nil:
		r.recorder.IncRunOutcome(metrics.RunCanceled)
		log.Warn("Sync canceled", logfields.Count(len(report.Files)), logfields.Error(err))
	default:
		r.recorder.IncRunOutcome(metrics.RunFailed)
		log.Error("Sync failed", logfields.Count(len(report.Files)), logfields.Error(err))
	}
	return report, err
}

func (r *Runner) run(ctx context.Context, log *slog.Logger, report *Report) error {
	paths, err := r.source.ListFiles(ctx)
	if err != nil {
		return err
	}
	plans, err := r.plan(paths)
	if err != nil {
		return err
	}
	known := sets.New(paths...)
	pipeline := NewPipeline(r.writer, r.urls.EditURL, r.dryRun)

	for _, p := range plans {
		jobLog := log.With(logfields.Job(p.job.Name))
		jobLog.Info("Processing job", logfields.Count(len(p.files)))

		table, err := actions.Compile(p.job.Actions, actions.Env{
			Links:        r.absolutizer(known, p.mapper),
			ObserveLinks: r.linkObserver(p.job.Name),
		})
		if err != nil {
			return err
		}
		comment := r.cfg.CommentFor(p.job)

		for _, path := range p.files {
			if err := ctx.Err(); err != nil {
				return err
			}

			fetchStart := r.now()
			content, err := r.source.ReadFile(ctx, path)
			r.recorder.ObserveFetchDuration(p.job.Name, r.now().Sub(fetchStart))
			if err != nil {
				r.recorder.IncFileResult(p.job.Name, metrics.FileFailed)
				return err
			}

			fr, err := pipeline.ProcessFile(path, content, p.mapper.Transform, table, comment)
			fr.Job = p.job.Name
			if err != nil {
				r.recorder.IncFileResult(p.job.Name, metrics.FileFailed)
				if classified, ok := errors.AsClassified(err); ok {
					return classified.WithContext("job", p.job.Name)
				}
				return err
			}
			r.recorder.IncFileResult(p.job.Name, fr.Result)
			report.add(fr)
		}
	}
	return nil
}

func (r *Runner) absolutizer(known sets.Set[string], mapper *pathmap.Mapper) *links.Absolutizer {
	return &links.Absolutizer{
		Known:     known,
		Transform: mapper.Transform,
		Exists:    r.writer.Exists,
		BlobURL:   r.urls.BlobURL,
	}
}

func (r *Runner) linkObserver(job string) func(links.Stats) {
	return func(stats links.Stats) {
		for outcome, n := range stats {
			r.recorder.AddLinkOutcomes(job, string(outcome), n)
		}
	}
}
