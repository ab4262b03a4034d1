package sync

import (
	"log/slog"

	"github.com/thatguysimon/docs.pact.io/internal/actions"
	"github.com/thatguysimon/docs.pact.io/internal/docmodel"
	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
	"github.com/thatguysimon/docs.pact.io/internal/links"
	"github.com/thatguysimon/docs.pact.io/internal/logfields"
	"github.com/thatguysimon/docs.pact.io/internal/metrics"
)

// FileReport describes the outcome for one source file.
type FileReport struct {
	Job         string             `json:"job"`
	Path        string             `json:"path"`
	Destination string             `json:"destination"`
	Result      metrics.FileResult `json:"result"`
	Fingerprint string             `json:"fingerprint"`
}

// Pipeline turns source files into rendered documents and writes them.
type Pipeline struct {
	writer  Writer
	editURL func(path string) string
	dryRun  bool
}

// NewPipeline returns a pipeline writing through w. editURL seeds each
// document's custom_edit_url. In a dry run w is wrapped in a DryRunWriter.
func NewPipeline(w Writer, editURL func(path string) string, isDryRun bool) *Pipeline {
	if isDryRun {
		w = dryRun(w)
	}
	return &Pipeline{writer: w, editURL: editURL, dryRun: isDryRun}
}

// ProcessFile builds a document from content, applies the actions table selects
// for path, renders it and writes it to transform(path).
func (p *Pipeline) ProcessFile(path string, content []byte, transform links.Transformer, table actions.Table, comment string) (FileReport, error) {
	dest := transform(path)
	report := FileReport{Path: path, Destination: dest}

	fields := map[docmodel.Field]string{}
	if p.editURL != nil {
		if u := p.editURL(path); u != "" {
			fields[docmodel.FieldEditURL] = u
		}
	}
	var comments []string
	if comment != "" {
		comments = []string{comment}
	}
	doc := docmodel.FromContent(string(content), fields, comments)

	if err := actions.Apply(doc, table.Select(path)); err != nil {
		return report, withPath(err, path)
	}

	rendered := []byte(doc.Render())
	report.Fingerprint = Fingerprint(rendered)

	old, exists, err := p.writer.Read(dest)
	if err != nil {
		return report, err
	}
	switch {
	case !exists:
		report.Result = metrics.FileCreated
	case Fingerprint(old) == report.Fingerprint:
		report.Result = metrics.FileUnchanged
	default:
		report.Result = metrics.FileUpdated
	}

	if p.dryRun {
		slog.Info("Would write file", logfields.Destination(dest), logfields.Status(string(report.Result)))
		report.Result = metrics.FileSkipped
	} else {
		slog.Info("Writing file", logfields.Destination(dest), logfields.Path(path), logfields.Status(string(report.Result)))
	}
	if err := p.writer.Write(dest, rendered); err != nil {
		return report, err
	}
	return report, nil
}

func withPath(err error, path string) error {
	if classified, ok := errors.AsClassified(err); ok {
		return classified.WithContext("path", path)
	}
	return errors.WrapError(err, errors.CategoryDocs, "failed to process file").
		WithContext("path", path).
		Build()
}
