// Package actions holds the document transformations applied during a sync and the
// path-keyed rule table that selects them.
package actions

import (
	"log/slog"
	"regexp"

	"github.com/thatguysimon/docs.pact.io/internal/docmodel"
	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
	"github.com/thatguysimon/docs.pact.io/internal/frontmatter"
	"github.com/thatguysimon/docs.pact.io/internal/links"
	"github.com/thatguysimon/docs.pact.io/internal/logfields"
)

// Action mutates a document in place.
type Action interface {
	Name() string
	Apply(doc *docmodel.Document) error
}

// Func adapts a function to Action.
type Func struct {
	name string
	fn   func(doc *docmodel.Document) error
}

// NewFunc names fn as an Action.
func NewFunc(name string, fn func(doc *docmodel.Document) error) Func {
	return Func{name: name, fn: fn}
}

func (f Func) Name() string { return f.name }
func (f Func) Apply(doc *docmodel.Document) error { return f.fn(doc) }

// Rule pairs a selector with the action it enables.
type Rule struct {
	Selector Selector
	Action   Action
}

// Table is an ordered rule list. Order is significant: selected actions run in
// table order.
type Table []Rule

// Select returns the actions of every rule whose selector matches path, in table order.
func Select(table Table, path string) []Action {
	var out []Action
	for _, rule := range table {
		if rule.Selector.Matches(path) {
			out = append(out, rule.Action)
		}
	}
	return out
}

// Select is the method form of Select.
func (t Table) Select(path string) []Action {
	return Select(t, path)
}

// Apply runs acts against doc in order and stops at the first failure.
func Apply(doc *docmodel.Document, acts []Action) error {
	for _, act := range acts {
		slog.Debug("Applying action", logfields.Action(act.Name()))
		if err := act.Apply(doc); err != nil {
			if classified, ok := errors.AsClassified(err); ok {
				return classified.WithContext("action", act.Name())
			}
			return errors.WrapError(err, errors.CategoryDocs, "action failed").
				WithContext("action", act.Name()).
				Build()
		}
	}
	return nil
}

// Action names, as used in configuration files.
const (
	NameExtractTitle          = "extract_title"
	NameFindAndReplace        = "find_and_replace"
	NameRemoveLinesContaining = "remove_lines_containing"
	NamePrependLines          = "prepend_lines"
	NameFilterChangelog       = "filter_changelog"
	NameAbsolutizeLinks       = "absolutize_links"
	NameSetDescription        = "set_description"
	NameImportFrontMatter     = "import_front_matter"
)

// ExtractTitle moves the first heading into the title field.
func ExtractTitle() Action {
	return NewFunc(NameExtractTitle, (*docmodel.Document).ExtractTitle)
}

// FindAndReplace substitutes pattern on every body line.
func FindAndReplace(pattern *regexp.Regexp, replacement string) Action {
	return NewFunc(NameFindAndReplace, func(doc *docmodel.Document) error {
		doc.FindAndReplace(pattern, replacement)
		return nil
	})
}

// FindAndReplaceLiteral substitutes pattern on every body line with replacement
// taken verbatim.
func FindAndReplaceLiteral(pattern *regexp.Regexp, replacement string) Action {
	return NewFunc(NameFindAndReplace, func(doc *docmodel.Document) error {
		doc.FindAndReplaceLiteral(pattern, replacement)
		return nil
	})
}

// RemoveLinesContaining drops body lines containing substring.
func RemoveLinesContaining(substring string) Action {
	return NewFunc(NameRemoveLinesContaining, func(doc *docmodel.Document) error {
		doc.RemoveLinesContaining(substring)
		return nil
	})
}

// PrependLines inserts lines before the body.
func PrependLines(lines ...string) Action {
	lines = append([]string(nil), lines...)
	return NewFunc(NamePrependLines, func(doc *docmodel.Document) error {
		doc.PrependLines(lines...)
		return nil
	})
}

// FilterChangelog reduces a changelog to headings, blank lines and entries.
func FilterChangelog() Action {
	return NewFunc(NameFilterChangelog, func(doc *docmodel.Document) error {
		doc.FilterChangelogLines()
		return nil
	})
}

// SetDescription sets the description field.
func SetDescription(description string) Action {
	return NewFunc(NameSetDescription, func(doc *docmodel.Document) error {
		doc.SetField(docmodel.FieldDescription, description)
		return nil
	})
}

// AbsolutizeLinks rewrites relative link targets of the whole body. observe, when
// set, receives the per-outcome counts of each rewrite.
func AbsolutizeLinks(abs *links.Absolutizer, observe func(links.Stats)) Action {
	return NewFunc(NameAbsolutizeLinks, func(doc *docmodel.Document) error {
		body, stats := abs.Rewrite(doc.Body())
		doc.SetBody(body)
		if observe != nil {
			observe(stats)
		}
		return nil
	})
}

// ImportFrontMatter strips a front matter block from the start of the body and
// copies its recognized scalar fields into the document. A block that is not valid
// YAML is still stripped; a '---' line without a closing delimiter is body content.
func ImportFrontMatter() Action {
	return NewFunc(NameImportFrontMatter, func(doc *docmodel.Document) error {
		raw, body, had, err := frontmatter.Split([]byte(doc.Body() + "\n"))
		if err != nil || !had {
			return nil
		}
		doc.SetBody(string(body))

		fields, err := frontmatter.ParseYAML(raw)
		if err != nil {
			slog.Warn("Ignoring invalid front matter", logfields.Error(err))
			return nil
		}
		for _, key := range []docmodel.Field{docmodel.FieldTitle, docmodel.FieldDescription} {
			if v, ok := frontmatter.Scalar(fields, string(key)); ok {
				doc.SetField(key, v)
			}
		}
		return nil
	})
}
