package docmodel

import (
	"regexp"
	"strings"
)

// changelogMarkers are the substrings that keep a changelog entry line.
var changelogMarkers = []string{"feat:", "fix:", "Merge pull request"}

// FindAndReplace applies pattern to each body line independently, replacing every
// match. replacement may reference capture groups ($1, ${name}).
func (d *Document) FindAndReplace(pattern *regexp.Regexp, replacement string) {
	for i, line := range d.lines {
		d.lines[i] = pattern.ReplaceAllString(line, replacement)
	}
}

// FindAndReplaceLiteral is FindAndReplace with replacement inserted verbatim; '$'
// is not expanded.
func (d *Document) FindAndReplaceLiteral(pattern *regexp.Regexp, replacement string) {
	for i, line := range d.lines {
		d.lines[i] = pattern.ReplaceAllLiteralString(line, replacement)
	}
}

// RemoveLinesContaining drops every body line containing substring.
func (d *Document) RemoveLinesContaining(substring string) {
	d.keep(func(line string) bool { return !strings.Contains(line, substring) })
}

// PrependLines inserts lines, in order, before the existing body.
func (d *Document) PrependLines(lines ...string) {
	d.lines = append(append([]string(nil), lines...), d.lines...)
}

// FilterChangelogLines keeps headings, blank lines, and conventional commit or merge
// entries; every other line is dropped.
func (d *Document) FilterChangelogLines() {
	d.keep(isChangelogLine)
}

func isChangelogLine(line string) bool {
	if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
		return true
	}
	for _, marker := range changelogMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

func (d *Document) keep(pred func(string) bool) {
	kept := d.lines[:0]
	for _, line := range d.lines {
		if pred(line) {
			kept = append(kept, line)
		}
	}
	d.lines = kept
}
