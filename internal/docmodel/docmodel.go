// Package docmodel holds the in-memory form of one synced markdown page: its body
// lines, the front matter fields synthesized for it, and the comment lines emitted
// between the front matter and the body.
package docmodel

import (
	"strings"
)

// Field is a recognized front matter key.
type Field string

const (
	FieldTitle       Field = "title"
	FieldEditURL     Field = "custom_edit_url"
	FieldDescription Field = "description"
)

// fieldOrder is the order fields are rendered in, regardless of insertion order.
var fieldOrder = []Field{FieldTitle, FieldEditURL, FieldDescription}

// Fields reports every recognized front matter key in render order.
func Fields() []Field {
	return append([]Field(nil), fieldOrder...)
}

// IsField reports whether name is a recognized front matter key.
func IsField(name string) bool {
	for _, f := range fieldOrder {
		if string(f) == name {
			return true
		}
	}
	return false
}

// Document is a markdown page under transformation. A Document is owned by the
// pipeline iteration that created it and is mutated in place by actions.
type Document struct {
	lines    []string
	fields   map[Field]string
	comments []string
}

// New builds a Document from already split lines. Inputs are copied; no validation
// is performed.
func New(lines []string, fields map[Field]string, comments []string) *Document {
	d := &Document{
		lines:    append([]string(nil), lines...),
		fields:   make(map[Field]string, len(fields)),
		comments: append([]string(nil), comments...),
	}
	for k, v := range fields {
		d.fields[k] = v
	}
	return d
}

// FromContent splits raw fetched content into lines and builds a Document.
func FromContent(content string, fields map[Field]string, comments []string) *Document {
	return New(SplitLines(content), fields, comments)
}

// SplitLines splits content on "\n" and drops trailing empty lines, so that content
// with or without a final newline yields the same lines.
func SplitLines(content string) []string {
	lines := strings.Split(content, "\n")
	end := len(lines)
	for end > 0 && lines[end-1] == "" {
		end--
	}
	return lines[:end]
}

// Lines returns a copy of the body lines.
func (d *Document) Lines() []string {
	return append([]string(nil), d.lines...)
}

// Comments returns a copy of the comment lines.
func (d *Document) Comments() []string {
	return append([]string(nil), d.comments...)
}

// Field returns the value of a front matter field and whether it is set.
func (d *Document) Field(key Field) (string, bool) {
	v, ok := d.fields[key]
	return v, ok
}

// SetField sets a front matter field.
func (d *Document) SetField(key Field, value string) {
	d.fields[key] = value
}

// Body joins the body lines with "\n".
func (d *Document) Body() string {
	return strings.Join(d.lines, "\n")
}

// SetBody replaces the body with the lines of text.
func (d *Document) SetBody(text string) {
	d.lines = SplitLines(text)
}

// Render serializes the document: front matter block, comments, a blank separator
// when the body starts with a non-blank line, then the body and one trailing newline.
func (d *Document) Render() string {
	out := make([]string, 0, len(d.lines)+len(d.comments)+len(fieldOrder)+3)
	out = append(out, "---")
	for _, key := range fieldOrder {
		if v, ok := d.fields[key]; ok {
			out = append(out, string(key)+": "+v)
		}
	}
	out = append(out, "---")
	out = append(out, d.comments...)
	if len(d.lines) > 0 && strings.TrimSpace(d.lines[0]) != "" {
		out = append(out, "")
	}
	out = append(out, d.lines...)
	return strings.Join(out, "\n") + "\n"
}
