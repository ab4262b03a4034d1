package docmodel

import (
	stderrors "errors"
	"strings"

	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
)

// ErrMissingHeading is returned when a document has neither a setext nor an ATX heading.
var ErrMissingHeading = stderrors.New("missing heading")

// minUnderline is the shortest run of '=' accepted as a setext underline.
const minUnderline = 5

// headPreviewLines bounds how much of the document is quoted in a MissingHeading error.
const headPreviewLines = 6

// ExtractTitle moves the first heading of the document into the title field.
//
// A setext heading (a text line followed by an underline of '=') wins over an ATX
// heading ('#' prefix) anywhere in the document. Both heading lines of a setext
// heading are removed; an ATX heading removes its single line. Each call consumes
// one heading.
func (d *Document) ExtractTitle() error {
	if idx := d.setextUnderlineIndex(); idx > 0 {
		title := strings.TrimSpace(d.lines[idx-1])
		d.lines = append(d.lines[:idx-1:idx-1], d.lines[idx+1:]...)
		d.fields[FieldTitle] = title
		return nil
	}

	for i, line := range d.lines {
		if strings.HasPrefix(line, "#") {
			d.fields[FieldTitle] = strings.TrimSpace(strings.TrimLeft(line, "#"))
			d.lines = append(d.lines[:i:i], d.lines[i+1:]...)
			return nil
		}
	}

	head := d.lines
	if len(head) > headPreviewLines {
		head = head[:headPreviewLines]
	}
	return errors.DocsError("could not find a heading").
		WithCause(ErrMissingHeading).
		WithContext("head", strings.Join(head, "\n")).
		Build()
}

// setextUnderlineIndex returns the index of the first underline line that has a
// line above it, or -1.
func (d *Document) setextUnderlineIndex() int {
	for i := 1; i < len(d.lines); i++ {
		if isSetextUnderline(d.lines[i]) {
			return i
		}
	}
	return -1
}

func isSetextUnderline(line string) bool {
	trimmed := strings.TrimRight(line, " \t\r")
	return len(trimmed) >= minUnderline && strings.Trim(trimmed, "=") == ""
}
