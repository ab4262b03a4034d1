// Package markdown inspects rendered pages with goldmark. It never rewrites
// content: the sync pipeline edits pages line by line, and this package checks
// the result.
package markdown

type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
	LinkKindHTML                LinkKind = "html"
)

type Link struct {
	Kind        LinkKind
	Destination string
}
