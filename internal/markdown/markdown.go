package markdown

import (
	"bytes"
	"sort"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// ExtractLinks parses a Markdown body (front matter already removed) and returns
// its links, images, autolinks and reference definitions in document order,
// reference definitions last.
func ExtractLinks(body []byte) []Link {
	ctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.Link:
			// Reference-style links resolve to Link nodes with a Destination.
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination)})
		case *gmast.HTMLBlock:
			var raw bytes.Buffer
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				raw.Write(seg.Value(body))
			}
			links = append(links, htmlLinks(raw.Bytes())...)
		case *gmast.RawHTML:
			var raw bytes.Buffer
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				raw.Write(seg.Value(body))
			}
			links = append(links, htmlLinks(raw.Bytes())...)
		}
		return gmast.WalkContinue, nil
	})

	// Reference definitions live in the parse context, not the AST.
	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		links = append(links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination())})
	}
	return links
}
