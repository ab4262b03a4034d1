package markdown

import (
	"bytes"

	"golang.org/x/net/html"
)

// htmlLinks returns the href and src targets of anchors and media elements in a
// raw HTML fragment embedded in a page.
func htmlLinks(raw []byte) []Link {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil
	}

	var out []Link
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			key := ""
			switch n.Data {
			case "a":
				key = "href"
			case "img", "source", "video", "audio":
				key = "src"
			}
			if v := attr(n, key); key != "" && v != "" {
				out = append(out, Link{Kind: LinkKindHTML, Destination: v})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
