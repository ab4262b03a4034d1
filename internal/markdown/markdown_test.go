package markdown

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLinks(t *testing.T) {
	body := []byte("See [guide](guide.md) and ![logo](img/logo.png).\n\n" +
		"Visit <https://pact.io> or [ref][r].\n\n" +
		"[r]: ref.md\n")

	links := ExtractLinks(body)
	assert.Equal(t, []Link{
		{Kind: LinkKindInline, Destination: "guide.md"},
		{Kind: LinkKindImage, Destination: "img/logo.png"},
		{Kind: LinkKindAuto, Destination: "https://pact.io"},
		{Kind: LinkKindInline, Destination: "ref.md"},
		{Kind: LinkKindReferenceDefinition, Destination: "ref.md"},
	}, links)
}

func TestExtractLinksRawHTML(t *testing.T) {
	body := []byte("<p align=\"center\">\n  <img src=\"docs/logo.png\" alt=\"logo\">\n</p>\n\n" +
		"Read the <a href=\"guide.md\">guide</a> first.\n")

	links := ExtractLinks(body)
	assert.Equal(t, []Link{
		{Kind: LinkKindHTML, Destination: "docs/logo.png"},
		{Kind: LinkKindHTML, Destination: "guide.md"},
	}, links)
}

func TestLocalTarget(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"guide.md", "guide.md", true},
		{"guide.md#setup", "guide.md", true},
		{"/website/docs/a.md", "website/docs/a.md", true},
		{"#anchor", "", false},
		{"https://pact.io", "", false},
		{"mailto:x@example.com", "", false},
		{"?q=1", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := localTarget(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestVerify(t *testing.T) {
	root := t.TempDir()
	write(t, root, "website/docs/js/guide.md", "---\ntitle: Guide\n---\n\n[sibling](readme.md)\n")
	write(t, root, "website/docs/js/readme.md", "---\ntitle: Readme\n---\n\n"+
		"[abs](website/docs/js/guide.md) [rel](guide.md#top) [web](https://pact.io) [bad](missing.md)\n")
	write(t, root, "website/docs/js/notes.txt", "[ignored](nope.md)")

	files, err := MarkdownFiles(root, "website")
	require.NoError(t, err)
	assert.Equal(t, []string{"website/docs/js/guide.md", "website/docs/js/readme.md"}, files)

	broken, err := Verify(root, files)
	require.NoError(t, err)
	assert.Equal(t, []BrokenLink{
		{File: "website/docs/js/readme.md", Target: "missing.md", Kind: LinkKindInline},
	}, broken)
}

func TestMarkdownFilesMissingDir(t *testing.T) {
	_, err := MarkdownFiles(t.TempDir(), "nope")
	require.Error(t, err)
}
