package markdown

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
	"github.com/thatguysimon/docs.pact.io/internal/frontmatter"
)

// BrokenLink is a local link whose target exists neither next to the page nor
// under the destination root.
type BrokenLink struct {
	File   string `json:"file"`
	Target string `json:"target"`
	Kind   LinkKind `json:"kind"`
}

// MarkdownFiles returns the slash-separated paths, relative to root, of every .md
// file below root/dir.
func MarkdownFiles(root, dir string) ([]string, error) {
	var files []string
	start := filepath.Join(root, filepath.FromSlash(dir))
	err := filepath.WalkDir(start, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".md") {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, errors.FileSystemError("failed to walk destination tree").
			WithCause(err).
			WithContext("path", start).
			Build()
	}
	return files, nil
}

// Verify checks the local links of files (relative to root). Absolutized links
// point at paths relative to root, untouched ones are relative to the page, so
// either resolution counts.
func Verify(root string, files []string) ([]BrokenLink, error) {
	var broken []BrokenLink
	for _, file := range files {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(file)))
		if err != nil {
			return nil, errors.FileSystemError("failed to read page").
				WithCause(err).
				WithContext("path", file).
				Build()
		}

		body := data
		if _, b, had, splitErr := frontmatter.Split(data); splitErr == nil && had {
			body = b
		}

		for _, link := range ExtractLinks(body) {
			target, ok := localTarget(link.Destination)
			if !ok {
				continue
			}
			if exists(root, target) || exists(root, path.Join(path.Dir(file), target)) {
				continue
			}
			broken = append(broken, BrokenLink{File: file, Target: link.Destination, Kind: link.Kind})
		}
	}
	return broken, nil
}

// localTarget strips query and fragment and reports whether dest names a local
// file.
func localTarget(dest string) (string, bool) {
	if dest == "" || strings.HasPrefix(dest, "#") || strings.Contains(dest, "://") ||
		strings.HasPrefix(dest, "mailto:") || strings.HasPrefix(dest, "//") {
		return "", false
	}
	if i := strings.IndexAny(dest, "?#"); i >= 0 {
		dest = dest[:i]
	}
	dest = strings.TrimPrefix(dest, "/")
	return dest, dest != ""
}

func exists(root, rel string) bool {
	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(path.Clean(rel))))
	return err == nil
}
