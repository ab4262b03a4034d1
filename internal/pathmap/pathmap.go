// Package pathmap maps source repository paths to destination paths and decides
// which source paths take part in a sync.
package pathmap

import (
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rules configures a Mapper. Steps run in field order: Rename, StripPrefix,
// Lowercase, Prefix.
type Rules struct {
	// Rename maps a full source path or a base name to a replacement. Full paths win.
	Rename      map[string]string
	StripPrefix string
	Lowercase   bool
	Prefix      string
}

// Mapper is a pure source path → destination path function.
type Mapper struct {
	rules Rules
}

// NewMapper returns a Mapper for rules.
func NewMapper(rules Rules) *Mapper {
	return &Mapper{rules: rules}
}

// Transform returns the destination path for sourcePath. Relative prefixes such as
// "./" and a leading "/" are normalized away first, so link targets and tree paths
// map identically.
func (m *Mapper) Transform(sourcePath string) string {
	p := Normalize(sourcePath)

	if renamed, ok := m.rules.Rename[p]; ok {
		p = renamed
	} else if renamed, ok := m.rules.Rename[path.Base(p)]; ok {
		p = path.Join(path.Dir(p), renamed)
	}

	if m.rules.StripPrefix != "" {
		p = strings.TrimPrefix(p, m.rules.StripPrefix)
	}
	if m.rules.Lowercase {
		p = cases.Lower(language.Und).String(p)
	}
	if m.rules.Prefix != "" {
		p = m.rules.Prefix + p
	}
	return p
}

// Normalize cleans a repository-relative path and removes a leading "/".
func Normalize(p string) string {
	p = path.Clean("/" + strings.TrimSpace(p))
	return strings.TrimPrefix(p, "/")
}
