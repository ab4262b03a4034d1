package pathmap

import (
	"regexp"
	"strings"

	"github.com/gobwas/glob"

	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
)

// Predicate reports whether a source path matches.
type Predicate func(path string) bool

// Glob compiles a slash-separated glob: '*' stays within one path segment, '**'
// crosses segments, '{a,b}' and '[...]' behave as usual.
func Glob(pattern string) (Predicate, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, errors.ConfigError("invalid glob pattern").
			WithCause(err).
			WithContext("pattern", pattern).
			Build()
	}
	return g.Match, nil
}

// Prefix matches paths starting with prefix.
func Prefix(prefix string) Predicate {
	return func(p string) bool { return strings.HasPrefix(p, prefix) }
}

// Regexp matches paths containing a match of expr.
func Regexp(expr string) (Predicate, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.ConfigError("invalid path regexp").
			WithCause(err).
			WithContext("pattern", expr).
			Build()
	}
	return re.MatchString, nil
}

// Filter keeps a path when some include predicate matches and no exclude predicate
// does. With no include predicates every non-excluded path is kept.
type Filter struct {
	include []Predicate
	exclude []Predicate
}

// NewFilter builds a Filter from predicates.
func NewFilter(include, exclude []Predicate) *Filter {
	return &Filter{include: include, exclude: exclude}
}

// NewGlobFilter compiles include and exclude glob patterns into a Filter.
func NewGlobFilter(include, exclude []string) (*Filter, error) {
	in, err := compileGlobs(include)
	if err != nil {
		return nil, err
	}
	ex, err := compileGlobs(exclude)
	if err != nil {
		return nil, err
	}
	return NewFilter(in, ex), nil
}

// Match reports whether p takes part in the sync.
func (f *Filter) Match(p string) bool {
	if f == nil {
		return true
	}
	for _, ex := range f.exclude {
		if ex(p) {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, in := range f.include {
		if in(p) {
			return true
		}
	}
	return false
}

func compileGlobs(patterns []string) ([]Predicate, error) {
	out := make([]Predicate, 0, len(patterns))
	for _, p := range patterns {
		pred, err := Glob(p)
		if err != nil {
			return nil, err
		}
		out = append(out, pred)
	}
	return out, nil
}
