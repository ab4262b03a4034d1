package actions

import "fmt"

// SelectorKind tags the variant held by a Selector.
type SelectorKind int

const (
	MatchAll SelectorKind = iota
	MatchExact
	MatchPredicate
)

// Selector decides whether a rule applies to a source path.
type Selector struct {
	kind SelectorKind
	path string
	pred func(string) bool
	desc string
}

// All matches every path.
func All() Selector {
	return Selector{kind: MatchAll}
}

// Exact matches one source path.
func Exact(path string) Selector {
	return Selector{kind: MatchExact, path: path}
}

// Predicate matches paths for which fn returns true. desc names the predicate in logs.
func Predicate(desc string, fn func(string) bool) Selector {
	return Selector{kind: MatchPredicate, pred: fn, desc: desc}
}

// Kind returns the variant tag.
func (s Selector) Kind() SelectorKind { return s.kind }

// Matches evaluates the selector against path.
func (s Selector) Matches(path string) bool {
	switch s.kind {
	case MatchAll:
		return true
	case MatchExact:
		return s.path == path
	case MatchPredicate:
		return s.pred != nil && s.pred(path)
	default:
		return false
	}
}

func (s Selector) String() string {
	switch s.kind {
	case MatchAll:
		return "all"
	case MatchExact:
		return fmt.Sprintf("exact(%s)", s.path)
	case MatchPredicate:
		return fmt.Sprintf("predicate(%s)", s.desc)
	default:
		return "unknown"
	}
}
