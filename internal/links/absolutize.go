// Package links rewrites relative markdown link targets of a synced page so they keep
// working once the page lives in the destination tree.
package links

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/thatguysimon/docs.pact.io/internal/util/sets"
)

// inlineLinkTarget matches `](url)`. The URL ends at the first ')'; targets that
// contain parentheses are not supported.
var inlineLinkTarget = regexp.MustCompile(`\]\(([^)]+)\)`)

// Transformer maps a source repository path to its destination path.
type Transformer func(sourcePath string) string

// ExistsFunc reports whether a destination path names an existing file.
type ExistsFunc func(destination string) bool

// Outcome classifies what happened to one link target.
type Outcome string

const (
	OutcomeAbsolute  Outcome = "absolute"  // already an http(s) URL
	OutcomeLocal     Outcome = "local"     // rewritten to a synced destination path
	OutcomeRemote    Outcome = "remote"    // rewritten to a repository blob URL
	OutcomeUntouched Outcome = "untouched" // neither synced nor a repository file
)

// Stats counts link outcomes for one rewrite.
type Stats map[Outcome]int

// Absolutizer rewrites link targets. Transform, Exists and BlobURL are injected so
// the rewrite itself does no I/O beyond what Exists performs.
type Absolutizer struct {
	// Known is the full file listing of the source repository.
	Known     sets.Set[string]
	Transform Transformer
	Exists    ExistsFunc
	// BlobURL returns the web URL of a repository file.
	BlobURL func(path string) string
}

// NewAbsolutizer returns an Absolutizer that checks destinations on the local
// filesystem and links unsynced files to GitHub's blob view on master.
func NewAbsolutizer(known []string, repository string, transform Transformer) *Absolutizer {
	return &Absolutizer{
		Known:     sets.New(known...),
		Transform: transform,
		Exists:    FileExists,
		BlobURL:   GitHubBlobURL(repository, "master"),
	}
}

// Absolutize rewrites raw using the default filesystem and GitHub wiring.
func Absolutize(raw string, known []string, repository string, transform Transformer) string {
	out, _ := NewAbsolutizer(known, repository, transform).Rewrite(raw)
	return out
}

// Rewrite returns raw with every resolvable relative link target replaced, and the
// per-outcome counts.
func (a *Absolutizer) Rewrite(raw string) (string, Stats) {
	stats := make(Stats)
	out := inlineLinkTarget.ReplaceAllStringFunc(raw, func(match string) string {
		url := match[2 : len(match)-1]
		target, outcome := a.Resolve(url)
		stats[outcome]++
		if outcome == OutcomeLocal || outcome == OutcomeRemote {
			return "](" + target + ")"
		}
		return match
	})
	return out, stats
}

// Resolve decides the new target for a single link URL.
func (a *Absolutizer) Resolve(url string) (string, Outcome) {
	if strings.HasPrefix(url, "http") {
		return url, OutcomeAbsolute
	}
	if a.Transform != nil && a.Exists != nil {
		if dest := a.Transform(url); a.Exists(dest) {
			return dest, OutcomeLocal
		}
	}
	repoPath := strings.TrimPrefix(strings.TrimPrefix(url, "./"), "/")
	if a.Known.Has(repoPath) && a.BlobURL != nil {
		return a.BlobURL(repoPath), OutcomeRemote
	}
	return url, OutcomeUntouched
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// GitHubBlobURL builds blob view URLs on github.com.
func GitHubBlobURL(repository, branch string) func(string) string {
	return func(path string) string {
		return fmt.Sprintf("https://github.com/%s/blob/%s/%s", repository, branch, path)
	}
}
