package links

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatguysimon/docs.pact.io/internal/util/sets"
)

func toDocs(p string) string {
	return "website/docs/" + strings.TrimPrefix(p, "./")
}

func newTestAbsolutizer(existing ...string) *Absolutizer {
	present := sets.New(existing...)
	return &Absolutizer{
		Known:     sets.New("other.md", "src/index.ts", "docs/messages.md"),
		Transform: toDocs,
		Exists:    present.Has,
		BlobURL:   GitHubBlobURL("pact-foundation/pact-js", "master"),
	}
}

func TestRewrite_Resolution(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		existing []string
		want     string
		outcome  Outcome
	}{
		{
			name:     "synced page links locally",
			raw:      "[see](./other.md)",
			existing: []string{"website/docs/other.md"},
			want:     "[see](website/docs/other.md)",
			outcome:  OutcomeLocal,
		},
		{
			name:    "dot-slash target known but not synced",
			raw:     "[see](./other.md)",
			want:    "[see](https://github.com/pact-foundation/pact-js/blob/master/other.md)",
			outcome: OutcomeRemote,
		},
		{
			name:    "dot-slash target neither synced nor known",
			raw:     "[see](./missing.md)",
			want:    "[see](./missing.md)",
			outcome: OutcomeUntouched,
		},
		{
			name:    "stripped leading slash matches known path",
			raw:     "[src](/src/index.ts)",
			want:    "[src](https://github.com/pact-foundation/pact-js/blob/master/src/index.ts)",
			outcome: OutcomeRemote,
		},
		{
			name:    "bare known path",
			raw:     "[see](other.md)",
			want:    "[see](https://github.com/pact-foundation/pact-js/blob/master/other.md)",
			outcome: OutcomeRemote,
		},
		{
			name:    "unknown target untouched",
			raw:     "[typo](docs/mesages.md)",
			want:    "[typo](docs/mesages.md)",
			outcome: OutcomeUntouched,
		},
		{
			name:    "anchor untouched",
			raw:     "[up](#usage)",
			want:    "[up](#usage)",
			outcome: OutcomeUntouched,
		},
		{
			name:     "http links never change",
			raw:      "[site](https://docs.pact.io/other.md)",
			existing: []string{"website/docs/https://docs.pact.io/other.md"},
			want:     "[site](https://docs.pact.io/other.md)",
			outcome:  OutcomeAbsolute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, stats := newTestAbsolutizer(tt.existing...).Rewrite(tt.raw)
			assert.Equal(t, tt.want, out)
			assert.Equal(t, 1, stats[tt.outcome])
		})
	}
}

func TestRewrite_DotSlashResolvesKnownNestedPath(t *testing.T) {
	out, stats := newTestAbsolutizer().Rewrite("[see](./docs/messages.md)")
	assert.Equal(t, "[see](https://github.com/pact-foundation/pact-js/blob/master/docs/messages.md)", out)
	assert.Equal(t, Stats{OutcomeRemote: 1}, stats)
}

func TestRewrite_MultipleLinksAndImages(t *testing.T) {
	raw := "Read [a](other.md) and ![img](/src/index.ts).\nAlso [b](https://x.io) [c](nope.md)"
	out, stats := newTestAbsolutizer().Rewrite(raw)

	assert.Equal(t,
		"Read [a](https://github.com/pact-foundation/pact-js/blob/master/other.md) and "+
			"![img](https://github.com/pact-foundation/pact-js/blob/master/src/index.ts).\n"+
			"Also [b](https://x.io) [c](nope.md)",
		out)
	assert.Equal(t, Stats{OutcomeRemote: 2, OutcomeAbsolute: 1, OutcomeUntouched: 1}, stats)
}

func TestRewrite_ParenthesesEndAtFirstCloser(t *testing.T) {
	raw := "[wiki](https://en.wikipedia.org/wiki/Pact_(software))"
	out, _ := newTestAbsolutizer().Rewrite(raw)
	assert.Equal(t, raw, out)
}

func TestRewrite_UnbalancedParenthesisLeftAlone(t *testing.T) {
	raw := "[broken](other.md"
	out, stats := newTestAbsolutizer().Rewrite(raw)
	assert.Equal(t, raw, out)
	assert.Empty(t, stats)
}

func TestAbsolutize_UsesFilesystem(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "guide.md")
	require.NoError(t, os.WriteFile(dest, []byte("x"), 0o600))

	transform := func(p string) string {
		if p == "./guide.md" {
			return dest
		}
		return filepath.Join(dir, "missing", p)
	}

	out := Absolutize("[g](./guide.md) [o](/other.md) [m](./missing.md)", []string{"other.md"}, "pact-foundation/pact-js", transform)
	assert.Equal(t,
		"[g]("+dest+") [o](https://github.com/pact-foundation/pact-js/blob/master/other.md) [m](./missing.md)",
		out)
}

func TestFileExists_IgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "nope")))
}
