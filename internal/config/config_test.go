package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
)

const minimalConfig = `
source:
  repository: pact-foundation/pact-js
  token: ${DOCSYNC_TEST_TOKEN}
jobs:
  - name: pact-js
    include: ["*.md"]
    actions:
      - match: all
        do: extract_title
      - match: exact
        path: CHANGELOG.md
        do: filter_changelog
`

func TestParse_AppliesDefaults(t *testing.T) {
	t.Setenv("DOCSYNC_TEST_TOKEN", "secret")

	cfg, err := Parse([]byte(minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Source.Token)
	assert.Equal(t, "master", cfg.Source.Branch)
	assert.Equal(t, ForgeGitHub, cfg.Source.Forge)
	assert.Equal(t, "https://github.com", cfg.Source.BaseURL)
	assert.Equal(t, "https://api.github.com", cfg.Source.APIURL)
	assert.Equal(t, "https://github.com/pact-foundation/pact-js.git", cfg.Source.CloneURL)
	assert.Equal(t, SourceModeAPI, cfg.Source.Mode)
	assert.Equal(t, ".", cfg.Destination.Root)
	require.Len(t, cfg.Jobs, 1)
	assert.Equal(t, MatchExact, cfg.Jobs[0].Actions[1].Match)
}

func TestParse_NormalizesForgeAndNamesJobs(t *testing.T) {
	cfg, err := Parse([]byte(`
source:
  repository: pact/pact-go
  forge: GitLab
  base_url: https://gitlab.example.com/
  api_url: https://gitlab.example.com/api/v4
jobs:
  - include: ["*.md"]
`))
	require.NoError(t, err)
	assert.Equal(t, ForgeGitLab, cfg.Source.Forge)
	assert.Equal(t, "https://gitlab.example.com", cfg.Source.BaseURL)
	assert.Equal(t, "job-1", cfg.Jobs[0].Name)
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := map[string]string{
		"bad repository": `
source: {repository: pact-js}
jobs: [{name: a}]
`,
		"no jobs": `
source: {repository: pact-foundation/pact-js}
`,
		"duplicate job": `
source: {repository: pact-foundation/pact-js}
jobs: [{name: a}, {name: a}]
`,
		"unknown selector": `
source: {repository: pact-foundation/pact-js}
jobs: [{name: a, actions: [{match: sometimes, do: extract_title}]}]
`,
		"exact without path": `
source: {repository: pact-foundation/pact-js}
jobs: [{name: a, actions: [{match: exact, do: extract_title}]}]
`,
		"glob without pattern": `
source: {repository: pact-foundation/pact-js}
jobs: [{name: a, actions: [{match: glob, do: extract_title}]}]
`,
		"missing do": `
source: {repository: pact-foundation/pact-js}
jobs: [{name: a, actions: [{match: all}]}]
`,
		"unknown forge": `
source: {repository: pact-foundation/pact-js, forge: svn}
jobs: [{name: a}]
`,
		"api mode without api url": `
source: {repository: pact-foundation/pact-js, forge: forgejo}
jobs: [{name: a}]
`,
		"unknown field": `
source: {repository: pact-foundation/pact-js, colour: blue}
jobs: [{name: a}]
`,
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig), "got %v", err)
		})
	}
}

func TestParse_GitModeNeedsNoAPIURL(t *testing.T) {
	cfg, err := Parse([]byte(`
source: {repository: pact-foundation/pact-js, forge: forgejo, base_url: https://codeberg.org, mode: git}
jobs: [{name: a}]
`))
	require.NoError(t, err)
	assert.Equal(t, "https://codeberg.org/pact-foundation/pact-js.git", cfg.Source.CloneURL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestInit_WritesLoadableExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsync.yaml")
	t.Setenv("GITHUB_ACCESS_TOKEN", "tok")

	require.NoError(t, Init(path, false))
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	cfg, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "tok", cfg.Source.Token)
	assert.Equal(t, "pact-js", cfg.Jobs[0].Name)
}

func TestCommentFor(t *testing.T) {
	cfg := &Config{Source: SourceConfig{Repository: "pact-foundation/pact-js"}}

	assert.Equal(t, "<!-- custom -->", cfg.CommentFor(Job{Comment: "<!-- custom -->"}))
	assert.Contains(t, cfg.CommentFor(Job{}), "synced from the pact-foundation/pact-js repository")
}
