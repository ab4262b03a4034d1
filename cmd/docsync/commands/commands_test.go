package commands

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
	"github.com/thatguysimon/docs.pact.io/internal/sync"
)

func TestParseLogLevel(t *testing.T) {
	t.Setenv("DOCSYNC_LOG_LEVEL", "")
	assert.Equal(t, slog.LevelInfo, parseLogLevel(false))
	assert.Equal(t, slog.LevelDebug, parseLogLevel(true))

	t.Setenv("DOCSYNC_LOG_LEVEL", "WARN")
	assert.Equal(t, slog.LevelWarn, parseLogLevel(false))
	t.Setenv("DOCSYNC_LOG_LEVEL", "error")
	assert.Equal(t, slog.LevelError, parseLogLevel(false))
	assert.Equal(t, slog.LevelDebug, parseLogLevel(true))
}

func TestCLIParsing(t *testing.T) {
	cli := &CLI{}
	parser, err := kong.New(cli, kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)

	kctx, err := parser.Parse([]string{"-c", "custom.yaml", "sync", "--dry-run", "-j", "pact-js", "--job", "pact-go", "--metrics-file", "m.prom"})
	require.NoError(t, err)
	assert.Equal(t, "sync", kctx.Command())
	assert.True(t, cli.Sync.DryRun)
	assert.Equal(t, []string{"pact-js", "pact-go"}, cli.Sync.Job)
	assert.Equal(t, "custom.yaml", filepath.Base(cli.Config))
	assert.Equal(t, "m.prom", filepath.Base(cli.Sync.MetricsFile))

	kctx, err = parser.Parse([]string{"verify", "website/docs"})
	require.NoError(t, err)
	assert.Equal(t, "verify <dirs>", kctx.Command())
	assert.Equal(t, []string{"website/docs"}, cli.Verify.Dirs)
}

func TestInitCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsync.yaml")
	var out bytes.Buffer
	g := &Global{Out: &out}

	require.NoError(t, (&InitCmd{}).Run(g, &CLI{Config: path}))
	assert.FileExists(t, path)
	assert.Contains(t, out.String(), path)

	err := (&InitCmd{}).Run(g, &CLI{Config: path})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))

	require.NoError(t, (&InitCmd{Force: true}).Run(g, &CLI{Config: path}))
}

func TestRunVerify(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "docs")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("[b](b.md)\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("[gone](gone.md)\n"), 0o644))

	var out bytes.Buffer
	err := runVerify(&Global{Out: &out}, root, nil)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryDocs))
	assert.Contains(t, out.String(), `docs/b.md: broken inline link "gone.md"`)
	assert.Contains(t, out.String(), "2 files checked, 1 broken links")
}

func TestPrintPlan(t *testing.T) {
	planned := []sync.PlannedFile{{Job: "js", Path: "README.md", Destination: "website/js/readme.md"}}

	var text bytes.Buffer
	require.NoError(t, printPlan(&Global{Out: &text}, planned, false))
	assert.Equal(t, "js\tREADME.md -> website/js/readme.md\n", text.String())

	var js bytes.Buffer
	require.NoError(t, printPlan(&Global{Out: &js}, planned, true))
	var decoded []sync.PlannedFile
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, planned, decoded)
}

// fakeGitHub serves a two-file repository through the git trees/blobs API.
func fakeGitHub(t *testing.T) *httptest.Server {
	t.Helper()
	blobs := map[string]string{
		"b1": "Guide\n=====\nBody text.",
		"b2": "# Readme\n[guide](docs/guide.md)",
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/o/r/git/trees/master", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"tree": []map[string]any{
			{"path": "docs", "type": "tree", "sha": "t1"},
			{"path": "docs/guide.md", "type": "blob", "sha": "b1"},
			{"path": "README.md", "type": "blob", "sha": "b2"},
		}})
	})
	mux.HandleFunc("/repos/o/r/git/blobs/", func(w http.ResponseWriter, r *http.Request) {
		sha := filepath.Base(r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"encoding": "base64",
			"content":  base64.StdEncoding.EncodeToString([]byte(blobs[sha])),
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeConfig(t *testing.T, apiURL, root string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docsync.yaml")
	cfg := `
source:
  repository: o/r
  api_url: ` + apiURL + `
destination:
  root: ` + root + `
jobs:
  - name: docs
    include: ["*.md", "docs/**.md"]
    paths:
      prefix: site/
    actions:
      - match: all
        do: extract_title
      - match: all
        do: absolutize_links
`
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	return path
}

func TestSyncCmd(t *testing.T) {
	srv := fakeGitHub(t)
	root := t.TempDir()
	cfgPath := writeConfig(t, srv.URL, root)
	reportPath := filepath.Join(t.TempDir(), "report.json")
	metricsPath := filepath.Join(t.TempDir(), "docsync.prom")

	cmd := &SyncCmd{Report: reportPath, MetricsFile: metricsPath}
	require.NoError(t, cmd.Run(&Global{Ctx: context.Background()}, &CLI{Config: cfgPath}))

	guide, err := os.ReadFile(filepath.Join(root, "site", "docs", "guide.md"))
	require.NoError(t, err)
	assert.Contains(t, string(guide), "title: Guide\ncustom_edit_url: https://github.com/o/r/edit/master/docs/guide.md\n")

	readme, err := os.ReadFile(filepath.Join(root, "site", "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(readme), "[guide](site/docs/guide.md)")

	assert.FileExists(t, reportPath)
	metrics, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `docsync_files_total{job="docs",result="created"} 2`)
}

func TestListCmd(t *testing.T) {
	srv := fakeGitHub(t)
	root := t.TempDir()
	var out bytes.Buffer

	cmd := &ListCmd{}
	require.NoError(t, cmd.Run(&Global{Out: &out}, &CLI{Config: writeConfig(t, srv.URL, root)}))
	assert.Equal(t, "docs\tdocs/guide.md -> site/docs/guide.md\ndocs\tREADME.md -> site/README.md\n", out.String())
}
