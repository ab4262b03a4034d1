package git

import (
	"context"
	"log/slog"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
	"github.com/thatguysimon/docs.pact.io/internal/logfields"
)

// CloneSource lists and reads files from a depth-1 single-branch clone held in
// memory. The clone happens on the first ListFiles call.
type CloneSource struct {
	url    string
	branch string
	token  string

	snap *Snapshot
}

// NewCloneSource returns a source for branch of the repository at url. A
// non-empty token is sent as HTTP basic auth password.
func NewCloneSource(url, branch, token string) *CloneSource {
	return &CloneSource{url: url, branch: branch, token: token}
}

func (s *CloneSource) auth() transport.AuthMethod {
	if s.token == "" {
		return nil
	}
	return &http.BasicAuth{Username: "token", Password: s.token}
}

func (s *CloneSource) clone(ctx context.Context) error {
	slog.Info("Cloning repository", logfields.URL(s.url), logfields.Branch(s.branch))
	repo, err := gogit.CloneContext(ctx, memory.NewStorage(), memfs.New(), &gogit.CloneOptions{
		URL:           s.url,
		Auth:          s.auth(),
		ReferenceName: plumbing.NewBranchReferenceName(s.branch),
		SingleBranch:  true,
		Depth:         1,
		Tags:          gogit.NoTags,
	})
	if err != nil {
		return ClassifyGitError(err, "clone", s.url)
	}

	snap, err := NewSnapshot(repo, s.branch)
	if err != nil {
		return err
	}
	s.snap = snap
	return nil
}

// ListFiles clones on first use and returns every file path in the branch.
func (s *CloneSource) ListFiles(ctx context.Context) ([]string, error) {
	if s.snap == nil {
		if err := s.clone(ctx); err != nil {
			return nil, err
		}
	}
	return s.snap.Paths(), nil
}

// ReadFile returns the contents of path from the clone.
func (s *CloneSource) ReadFile(_ context.Context, path string) ([]byte, error) {
	if s.snap == nil {
		return nil, errors.InternalError("ReadFile called before ListFiles").Build()
	}
	return s.snap.ReadFile(path)
}

// Snapshot is the file tree of one commit, with contents read from the checked-out
// worktree when there is one and from the object store otherwise.
type Snapshot struct {
	commit *object.Commit
	tree   *object.Tree
	fs     billy.Filesystem
	paths  []string
}

// NewSnapshot resolves branch in repo and indexes its file tree.
func NewSnapshot(repo *gogit.Repository, branch string) (*Snapshot, error) {
	ref, err := repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return nil, ClassifyGitError(err, "resolve", branch)
	}
	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, ClassifyGitError(err, "commit", branch)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, ClassifyGitError(err, "tree", branch)
	}

	snap := &Snapshot{commit: commit, tree: tree}
	if wt, werr := repo.Worktree(); werr == nil {
		snap.fs = wt.Filesystem
	}

	err = tree.Files().ForEach(func(f *object.File) error {
		snap.paths = append(snap.paths, f.Name)
		return nil
	})
	if err != nil {
		return nil, ClassifyGitError(err, "walk", branch)
	}
	sort.Strings(snap.paths)

	slog.Debug("Indexed commit tree",
		logfields.Branch(branch),
		slog.String("commit", commit.Hash.String()[:8]),
		logfields.Count(len(snap.paths)))
	return snap, nil
}

// Paths returns every file path of the commit, sorted.
func (s *Snapshot) Paths() []string {
	return append([]string(nil), s.paths...)
}

// Commit returns the snapshot commit hash.
func (s *Snapshot) Commit() string {
	return s.commit.Hash.String()
}

// ReadFile returns the contents of path.
func (s *Snapshot) ReadFile(path string) ([]byte, error) {
	if s.fs != nil {
		if data, err := util.ReadFile(s.fs, path); err == nil {
			return data, nil
		}
	}

	f, err := s.tree.File(path)
	if err != nil {
		return nil, errors.NewError(errors.CategoryNotFound, "file not in commit tree").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	contents, err := f.Contents()
	if err != nil {
		return nil, ClassifyGitError(err, "read", path)
	}
	return []byte(contents), nil
}
