package forge

import (
	"context"
	"log/slog"

	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
	"github.com/thatguysimon/docs.pact.io/internal/logfields"
)

// RepositorySource exposes one branch of a repository as a flat file list.
// ListFiles must be called before ReadFile.
type RepositorySource struct {
	client     Client
	repository string
	branch     string
	blobs      map[string]Entry
}

// NewRepositorySource returns a source reading repository at branch through client.
func NewRepositorySource(client Client, repository, branch string) *RepositorySource {
	return &RepositorySource{client: client, repository: repository, branch: branch}
}

// ListFiles returns the path of every file in the branch, in listing order.
func (s *RepositorySource) ListFiles(ctx context.Context) ([]string, error) {
	entries, err := s.client.Tree(ctx, s.repository, s.branch)
	if err != nil {
		return nil, err
	}

	s.blobs = make(map[string]Entry, len(entries))
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Kind != KindBlob {
			continue
		}
		s.blobs[e.Path] = e
		paths = append(paths, e.Path)
	}
	slog.Debug("Listed repository tree",
		logfields.Repository(s.repository),
		logfields.Branch(s.branch),
		logfields.ForgeType(string(s.client.Type())),
		logfields.Count(len(paths)))
	return paths, nil
}

// ReadFile returns the contents of a listed file.
func (s *RepositorySource) ReadFile(ctx context.Context, path string) ([]byte, error) {
	entry, ok := s.blobs[path]
	if !ok {
		return nil, errors.NewError(errors.CategoryNotFound, "file not in repository listing").
			WithContext("path", path).
			WithContext("repository", s.repository).
			Build()
	}
	return s.client.Blob(ctx, s.repository, entry)
}
