package forge

import (
	"context"
	"strings"

	"github.com/thatguysimon/docs.pact.io/internal/config"
	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
)

// EntryKind distinguishes files from directories in a tree listing.
type EntryKind string

const (
	KindBlob EntryKind = "blob"
	KindTree EntryKind = "tree"
)

// Entry is one node of a recursive repository tree listing.
type Entry struct {
	Path string
	Kind EntryKind
	SHA  string
	Size int64
}

// Client lists repository trees and fetches file contents from a forge.
type Client interface {
	Type() config.ForgeType
	// Tree returns every entry reachable from branch, recursively.
	Tree(ctx context.Context, repository, branch string) ([]Entry, error)
	// Blob returns the decoded contents of a file entry.
	Blob(ctx context.Context, repository string, entry Entry) ([]byte, error)
}

// splitRepository splits "owner/name".
func splitRepository(repository string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", errors.ValidationError("repository must be owner/name").
			WithContext("repository", repository).
			Build()
	}
	return owner, name, nil
}
