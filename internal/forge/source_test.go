package forge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatguysimon/docs.pact.io/internal/config"
	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
)

type fakeClient struct {
	entries []Entry
	blobs   map[string]string
}

func (f *fakeClient) Type() config.ForgeType { return config.ForgeGitHub }

func (f *fakeClient) Tree(context.Context, string, string) ([]Entry, error) {
	return f.entries, nil
}

func (f *fakeClient) Blob(_ context.Context, _ string, e Entry) ([]byte, error) {
	return []byte(f.blobs[e.SHA]), nil
}

func TestRepositorySource(t *testing.T) {
	client := &fakeClient{
		entries: []Entry{
			{Path: "docs", Kind: KindTree, SHA: "t"},
			{Path: "docs/a.md", Kind: KindBlob, SHA: "a"},
			{Path: "README.md", Kind: KindBlob, SHA: "r"},
		},
		blobs: map[string]string{"a": "alpha", "r": "readme"},
	}
	src := NewRepositorySource(client, "o/r", "master")

	paths, err := src.ListFiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/a.md", "README.md"}, paths)

	data, err := src.ReadFile(context.Background(), "docs/a.md")
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(data))

	_, err = src.ReadFile(context.Background(), "docs")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}
