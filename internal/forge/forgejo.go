package forge

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/thatguysimon/docs.pact.io/internal/config"
)

const forgejoPageSize = 50

// ForgejoClient reads trees and blobs through the Forgejo (Gitea) git API.
type ForgejoClient struct {
	*BaseForge
}

// NewForgejoClient creates a Forgejo client for apiURL (for example
// https://codeberg.org/api/v1).
func NewForgejoClient(httpClient *http.Client, apiURL, token string) *ForgejoClient {
	base := NewBaseForge(httpClient, apiURL, token)
	base.SetAuthHeaderPrefix("token ")
	return &ForgejoClient{BaseForge: base}
}

// Type returns the forge type.
func (c *ForgejoClient) Type() config.ForgeType { return config.ForgeForgejo }

type forgejoTree struct {
	SHA        string             `json:"sha"`
	Tree       []forgejoTreeEntry `json:"tree"`
	Truncated  bool               `json:"truncated"`
	Page       int                `json:"page"`
	TotalCount int                `json:"total_count"`
}

type forgejoTreeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
	SHA  string `json:"sha"`
	Size int64  `json:"size"`
}

// Tree lists branch recursively. Forgejo pages recursive trees.
func (c *ForgejoClient) Tree(ctx context.Context, repository, branch string) ([]Entry, error) {
	owner, name, err := splitRepository(repository)
	if err != nil {
		return nil, err
	}

	base := fmt.Sprintf("/repos/%s/%s/git/trees/%s?recursive=true", owner, name, url.PathEscape(branch))
	raw, err := PaginatedFetchHelper(ctx, base, "page", "per_page", forgejoPageSize,
		func(endpoint string) ([]forgejoTreeEntry, bool, error) {
			var tree forgejoTree
			if err := c.get(ctx, endpoint, &tree); err != nil {
				return nil, false, err
			}
			return tree.Tree, tree.Truncated, nil
		})
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(raw))
	for _, e := range raw {
		entries = append(entries, Entry{Path: e.Path, Kind: kindOf(e.Type), SHA: e.SHA, Size: e.Size})
	}
	return entries, nil
}

// Blob fetches a file by its blob SHA.
func (c *ForgejoClient) Blob(ctx context.Context, repository string, entry Entry) ([]byte, error) {
	owner, name, err := splitRepository(repository)
	if err != nil {
		return nil, err
	}

	var blob blobPayload
	if err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/git/blobs/%s", owner, name, entry.SHA), &blob); err != nil {
		return nil, err
	}
	return blob.decode(entry.Path)
}
