package forge

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/thatguysimon/docs.pact.io/internal/config"
	"github.com/thatguysimon/docs.pact.io/internal/logfields"
)

// GitHubClient reads trees and blobs through the GitHub git database API.
type GitHubClient struct {
	*BaseForge
}

// NewGitHubClient creates a GitHub client for apiURL.
func NewGitHubClient(httpClient *http.Client, apiURL, token string) *GitHubClient {
	if apiURL == "" {
		apiURL = "https://api.github.com"
	}
	base := NewBaseForge(httpClient, apiURL, token)
	base.SetCustomHeader("Accept", "application/vnd.github+json")
	base.SetCustomHeader("X-GitHub-Api-Version", "2022-11-28")
	return &GitHubClient{BaseForge: base}
}

// Type returns the forge type.
func (c *GitHubClient) Type() config.ForgeType { return config.ForgeGitHub }

type githubTree struct {
	SHA       string            `json:"sha"`
	Tree      []githubTreeEntry `json:"tree"`
	Truncated bool              `json:"truncated"`
}

type githubTreeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
	SHA  string `json:"sha"`
	Size int64  `json:"size"`
}

// Tree lists branch recursively in a single request.
func (c *GitHubClient) Tree(ctx context.Context, repository, branch string) ([]Entry, error) {
	owner, name, err := splitRepository(repository)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("/repos/%s/%s/git/trees/%s?recursive=1", owner, name, url.PathEscape(branch))
	var tree githubTree
	if err := c.get(ctx, endpoint, &tree); err != nil {
		return nil, err
	}
	if tree.Truncated {
		slog.Warn("GitHub truncated the tree listing; some files will be missing",
			logfields.Repository(repository),
			logfields.Branch(branch),
			logfields.Count(len(tree.Tree)))
	}

	entries := make([]Entry, 0, len(tree.Tree))
	for _, e := range tree.Tree {
		entries = append(entries, Entry{Path: e.Path, Kind: kindOf(e.Type), SHA: e.SHA, Size: e.Size})
	}
	return entries, nil
}

// Blob fetches and base64-decodes a file by its blob SHA.
func (c *GitHubClient) Blob(ctx context.Context, repository string, entry Entry) ([]byte, error) {
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
