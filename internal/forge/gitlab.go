package forge

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/thatguysimon/docs.pact.io/internal/config"
)

const gitlabPageSize = 100

// GitLabClient reads trees and blobs through the GitLab repositories API.
type GitLabClient struct {
	*BaseForge
}

// NewGitLabClient creates a GitLab client for apiURL (for example
// https://gitlab.com/api/v4).
func NewGitLabClient(httpClient *http.Client, apiURL, token string) *GitLabClient {
	if apiURL == "" {
		apiURL = "https://gitlab.com/api/v4"
	}
	return &GitLabClient{BaseForge: NewBaseForge(httpClient, apiURL, token)}
}

// Type returns the forge type.
func (c *GitLabClient) Type() config.ForgeType { return config.ForgeGitLab }

type gitlabTreeEntry struct {
	ID   string `json:"id"`
	Path string `json:"path"`
	Type string `json:"type"`
}

func projectID(repository string) (string, error) {
	if _, _, err := splitRepository(repository); err != nil {
		return "", err
	}
	return url.PathEscape(repository), nil
}

// Tree lists branch recursively, following GitLab's page-based pagination.
func (c *GitLabClient) Tree(ctx context.Context, repository, branch string) ([]Entry, error) {
	id, err := projectID(repository)
	if err != nil {
		return nil, err
	}

	base := fmt.Sprintf("/projects/%s/repository/tree?recursive=true&ref=%s", id, url.QueryEscape(branch))
	raw, err := PaginatedFetchHelper(ctx, base, "page", "per_page", gitlabPageSize,
		func(endpoint string) ([]gitlabTreeEntry, bool, error) {
			var page []gitlabTreeEntry
			if err := c.get(ctx, endpoint, &page); err != nil {
				return nil, false, err
			}
			return page, len(page) == gitlabPageSize, nil
		})
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(raw))
	for _, e := range raw {
		entries = append(entries, Entry{Path: e.Path, Kind: kindOf(e.Type), SHA: e.ID})
	}
	return entries, nil
}

// Blob fetches a file by its blob SHA.
func (c *GitLabClient) Blob(ctx context.Context, repository string, entry Entry) ([]byte, error) {
	id, err := projectID(repository)
	if err != nil {
		return nil, err
	}

	var blob blobPayload
	if err := c.get(ctx, fmt.Sprintf("/projects/%s/repository/blobs/%s", id, entry.SHA), &blob); err != nil {
		return nil, err
	}
	return blob.decode(entry.Path)
}
