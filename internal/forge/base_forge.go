package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
)

// BaseForge provides the HTTP plumbing shared by the forge clients.
type BaseForge struct {
	httpClient *http.Client
	apiURL     string
	token      string

	authHeaderPrefix string // "Bearer " for GitHub/GitLab, "token " for Forgejo
	customHeaders    map[string]string
}

// NewBaseForge creates a BaseForge. An empty token sends no Authorization header.
func NewBaseForge(httpClient *http.Client, apiURL, token string) *BaseForge {
	if httpClient == nil {
		httpClient = newHTTPClient30s()
	}
	return &BaseForge{
		httpClient:       httpClient,
		apiURL:           apiURL,
		token:            token,
		authHeaderPrefix: "Bearer ",
		customHeaders:    make(map[string]string),
	}
}

// SetAuthHeaderPrefix customizes the authorization header format.
func (b *BaseForge) SetAuthHeaderPrefix(prefix string) {
	b.authHeaderPrefix = prefix
}

// SetCustomHeader sets a header sent with every request.
func (b *BaseForge) SetCustomHeader(key, value string) {
	b.customHeaders[key] = value
}

// NewRequest builds a GET-style request for endpoint relative to the API URL.
// Query strings are kept, and percent-escaped segments such as GitLab's
// "owner%2Fname" project IDs survive unchanged.
func (b *BaseForge) NewRequest(ctx context.Context, method, endpoint string) (*http.Request, error) {
	cleanEndpoint := strings.TrimPrefix(endpoint, "/")

	var rawQuery string
	if idx := strings.Index(cleanEndpoint, "?"); idx != -1 {
		rawQuery = cleanEndpoint[idx+1:]
		cleanEndpoint = cleanEndpoint[:idx]
	}

	u, err := url.Parse(b.apiURL)
	if err != nil {
		return nil, errors.ForgeError("failed to parse API URL").
			WithCause(err).
			WithContext("api_url", b.apiURL).
			Build()
	}

	joined := path.Join("/", u.EscapedPath(), cleanEndpoint)
	if unescaped, uerr := url.PathUnescape(joined); uerr == nil && unescaped != joined {
		u.Path = unescaped
		u.RawPath = joined
	} else {
		u.Path = joined
		u.RawPath = ""
	}
	u.RawQuery = rawQuery

	req, err := http.NewRequestWithContext(ctx, method, u.String(), http.NoBody)
	if err != nil {
		return nil, errors.ForgeError("failed to create request").
			WithCause(err).
			WithContext("method", method).
			WithContext("url", u.String()).
			Build()
	}

	if b.token != "" {
		req.Header.Set("Authorization", b.authHeaderPrefix+b.token)
	}
	req.Header.Set("User-Agent", "docsync/1.0")
	for key, value := range b.customHeaders {
		req.Header.Set(key, value)
	}
	return req, nil
}

// DoRequest executes req and decodes a JSON response into result.
func (b *BaseForge) DoRequest(req *http.Request, result any) error {
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return errors.NetworkError("failed to execute forge request").
			WithCause(err).
			WithContext("method", req.Method).
			WithContext("url", req.URL.String()).
			Build()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		limitedBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		bodyStr := strings.ReplaceAll(string(limitedBody), "\n", " ")

		category := errors.CategoryForge
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			category = errors.CategoryAuth
		case http.StatusNotFound:
			category = errors.CategoryNotFound
		}

		return errors.NewError(category, fmt.Sprintf("forge API error: %s", resp.Status)).
			WithContext("status", resp.Status).
			WithContext("code", resp.StatusCode).
			WithContext("url", req.URL.String()).
			WithContext("response", bodyStr).
			Build()
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return errors.ForgeError("failed to decode response").
				WithCause(err).
				WithContext("url", req.URL.String()).
				Build()
		}
	}
	return nil
}

// get is NewRequest + DoRequest for GET endpoints.
func (b *BaseForge) get(ctx context.Context, endpoint string, result any) error {
	req, err := b.NewRequest(ctx, http.MethodGet, endpoint)
	if err != nil {
		return err
	}
	return b.DoRequest(req, result)
}

// PaginatedFetchHelper requests successive pages of baseEndpoint until fetchPage
// reports no more results or returns a short page.
func PaginatedFetchHelper[T any](
	ctx context.Context,
	baseEndpoint string,
	pageParam string,
	limitParam string,
	pageSize int,
	fetchPage func(endpoint string) ([]T, bool, error),
) ([]T, error) {
	var allResults []T
	page := 1

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		sep := "?"
		if strings.Contains(baseEndpoint, "?") {
			sep = "&"
		}
		endpoint := fmt.Sprintf("%s%s%s=%d&%s=%d", baseEndpoint, sep, pageParam, page, limitParam, pageSize)

		pageResults, hasMore, err := fetchPage(endpoint)
		if err != nil {
			return nil, err
		}
		allResults = append(allResults, pageResults...)

		if !hasMore || len(pageResults) < pageSize {
			break
		}
		page++
	}

	return allResults, nil
}
