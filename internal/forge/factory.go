package forge

import (
	"net/http"

	"github.com/thatguysimon/docs.pact.io/internal/config"
	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
)

// NewClient creates the API client for the configured forge. A nil httpClient
// uses a client with a 30s timeout.
func NewClient(src config.SourceConfig, httpClient *http.Client) (Client, error) {
	switch src.Forge {
	case config.ForgeGitHub:
		return NewGitHubClient(httpClient, src.APIURL, src.Token), nil
	case config.ForgeGitLab:
		return NewGitLabClient(httpClient, src.APIURL, src.Token), nil
	case config.ForgeForgejo:
		if src.APIURL == "" {
			return nil, errors.ConfigError("forgejo requires source.api_url").Build()
		}
		return NewForgejoClient(httpClient, src.APIURL, src.Token), nil
	default:
		return nil, errors.ConfigError("unsupported forge type").
			WithContext("type", src.Forge).
			Fatal().
			Build()
	}
}
