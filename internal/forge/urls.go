package forge

import (
	"fmt"
	"strings"

	"github.com/thatguysimon/docs.pact.io/internal/config"
)

// GenerateEditURL constructs a web UI edit URL for a repository file given the forge type.
// baseURL is the canonical web base, repository is "owner/name" and filePath uses
// forward slashes. Returns an empty string if inputs are insufficient.
func GenerateEditURL(forgeType config.ForgeType, baseURL, repository, branch, filePath string) string {
	if forgeType == "" || baseURL == "" || repository == "" || branch == "" || filePath == "" {
		return ""
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	filePath = strings.TrimPrefix(filePath, "/")
	switch forgeType {
	case config.ForgeGitHub:
		return fmt.Sprintf("%s/%s/edit/%s/%s", baseURL, repository, branch, filePath)
	case config.ForgeGitLab:
		return fmt.Sprintf("%s/%s/-/edit/%s/%s", baseURL, repository, branch, filePath)
	case config.ForgeForgejo:
		return fmt.Sprintf("%s/%s/_edit/%s/%s", baseURL, repository, branch, filePath)
	default:
		return ""
	}
}

// GenerateBlobURL constructs the web UI view URL for a repository file.
func GenerateBlobURL(forgeType config.ForgeType, baseURL, repository, branch, filePath string) string {
	if forgeType == "" || baseURL == "" || repository == "" || branch == "" || filePath == "" {
		return ""
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	filePath = strings.TrimPrefix(filePath, "/")
	switch forgeType {
	case config.ForgeGitHub:
		return fmt.Sprintf("%s/%s/blob/%s/%s", baseURL, repository, branch, filePath)
	case config.ForgeGitLab:
		return fmt.Sprintf("%s/%s/-/blob/%s/%s", baseURL, repository, branch, filePath)
	case config.ForgeForgejo:
		return fmt.Sprintf("%s/%s/src/branch/%s/%s", baseURL, repository, branch, filePath)
	default:
		return ""
	}
}

// URLBuilder binds the URL generators to one source repository.
type URLBuilder struct {
	Forge      config.ForgeType
	BaseURL    string
	Repository string
	Branch     string
}

// NewURLBuilder returns a URLBuilder for src.
func NewURLBuilder(src config.SourceConfig) URLBuilder {
	return URLBuilder{Forge: src.Forge, BaseURL: src.BaseURL, Repository: src.Repository, Branch: src.Branch}
}

// EditURL returns the edit URL of filePath.
func (b URLBuilder) EditURL(filePath string) string {
	return GenerateEditURL(b.Forge, b.BaseURL, b.Repository, b.Branch, filePath)
}

// BlobURL returns the view URL of filePath.
func (b URLBuilder) BlobURL(filePath string) string {
	return GenerateBlobURL(b.Forge, b.BaseURL, b.Repository, b.Branch, filePath)
}
