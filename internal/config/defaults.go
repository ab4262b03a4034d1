package config

import (
	"fmt"
	"strings"
)

const (
	defaultBranch  = "master"
	defaultBaseURL = "https://github.com"
	defaultAPIURL  = "https://api.github.com"
)

// applyDefaults fills unset fields. It never overrides explicit values.
func applyDefaults(cfg *Config) {
	src := &cfg.Source
	if src.Branch == "" {
		src.Branch = defaultBranch
	}
	if src.Forge == "" {
		src.Forge = ForgeGitHub
	} else if normalized := NormalizeForgeType(string(src.Forge)); normalized != "" {
		src.Forge = normalized
	}
	if src.BaseURL == "" {
		src.BaseURL = defaultBaseURL
	}
	src.BaseURL = strings.TrimSuffix(src.BaseURL, "/")
	if src.APIURL == "" && src.Forge == ForgeGitHub {
		src.APIURL = defaultAPIURL
	}
	if src.Mode == "" {
		src.Mode = SourceModeAPI
	}
	if src.CloneURL == "" && src.Repository != "" {
		src.CloneURL = fmt.Sprintf("%s/%s.git", src.BaseURL, src.Repository)
	}
	if cfg.Destination.Root == "" {
		cfg.Destination.Root = "."
	}
	for i := range cfg.Jobs {
		if cfg.Jobs[i].Name == "" {
			cfg.Jobs[i].Name = fmt.Sprintf("job-%d", i+1)
		}
	}
}

// DefaultComment is the notice placed under the front matter of every synced page.
func DefaultComment(repository string) string {
	return fmt.Sprintf("<!-- This file has been synced from the %s repository. Please do not edit it directly. "+
		"The URL of the source file can be found in the custom_edit_url value above -->", repository)
}

// CommentFor returns the job's comment or the default notice.
func (c *Config) CommentFor(job Job) string {
	if job.Comment != "" {
		return job.Comment
	}
	return DefaultComment(c.Source.Repository)
}
