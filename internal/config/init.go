package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
)

// Example returns a configuration mirroring the Pact JS documentation.
func Example() *Config {
	return &Config{
		Source: SourceConfig{
			Repository: "pact-foundation/pact-js",
			Branch:     defaultBranch,
			Forge:      ForgeGitHub,
			Token:      "${GITHUB_ACCESS_TOKEN}",
			Mode:       SourceModeAPI,
		},
		Destination: DestinationConfig{Root: "."},
		Jobs: []Job{
			{
				Name:    "pact-js",
				Include: []string{"README.md", "CHANGELOG.md", "docs/**.md"},
				Exclude: []string{"docs/internal/**"},
				Paths: PathRules{
					StripPrefix: "docs/",
					Prefix:      "website/docs/implementation_guides/javascript/",
					Lowercase:   true,
				},
				Actions: []ActionRule{
					{Match: MatchAll, Do: "import_front_matter"},
					{Match: MatchAll, Do: "extract_title"},
					{Match: MatchExact, Path: "README.md", Do: "remove_lines_containing", Substring: "Build Status"},
					{Match: MatchExact, Path: "CHANGELOG.md", Do: "filter_changelog"},
					{Match: MatchGlob, Pattern: "docs/**", Do: "find_and_replace", Find: "](docs/", Replace: "](", Literal: true},
					{Match: MatchAll, Do: "absolutize_links"},
				},
			},
		},
	}
}

// Init writes the example configuration to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	data, err := yaml.Marshal(Example())
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
