package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
)

// Config represents the application configuration.
type Config struct {
	Source      SourceConfig      `yaml:"source"`
	Destination DestinationConfig `yaml:"destination"`
	Jobs        []Job             `yaml:"jobs"`
}

// SourceConfig identifies the repository documentation is mirrored from.
type SourceConfig struct {
	Repository string     `yaml:"repository"` // owner/name
	Branch     string     `yaml:"branch,omitempty"`
	Forge      ForgeType  `yaml:"forge,omitempty"`
	BaseURL    string     `yaml:"base_url,omitempty"`
	APIURL     string     `yaml:"api_url,omitempty"`
	CloneURL   string     `yaml:"clone_url,omitempty"` // git mode only; derived from base_url when empty
	Token      string     `yaml:"token,omitempty"`
	Mode       SourceMode `yaml:"mode,omitempty"`
}

// DestinationConfig describes the documentation tree files are written into.
type DestinationConfig struct {
	Root string `yaml:"root"`
}

// Job is one include/exclude selection of source files with its path mapping and actions.
type Job struct {
	Name    string       `yaml:"name"`
	Include []string     `yaml:"include,omitempty"`
	Exclude []string     `yaml:"exclude,omitempty"`
	Paths   PathRules    `yaml:"paths,omitempty"`
	Comment string       `yaml:"comment,omitempty"`
	Actions []ActionRule `yaml:"actions,omitempty"`
}

// PathRules configures the source → destination path transformer.
type PathRules struct {
	StripPrefix string            `yaml:"strip_prefix,omitempty"`
	Prefix      string            `yaml:"prefix,omitempty"`
	Lowercase   bool              `yaml:"lowercase,omitempty"`
	Rename      map[string]string `yaml:"rename,omitempty"`
}

// ActionRule selects paths (Match plus Path or Pattern) and names the action to run (Do)
// with its arguments.
type ActionRule struct {
	Match   MatchKind `yaml:"match"`
	Path    string    `yaml:"path,omitempty"`
	Pattern string    `yaml:"pattern,omitempty"`
	Do      string    `yaml:"do"`

	Find      string   `yaml:"find,omitempty"`
	Replace   string   `yaml:"replace,omitempty"`
	Literal   bool     `yaml:"literal,omitempty"`
	Substring string   `yaml:"substring,omitempty"`
	Lines     []string `yaml:"lines,omitempty"`
	Value     string   `yaml:"value,omitempty"`
}

// Load reads, expands, defaults and validates the configuration at configPath.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Note: env file couldn't be loaded: %v\n", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").
				WithContext("path", configPath).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).
			Build()
	}
	return Parse(data)
}

// Parse decodes YAML configuration after expanding ${VAR} references.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(strings.NewReader(os.ExpandEnv(string(data))))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}
	applyDefaults(&cfg)
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
