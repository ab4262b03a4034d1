package config

import (
	"fmt"
	"strings"

	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
)

// ValidateConfig validates the configuration after defaults are applied.
func ValidateConfig(cfg *Config) error {
	v := &configurationValidator{config: cfg}
	return v.validate()
}

type configurationValidator struct {
	config *Config
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateSource(); err != nil {
		return err
	}
	return cv.validateJobs()
}

func (cv *configurationValidator) validateSource() error {
	src := cv.config.Source
	owner, name, ok := strings.Cut(src.Repository, "/")
	if !ok || owner == "" || name == "" {
		return errors.ConfigError("source.repository must be owner/name").
			WithContext("repository", src.Repository).
			Build()
	}
	if NormalizeForgeType(string(src.Forge)) == "" {
		return errors.ConfigError("unsupported forge type").
			WithContext("forge", string(src.Forge)).
			Build()
	}
	switch src.Mode {
	case SourceModeAPI:
		if src.APIURL == "" {
			return errors.ConfigError("source.api_url is required in api mode").
				WithContext("forge", string(src.Forge)).
				Build()
		}
	case SourceModeGit:
	default:
		return errors.ConfigError("unsupported source mode").
			WithContext("mode", string(src.Mode)).
			Build()
	}
	return nil
}

func (cv *configurationValidator) validateJobs() error {
	if len(cv.config.Jobs) == 0 {
		return errors.ConfigError("at least one job must be configured").Build()
	}
	names := make(map[string]bool, len(cv.config.Jobs))
	for _, job := range cv.config.Jobs {
		if names[job.Name] {
			return errors.ConfigError("duplicate job name").WithContext("job", job.Name).Build()
		}
		names[job.Name] = true

		for i, rule := range job.Actions {
			if err := validateActionRule(rule); err != nil {
				return errors.ConfigError(err.Error()).
					WithContext("job", job.Name).
					WithContext("rule", i).
					Build()
			}
		}
	}
	return nil
}

// validateActionRule checks selector shape. Action names and arguments are checked
// when the rule table is compiled.
func validateActionRule(rule ActionRule) error {
	if rule.Do == "" {
		return fmt.Errorf("action rule is missing 'do'")
	}
	switch rule.Match {
	case MatchAll:
	case MatchExact:
		if rule.Path == "" {
			return fmt.Errorf("exact selector requires 'path'")
		}
	case MatchGlob, MatchPrefix, MatchRegexp:
		if rule.Pattern == "" {
			return fmt.Errorf("%s selector requires 'pattern'", rule.Match)
		}
	default:
		return fmt.Errorf("unknown selector %q", rule.Match)
	}
	return nil
}
