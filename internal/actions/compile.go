package actions

import (
	"fmt"
	"regexp"

	"github.com/thatguysimon/docs.pact.io/internal/config"
	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
	"github.com/thatguysimon/docs.pact.io/internal/links"
	"github.com/thatguysimon/docs.pact.io/internal/pathmap"
)

// Env supplies the collaborators some actions need at compile time.
type Env struct {
	// Links is required by absolutize_links rules.
	Links *links.Absolutizer
	// ObserveLinks receives link rewrite counts; optional.
	ObserveLinks func(links.Stats)
}

// Compile turns configured rules into a Table, preserving rule order.
func Compile(rules []config.ActionRule, env Env) (Table, error) {
	table := make(Table, 0, len(rules))
	for i, rule := range rules {
		sel, err := compileSelector(rule)
		if err != nil {
			return nil, annotate(err, i, rule)
		}
		act, err := compileAction(rule, env)
		if err != nil {
			return nil, annotate(err, i, rule)
		}
		table = append(table, Rule{Selector: sel, Action: act})
	}
	return table, nil
}

func compileSelector(rule config.ActionRule) (Selector, error) {
	switch rule.Match {
	case config.MatchAll:
		return All(), nil
	case config.MatchExact:
		return Exact(rule.Path), nil
	case config.MatchGlob:
		pred, err := pathmap.Glob(rule.Pattern)
		if err != nil {
			return Selector{}, err
		}
		return Predicate("glob:"+rule.Pattern, pred), nil
	case config.MatchPrefix:
		return Predicate("prefix:"+rule.Pattern, pathmap.Prefix(rule.Pattern)), nil
	case config.MatchRegexp:
		pred, err := pathmap.Regexp(rule.Pattern)
		if err != nil {
			return Selector{}, err
		}
		return Predicate("regexp:"+rule.Pattern, pred), nil
	default:
		return Selector{}, errors.ConfigError(fmt.Sprintf("unknown selector %q", rule.Match)).Build()
	}
}

func compileAction(rule config.ActionRule, env Env) (Action, error) {
	switch rule.Do {
	case NameExtractTitle:
		return ExtractTitle(), nil
	case NameFindAndReplace:
		if rule.Find == "" {
			return nil, errors.ConfigError("find_and_replace requires 'find'").Build()
		}
		expr := rule.Find
		if rule.Literal {
			expr = regexp.QuoteMeta(expr)
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "invalid find pattern").
				WithContext("pattern", rule.Find).
				Build()
		}
		if rule.Literal {
			return FindAndReplaceLiteral(re, rule.Replace), nil
		}
		return FindAndReplace(re, rule.Replace), nil
	case NameRemoveLinesContaining:
		if rule.Substring == "" {
			return nil, errors.ConfigError("remove_lines_containing requires 'substring'").Build()
		}
		return RemoveLinesContaining(rule.Substring), nil
	case NamePrependLines:
		if len(rule.Lines) == 0 {
			return nil, errors.ConfigError("prepend_lines requires 'lines'").Build()
		}
		return PrependLines(rule.Lines...), nil
	case NameFilterChangelog:
		return FilterChangelog(), nil
	case NameSetDescription:
		return SetDescription(rule.Value), nil
	case NameImportFrontMatter:
		return ImportFrontMatter(), nil
	case NameAbsolutizeLinks:
		if env.Links == nil {
			return nil, errors.InternalError("absolutize_links needs a link absolutizer").Build()
		}
		return AbsolutizeLinks(env.Links, env.ObserveLinks), nil
	default:
		return nil, errors.ConfigError(fmt.Sprintf("unknown action %q", rule.Do)).Build()
	}
}

func annotate(err error, index int, rule config.ActionRule) error {
	if classified, ok := errors.AsClassified(err); ok {
		return classified.WithContext("rule", index).WithContext("do", rule.Do)
	}
	return err
}
