package config

import "strings"

// ForgeType enumerates supported forge providers.
type ForgeType string

const (
	ForgeGitHub  ForgeType = "github"
	ForgeGitLab  ForgeType = "gitlab"
	ForgeForgejo ForgeType = "forgejo"
)

// NormalizeForgeType canonicalizes a forge type string (case-insensitive) or returns empty if unknown.
func NormalizeForgeType(raw string) ForgeType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(ForgeGitHub):
		return ForgeGitHub
	case string(ForgeGitLab):
		return ForgeGitLab
	case string(ForgeForgejo):
		return ForgeForgejo
	default:
		return ""
	}
}

// SourceMode selects how the source repository is read.
type SourceMode string

const (
	SourceModeAPI SourceMode = "api" // forge REST API: tree listing + blob fetches
	SourceModeGit SourceMode = "git" // shallow in-memory clone
)

// MatchKind names an action selector kind.
type MatchKind string

const (
	MatchAll    MatchKind = "all"
	MatchExact  MatchKind = "exact"
	MatchGlob   MatchKind = "glob"
	MatchPrefix MatchKind = "prefix"
	MatchRegexp MatchKind = "regexp"
)
