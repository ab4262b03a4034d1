package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		out:     os.Stderr,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	classified, ok := AsClassified(err)
	if !ok {
		return 1
	}
	switch classified.Category() {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryAuth:
		return 5
	case CategoryConfig:
		return 7
	case CategoryNetwork, CategoryGit, CategoryForge, CategoryNotFound:
		return 8 // External system error
	case CategoryDocs:
		return 9
	case CategoryInternal:
		return 10
	case CategoryFileSystem:
		return 11
	case CategoryRuntime:
		return 12
	default:
		return 1
	}
}

// FormatError formats an error for user-facing display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	classified, ok := AsClassified(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	if a.verbose {
		return err.Error()
	}
	msg := fmt.Sprintf("Error: %s", classified.Message())
	if path, ok := classified.Context().GetString("path"); ok {
		msg += fmt.Sprintf(" (%s)", path)
	}
	if classified.Cause() != nil {
		msg += fmt.Sprintf(": %v", classified.Cause())
	}
	return msg
}

// HandleError logs err, prints a user-facing message and returns the exit code.
// Callers pass the code to os.Exit.
func (a *CLIErrorAdapter) HandleError(err error) int {
	if err == nil {
		return 0
	}
	a.logError(err)
	_, _ = fmt.Fprintln(a.out, a.FormatError(err))
	return a.ExitCodeFor(err)
}

func (a *CLIErrorAdapter) logError(err error) {
	classified, ok := AsClassified(err)
	if !ok {
		a.logger.Error("Unclassified error", "error", err)
		return
	}
	attrs := []slog.Attr{slog.String("category", string(classified.Category()))}
	for k, v := range classified.Context() {
		attrs = append(attrs, slog.Any(k, v))
	}
	if classified.Cause() != nil {
		attrs = append(attrs, slog.String("cause", classified.Cause().Error()))
	}
	a.logger.LogAttrs(context.Background(), slogLevelFromSeverity(classified.Severity()), classified.Message(), attrs...)
}

func slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
