package git

import (
	"strings"

	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
)

// ClassifyGitError translates go-git errors into ClassifiedErrors.
func ClassifyGitError(err error, op string, url string) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.AsClassified(err); ok {
		return err
	}

	l := strings.ToLower(err.Error())
	builder := errors.GitError("git operation failed").
		WithCause(err).
		WithContext("op", op).
		WithContext("url", url)

	switch {
	case strings.Contains(l, "authentication") || strings.Contains(l, "not authorized") || strings.Contains(l, "invalid credentials"):
		builder.WithCategory(errors.CategoryAuth).UserAction()
	case strings.Contains(l, "repository not found") || strings.Contains(l, "couldn't find remote ref") || strings.Contains(l, "reference not found"):
		builder.WithCategory(errors.CategoryNotFound)
	case strings.Contains(l, "timeout") || strings.Contains(l, "connection reset") || strings.Contains(l, "no route to host"):
		builder.WithCategory(errors.CategoryNetwork).Retryable()
	case strings.Contains(l, "unsupported protocol") || strings.Contains(l, "protocol not supported"):
		builder.WithCategory(errors.CategoryConfig)
	}

	return builder.Build()
}
