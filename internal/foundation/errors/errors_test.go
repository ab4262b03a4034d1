package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "docsync.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != "docsync.yaml" {
			t.Errorf("expected context file=docsync.yaml, got %v", file)
		}
	})

	t.Run("Error detection through wrapping", func(t *testing.T) {
		err := fmt.Errorf("job pact-js: %w", DocsError("missing heading").Build())

		if !IsClassified(err) {
			t.Error("expected error to be classified")
		}
		if !HasCategory(err, CategoryDocs) {
			t.Error("expected error to have docs category")
		}
		if GetCategory(stderrors.New("plain")) != CategoryInternal {
			t.Error("expected plain errors to default to internal")
		}
	})

	t.Run("WithContext copies", func(t *testing.T) {
		base := ForgeError("tree failed").Build()
		withRepo := base.WithContext("repository", "pact-foundation/pact-js")

		if _, ok := base.Context().Get("repository"); ok {
			t.Error("expected original context to be untouched")
		}
		if repo, _ := withRepo.Context().GetString("repository"); repo != "pact-foundation/pact-js" {
			t.Errorf("unexpected repository context %q", repo)
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	t.Run("Fluent API", func(t *testing.T) {
		originalErr := stderrors.New("original error")
		err := WrapError(originalErr, CategoryNetwork, "network failure").
			Warning().
			Retryable().
			WithContext("host", "api.github.com").
			Build()

		if err.Severity() != SeverityWarning {
			t.Errorf("expected severity %s, got %s", SeverityWarning, err.Severity())
		}
		if err.RetryStrategy() != RetryBackoff {
			t.Errorf("expected retry strategy %s, got %s", RetryBackoff, err.RetryStrategy())
		}
		if !stderrors.Is(err, originalErr) {
			t.Error("expected error to wrap original error")
		}
	})

	t.Run("Convenience constructors", func(t *testing.T) {
		tests := []struct {
			name     string
			builder  *ErrorBuilder
			category ErrorCategory
			severity ErrorSeverity
			retry    RetryStrategy
		}{
			{"ConfigError", ConfigError("test"), CategoryConfig, SeverityFatal, RetryUserAction},
			{"ValidationError", ValidationError("test"), CategoryValidation, SeverityFatal, RetryNever},
			{"AuthError", AuthError("test"), CategoryAuth, SeverityError, RetryUserAction},
			{"NetworkError", NetworkError("test"), CategoryNetwork, SeverityError, RetryBackoff},
			{"GitError", GitError("test"), CategoryGit, SeverityError, RetryBackoff},
			{"ForgeError", ForgeError("test"), CategoryForge, SeverityError, RetryBackoff},
			{"FileSystemError", FileSystemError("test"), CategoryFileSystem, SeverityError, RetryNever},
			{"DocsError", DocsError("test"), CategoryDocs, SeverityFatal, RetryNever},
			{"InternalError", InternalError("test"), CategoryInternal, SeverityFatal, RetryNever},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.builder.Build()
				if err.Category() != tt.category {
					t.Errorf("expected category %s, got %s", tt.category, err.Category())
				}
				if err.Severity() != tt.severity {
					t.Errorf("expected severity %s, got %s", tt.severity, err.Severity())
				}
				if err.RetryStrategy() != tt.retry {
					t.Errorf("expected retry strategy %s, got %s", tt.retry, err.RetryStrategy())
				}
			})
		}
	})
}

func TestErrorContextMerge(t *testing.T) {
	ctx1 := ErrorContext{}.Set("key1", "value1").Set("shared", "original")
	ctx2 := ErrorContext{}.Set("key2", "value2").Set("shared", "overridden")

	merged := ctx1.Merge(ctx2)

	if v, _ := merged.GetString("key1"); v != "value1" {
		t.Errorf("expected key1=value1, got %s", v)
	}
	if v, _ := merged.GetString("key2"); v != "value2" {
		t.Errorf("expected key2=value2, got %s", v)
	}
	if v, _ := merged.GetString("shared"); v != "overridden" {
		t.Errorf("expected shared=overridden, got %s", v)
	}
}
