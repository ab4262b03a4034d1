// Package errors provides the classified error primitives used across docsync.
//
// Errors carry a category (config, forge, filesystem, docs, ...), a severity and a
// retry hint, plus a free-form context map. The sync pipeline never retries; the
// retry hint only informs how the CLI reports a failure.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryForge, "fetch tree failed").
//		WithContext("repository", slug).
//		WithCause(originalErr).
//		Build()
package errors
