// Package errors provides the classified error type used across pibary.
//
// A ClassifiedError carries a category, a severity and structured context.
// Errors are built with a fluent builder:
//
//	err := errors.NotFoundError("pattern not found").
//		WithContext("bytes", pattern).
//		Build()
//
// CLIErrorAdapter turns classified errors into exit codes and user-facing
// messages; HTTPErrorAdapter turns them into status codes and JSON bodies.
package errors
