// Package errors provides unified error handling for the novelkit SDK.
// It implements structured error types with machine-readable codes and
// retryable detection, so callers can branch on failure class instead of
// matching message strings.
package errors
