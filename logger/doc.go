// Package logger provides structured logging for the novelkit SDK,
// built on zerolog.
//
// A global logger backs the package-level helpers; components derive
// tagged instances via WithComponent. Non-fatal protocol conditions
// (malformed frames, transient poll failures, best-effort refetch
// failures) are logged here rather than surfaced as errors.
package logger
