package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Connection/availability errors (retryable)
const (
	// ErrCodeConnectionFailed indicates a failed connection to the backend.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeRateLimited indicates the client is rate limited.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodeServiceUnavailable indicates the backend is temporarily unavailable.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// Streaming protocol errors
const (
	// ErrCodeStreamError indicates the server emitted an explicit error
	// message on a stream.
	ErrCodeStreamError ErrorCode = "STREAM_ERROR"
	// ErrCodeStreamTruncated indicates a stream ended without a terminal
	// done or error message.
	ErrCodeStreamTruncated ErrorCode = "STREAM_TRUNCATED"
)

// Job errors
const (
	// ErrCodeJobFailed indicates the server reported an async job as failed.
	ErrCodeJobFailed ErrorCode = "JOB_FAILED"
	// ErrCodeJobTimeout indicates polling gave up without observing a
	// terminal job status. The job may still be running server-side.
	ErrCodeJobTimeout ErrorCode = "JOB_TIMEOUT"
)

// Request errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeUnauthorized indicates the request is unauthorized.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeConnectionFailed:   true,
	ErrCodeTimeout:            true,
	ErrCodeRateLimited:        true,
	ErrCodeServiceUnavailable: true,
}

// IsRetryableCode reports whether an error code is generally retryable.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
