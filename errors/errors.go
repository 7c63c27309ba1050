package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the HTTP status associated with this error, if any.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// AsAppError extracts an *AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// CodeOf returns the error code of err, or ErrCodeInternal if err carries none.
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ErrCodeInternal
}

// IsRetryable reports whether err is worth retrying.
func IsRetryable(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Retryable
	}
	return false
}

// --- Common Error Constructors ---

// ConnectionFailed creates a new AppError for a network-level failure.
func ConnectionFailed(cause error) *AppError {
	return &AppError{
		Code: ErrCodeConnectionFailed, Message: "Could not reach the server. Please check your connection and try again.",
		Retryable: true, Cause: cause,
	}
}

// Timeout creates a new AppError for a timed-out request.
func Timeout(cause error) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "The request timed out. Please try again.",
		HTTPStatus: http.StatusGatewayTimeout, Retryable: true, Cause: cause,
	}
}

// StreamError creates a new AppError for an explicit error message received
// on a stream. The server-supplied message is surfaced verbatim.
func StreamError(message string, code int) *AppError {
	if message == "" {
		message = "The server reported an error while streaming."
	}
	e := &AppError{
		Code: ErrCodeStreamError, Message: message,
		HTTPStatus: http.StatusBadGateway, Retryable: false,
	}
	if code != 0 {
		e.WithDetail("server_code", code)
	}
	return e
}

// StreamTruncated creates a new AppError for a stream that ended without a
// terminal message.
func StreamTruncated() *AppError {
	return &AppError{
		Code: ErrCodeStreamTruncated, Message: "The stream ended unexpectedly before completing.",
		Retryable: true,
	}
}

// JobFailed creates a new AppError for a failed async job.
func JobFailed(jobID, reason string) *AppError {
	if reason == "" {
		reason = "The task failed without a reported reason."
	}
	return &AppError{
		Code: ErrCodeJobFailed, Message: reason,
		Retryable: false,
		Details:   map[string]any{"job_id": jobID},
	}
}

// JobTimeout creates a new AppError for polling that gave up before the job
// reached a terminal state.
func JobTimeout(jobID string, polls int) *AppError {
	return &AppError{
		Code: ErrCodeJobTimeout, Message: "Timed out waiting for the task. It may still be running.",
		Retryable: false,
		Details:   map[string]any{"job_id": jobID, "polls": polls},
	}
}

// Validation creates a new AppError for invalid input.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// NotFound creates a new AppError for a missing resource.
func NotFound(resource string) *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Retryable: false,
	}
}

// Unauthorized creates a new AppError for an unauthorized request.
func Unauthorized() *AppError {
	return &AppError{
		Code: ErrCodeUnauthorized, Message: "Authentication failed. Please check your API key.",
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// Internal creates a new AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred. Please try again.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}

// FromStatus maps an HTTP status code to an AppError. body, when non-empty,
// replaces the generic message so server-supplied detail is not lost.
func FromStatus(status int, body string) *AppError {
	var e *AppError
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e = Unauthorized()
	case status == http.StatusNotFound:
		e = NotFound("resource")
	case status == http.StatusTooManyRequests:
		e = &AppError{
			Code: ErrCodeRateLimited, Message: "Too many requests. Please slow down and try again.",
			Retryable: true,
		}
	case status == http.StatusServiceUnavailable:
		e = &AppError{
			Code: ErrCodeServiceUnavailable, Message: "The service is temporarily unavailable. Please try again.",
			Retryable: true,
		}
	case status >= 500:
		e = Internal(nil)
		e.Retryable = true
	case status >= 400:
		e = Validation(fmt.Sprintf("The server rejected the request (status %d).", status))
	default:
		return nil
	}
	e.HTTPStatus = status
	if body != "" {
		e.Message = body
	}
	return e
}
