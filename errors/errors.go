// Package errors defines the closed set of failures exchanged between
// message-lab components. Lower layers normalize any failure into one of
// these values and propagate it unchanged; rendering and logging happen once,
// at the transport middleware.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

var (
	ErrDecodeFailure     = fmt.Errorf("payload decode failure")
	ErrInvalidTimestamp  = fmt.Errorf("invalid timestamp")
	ErrMissingCredential = fmt.Errorf("missing credential")
	ErrInvalidCredential = fmt.Errorf("invalid credential")
)

// ErrWorkerPanic signals a recovered panic inside a supervised worker.
// It belongs to the worker runtime, not to the API taxonomy.
var ErrWorkerPanic = fmt.Errorf("worker panic")

// UnexpectedStatusError reports a non-success HTTP status received from a
// remote API.
type UnexpectedStatusError struct {
	Code int
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("unexpected response status: %d", e.Code)
}

// UnexpectedError wraps any failure that is not already a member of the
// taxonomy. The original cause stays reachable through Unwrap for
// diagnostics.
type UnexpectedError struct {
	Cause error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected error: %v", e.Cause)
}

func (e *UnexpectedError) Unwrap() error { return e.Cause }

// Unexpected wraps cause as an UnexpectedError.
func Unexpected(cause error) error {
	return &UnexpectedError{Cause: cause}
}

// IsAPIError reports whether err already belongs to the taxonomy.
func IsAPIError(err error) bool {
	if err == nil {
		return false
	}

	var (
		statusErr     *UnexpectedStatusError
		unexpectedErr *UnexpectedError
	)
	switch {
	case stderrors.Is(err, ErrDecodeFailure),
		stderrors.Is(err, ErrInvalidTimestamp),
		stderrors.Is(err, ErrMissingCredential),
		stderrors.Is(err, ErrInvalidCredential):
		return true
	case stderrors.As(err, &statusErr), stderrors.As(err, &unexpectedErr):
		return true
	}
	return false
}

// Normalize guarantees that every error leaving a component boundary belongs
// to the taxonomy: members pass through unchanged, anything else is wrapped
// as UnexpectedError.
func Normalize(err error) error {
	if err == nil {
		return nil
	}
	if IsAPIError(err) {
		return err
	}
	return &UnexpectedError{Cause: err}
}

// statusMapping pairs one taxonomy member with the HTTP status and the line
// used both for the log entry and the response body when it is rendered.
type statusMapping struct {
	target  error
	status  int
	message string
}

// Both credential failures render as 401.
var statusTable = []statusMapping{
	{ErrMissingCredential, http.StatusUnauthorized, "missing credential"},
	{ErrInvalidCredential, http.StatusUnauthorized, "invalid credential"},
	{ErrDecodeFailure, http.StatusBadRequest, "malformed payload"},
}

// MapToHTTPStatus resolves err against the status table. Members without a
// row (UnexpectedStatusError, ErrInvalidTimestamp, UnexpectedError) and any
// non-taxonomy error fall through as internal server failures.
func MapToHTTPStatus(err error) (int, string) {
	for _, m := range statusTable {
		if stderrors.Is(err, m.target) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, "internal error"
}
