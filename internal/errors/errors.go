// Package errors defines the typed failures shared across bookplay.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// FetchKind classifies why a metadata provider request failed.
type FetchKind int

const (
	// KindUnreachable covers DNS, connection and transport failures.
	KindUnreachable FetchKind = iota + 1
	// KindHTTPStatus means the provider answered with a non-2xx status.
	KindHTTPStatus
	// KindMalformed means the body was not valid JSON or lacked the expected shape.
	KindMalformed
)

func (k FetchKind) String() string {
	switch k {
	case KindUnreachable:
		return "unreachable"
	case KindHTTPStatus:
		return "http_status"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// FetchError is returned by the metadata client for every failed request.
type FetchError struct {
	Kind       FetchKind
	StatusCode int    // set for KindHTTPStatus
	Op         string // "search" or "fetch"
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("%s: provider returned HTTP %d", e.Op, e.StatusCode)
	case KindMalformed:
		if e.Err != nil {
			return fmt.Sprintf("%s: malformed provider response: %v", e.Op, e.Err)
		}
		return fmt.Sprintf("%s: malformed provider response", e.Op)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: provider unreachable: %v", e.Op, e.Err)
		}
		return fmt.Sprintf("%s: provider unreachable", e.Op)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewUnreachableError wraps a transport failure.
func NewUnreachableError(op string, err error) *FetchError {
	return &FetchError{Kind: KindUnreachable, Op: op, Err: err}
}

// NewHTTPStatusError records a non-2xx provider response.
func NewHTTPStatusError(op string, statusCode int) *FetchError {
	return &FetchError{Kind: KindHTTPStatus, Op: op, StatusCode: statusCode}
}

// NewMalformedError wraps a decoding failure.
func NewMalformedError(op string, err error) *FetchError {
	return &FetchError{Kind: KindMalformed, Op: op, Err: err}
}

// AsFetchError extracts a FetchError from err, even when wrapped.
func AsFetchError(err error) (*FetchError, bool) {
	var fetchErr *FetchError
	if stdErrors.As(err, &fetchErr) {
		return fetchErr, true
	}
	return nil, false
}

// IsFetchError reports whether err is a FetchError.
func IsFetchError(err error) bool {
	_, ok := AsFetchError(err)
	return ok
}

// IsNotFound reports whether err is a provider 404.
func IsNotFound(err error) bool {
	fetchErr, ok := AsFetchError(err)
	return ok && fetchErr.Kind == KindHTTPStatus && fetchErr.StatusCode == 404
}

// StopProcessingError is returned when the user quits an interactive
// selection instead of picking or skipping a candidate.
type StopProcessingError struct {
	Reason string
}

func (e *StopProcessingError) Error() string {
	return e.Reason
}

// NewStopProcessingError creates a StopProcessingError with the provided reason.
func NewStopProcessingError(reason string) *StopProcessingError {
	return &StopProcessingError{Reason: reason}
}

// IsStopProcessingError reports whether err is a StopProcessingError, even when wrapped.
func IsStopProcessingError(err error) bool {
	var stopErr *StopProcessingError
	return stdErrors.As(err, &stopErr)
}
