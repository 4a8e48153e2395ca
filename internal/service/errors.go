package service

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorType int

const (
	// ErrUpstreamUnavailable means the version metadata or asset index
	// could not be obtained; the whole run aborts before any writes.
	ErrUpstreamUnavailable ErrorType = iota
	// ErrFetchFailed means one locale's payload could not be downloaded
	// or parsed; only that locale is skipped.
	ErrFetchFailed
	// ErrIOFailure means one locale's output could not be written; only
	// that locale's files stay at their previous state.
	ErrIOFailure
	ErrConfig
	ErrUnknown
)

// UpdateError is the typed error of the updater. The Type drives how
// far the failure propagates (run-level vs locale-level).
type UpdateError struct {
	Type    ErrorType
	Message string
	Context map[string]any
	Cause   error
}

func NewError(errorType ErrorType, message string) *UpdateError {
	return &UpdateError{
		Type:    errorType,
		Message: message,
		Context: make(map[string]any),
	}
}

func NewErrorWithCause(errorType ErrorType, message string, cause error) *UpdateError {
	return &UpdateError{
		Type:    errorType,
		Message: message,
		Context: make(map[string]any),
		Cause:   cause,
	}
}

func (e *UpdateError) Error() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("[%s] %s", e.Type.String(), e.Message))

	if len(e.Context) > 0 {
		var ctxParts []string
		for k, v := range e.Context {
			ctxParts = append(ctxParts, fmt.Sprintf("%s=%v", k, v))
		}
		parts = append(parts, fmt.Sprintf("context: %s", strings.Join(ctxParts, ", ")))
	}

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause: %v", e.Cause))
	}

	return strings.Join(parts, " | ")
}

func (e *UpdateError) Unwrap() error {
	return e.Cause
}

func (e *UpdateError) WithContext(key string, value any) *UpdateError {
	e.Context[key] = value
	return e
}

func (t ErrorType) String() string {
	switch t {
	case ErrUpstreamUnavailable:
		return "UpstreamUnavailable"
	case ErrFetchFailed:
		return "FetchFailed"
	case ErrIOFailure:
		return "IOFailure"
	case ErrConfig:
		return "Config"
	case ErrUnknown:
		return "Unknown"
	default:
		return "Unknown"
	}
}

func IsErrorType(err error, errorType ErrorType) bool {
	var updErr *UpdateError
	if errors.As(err, &updErr) {
		return updErr.Type == errorType
	}
	return false
}

func WrapError(err error, errorType ErrorType, message string) *UpdateError {
	return NewErrorWithCause(errorType, message, err)
}
