package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateError_Message(t *testing.T) {
	err := NewError(ErrFetchFailed, "download failed").WithContext("locale", "fr_fr")

	msg := err.Error()
	assert.Contains(t, msg, "[FetchFailed]")
	assert.Contains(t, msg, "download failed")
	assert.Contains(t, msg, "locale=fr_fr")
}

func TestUpdateError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := WrapError(cause, ErrUpstreamUnavailable, "metadata unreachable")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "cause: connection reset")
}

func TestIsErrorType(t *testing.T) {
	err := NewError(ErrIOFailure, "disk full")

	assert.True(t, IsErrorType(err, ErrIOFailure))
	assert.False(t, IsErrorType(err, ErrFetchFailed))
	assert.False(t, IsErrorType(errors.New("plain"), ErrIOFailure))

	// Works through wrapping.
	wrapped := fmt.Errorf("run failed: %w", err)
	assert.True(t, IsErrorType(wrapped, ErrIOFailure))
}

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		errType ErrorType
		want    string
	}{
		{ErrUpstreamUnavailable, "UpstreamUnavailable"},
		{ErrFetchFailed, "FetchFailed"},
		{ErrIOFailure, "IOFailure"},
		{ErrConfig, "Config"},
		{ErrUnknown, "Unknown"},
		{ErrorType(99), "Unknown"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, tt.errType.String())
	}
}
