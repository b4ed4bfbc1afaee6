package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	req := require.New(t)

	t.Run("should return nil for nil", func(t *testing.T) {
		req.NoError(Normalize(nil))
	})

	t.Run("should pass taxonomy members through unchanged", func(t *testing.T) {
		members := []error{
			ErrDecodeFailure,
			ErrInvalidTimestamp,
			ErrMissingCredential,
			ErrInvalidCredential,
			&UnexpectedStatusError{Code: http.StatusServiceUnavailable},
			Unexpected(fmt.Errorf("boom")),
			fmt.Errorf("while decoding: %w", ErrDecodeFailure),
		}
		for _, member := range members {
			req.Equal(member, Normalize(member))
		}
	})

	t.Run("should wrap foreign errors as unexpected", func(t *testing.T) {
		cause := fmt.Errorf("connection reset")

		normalized := Normalize(cause)

		var unexpected *UnexpectedError
		req.ErrorAs(normalized, &unexpected)
		req.Equal(cause, unexpected.Cause)
		req.ErrorIs(normalized, cause)
	})

	t.Run("should not double wrap an already unexpected error", func(t *testing.T) {
		wrapped := Unexpected(fmt.Errorf("boom"))

		req.Equal(wrapped, Normalize(wrapped))
	})
}

func TestIsAPIError(t *testing.T) {
	req := require.New(t)

	t.Run("should reject nil and foreign errors", func(t *testing.T) {
		req.False(IsAPIError(nil))
		req.False(IsAPIError(fmt.Errorf("boom")))
		req.False(IsAPIError(ErrWorkerPanic))
	})

	t.Run("should accept wrapped members", func(t *testing.T) {
		req.True(IsAPIError(fmt.Errorf("field content: %w", ErrDecodeFailure)))
		req.True(IsAPIError(fmt.Errorf("call failed: %w", &UnexpectedStatusError{Code: 502})))
	})
}

func TestMapToHTTPStatus(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "missing credential maps to 401",
			err:             ErrMissingCredential,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "missing credential",
		},
		{
			name:            "invalid credential maps to 401",
			err:             ErrInvalidCredential,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "invalid credential",
		},
		{
			name:            "decode failure maps to 400",
			err:             ErrDecodeFailure,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "malformed payload",
		},
		{
			name:            "wrapped decode failure maps to 400",
			err:             fmt.Errorf("body: %w", ErrDecodeFailure),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "malformed payload",
		},
		{
			name:            "invalid timestamp falls through to 500",
			err:             ErrInvalidTimestamp,
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "internal error",
		},
		{
			name:            "unexpected status falls through to 500",
			err:             &UnexpectedStatusError{Code: http.StatusBadGateway},
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "internal error",
		},
		{
			name:            "unexpected error falls through to 500",
			err:             Unexpected(fmt.Errorf("boom")),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "internal error",
		},
		{
			name:            "foreign error falls through to 500",
			err:             fmt.Errorf("boom"),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)

			status, message := MapToHTTPStatus(tt.err)

			req.Equal(tt.expectedStatus, status)
			req.Equal(tt.expectedMessage, message)
		})
	}
}

func TestUnexpectedError(t *testing.T) {
	req := require.New(t)

	t.Run("should expose its cause through unwrap", func(t *testing.T) {
		cause := fmt.Errorf("dial tcp: connection refused")

		err := Unexpected(cause)

		req.ErrorIs(err, cause)
		req.Equal(cause, stderrors.Unwrap(err))
		req.Contains(err.Error(), "unexpected error")
		req.Contains(err.Error(), "connection refused")
	})

	t.Run("should render the remote status code", func(t *testing.T) {
		err := &UnexpectedStatusError{Code: http.StatusBadGateway}

		req.Equal("unexpected response status: 502", err.Error())
	})
}
