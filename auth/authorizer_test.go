package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"message-lab/errors"
)

func TestAuthorizer_Authorize(t *testing.T) {
	secret := Credential{Value: "s3cret-value"}

	t.Run("should accept the matching secret", func(t *testing.T) {
		req := require.New(t)
		authorizer := NewAuthorizer(secret, HeaderExtractor{})
		h := http.Header{}
		h.Set(DefaultSecretHeader, "s3cret-value")

		credential, err := authorizer.Authorize(h)

		req.NoError(err)
		req.True(credential.Matches(secret))
	})

	t.Run("should report a missing credential", func(t *testing.T) {
		req := require.New(t)
		authorizer := NewAuthorizer(secret, HeaderExtractor{})

		_, err := authorizer.Authorize(http.Header{})

		req.ErrorIs(err, errors.ErrMissingCredential)
	})

	t.Run("should reject a wrong secret", func(t *testing.T) {
		req := require.New(t)
		authorizer := NewAuthorizer(secret, HeaderExtractor{})
		h := http.Header{}
		h.Set(DefaultSecretHeader, "not-the-secret")

		_, err := authorizer.Authorize(h)

		req.ErrorIs(err, errors.ErrInvalidCredential)
	})

	t.Run("should reject a wrong scheme through the bearer extractor", func(t *testing.T) {
		req := require.New(t)
		authorizer := NewAuthorizer(secret, BearerExtractor{})
		h := http.Header{}
		h.Set("Authorization", "Basic dXNlcjpwYXNz")

		_, err := authorizer.Authorize(h)

		req.ErrorIs(err, errors.ErrInvalidCredential)
	})

	t.Run("should accept the secret through the bearer extractor", func(t *testing.T) {
		req := require.New(t)
		authorizer := NewAuthorizer(secret, BearerExtractor{})
		h := http.Header{}
		h.Set("Authorization", "Bearer s3cret-value")

		credential, err := authorizer.Authorize(h)

		req.NoError(err)
		req.Equal("s3cret-value", credential.Value)
	})
}
