// Package auth guards message creation with a single shared secret.
// Callers present the secret either through a dedicated header or through
// the standard bearer scheme; both compare in constant time.
package auth

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"message-lab/errors"
)

// DefaultSecretHeader names the header carrying the shared secret.
const DefaultSecretHeader = "X-Secret"

// Credential is an opaque secret value presented by a caller.
type Credential struct {
	Value string
}

// Matches compares two credentials in constant time.
func (c Credential) Matches(other Credential) bool {
	return subtle.ConstantTimeCompare([]byte(c.Value), []byte(other.Value)) == 1
}

// Extractor pulls a caller credential out of request headers.
// An absent credential maps to ErrMissingCredential; a present but unusable
// one to ErrInvalidCredential.
type Extractor interface {
	Extract(h http.Header) (Credential, error)
}

// HeaderExtractor reads the secret from a dedicated header.
type HeaderExtractor struct {
	Name string
}

func (e HeaderExtractor) Extract(h http.Header) (Credential, error) {
	name := e.Name
	if name == "" {
		name = DefaultSecretHeader
	}
	value := h.Get(name)
	if value == "" {
		return Credential{}, errors.ErrMissingCredential
	}
	return Credential{Value: value}, nil
}

// BearerExtractor reads the secret from "Authorization: Bearer <value>".
// A present header with another scheme counts as invalid, not missing.
type BearerExtractor struct{}

func (BearerExtractor) Extract(h http.Header) (Credential, error) {
	raw := h.Get("Authorization")
	if raw == "" {
		return Credential{}, errors.ErrMissingCredential
	}
	scheme, value, found := strings.Cut(raw, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return Credential{}, fmt.Errorf("%w: unsupported authorization scheme", errors.ErrInvalidCredential)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return Credential{}, fmt.Errorf("%w: empty bearer value", errors.ErrInvalidCredential)
	}
	return Credential{Value: value}, nil
}

// ExtractorFromString resolves a configured scheme name to its extractor.
// Unknown names fall back to the header scheme.
func ExtractorFromString(scheme string) Extractor {
	switch strings.ToLower(scheme) {
	case "bearer":
		return BearerExtractor{}
	case "header":
		return HeaderExtractor{Name: DefaultSecretHeader}
	default:
		return HeaderExtractor{Name: DefaultSecretHeader}
	}
}
