package auth

import (
	"net/http"

	"message-lab/errors"
)

// Authorizer validates extracted caller credentials against the configured
// shared secret.
type Authorizer struct {
	expected  Credential
	extractor Extractor
}

func NewAuthorizer(expected Credential, extractor Extractor) *Authorizer {
	return &Authorizer{expected: expected, extractor: extractor}
}

// Authorize extracts the caller credential and compares it with the expected
// secret. Absence maps to ErrMissingCredential, any mismatch to
// ErrInvalidCredential; the response never says which byte differed.
func (a *Authorizer) Authorize(h http.Header) (Credential, error) {
	credential, err := a.extractor.Extract(h)
	if err != nil {
		return Credential{}, err
	}
	if !credential.Matches(a.expected) {
		return Credential{}, errors.ErrInvalidCredential
	}
	return credential, nil
}
