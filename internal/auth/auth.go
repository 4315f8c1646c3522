// Package auth provides credential verification for admin-gated operations.
// The shop uses two independent secrets: one for the admin surface as a
// whole and a second one that additionally gates product deletion.
package auth

import "crypto/subtle"

// Verifier checks a caller-supplied credential against a configured secret.
type Verifier interface {
	// Verify reports whether the supplied secret matches.
	Verify(secret string) bool
}

// staticVerifier compares against a single preconfigured secret.
type staticVerifier struct {
	secret string
}

// NewStatic creates a Verifier backed by a fixed secret value.
func NewStatic(secret string) Verifier {
	return &staticVerifier{secret: secret}
}

// Verify reports whether the supplied secret matches the configured one.
// The comparison is constant-time; an empty configured secret never matches.
func (v *staticVerifier) Verify(secret string) bool {
	if v.secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(v.secret), []byte(secret)) == 1
}
