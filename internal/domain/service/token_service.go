package service

import "time"

// TokenService defines the interface for issuing and verifying bearer tokens.
// This abstracts the details of token creation from the use cases.
//
// Tokens are self-contained and signed: verification needs only the shared
// signing key, no server-side session state. The signing key is process-wide
// configuration injected at construction; rotation within a process lifetime
// is out of scope.
type TokenService interface {
	// Issue creates a signed token embedding the subject and an absolute
	// expiry of now + ttl.
	Issue(subject string, ttl time.Duration) (string, error)

	// Verify checks the token's signature and expiry and returns the embedded
	// subject unchanged. Failures map to the domain token errors: malformed,
	// signature invalid, or expired.
	Verify(token string) (string, error)

	// AccessTokenTTL returns the configured lifetime for issued access tokens.
	AccessTokenTTL() time.Duration
}
