// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
//
// Hash embeds a random salt, so two calls with the same secret yield different
// digests; digests are only comparable through Check. Check must not report
// whether a failure came from a malformed digest or a wrong secret.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash to see if they match.
	// A malformed hash is a mismatch, never an error.
	Check(password, hash string) bool
}
