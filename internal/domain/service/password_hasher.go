// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. The plaintext is
	// discarded by the caller immediately afterwards; it is never persisted or logged.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash. A mismatch returns false,
	// never an error; the comparison has no early-exit timing leak.
	Check(password, hash string) bool

	// ValidatePasswordStrength rejects passwords outside the accepted length bounds.
	ValidatePasswordStrength(password string) error
}
