// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"vidtube/config"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/service"
)

// bcryptPasswordMaxLength is bcrypt's own input limit; longer passwords would be
// silently truncated, so they are rejected instead.
const bcryptPasswordMaxLength = 72

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
// A minimum password length is only enforced when one is configured.
type bcryptHasher struct {
	cost      int
	minLength int
}

// NewBcryptHasher is the constructor for bcryptHasher, reading cost and password
// bounds from the configuration.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	minLength := 0
	if cfg != nil && cfg.Auth != nil {
		if cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
			cost = cfg.Auth.BcryptCost
		}
		if cfg.Auth.PasswordMinLength > 0 {
			minLength = cfg.Auth.PasswordMinLength
		}
	}

	return &bcryptHasher{cost: cost, minLength: minLength}
}

// NewBcryptHasherWithCost builds a hasher with an explicit cost and no length
// policy. Used by tests that want cheap hashing.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return &bcryptHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt handles salt generation itself.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domainerrors.ErrUpstreamFailure.WrapMessage("bcrypt hashing failed")
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
// bcrypt's comparison is constant-time over the hash output.
func (h *bcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePasswordStrength rejects passwords outside the accepted length bounds.
// The minimum only applies when the deployment configures one.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	if h.minLength > 0 && len(password) < h.minLength {
		return domainerrors.ErrValidationFailed.WrapMessage("password is too short")
	}
	if len(password) > bcryptPasswordMaxLength {
		return domainerrors.ErrValidationFailed.WrapMessage("password is too long")
	}

	return nil
}
