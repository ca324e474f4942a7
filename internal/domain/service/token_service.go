package service

import (
	"errors"
	"time"

	"vidtube/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Sentinel verification failures. The two kinds stay distinguishable so callers
// can tell "come back with a fresh token" from "this token was never valid".
var (
	// ErrTokenExpired is returned when a token's expiry has elapsed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalid is returned for a malformed token or a bad signature.
	ErrTokenInvalid = errors.New("token is invalid")
)

// AccessClaims is the claim set of an access token. The username, email and full
// name are a snapshot taken at issuance; consumers must treat them as advisory,
// not as a live view of the identity.
type AccessClaims struct {
	UserID   uuid.UUID `json:"uid"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	FullName string    `json:"fullName"`
	jwt.RegisteredClaims
}

// RefreshClaims is the minimal claim set of a refresh token: the identity only.
type RefreshClaims struct {
	UserID uuid.UUID `json:"uid"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying the two token
// types. Access and refresh tokens are signed with separate secrets; compromise
// of one type must not allow forging the other.
type TokenService interface {
	// GenerateAccessToken creates a short-lived access token for the user.
	GenerateAccessToken(user *entity.User) (string, error)

	// GenerateRefreshToken creates a long-lived refresh token for the user.
	GenerateRefreshToken(user *entity.User) (string, error)

	// ValidateAccessToken verifies an access token and returns its claims.
	// Fails with ErrTokenExpired or ErrTokenInvalid.
	ValidateAccessToken(tokenString string) (*AccessClaims, error)

	// ValidateRefreshToken verifies a refresh token and returns its claims.
	// Same failure taxonomy as ValidateAccessToken, independent secret.
	ValidateRefreshToken(tokenString string) (*RefreshClaims, error)

	// AccessTokenTTL returns the configured access token lifetime.
	AccessTokenTTL() time.Duration

	// RefreshTokenTTL returns the configured refresh token lifetime.
	RefreshTokenTTL() time.Duration
}
