// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser is returned when a username or email is already taken.
	ErrDuplicateUser = errors.New("username or email already exists")
	// ErrRefreshTokenMismatch is returned by RotateRefreshToken when the stored
	// refresh token no longer equals the expected value. The presented token was
	// stale, already rotated, or cleared by logout.
	ErrRefreshTokenMismatch = errors.New("stored refresh token does not match")
)

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete implementation.
//
// The refresh-token field is the only shared mutable session state in the system,
// so its update discipline is part of the contract: SetRefreshToken overwrites
// unconditionally (login), RotateRefreshToken is a conditional compare-and-swap
// (rotation), ClearRefreshToken unsets it (logout).
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a single user by their normalized username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByIdentifier retrieves a user whose username or email equals the given
	// normalized identifier. Used by login, which accepts either.
	FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error)

	// Create persists a new user. Returns ErrDuplicateUser when the username or
	// email is already taken.
	Create(ctx context.Context, user *entity.User) error

	// UpdateAccount modifies username, email, full name and image references.
	UpdateAccount(ctx context.Context, user *entity.User) error

	// UpdatePassword replaces the stored password hash in a single write.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// SetRefreshToken stores a new refresh token, overwriting any prior value.
	SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error

	// RotateRefreshToken replaces the stored refresh token only if it still equals
	// oldToken, as one atomic conditional write. Returns ErrRefreshTokenMismatch
	// when the stored value changed underneath (concurrent rotation or logout);
	// exactly one of any set of concurrent rotations can succeed.
	RotateRefreshToken(ctx context.Context, id uuid.UUID, oldToken, newToken string) error

	// ClearRefreshToken unsets the stored refresh token (logout).
	ClearRefreshToken(ctx context.Context, id uuid.UUID) error

	// AppendWatchHistory records that the user watched a video.
	AppendWatchHistory(ctx context.Context, id uuid.UUID, videoID uuid.UUID) error

	// FindWatchHistory lists the user's watch history, newest first.
	FindWatchHistory(ctx context.Context, id uuid.UUID) ([]*entity.WatchHistoryEntry, error)
}
