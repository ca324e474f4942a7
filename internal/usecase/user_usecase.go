// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
// Identifier fields are normalized (trimmed, lower-cased) before persistence.
type RegisterInput struct {
	Username   string
	Email      string
	FullName   string
	Password   string
	Avatar     string
	CoverImage string
}

// LoginInput defines the data required for a user to log in.
// Identifier accepts either a username or an email address.
type LoginInput struct {
	Identifier string
	Password   string
}

// RefreshSessionInput carries the refresh token presented for rotation.
type RefreshSessionInput struct {
	RefreshToken string
}

// ChangePasswordInput defines the data required to change a password.
type ChangePasswordInput struct {
	OldPassword string
	NewPassword string
}

// UpdateAccountInput defines the mutable account detail fields.
type UpdateAccountInput struct {
	FullName string
	Email    string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's sanitized information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the generated token pair after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// RefreshSessionOutput returns the replacement token pair after a rotation.
type RefreshSessionOutput struct {
	AccessToken  string
	RefreshToken string
}

// UserUsecase defines the interface for identity and session business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// RefreshSession validates the presented refresh token, rotates the stored
	// token atomically and returns a fresh token pair. A stale or already
	// rotated token is rejected.
	RefreshSession(ctx context.Context, input *RefreshSessionInput) (*RefreshSessionOutput, error)

	// Logout clears the stored refresh token, ending the session.
	Logout(ctx context.Context, userID uuid.UUID) error

	ChangePassword(ctx context.Context, userID uuid.UUID, input *ChangePasswordInput) error
	CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateAccount(ctx context.Context, userID uuid.UUID, input *UpdateAccountInput) (*entity.User, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) (*entity.User, error)
	UpdateCoverImage(ctx context.Context, userID uuid.UUID, coverURL string) (*entity.User, error)

	// ChannelProfile loads a user's public channel page. viewerID is the
	// requesting user, used to compute the IsSubscribed flag.
	ChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*entity.ChannelProfile, error)

	WatchHistory(ctx context.Context, userID uuid.UUID) ([]*entity.WatchHistoryEntry, error)
}
