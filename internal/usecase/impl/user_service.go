// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "vidtube/internal/delivery/context"
	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/repository"
	"vidtube/internal/domain/service"
	"vidtube/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	subRepo      repository.SubscriptionRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	SubRepo      repository.SubscriptionRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		subRepo:      params.SubRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// normalizeIdentifier lower-cases and trims a username or email.
func normalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Register creates a new account. Username and email are normalized before the
// uniqueness check so that case or whitespace variants cannot create duplicates.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	username := normalizeIdentifier(input.Username)
	email := normalizeIdentifier(input.Email)
	fullName := strings.TrimSpace(input.FullName)

	if username == "" || email == "" || fullName == "" || strings.TrimSpace(input.Password) == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "all registration fields are required")
	}
	if strings.TrimSpace(input.Avatar) == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "avatar is required")
	}

	srv.log(ctx).Info("Starting registration", slog.String("username", username))

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("username", username), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "password does not meet security requirements")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		Avatar:       strings.TrimSpace(input.Avatar),
		CoverImage:   strings.TrimSpace(input.CoverImage),
		PasswordHash: hashedPassword,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, newUser); err != nil {
			if errors.Is(err, repository.ErrDuplicateUser) {
				return errors.Wrap(domainerrors.ErrDuplicateIdentity, "registration rejected")
			}

			return errors.Wrap(err, "failed to create user during registration")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("username", username), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: newUser.Sanitize()}, nil
}

// Login verifies the credential and establishes a session. The stored refresh
// token is overwritten unconditionally: a new login supersedes any prior session.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	identifier := normalizeIdentifier(input.Identifier)
	if identifier == "" || input.Password == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "identifier and password are required")
	}

	srv.log(ctx).Debug("Starting login", slog.String("identifier", identifier))

	user, err := srv.userRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("identifier", identifier))

			// Same outcome as a wrong password so the response does not reveal
			// whether the account exists.
			return nil, errors.Wrap(domainerrors.ErrInvalidCredential, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find user by identifier")
	}

	// bcrypt is CPU-bound; check outside any transaction.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("identifier", identifier))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredential, "login failed")
	}

	accessToken, refreshToken, err := srv.generateTokenPair(user)
	if err != nil {
		srv.log(ctx).Error("Failed to generate tokens", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, err
	}

	if err := srv.userRepo.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		srv.log(ctx).Error("Failed to store refresh token", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to store refresh token during login")
	}

	srv.log(ctx).Debug("User logged in", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.Sanitize(),
	}, nil
}

// RefreshSession rotates the session. The stored token swap is a single
// conditional write, so concurrent refreshes with the same token resolve to
// exactly one winner; the losers are treated as replay and rejected.
func (srv *userService) RefreshSession(ctx context.Context, input *usecase.RefreshSessionInput) (*usecase.RefreshSessionOutput, error) {
	srv.log(ctx).Debug("Attempting session refresh")

	claims, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		srv.log(ctx).Warn("Refresh token verification failed", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "refresh token verification failed")
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "refresh token subject no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load user for session refresh")
	}

	accessToken, refreshToken, err := srv.generateTokenPair(user)
	if err != nil {
		srv.log(ctx).Error("Failed to generate tokens", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, err
	}

	if err := srv.userRepo.RotateRefreshToken(ctx, user.ID, input.RefreshToken, refreshToken); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenMismatch) {
			srv.log(ctx).Warn("Stale refresh token presented", slog.Any("userID", user.ID))

			return nil, errors.Wrap(domainerrors.ErrTokenInvalid, "refresh token already rotated or revoked")
		}

		return nil, errors.Wrap(err, "failed to rotate refresh token")
	}

	srv.log(ctx).Debug("Session refreshed", slog.Any("userID", user.ID))

	return &usecase.RefreshSessionOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout clears the stored refresh token. Logging out an already ended session
// is not an error.
func (srv *userService) Logout(ctx context.Context, userID uuid.UUID) error {
	srv.log(ctx).Info("Logging out", slog.Any("userID", userID))

	if err := srv.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}

		srv.log(ctx).Error("Failed to clear refresh token", slog.Any("userID", userID), slog.Any("error", err))

		return errors.Wrap(err, "failed to clear refresh token")
	}

	return nil
}

// ChangePassword re-verifies the current password before accepting the new one.
// The active refresh token stays valid; a password change does not end the session.
func (srv *userService) ChangePassword(ctx context.Context, userID uuid.UUID, input *usecase.ChangePasswordInput) error {
	srv.log(ctx).Info("Changing password", slog.Any("userID", userID))

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "password change failed")
		}

		return errors.Wrap(err, "failed to load user for password change")
	}

	if !srv.hasher.Check(input.OldPassword, user.PasswordHash) {
		srv.log(ctx).Warn("Password change rejected", slog.Any("userID", userID))

		return errors.Wrap(domainerrors.ErrInvalidCredential, "current password is incorrect")
	}

	if strings.TrimSpace(input.NewPassword) == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "new password is required")
	}
	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return errors.Wrap(domainerrors.ErrValidationFailed, "new password does not meet security requirements")
	}

	hashed, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash new password", slog.Any("userID", userID), slog.Any("error", err))

		return errors.Wrap(err, "failed to hash new password")
	}

	if err := srv.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		return errors.Wrap(err, "failed to persist new password")
	}

	return nil
}

// CurrentUser returns the sanitized account of the authenticated user.
func (srv *userService) CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "current user lookup failed")
		}

		return nil, errors.Wrap(err, "failed to load current user")
	}

	return user.Sanitize(), nil
}

// UpdateAccount modifies the account's detail fields.
func (srv *userService) UpdateAccount(ctx context.Context, userID uuid.UUID, input *usecase.UpdateAccountInput) (*entity.User, error) {
	fullName := strings.TrimSpace(input.FullName)
	email := normalizeIdentifier(input.Email)
	if fullName == "" || email == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "full name and email are required")
	}

	srv.log(ctx).Info("Updating account", slog.Any("userID", userID))

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "account update failed")
		}

		return nil, errors.Wrap(err, "failed to load user for account update")
	}

	user.FullName = fullName
	user.Email = email

	if err := srv.userRepo.UpdateAccount(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, errors.Wrap(domainerrors.ErrDuplicateIdentity, "account update rejected")
		}

		return nil, errors.Wrap(err, "failed to persist account update")
	}

	return user.Sanitize(), nil
}

// UpdateAvatar replaces the avatar image reference.
func (srv *userService) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) (*entity.User, error) {
	avatarURL = strings.TrimSpace(avatarURL)
	if avatarURL == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "avatar is required")
	}

	return srv.updateImage(ctx, userID, func(user *entity.User) {
		user.Avatar = avatarURL
	})
}

// UpdateCoverImage replaces the cover image reference.
func (srv *userService) UpdateCoverImage(ctx context.Context, userID uuid.UUID, coverURL string) (*entity.User, error) {
	coverURL = strings.TrimSpace(coverURL)
	if coverURL == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "cover image is required")
	}

	return srv.updateImage(ctx, userID, func(user *entity.User) {
		user.CoverImage = coverURL
	})
}

func (srv *userService) updateImage(ctx context.Context, userID uuid.UUID, apply func(*entity.User)) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "image update failed")
		}

		return nil, errors.Wrap(err, "failed to load user for image update")
	}

	apply(user)

	if err := srv.userRepo.UpdateAccount(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to persist image update")
	}

	return user.Sanitize(), nil
}

// ChannelProfile loads a user's public channel page with subscription counts.
func (srv *userService) ChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*entity.ChannelProfile, error) {
	username = normalizeIdentifier(username)
	if username == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "username is required")
	}

	channel, err := srv.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "channel does not exist")
		}

		return nil, errors.Wrap(err, "failed to load channel")
	}

	subscribers, err := srv.subRepo.CountSubscribers(ctx, channel.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count subscribers")
	}

	subscribedTo, err := srv.subRepo.CountSubscribedChannels(ctx, channel.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count subscribed channels")
	}

	isSubscribed := false
	if viewerID != uuid.Nil {
		_, err := srv.subRepo.Find(ctx, viewerID, channel.ID)
		switch {
		case err == nil:
			isSubscribed = true
		case errors.Is(err, repository.ErrSubscriptionNotFound):
			// Not subscribed.
		default:
			return nil, errors.Wrap(err, "failed to check subscription")
		}
	}

	return &entity.ChannelProfile{
		User:              channel.Sanitize(),
		SubscribersCount:  subscribers,
		SubscribedToCount: subscribedTo,
		IsSubscribed:      isSubscribed,
	}, nil
}

// WatchHistory lists the user's watch history, newest first.
func (srv *userService) WatchHistory(ctx context.Context, userID uuid.UUID) ([]*entity.WatchHistoryEntry, error) {
	entries, err := srv.userRepo.FindWatchHistory(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load watch history")
	}

	return entries, nil
}

func (srv *userService) generateTokenPair(user *entity.User) (string, string, error) {
	accessToken, err := srv.tokenService.GenerateAccessToken(user)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to generate access token")
	}

	refreshToken, err := srv.tokenService.GenerateRefreshToken(user)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to generate refresh token")
	}

	return accessToken, refreshToken, nil
}
