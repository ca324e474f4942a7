package impl

import (
	"context"
	"testing"

	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserServiceUnderTest(t *testing.T) (usecase.UserUsecase, *serviceFixtures) {
	t.Helper()

	fixtures := newServiceFixtures(t)
	svc := NewUserService(UserServiceParams{
		TxManager:    fixtures.txManager,
		UserRepo:     fixtures.factory.userRepo,
		SubRepo:      fixtures.factory.subRepo,
		Hasher:       fixtures.hasher,
		TokenService: fixtures.tokenService,
		Logger:       newDiscardLogger(),
	})

	return svc, fixtures
}

func registerAlice(t *testing.T, svc usecase.UserUsecase) *usecase.RegisterOutput {
	t.Helper()

	out, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Example",
		Password: "CorrectHorse9",
		Avatar:   "https://cdn.example.com/alice.png",
	})
	require.NoError(t, err)

	return out
}

func TestUserService_Register_Success(t *testing.T) {
	svc, _ := newUserServiceUnderTest(t)

	out := registerAlice(t, svc)

	require.NotNil(t, out.User)
	assert.NotEqual(t, uuid.Nil, out.User.ID)
	assert.Equal(t, "alice", out.User.Username)
	assert.Equal(t, "alice@example.com", out.User.Email)
	assert.Empty(t, out.User.PasswordHash, "credential material must not leave the core")
	assert.Empty(t, out.User.RefreshToken)
}

func TestUserService_Register_NormalizesIdentifiers(t *testing.T) {
	svc, _ := newUserServiceUnderTest(t)

	out, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Username: "  Bob ",
		Email:    " BOB@Example.COM ",
		FullName: " Bob Builder ",
		Password: "CorrectHorse9",
		Avatar:   "https://cdn.example.com/bob.png",
	})
	require.NoError(t, err)

	assert.Equal(t, "bob", out.User.Username)
	assert.Equal(t, "bob@example.com", out.User.Email)
	assert.Equal(t, "Bob Builder", out.User.FullName)
}

func TestUserService_Register_DuplicateIsCaseInsensitive(t *testing.T) {
	svc, _ := newUserServiceUnderTest(t)
	registerAlice(t, svc)

	_, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Username: "ALICE",
		Email:    "other@example.com",
		FullName: "Another Alice",
		Password: "CorrectHorse9",
		Avatar:   "https://cdn.example.com/a.png",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateIdentity))

	_, err = svc.Register(context.Background(), &usecase.RegisterInput{
		Username: "alice2",
		Email:    "Alice@Example.com",
		FullName: "Another Alice",
		Password: "CorrectHorse9",
		Avatar:   "https://cdn.example.com/a.png",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateIdentity))
}

func TestUserService_Register_ValidationFailures(t *testing.T) {
	svc, _ := newUserServiceUnderTest(t)

	cases := []struct {
		name  string
		input usecase.RegisterInput
	}{
		{"blank username", usecase.RegisterInput{Username: "   ", Email: "a@b.com", FullName: "A", Password: "CorrectHorse9", Avatar: "x"}},
		{"blank email", usecase.RegisterInput{Username: "a", Email: "", FullName: "A", Password: "CorrectHorse9", Avatar: "x"}},
		{"blank full name", usecase.RegisterInput{Username: "a", Email: "a@b.com", FullName: " ", Password: "CorrectHorse9", Avatar: "x"}},
		{"blank password", usecase.RegisterInput{Username: "a", Email: "a@b.com", FullName: "A", Password: "  ", Avatar: "x"}},
		{"missing avatar", usecase.RegisterInput{Username: "a", Email: "a@b.com", FullName: "A", Password: "CorrectHorse9", Avatar: ""}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), &tc.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
		})
	}
}

func TestUserService_Register_ShortPasswordAcceptedWithoutPolicy(t *testing.T) {
	svc, _ := newUserServiceUnderTest(t)

	// No minimum length is configured, so a short password is a valid credential.
	out, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Username: "carol",
		Email:    "carol@example.com",
		FullName: "Carol Example",
		Password: "p@ss1",
		Avatar:   "https://cdn.example.com/carol.png",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, out.User.ID)

	login, err := svc.Login(context.Background(), &usecase.LoginInput{
		Identifier: "carol",
		Password:   "p@ss1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
}

func TestUserService_Login_Success(t *testing.T) {
	svc, fixtures := newUserServiceUnderTest(t)
	registered := registerAlice(t, svc)

	out, err := svc.Login(context.Background(), &usecase.LoginInput{
		Identifier: "alice",
		Password:   "CorrectHorse9",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.NotEqual(t, out.AccessToken, out.RefreshToken)
	assert.Empty(t, out.User.PasswordHash)

	// The issued refresh token is the stored one.
	assert.Equal(t, out.RefreshToken, fixtures.factory.userRepo.storedRefreshToken(registered.User.ID))

	// Access token verifies and carries the identity snapshot.
	claims, err := fixtures.tokenService.ValidateAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestUserService_Login_ByEmail(t *testing.T) {
	svc, _ := newUserServiceUnderTest(t)
	registerAlice(t, svc)

	out, err := svc.Login(context.Background(), &usecase.LoginInput{
		Identifier: "ALICE@example.com",
		Password:   "CorrectHorse9",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	svc, fixtures := newUserServiceUnderTest(t)
	registered := registerAlice(t, svc)

	out, err := svc.Login(context.Background(), &usecase.LoginInput{
		Identifier: "alice",
		Password:   "WrongPassword1",
	})
	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredential))

	// No session state was created.
	assert.Empty(t, fixtures.factory.userRepo.storedRefreshToken(registered.User.ID))
}

func TestUserService_Login_UnknownIdentifierSameError(t *testing.T) {
	svc, _ := newUserServiceUnderTest(t)
	registerAlice(t, svc)

	_, errUnknown := svc.Login(context.Background(), &usecase.LoginInput{
		Identifier: "nobody",
		Password:   "CorrectHorse9",
	})
	_, errWrongPassword := svc.Login(context.Background(), &usecase.LoginInput{
		Identifier: "alice",
		Password:   "WrongPassword1",
	})

	// Unknown account and wrong password are indistinguishable to the caller.
	require.Error(t, errUnknown)
	require.Error(t, errWrongPassword)
	assert.True(t, errors.Is(errUnknown, domainerrors.ErrInvalidCredential))
	assert.True(t, errors.Is(errWrongPassword, domainerrors.ErrInvalidCredential))
}

func TestUserService_RefreshSession_RotatesStoredToken(t *testing.T) {
	svc, fixtures := newUserServiceUnderTest(t)
	registered := registerAlice(t, svc)

	login, err := svc.Login(context.Background(), &usecase.LoginInput{Identifier: "alice", Password: "CorrectHorse9"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshSession(context.Background(), &usecase.RefreshSessionInput{
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)

	// Rotation must hand back a different token, even within the same second.
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The stored token is now the new one.
	assert.Equal(t, refreshed.RefreshToken, fixtures.factory.userRepo.storedRefreshToken(registered.User.ID))
}

func TestUserService_RefreshSession_StaleTokenRejected(t *testing.T) {
	svc, _ := newUserServiceUnderTest(t)
	registerAlice(t, svc)

	login, err := svc.Login(context.Background(), &usecase.LoginInput{Identifier: "alice", Password: "CorrectHorse9"})
	require.NoError(t, err)

	first, err := svc.RefreshSession(context.Background(), &usecase.RefreshSessionInput{RefreshToken: login.RefreshToken})
	require.NoError(t, err)

	// Replaying the pre-rotation token fails even though its signature is valid.
	_, err = svc.RefreshSession(context.Background(), &usecase.RefreshSessionInput{RefreshToken: login.RefreshToken})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))

	// The current token still works.
	second, err := svc.RefreshSession(context.Background(), &usecase.RefreshSessionInput{RefreshToken: first.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, second.RefreshToken)
}

func TestUserService_RefreshSession_GarbageToken(t *testing.T) {
	svc, _ := newUserServiceUnderTest(t)

	// A token that fails verification is an authentication failure; the
	// replay signal is reserved for verified tokens that lost the stored-value
	// comparison.
	_, err := svc.RefreshSession(context.Background(), &usecase.RefreshSessionInput{
		RefreshToken: "not.a.jwt",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))
}

func TestUserService_RefreshSession_UnknownSubject(t *testing.T) {
	svc, fixtures := newUserServiceUnderTest(t)

	// A well-signed token whose subject was never registered (or has since
	// been removed) cannot open a session.
	token, err := fixtures.tokenService.GenerateRefreshToken(&entity.User{ID: uuid.New(), Username: "ghost"})
	require.NoError(t, err)

	_, err = svc.RefreshSession(context.Background(), &usecase.RefreshSessionInput{RefreshToken: token})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))
}

func TestUserService_RefreshSession_AccessTokenNotAccepted(t *testing.T) {
	svc, _ := newUserServiceUnderTest(t)
	registerAlice(t, svc)

	login, err := svc.Login(context.Background(), &usecase.LoginInput{Identifier: "alice", Password: "CorrectHorse9"})
	require.NoError(t, err)

	// An access token must not pass refresh verification: separate secrets.
	_, err = svc.RefreshSession(context.Background(), &usecase.RefreshSessionInput{
		RefreshToken: login.AccessToken,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))
}

func TestUserService_Logout_EndsSession(t *testing.T) {
	svc, fixtures := newUserServiceUnderTest(t)
	registered := registerAlice(t, svc)

	login, err := svc.Login(context.Background(), &usecase.LoginInput{Identifier: "alice", Password: "CorrectHorse9"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), registered.User.ID))
	assert.Empty(t, fixtures.factory.userRepo.storedRefreshToken(registered.User.ID))

	// The pre-logout refresh token is no longer usable.
	_, err = svc.RefreshSession(context.Background(), &usecase.RefreshSessionInput{RefreshToken: login.RefreshToken})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))

	// Logging out again is harmless.
	require.NoError(t, svc.Logout(context.Background(), registered.User.ID))
}

func TestUserService_ChangePassword(t *testing.T) {
	svc, _ := newUserServiceUnderTest(t)
	registered := registerAlice(t, svc)

	// Wrong current password is rejected.
	err := svc.ChangePassword(context.Background(), registered.User.ID, &usecase.ChangePasswordInput{
		OldPassword: "WrongPassword1",
		NewPassword: "BatteryStaple7",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredential))

	// Blank replacement is rejected.
	err = svc.ChangePassword(context.Background(), registered.User.ID, &usecase.ChangePasswordInput{
		OldPassword: "CorrectHorse9",
		NewPassword: "   ",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	// Valid change succeeds.
	require.NoError(t, svc.ChangePassword(context.Background(), registered.User.ID, &usecase.ChangePasswordInput{
		OldPassword: "CorrectHorse9",
		NewPassword: "BatteryStaple7",
	}))

	// The old password no longer works, the new one does.
	_, err = svc.Login(context.Background(), &usecase.LoginInput{Identifier: "alice", Password: "CorrectHorse9"})
	require.Error(t, err)

	_, err = svc.Login(context.Background(), &usecase.LoginInput{Identifier: "alice", Password: "BatteryStaple7"})
	require.NoError(t, err)
}

func TestUserService_ChangePassword_KeepsSessionAlive(t *testing.T) {
	svc, _ := newUserServiceUnderTest(t)
	registered := registerAlice(t, svc)

	login, err := svc.Login(context.Background(), &usecase.LoginInput{Identifier: "alice", Password: "CorrectHorse9"})
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(context.Background(), registered.User.ID, &usecase.ChangePasswordInput{
		OldPassword: "CorrectHorse9",
		NewPassword: "BatteryStaple7",
	}))

	// A password change does not revoke the active refresh token.
	_, err = svc.RefreshSession(context.Background(), &usecase.RefreshSessionInput{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
}

func TestUserService_CurrentUser(t *testing.T) {
	svc, _ := newUserServiceUnderTest(t)
	registered := registerAlice(t, svc)

	user, err := svc.CurrentUser(context.Background(), registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash)
	assert.Empty(t, user.RefreshToken)

	_, err = svc.CurrentUser(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestUserService_UpdateAccount(t *testing.T) {
	svc, _ := newUserServiceUnderTest(t)
	registered := registerAlice(t, svc)

	updated, err := svc.UpdateAccount(context.Background(), registered.User.ID, &usecase.UpdateAccountInput{
		FullName: "Alice Cooper",
		Email:    "Alice.Cooper@Example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", updated.FullName)
	assert.Equal(t, "alice.cooper@example.com", updated.Email)
}

func TestUserService_UpdateAccount_DuplicateEmail(t *testing.T) {
	svc, _ := newUserServiceUnderTest(t)
	registered := registerAlice(t, svc)

	_, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		FullName: "Bob Builder",
		Password: "CorrectHorse9",
		Avatar:   "https://cdn.example.com/bob.png",
	})
	require.NoError(t, err)

	_, err = svc.UpdateAccount(context.Background(), registered.User.ID, &usecase.UpdateAccountInput{
		FullName: "Alice Example",
		Email:    "bob@example.com",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateIdentity))
}

func TestUserService_UpdateImages(t *testing.T) {
	svc, _ := newUserServiceUnderTest(t)
	registered := registerAlice(t, svc)

	updated, err := svc.UpdateAvatar(context.Background(), registered.User.ID, "https://cdn.example.com/new-avatar.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/new-avatar.png", updated.Avatar)

	updated, err = svc.UpdateCoverImage(context.Background(), registered.User.ID, "https://cdn.example.com/cover.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/cover.png", updated.CoverImage)

	_, err = svc.UpdateAvatar(context.Background(), registered.User.ID, "  ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestUserService_ChannelProfile(t *testing.T) {
	svc, fixtures := newUserServiceUnderTest(t)
	alice := registerAlice(t, svc)

	bob, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		FullName: "Bob Builder",
		Password: "CorrectHorse9",
		Avatar:   "https://cdn.example.com/bob.png",
	})
	require.NoError(t, err)

	subSvc := NewSubscriptionService(SubscriptionServiceParams{
		SubRepo:  fixtures.factory.subRepo,
		UserRepo: fixtures.factory.userRepo,
		Logger:   newDiscardLogger(),
	})
	_, err = subSvc.Toggle(context.Background(), bob.User.ID, alice.User.ID)
	require.NoError(t, err)

	profile, err := svc.ChannelProfile(context.Background(), "Alice", bob.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.User.Username)
	assert.Empty(t, profile.User.PasswordHash)
	assert.EqualValues(t, 1, profile.SubscribersCount)
	assert.True(t, profile.IsSubscribed)

	// Anonymous viewer sees the counts but no subscription flag.
	profile, err = svc.ChannelProfile(context.Background(), "alice", uuid.Nil)
	require.NoError(t, err)
	assert.False(t, profile.IsSubscribed)

	_, err = svc.ChannelProfile(context.Background(), "ghost", uuid.Nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
