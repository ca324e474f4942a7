package middleware

import (
	"strings"

	"vidtube/internal/domain/entity"
	"vidtube/internal/domain/repository"
	"vidtube/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	domainerrors "vidtube/internal/domain/errors"
)

const (
	// AccessTokenCookie is the cookie the browser flow stores the access token in.
	AccessTokenCookie = "accessToken"
	// RefreshTokenCookie is the cookie the browser flow stores the refresh token in.
	RefreshTokenCookie = "refreshToken"

	contextKeyUserID = "userID"
	contextKeyUser   = "user"
)

// AuthMiddleware guards authenticated routes by verifying the access token.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo}
}

// Authenticate validates the access token, loads the account it names and
// attaches the sanitized user to the request context. The token is read from
// the accessToken cookie first, then from the Authorization header. Every
// failure mode produces the same 401 so the response does not reveal why
// authentication failed.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := extractAccessToken(c)
		if tokenString == "" {
			return errors.Wrap(domainerrors.ErrUnauthenticated, "no access token presented")
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return errors.Wrap(domainerrors.ErrUnauthenticated, "access token rejected")
		}

		user, err := m.userRepo.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			// A valid token for a deleted account is still a dead session.
			return errors.Wrap(domainerrors.ErrUnauthenticated, "access token subject not found")
		}

		c.Set(contextKeyUserID, user.ID)
		c.Set(contextKeyUser, user.Sanitize())

		return next(c)
	}
}

// extractAccessToken prefers the cookie over the Authorization header.
func extractAccessToken(c echo.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader {
		return strings.TrimSpace(token)
	}

	return ""
}

// CurrentUserID returns the authenticated user's ID set by Authenticate.
func CurrentUserID(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get(contextKeyUserID).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, errors.Wrap(domainerrors.ErrUnauthenticated, "no authenticated identity on request")
	}

	return userID, nil
}

// CurrentUser returns the sanitized account set by Authenticate.
func CurrentUser(c echo.Context) (*entity.User, error) {
	user, ok := c.Get(contextKeyUser).(*entity.User)
	if !ok || user == nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "no authenticated identity on request")
	}

	return user, nil
}

// OptionalUserID returns the authenticated user's ID when present, uuid.Nil
// otherwise. Used by routes that behave differently for logged-in viewers.
func OptionalUserID(c echo.Context) uuid.UUID {
	if userID, ok := c.Get(contextKeyUserID).(uuid.UUID); ok {
		return userID
	}

	return uuid.Nil
}
