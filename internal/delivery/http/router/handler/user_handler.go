// Package handler contains the HTTP handlers for the application.
package handler

import (
	"context"
	"net/http"
	"time"

	"vidtube/internal/delivery/http/middleware"
	"vidtube/internal/delivery/http/response"
	"vidtube/internal/domain/entity"
	"vidtube/internal/domain/service"
	"vidtube/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for identity and session handlers.
type UserHandler struct {
	uc       usecase.UserUsecase
	tokenSvc service.TokenService
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, tokenSvc service.TokenService) *UserHandler {
	return &UserHandler{
		uc:       uc,
		tokenSvc: tokenSvc,
	}
}

type registerRequest struct {
	Username   string `json:"username" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	FullName   string `json:"fullName" validate:"required"`
	Password   string `json:"password" validate:"required"`
	Avatar     string `json:"avatar" validate:"required"`
	CoverImage string `json:"coverImage"`
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

type updateAccountRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

type imageRequest struct {
	URL string `json:"url" validate:"required"`
}

// Register handles the account creation request.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Username:   req.Username,
		Email:      req.Email,
		FullName:   req.FullName,
		Password:   req.Password,
		Avatar:     req.Avatar,
		CoverImage: req.CoverImage,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.User, "User registered successfully")
}

// Login handles the login request and establishes the session cookies.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Identifier: req.Identifier,
		Password:   req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookies(c, output.AccessToken, output.RefreshToken)

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// RefreshAccessToken rotates the session. The refresh token is read from the
// cookie first, then from the request body.
func (h *UserHandler) RefreshAccessToken(c echo.Context) error {
	refreshToken := ""
	if cookie, err := c.Cookie(middleware.RefreshTokenCookie); err == nil {
		refreshToken = cookie.Value
	}
	if refreshToken == "" {
		var req refreshRequest
		if err := c.Bind(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}
	if refreshToken == "" {
		return response.Unauthorized(c, "UNAUTHENTICATED", "No refresh token presented")
	}

	output, err := h.uc.RefreshSession(c.Request().Context(), &usecase.RefreshSessionInput{
		RefreshToken: refreshToken,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookies(c, output.AccessToken, output.RefreshToken)

	return response.Success(c, http.StatusOK, output, "Session refreshed successfully")
}

// Logout ends the session and clears the session cookies.
func (h *UserHandler) Logout(c echo.Context) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Logout(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	h.clearSessionCookies(c)

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

// ChangePassword handles the password change request.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password change input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ChangePassword(c.Request().Context(), userID, &usecase.ChangePasswordInput{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed successfully")
}

// CurrentUser returns the authenticated account.
func (h *UserHandler) CurrentUser(c echo.Context) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Current user retrieved successfully")
}

// UpdateAccount handles the account detail update request.
func (h *UserHandler) UpdateAccount(c echo.Context) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid account update input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.UpdateAccount(c.Request().Context(), userID, &usecase.UpdateAccountInput{
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Account updated successfully")
}

// UpdateAvatar handles the avatar update request.
func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	return h.updateImage(c, h.uc.UpdateAvatar, "Avatar updated successfully")
}

// UpdateCoverImage handles the cover image update request.
func (h *UserHandler) UpdateCoverImage(c echo.Context) error {
	return h.updateImage(c, h.uc.UpdateCoverImage, "Cover image updated successfully")
}

func (h *UserHandler) updateImage(
	c echo.Context,
	update func(ctx context.Context, userID uuid.UUID, url string) (*entity.User, error),
	message string,
) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var req imageRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid image input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, err := update(c.Request().Context(), userID, req.URL)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, message)
}

// ChannelProfile returns a user's public channel page.
func (h *UserHandler) ChannelProfile(c echo.Context) error {
	viewerID := middleware.OptionalUserID(c)

	profile, err := h.uc.ChannelProfile(c.Request().Context(), c.Param("username"), viewerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Channel profile retrieved successfully")
}

// WatchHistory returns the authenticated user's watch history.
func (h *UserHandler) WatchHistory(c echo.Context) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	history, err := h.uc.WatchHistory(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, history, "Watch history retrieved successfully")
}

// setSessionCookies stores the token pair as http-only cookies.
func (h *UserHandler) setSessionCookies(c echo.Context, accessToken, refreshToken string) {
	c.SetCookie(sessionCookie(middleware.AccessTokenCookie, accessToken, h.tokenSvc.AccessTokenTTL()))
	c.SetCookie(sessionCookie(middleware.RefreshTokenCookie, refreshToken, h.tokenSvc.RefreshTokenTTL()))
}

// clearSessionCookies expires both session cookies.
func (h *UserHandler) clearSessionCookies(c echo.Context) {
	c.SetCookie(sessionCookie(middleware.AccessTokenCookie, "", -time.Hour))
	c.SetCookie(sessionCookie(middleware.RefreshTokenCookie, "", -time.Hour))
}

func sessionCookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}
