package handler

import (
	"context"
	"net/http"

	"vidtube/internal/delivery/http/middleware"
	"vidtube/internal/delivery/http/response"
	"vidtube/internal/domain/entity"
	"vidtube/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type membershipFunc func(ctx context.Context, userID, playlistID, videoID uuid.UUID) (*entity.Playlist, error)

// PlaylistHandler holds dependencies for the playlist handlers.
type PlaylistHandler struct {
	uc usecase.PlaylistUsecase
}

// NewPlaylistHandler is the constructor for PlaylistHandler, injected by Fx.
func NewPlaylistHandler(uc usecase.PlaylistUsecase) *PlaylistHandler {
	return &PlaylistHandler{uc: uc}
}

type playlistRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// Create handles the playlist creation request.
func (h *PlaylistHandler) Create(c echo.Context) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var req playlistRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid playlist input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	playlist, err := h.uc.Create(c.Request().Context(), userID, &usecase.CreatePlaylistInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, playlist, "Playlist created successfully")
}

// Get returns one playlist with its ordered video list.
func (h *PlaylistHandler) Get(c echo.Context) error {
	playlistID, err := parseUUIDParam(c, "playlistId")
	if err != nil {
		return errors.WithStack(err)
	}

	playlist, err := h.uc.Get(c.Request().Context(), playlistID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, playlist, "Playlist retrieved successfully")
}

// ListByOwner returns all playlists owned by a user.
func (h *PlaylistHandler) ListByOwner(c echo.Context) error {
	ownerID, err := parseUUIDParam(c, "userId")
	if err != nil {
		return errors.WithStack(err)
	}

	playlists, err := h.uc.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, playlists, "Playlists retrieved successfully")
}

// Update handles the playlist detail update request.
func (h *PlaylistHandler) Update(c echo.Context) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	playlistID, err := parseUUIDParam(c, "playlistId")
	if err != nil {
		return errors.WithStack(err)
	}

	var req playlistRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid playlist input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	playlist, err := h.uc.Update(c.Request().Context(), userID, playlistID, &usecase.UpdatePlaylistInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, playlist, "Playlist updated successfully")
}

// AddVideo appends a video to a playlist.
func (h *PlaylistHandler) AddVideo(c echo.Context) error {
	return h.changeMembership(c, h.uc.AddVideo, "Video added to playlist")
}

// RemoveVideo removes a video from a playlist.
func (h *PlaylistHandler) RemoveVideo(c echo.Context) error {
	return h.changeMembership(c, h.uc.RemoveVideo, "Video removed from playlist")
}

func (h *PlaylistHandler) changeMembership(c echo.Context, change membershipFunc, message string) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	playlistID, err := parseUUIDParam(c, "playlistId")
	if err != nil {
		return errors.WithStack(err)
	}

	videoID, err := parseUUIDParam(c, "videoId")
	if err != nil {
		return errors.WithStack(err)
	}

	playlist, err := change(c.Request().Context(), userID, playlistID, videoID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, playlist, message)
}

// Delete removes a playlist.
func (h *PlaylistHandler) Delete(c echo.Context) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	playlistID, err := parseUUIDParam(c, "playlistId")
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Delete(c.Request().Context(), userID, playlistID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Playlist deleted successfully")
}
