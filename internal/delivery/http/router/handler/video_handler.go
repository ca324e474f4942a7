package handler

import (
	"net/http"
	"strconv"

	"vidtube/internal/delivery/http/middleware"
	"vidtube/internal/delivery/http/response"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// VideoHandler holds dependencies for the video handlers.
type VideoHandler struct {
	uc usecase.VideoUsecase
}

// NewVideoHandler is the constructor for VideoHandler, injected by Fx.
func NewVideoHandler(uc usecase.VideoUsecase) *VideoHandler {
	return &VideoHandler{uc: uc}
}

type publishVideoRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	VideoFile   string  `json:"videoFile" validate:"required"`
	Thumbnail   string  `json:"thumbnail" validate:"required"`
	Duration    float64 `json:"duration" validate:"gte=0"`
}

type updateVideoRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}

// Publish handles the video publication request.
func (h *VideoHandler) Publish(c echo.Context) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var req publishVideoRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid video input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	video, err := h.uc.Publish(c.Request().Context(), userID, &usecase.PublishVideoInput{
		Title:       req.Title,
		Description: req.Description,
		VideoFile:   req.VideoFile,
		Thumbnail:   req.Thumbnail,
		Duration:    req.Duration,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, video, "Video published successfully")
}

// Get returns one video and counts the view.
func (h *VideoHandler) Get(c echo.Context) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	videoID, err := parseUUIDParam(c, "videoId")
	if err != nil {
		return errors.WithStack(err)
	}

	video, err := h.uc.Get(c.Request().Context(), userID, videoID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, video, "Video retrieved successfully")
}

// List returns one page of the published video feed.
func (h *VideoHandler) List(c echo.Context) error {
	input := &usecase.ListVideosInput{
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
		Search:   c.QueryParam("query"),
		SortBy:   c.QueryParam("sortBy"),
		SortDesc: c.QueryParam("sortType") == "desc",
	}

	if raw := c.QueryParam("userId"); raw != "" {
		ownerID, err := uuid.Parse(raw)
		if err != nil {
			return errors.WithStack(domainerrors.ErrValidationFailed.WrapMessage("invalid userId filter"))
		}
		input.OwnerID = &ownerID
	}

	output, err := h.uc.List(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Videos retrieved successfully")
}

// Update handles the video detail update request.
func (h *VideoHandler) Update(c echo.Context) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	videoID, err := parseUUIDParam(c, "videoId")
	if err != nil {
		return errors.WithStack(err)
	}

	var req updateVideoRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid video input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	video, err := h.uc.Update(c.Request().Context(), userID, videoID, &usecase.UpdateVideoInput{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, video, "Video updated successfully")
}

// Delete removes a video and its comments.
func (h *VideoHandler) Delete(c echo.Context) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	videoID, err := parseUUIDParam(c, "videoId")
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Delete(c.Request().Context(), userID, videoID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Video deleted successfully")
}

// TogglePublishStatus flips a video between draft and published.
func (h *VideoHandler) TogglePublishStatus(c echo.Context) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	videoID, err := parseUUIDParam(c, "videoId")
	if err != nil {
		return errors.WithStack(err)
	}

	video, err := h.uc.TogglePublishStatus(c.Request().Context(), userID, videoID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, video, "Publish status toggled successfully")
}

// parseUUIDParam parses a path parameter as a UUID.
func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WrapMessage("invalid " + name)
	}

	return id, nil
}

// queryInt parses an optional integer query parameter, 0 when absent or bad.
func queryInt(c echo.Context, name string) int {
	value, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}

	return value
}
