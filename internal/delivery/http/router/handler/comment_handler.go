package handler

import (
	"net/http"

	"vidtube/internal/delivery/http/middleware"
	"vidtube/internal/delivery/http/response"
	"vidtube/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CommentHandler holds dependencies for the comment handlers.
type CommentHandler struct {
	uc usecase.CommentUsecase
}

// NewCommentHandler is the constructor for CommentHandler, injected by Fx.
func NewCommentHandler(uc usecase.CommentUsecase) *CommentHandler {
	return &CommentHandler{uc: uc}
}

type commentRequest struct {
	Content string `json:"content" validate:"required"`
}

// Add posts a comment on a video.
func (h *CommentHandler) Add(c echo.Context) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	videoID, err := parseUUIDParam(c, "videoId")
	if err != nil {
		return errors.WithStack(err)
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	comment, err := h.uc.Add(c.Request().Context(), userID, videoID, req.Content)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, comment, "Comment added successfully")
}

// ListByVideo returns one page of a video's comments.
func (h *CommentHandler) ListByVideo(c echo.Context) error {
	videoID, err := parseUUIDParam(c, "videoId")
	if err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.ListByVideo(c.Request().Context(), videoID, queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Comments retrieved successfully")
}

// Update edits one of the caller's comments.
func (h *CommentHandler) Update(c echo.Context) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	commentID, err := parseUUIDParam(c, "commentId")
	if err != nil {
		return errors.WithStack(err)
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	comment, err := h.uc.Update(c.Request().Context(), userID, commentID, req.Content)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, comment, "Comment updated successfully")
}

// Delete removes one of the caller's comments.
func (h *CommentHandler) Delete(c echo.Context) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	commentID, err := parseUUIDParam(c, "commentId")
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Delete(c.Request().Context(), userID, commentID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Comment deleted successfully")
}
