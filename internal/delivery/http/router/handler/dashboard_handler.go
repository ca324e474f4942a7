package handler

import (
	"net/http"

	"vidtube/internal/delivery/http/middleware"
	"vidtube/internal/delivery/http/response"
	"vidtube/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DashboardHandler holds dependencies for the owner dashboard handlers.
type DashboardHandler struct {
	uc usecase.DashboardUsecase
}

// NewDashboardHandler is the constructor for DashboardHandler, injected by Fx.
func NewDashboardHandler(uc usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// ChannelStats returns the caller's channel totals.
func (h *DashboardHandler) ChannelStats(c echo.Context) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	stats, err := h.uc.ChannelStats(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "Channel stats retrieved successfully")
}

// ChannelVideos returns all of the caller's videos, drafts included.
func (h *DashboardHandler) ChannelVideos(c echo.Context) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	videos, err := h.uc.ChannelVideos(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, videos, "Channel videos retrieved successfully")
}
