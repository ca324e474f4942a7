package handler

import (
	"net/http"

	"vidtube/internal/delivery/http/middleware"
	"vidtube/internal/delivery/http/response"
	"vidtube/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SubscriptionHandler holds dependencies for the subscription handlers.
type SubscriptionHandler struct {
	uc usecase.SubscriptionUsecase
}

// NewSubscriptionHandler is the constructor for SubscriptionHandler, injected by Fx.
func NewSubscriptionHandler(uc usecase.SubscriptionUsecase) *SubscriptionHandler {
	return &SubscriptionHandler{uc: uc}
}

// Toggle subscribes the caller to a channel, or unsubscribes when already
// subscribed.
func (h *SubscriptionHandler) Toggle(c echo.Context) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	channelID, err := parseUUIDParam(c, "channelId")
	if err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Toggle(c.Request().Context(), userID, channelID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Subscription toggled successfully")
}

// ListSubscribers returns the users subscribed to a channel.
func (h *SubscriptionHandler) ListSubscribers(c echo.Context) error {
	channelID, err := parseUUIDParam(c, "channelId")
	if err != nil {
		return errors.WithStack(err)
	}

	subscriptions, err := h.uc.ListSubscribers(c.Request().Context(), channelID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, subscriptions, "Subscribers retrieved successfully")
}

// ListSubscribedChannels returns the channels the caller subscribes to.
func (h *SubscriptionHandler) ListSubscribedChannels(c echo.Context) error {
	subscriberID, err := middleware.CurrentUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	subscriptions, err := h.uc.ListSubscribedChannels(c.Request().Context(), subscriberID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, subscriptions, "Subscribed channels retrieved successfully")
}
