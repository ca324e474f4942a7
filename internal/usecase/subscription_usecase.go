package usecase

import (
	"context"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// ToggleSubscriptionOutput reports the state after a toggle.
type ToggleSubscriptionOutput struct {
	Subscribed bool
}

// SubscriptionUsecase defines the interface for subscription business operations.
type SubscriptionUsecase interface {
	// Toggle subscribes the user to the channel, or unsubscribes if already
	// subscribed. Subscribing to one's own channel is rejected.
	Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (*ToggleSubscriptionOutput, error)

	ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*entity.Subscription, error)
	ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]*entity.Subscription, error)
}
