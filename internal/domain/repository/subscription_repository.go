package repository

import (
	"context"
	"errors"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSubscriptionNotFound is returned when a subscription is not found.
var ErrSubscriptionNotFound = errors.New("subscription not found")

// SubscriptionRepository defines the standard operations for subscription persistence.
type SubscriptionRepository interface {
	// Find retrieves the subscription of subscriber to channel, if any.
	Find(ctx context.Context, subscriberID, channelID uuid.UUID) (*entity.Subscription, error)

	Create(ctx context.Context, sub *entity.Subscription) error

	Delete(ctx context.Context, subscriberID, channelID uuid.UUID) error

	// ListSubscribers returns the users subscribed to a channel.
	ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*entity.Subscription, error)

	// ListSubscribedChannels returns the channels a user subscribes to.
	ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]*entity.Subscription, error)

	// CountSubscribers returns the number of subscribers of a channel.
	CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error)

	// CountSubscribedChannels returns how many channels a user subscribes to.
	CountSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) (int64, error)
}
