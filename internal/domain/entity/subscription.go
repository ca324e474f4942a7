package entity

import (
	"time"

	"github.com/google/uuid"
)

// Subscription links a subscriber to a channel (both are users).
// The (subscriber, channel) pair is unique.
type Subscription struct {
	ID           uuid.UUID
	SubscriberID uuid.UUID
	ChannelID    uuid.UUID
	CreatedAt    time.Time
}
