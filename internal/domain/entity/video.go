package entity

import (
	"time"

	"github.com/google/uuid"
)

// Video represents a published or draft video owned by a user. The media files
// themselves live in external storage; only their URLs are kept here.
type Video struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string
	VideoFile   string // URL of the uploaded media file.
	Thumbnail   string // URL of the thumbnail image.
	Duration    float64
	Views       int64
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WatchHistoryEntry records that a user watched a video. Entries are append-only
// from the identity's perspective; ordering is newest first when listed.
type WatchHistoryEntry struct {
	UserID    uuid.UUID
	VideoID   uuid.UUID
	WatchedAt time.Time
}
