package entity

import (
	"time"

	"github.com/google/uuid"
)

// Playlist is an ordered, user-owned collection of videos.
type Playlist struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	VideoIDs    []uuid.UUID // Ordered references, no duplicates.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ContainsVideo reports whether the playlist already references the given video.
func (p *Playlist) ContainsVideo(videoID uuid.UUID) bool {
	for _, id := range p.VideoIDs {
		if id == videoID {
			return true
		}
	}

	return false
}
