package usecase

import (
	"context"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// PublishVideoInput defines the data required to publish a new video.
// Media is uploaded out of band; only the resulting URLs arrive here.
type PublishVideoInput struct {
	Title       string
	Description string
	VideoFile   string
	Thumbnail   string
	Duration    float64
}

// UpdateVideoInput defines the mutable video fields.
type UpdateVideoInput struct {
	Title       string
	Description string
	Thumbnail   string
}

// ListVideosInput carries listing options for the video feed.
type ListVideosInput struct {
	Page     int
	Limit    int
	Search   string
	SortBy   string
	SortDesc bool
	OwnerID  *uuid.UUID
}

// ListVideosOutput returns one page of videos plus the total match count.
type ListVideosOutput struct {
	Videos []*entity.Video
	Total  int64
	Page   int
	Limit  int
}

// VideoUsecase defines the interface for video business operations.
// Mutating operations verify ownership; only the owner may modify or delete.
type VideoUsecase interface {
	Publish(ctx context.Context, ownerID uuid.UUID, input *PublishVideoInput) (*entity.Video, error)

	// Get loads a video, bumps its view counter and records the watch in the
	// viewer's history.
	Get(ctx context.Context, viewerID, videoID uuid.UUID) (*entity.Video, error)

	List(ctx context.Context, input *ListVideosInput) (*ListVideosOutput, error)
	Update(ctx context.Context, userID, videoID uuid.UUID, input *UpdateVideoInput) (*entity.Video, error)

	// Delete removes the video together with its comments.
	Delete(ctx context.Context, userID, videoID uuid.UUID) error

	TogglePublishStatus(ctx context.Context, userID, videoID uuid.UUID) (*entity.Video, error)
}
