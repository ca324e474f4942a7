package repository

import (
	"context"
	"errors"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrVideoNotFound is returned when a video is not found.
var ErrVideoNotFound = errors.New("video not found")

// VideoQuery carries listing options: pagination, free-text title search,
// sorting and an optional owner filter.
type VideoQuery struct {
	Page     int
	Limit    int
	Search   string
	SortBy   string // column name, defaults to created_at
	SortDesc bool
	OwnerID  *uuid.UUID

	// IncludeDrafts lifts the published-only filter. Only the owner-facing
	// dashboard sets this.
	IncludeDrafts bool
}

// ChannelStats aggregates per-channel totals for the dashboard.
type ChannelStats struct {
	TotalVideos int64
	TotalViews  int64
}

// VideoRepository defines the standard operations for video persistence.
type VideoRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Video, error)

	// List returns a page of videos matching the query plus the total match count.
	List(ctx context.Context, query VideoQuery) ([]*entity.Video, int64, error)

	Create(ctx context.Context, video *entity.Video) error

	Update(ctx context.Context, video *entity.Video) error

	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementViews bumps the view counter in a single write.
	IncrementViews(ctx context.Context, id uuid.UUID) error

	// StatsByOwner aggregates video count and view totals for a channel.
	StatsByOwner(ctx context.Context, ownerID uuid.UUID) (*ChannelStats, error)
}
