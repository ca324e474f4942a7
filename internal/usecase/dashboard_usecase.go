package usecase

import (
	"context"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// ChannelStatsOutput aggregates a channel's totals for its owner's dashboard.
type ChannelStatsOutput struct {
	TotalVideos      int64
	TotalViews       int64
	TotalSubscribers int64
}

// DashboardUsecase defines the owner-facing channel overview operations.
type DashboardUsecase interface {
	ChannelStats(ctx context.Context, ownerID uuid.UUID) (*ChannelStatsOutput, error)

	// ChannelVideos lists all of the owner's videos, drafts included.
	ChannelVideos(ctx context.Context, ownerID uuid.UUID) ([]*entity.Video, error)
}
