package impl

import (
	"context"
	"log/slog"

	deliverycontext "vidtube/internal/delivery/context"
	"vidtube/internal/domain/entity"
	"vidtube/internal/domain/repository"
	"vidtube/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// dashboardService implements the DashboardUsecase interface.
type dashboardService struct {
	videoRepo repository.VideoRepository
	subRepo   repository.SubscriptionRepository
	logger    *slog.Logger
}

// DashboardServiceParams holds dependencies for dashboardService, injected by Fx.
type DashboardServiceParams struct {
	fx.In

	VideoRepo repository.VideoRepository
	SubRepo   repository.SubscriptionRepository
	Logger    *slog.Logger
}

// NewDashboardService is the constructor for dashboardService.
func NewDashboardService(params DashboardServiceParams) usecase.DashboardUsecase {
	return &dashboardService{
		videoRepo: params.VideoRepo,
		subRepo:   params.SubRepo,
		logger:    params.Logger,
	}
}

func (srv *dashboardService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ChannelStats aggregates the owner's channel totals.
func (srv *dashboardService) ChannelStats(ctx context.Context, ownerID uuid.UUID) (*usecase.ChannelStatsOutput, error) {
	stats, err := srv.videoRepo.StatsByOwner(ctx, ownerID)
	if err != nil {
		srv.log(ctx).Error("Failed to aggregate channel stats", slog.Any("ownerID", ownerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to aggregate channel stats")
	}

	subscribers, err := srv.subRepo.CountSubscribers(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count subscribers")
	}

	return &usecase.ChannelStatsOutput{
		TotalVideos:      stats.TotalVideos,
		TotalViews:       stats.TotalViews,
		TotalSubscribers: subscribers,
	}, nil
}

// ChannelVideos lists all of the owner's videos, drafts included.
func (srv *dashboardService) ChannelVideos(ctx context.Context, ownerID uuid.UUID) ([]*entity.Video, error) {
	videos, _, err := srv.videoRepo.List(ctx, repository.VideoQuery{
		OwnerID:       &ownerID,
		SortDesc:      true,
		Limit:         100,
		IncludeDrafts: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list channel videos")
	}

	return videos, nil
}
