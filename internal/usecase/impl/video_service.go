package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "vidtube/internal/delivery/context"
	"vidtube/internal/domain/authz"
	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/repository"
	"vidtube/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// videoService implements the VideoUsecase interface.
type videoService struct {
	txManager repository.TransactionManager
	videoRepo repository.VideoRepository
	userRepo  repository.UserRepository
	logger    *slog.Logger
}

// VideoServiceParams holds dependencies for videoService, injected by Fx.
type VideoServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	VideoRepo repository.VideoRepository
	UserRepo  repository.UserRepository
	Logger    *slog.Logger
}

// NewVideoService is the constructor for videoService.
func NewVideoService(params VideoServiceParams) usecase.VideoUsecase {
	return &videoService{
		txManager: params.TxManager,
		videoRepo: params.VideoRepo,
		userRepo:  params.UserRepo,
		logger:    params.Logger,
	}
}

func (srv *videoService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Publish creates a new video owned by the caller.
func (srv *videoService) Publish(ctx context.Context, ownerID uuid.UUID, input *usecase.PublishVideoInput) (*entity.Video, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "title is required")
	}
	if strings.TrimSpace(input.VideoFile) == "" || strings.TrimSpace(input.Thumbnail) == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "video file and thumbnail are required")
	}

	srv.log(ctx).Info("Publishing video", slog.Any("ownerID", ownerID), slog.String("title", title))

	video := &entity.Video{
		OwnerID:     ownerID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		VideoFile:   strings.TrimSpace(input.VideoFile),
		Thumbnail:   strings.TrimSpace(input.Thumbnail),
		Duration:    input.Duration,
		IsPublished: true,
	}

	if err := srv.videoRepo.Create(ctx, video); err != nil {
		srv.log(ctx).Error("Failed to publish video", slog.Any("ownerID", ownerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to publish video")
	}

	return video, nil
}

// Get loads a video for viewing. The view counter bump and the watch history
// append are best effort relative to each other but both run in one transaction.
func (srv *videoService) Get(ctx context.Context, viewerID, videoID uuid.UUID) (*entity.Video, error) {
	var video *entity.Video

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		videoRepo := repoFactory.VideoRepo()

		found, err := videoRepo.FindByID(ctx, videoID)
		if err != nil {
			if errors.Is(err, repository.ErrVideoNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "video does not exist")
			}

			return errors.Wrap(err, "failed to load video")
		}

		// Drafts are only visible to their owner.
		if !found.IsPublished && !authz.IsOwner(viewerID, found.OwnerID) {
			return errors.Wrap(domainerrors.ErrNotFound, "video does not exist")
		}

		if err := videoRepo.IncrementViews(ctx, videoID); err != nil {
			return errors.Wrap(err, "failed to increment views")
		}
		found.Views++

		if err := repoFactory.UserRepo().AppendWatchHistory(ctx, viewerID, videoID); err != nil {
			return errors.Wrap(err, "failed to record watch history")
		}

		video = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Video lookup failed", slog.Any("videoID", videoID), slog.Any("error", err))

		return nil, err
	}

	return video, nil
}

// List returns a page of published videos matching the query.
func (srv *videoService) List(ctx context.Context, input *usecase.ListVideosInput) (*usecase.ListVideosOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 10
	}

	query := repository.VideoQuery{
		Page:     page,
		Limit:    limit,
		Search:   strings.TrimSpace(input.Search),
		SortBy:   input.SortBy,
		SortDesc: input.SortDesc,
		OwnerID:  input.OwnerID,
	}

	videos, total, err := srv.videoRepo.List(ctx, query)
	if err != nil {
		srv.log(ctx).Error("Failed to list videos", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list videos")
	}

	return &usecase.ListVideosOutput{
		Videos: videos,
		Total:  total,
		Page:   query.Page,
		Limit:  query.Limit,
	}, nil
}

// Update modifies a video's detail fields. Only the owner may update.
func (srv *videoService) Update(ctx context.Context, userID, videoID uuid.UUID, input *usecase.UpdateVideoInput) (*entity.Video, error) {
	video, err := srv.loadOwnedVideo(ctx, userID, videoID)
	if err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		video.Title = title
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		video.Description = desc
	}
	if thumb := strings.TrimSpace(input.Thumbnail); thumb != "" {
		video.Thumbnail = thumb
	}

	if err := srv.videoRepo.Update(ctx, video); err != nil {
		return nil, errors.Wrap(err, "failed to update video")
	}

	return video, nil
}

// Delete removes a video and its comments in one transaction. Only the owner may delete.
func (srv *videoService) Delete(ctx context.Context, userID, videoID uuid.UUID) error {
	srv.log(ctx).Info("Deleting video", slog.Any("userID", userID), slog.Any("videoID", videoID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		videoRepo := repoFactory.VideoRepo()

		video, err := videoRepo.FindByID(ctx, videoID)
		if err != nil {
			if errors.Is(err, repository.ErrVideoNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "video does not exist")
			}

			return errors.Wrap(err, "failed to load video")
		}

		if !authz.IsOwner(userID, video.OwnerID) {
			return errors.Wrap(domainerrors.ErrForbidden, "video belongs to another user")
		}

		if err := repoFactory.CommentRepo().DeleteByVideo(ctx, videoID); err != nil {
			return errors.Wrap(err, "failed to delete video comments")
		}

		if err := videoRepo.Delete(ctx, videoID); err != nil {
			return errors.Wrap(err, "failed to delete video")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Video deletion failed", slog.Any("videoID", videoID), slog.Any("error", err))

		return err
	}

	return nil
}

// TogglePublishStatus flips the draft/published flag. Only the owner may toggle.
func (srv *videoService) TogglePublishStatus(ctx context.Context, userID, videoID uuid.UUID) (*entity.Video, error) {
	video, err := srv.loadOwnedVideo(ctx, userID, videoID)
	if err != nil {
		return nil, err
	}

	video.IsPublished = !video.IsPublished

	if err := srv.videoRepo.Update(ctx, video); err != nil {
		return nil, errors.Wrap(err, "failed to toggle publish status")
	}

	return video, nil
}

// loadOwnedVideo loads a video and verifies the caller owns it. Missing and
// not-owned stay distinct: 404 for absent, 403 for present but foreign.
func (srv *videoService) loadOwnedVideo(ctx context.Context, userID, videoID uuid.UUID) (*entity.Video, error) {
	video, err := srv.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, repository.ErrVideoNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "video does not exist")
		}

		return nil, errors.Wrap(err, "failed to load video")
	}

	if !authz.IsOwner(userID, video.OwnerID) {
		srv.log(ctx).Warn("Ownership check failed", slog.Any("userID", userID), slog.Any("videoID", videoID))

		return nil, errors.Wrap(domainerrors.ErrForbidden, "video belongs to another user")
	}

	return video, nil
}
