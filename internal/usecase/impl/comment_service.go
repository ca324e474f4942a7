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

// commentService implements the CommentUsecase interface.
type commentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
	logger      *slog.Logger
}

// CommentServiceParams holds dependencies for commentService, injected by Fx.
type CommentServiceParams struct {
	fx.In

	CommentRepo repository.CommentRepository
	VideoRepo   repository.VideoRepository
	Logger      *slog.Logger
}

// NewCommentService is the constructor for commentService.
func NewCommentService(params CommentServiceParams) usecase.CommentUsecase {
	return &commentService{
		commentRepo: params.CommentRepo,
		videoRepo:   params.VideoRepo,
		logger:      params.Logger,
	}
}

func (srv *commentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Add attaches a new comment to a video.
func (srv *commentService) Add(ctx context.Context, userID, videoID uuid.UUID, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "comment content is required")
	}

	if _, err := srv.videoRepo.FindByID(ctx, videoID); err != nil {
		if errors.Is(err, repository.ErrVideoNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "video does not exist")
		}

		return nil, errors.Wrap(err, "failed to load video for comment")
	}

	comment := &entity.Comment{
		VideoID: videoID,
		OwnerID: userID,
		Content: content,
	}

	if err := srv.commentRepo.Create(ctx, comment); err != nil {
		srv.log(ctx).Error("Failed to add comment", slog.Any("videoID", videoID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to add comment")
	}

	return comment, nil
}

// ListByVideo returns a page of a video's comments, newest first.
func (srv *commentService) ListByVideo(ctx context.Context, videoID uuid.UUID, page, limit int) (*usecase.ListCommentsOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	comments, total, err := srv.commentRepo.ListByVideo(ctx, videoID, page, limit)
	if err != nil {
		srv.log(ctx).Error("Failed to list comments", slog.Any("videoID", videoID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list comments")
	}

	return &usecase.ListCommentsOutput{
		Comments: comments,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

// Update modifies a comment's content. Only the author may update.
func (srv *commentService) Update(ctx context.Context, userID, commentID uuid.UUID, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "comment content is required")
	}

	comment, err := srv.loadOwnedComment(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}

	comment.Content = content

	if err := srv.commentRepo.Update(ctx, comment); err != nil {
		return nil, errors.Wrap(err, "failed to update comment")
	}

	return comment, nil
}

// Delete removes a comment. Only the author may delete.
func (srv *commentService) Delete(ctx context.Context, userID, commentID uuid.UUID) error {
	if _, err := srv.loadOwnedComment(ctx, userID, commentID); err != nil {
		return err
	}

	if err := srv.commentRepo.Delete(ctx, commentID); err != nil {
		return errors.Wrap(err, "failed to delete comment")
	}

	return nil
}

func (srv *commentService) loadOwnedComment(ctx context.Context, userID, commentID uuid.UUID) (*entity.Comment, error) {
	comment, err := srv.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "comment does not exist")
		}

		return nil, errors.Wrap(err, "failed to load comment")
	}

	if !authz.IsOwner(userID, comment.OwnerID) {
		srv.log(ctx).Warn("Ownership check failed", slog.Any("userID", userID), slog.Any("commentID", commentID))

		return nil, errors.Wrap(domainerrors.ErrForbidden, "comment belongs to another user")
	}

	return comment, nil
}
