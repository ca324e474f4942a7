package repository

import (
	"context"
	"errors"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCommentNotFound is returned when a comment is not found.
var ErrCommentNotFound = errors.New("comment not found")

// CommentRepository defines the standard operations for comment persistence.
type CommentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error)

	// ListByVideo returns a page of a video's comments, newest first, plus the
	// total comment count for that video.
	ListByVideo(ctx context.Context, videoID uuid.UUID, page, limit int) ([]*entity.Comment, int64, error)

	Create(ctx context.Context, comment *entity.Comment) error

	Update(ctx context.Context, comment *entity.Comment) error

	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByVideo removes all comments attached to a video (video deletion cleanup).
	DeleteByVideo(ctx context.Context, videoID uuid.UUID) error
}
