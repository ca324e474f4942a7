package usecase

import (
	"context"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// ListCommentsOutput returns one page of a video's comments, newest first.
type ListCommentsOutput struct {
	Comments []*entity.Comment
	Total    int64
	Page     int
	Limit    int
}

// CommentUsecase defines the interface for comment business operations.
type CommentUsecase interface {
	Add(ctx context.Context, userID, videoID uuid.UUID, content string) (*entity.Comment, error)
	ListByVideo(ctx context.Context, videoID uuid.UUID, page, limit int) (*ListCommentsOutput, error)
	Update(ctx context.Context, userID, commentID uuid.UUID, content string) (*entity.Comment, error)
	Delete(ctx context.Context, userID, commentID uuid.UUID) error
}
