package usecase

import (
	"context"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// CreatePlaylistInput defines the data required to create a playlist.
type CreatePlaylistInput struct {
	Name        string
	Description string
}

// UpdatePlaylistInput defines the mutable playlist fields.
type UpdatePlaylistInput struct {
	Name        string
	Description string
}

// PlaylistUsecase defines the interface for playlist business operations.
// Mutating operations verify ownership; only the owner may modify or delete.
type PlaylistUsecase interface {
	Create(ctx context.Context, ownerID uuid.UUID, input *CreatePlaylistInput) (*entity.Playlist, error)
	Get(ctx context.Context, playlistID uuid.UUID) (*entity.Playlist, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Playlist, error)
	Update(ctx context.Context, userID, playlistID uuid.UUID, input *UpdatePlaylistInput) (*entity.Playlist, error)
	AddVideo(ctx context.Context, userID, playlistID, videoID uuid.UUID) (*entity.Playlist, error)
	RemoveVideo(ctx context.Context, userID, playlistID, videoID uuid.UUID) (*entity.Playlist, error)
	Delete(ctx context.Context, userID, playlistID uuid.UUID) error
}
