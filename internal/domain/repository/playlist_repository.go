package repository

import (
	"context"
	"errors"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrPlaylistNotFound is returned when a playlist is not found.
var ErrPlaylistNotFound = errors.New("playlist not found")

// PlaylistRepository defines the standard operations for playlist persistence.
type PlaylistRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Playlist, error)

	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Playlist, error)

	Create(ctx context.Context, playlist *entity.Playlist) error

	// Update persists name, description and the video reference list.
	Update(ctx context.Context, playlist *entity.Playlist) error

	Delete(ctx context.Context, id uuid.UUID) error
}
