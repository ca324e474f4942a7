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

// playlistService implements the PlaylistUsecase interface.
type playlistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
	logger       *slog.Logger
}

// PlaylistServiceParams holds dependencies for playlistService, injected by Fx.
type PlaylistServiceParams struct {
	fx.In

	PlaylistRepo repository.PlaylistRepository
	VideoRepo    repository.VideoRepository
	Logger       *slog.Logger
}

// NewPlaylistService is the constructor for playlistService.
func NewPlaylistService(params PlaylistServiceParams) usecase.PlaylistUsecase {
	return &playlistService{
		playlistRepo: params.PlaylistRepo,
		videoRepo:    params.VideoRepo,
		logger:       params.Logger,
	}
}

func (srv *playlistService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create makes a new, empty playlist owned by the caller.
func (srv *playlistService) Create(ctx context.Context, ownerID uuid.UUID, input *usecase.CreatePlaylistInput) (*entity.Playlist, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "playlist name is required")
	}

	playlist := &entity.Playlist{
		OwnerID:     ownerID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
	}

	if err := srv.playlistRepo.Create(ctx, playlist); err != nil {
		srv.log(ctx).Error("Failed to create playlist", slog.Any("ownerID", ownerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create playlist")
	}

	return playlist, nil
}

// Get loads a playlist by ID.
func (srv *playlistService) Get(ctx context.Context, playlistID uuid.UUID) (*entity.Playlist, error) {
	playlist, err := srv.playlistRepo.FindByID(ctx, playlistID)
	if err != nil {
		if errors.Is(err, repository.ErrPlaylistNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "playlist does not exist")
		}

		return nil, errors.Wrap(err, "failed to load playlist")
	}

	return playlist, nil
}

// ListByOwner lists a user's playlists.
func (srv *playlistService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Playlist, error) {
	playlists, err := srv.playlistRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list playlists")
	}

	return playlists, nil
}

// Update modifies the playlist's name and description. Only the owner may update.
func (srv *playlistService) Update(ctx context.Context, userID, playlistID uuid.UUID, input *usecase.UpdatePlaylistInput) (*entity.Playlist, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "playlist name is required")
	}

	playlist, err := srv.loadOwnedPlaylist(ctx, userID, playlistID)
	if err != nil {
		return nil, err
	}

	playlist.Name = name
	playlist.Description = strings.TrimSpace(input.Description)

	if err := srv.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, errors.Wrap(err, "failed to update playlist")
	}

	return playlist, nil
}

// AddVideo appends a video to the playlist. Adding a video that is already
// present is rejected as a validation failure.
func (srv *playlistService) AddVideo(ctx context.Context, userID, playlistID, videoID uuid.UUID) (*entity.Playlist, error) {
	playlist, err := srv.loadOwnedPlaylist(ctx, userID, playlistID)
	if err != nil {
		return nil, err
	}

	if playlist.ContainsVideo(videoID) {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "video is already in the playlist")
	}

	if _, err := srv.videoRepo.FindByID(ctx, videoID); err != nil {
		if errors.Is(err, repository.ErrVideoNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "video does not exist")
		}

		return nil, errors.Wrap(err, "failed to load video for playlist")
	}

	playlist.VideoIDs = append(playlist.VideoIDs, videoID)

	if err := srv.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, errors.Wrap(err, "failed to add video to playlist")
	}

	return playlist, nil
}

// RemoveVideo removes a video reference from the playlist.
func (srv *playlistService) RemoveVideo(ctx context.Context, userID, playlistID, videoID uuid.UUID) (*entity.Playlist, error) {
	playlist, err := srv.loadOwnedPlaylist(ctx, userID, playlistID)
	if err != nil {
		return nil, err
	}

	if !playlist.ContainsVideo(videoID) {
		return nil, errors.Wrap(domainerrors.ErrNotFound, "video is not in the playlist")
	}

	remaining := make([]uuid.UUID, 0, len(playlist.VideoIDs)-1)
	for _, id := range playlist.VideoIDs {
		if id != videoID {
			remaining = append(remaining, id)
		}
	}
	playlist.VideoIDs = remaining

	if err := srv.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, errors.Wrap(err, "failed to remove video from playlist")
	}

	return playlist, nil
}

// Delete removes the playlist. Only the owner may delete.
func (srv *playlistService) Delete(ctx context.Context, userID, playlistID uuid.UUID) error {
	if _, err := srv.loadOwnedPlaylist(ctx, userID, playlistID); err != nil {
		return err
	}

	if err := srv.playlistRepo.Delete(ctx, playlistID); err != nil {
		return errors.Wrap(err, "failed to delete playlist")
	}

	return nil
}

func (srv *playlistService) loadOwnedPlaylist(ctx context.Context, userID, playlistID uuid.UUID) (*entity.Playlist, error) {
	playlist, err := srv.playlistRepo.FindByID(ctx, playlistID)
	if err != nil {
		if errors.Is(err, repository.ErrPlaylistNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "playlist does not exist")
		}

		return nil, errors.Wrap(err, "failed to load playlist")
	}

	if !authz.IsOwner(userID, playlist.OwnerID) {
		srv.log(ctx).Warn("Ownership check failed", slog.Any("userID", userID), slog.Any("playlistID", playlistID))

		return nil, errors.Wrap(domainerrors.ErrForbidden, "playlist belongs to another user")
	}

	return playlist, nil
}
