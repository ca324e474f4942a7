package postgres

import (
	"context"

	"vidtube/internal/domain/entity"
	"vidtube/internal/domain/repository"
	"vidtube/internal/errors"
	"vidtube/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type playlistRepository struct {
	db *gorm.DB
}

// NewPlaylistRepository creates a playlist repository bound to the given GORM handle.
func NewPlaylistRepository(db *gorm.DB) repository.PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Playlist, error) {
	var m model.PlaylistModel
	err := r.db.WithContext(ctx).
		Preload("Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPlaylistNotFound
		}

		return nil, errors.Wrap(err, "failed to find playlist by id")
	}

	return playlistModelToEntity(&m), nil
}

func (r *playlistRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Playlist, error) {
	var rows []model.PlaylistModel
	err := r.db.WithContext(ctx).
		Preload("Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find playlists by owner")
	}

	playlists := make([]*entity.Playlist, 0, len(rows))
	for i := range rows {
		playlists = append(playlists, playlistModelToEntity(&rows[i]))
	}

	return playlists, nil
}

func (r *playlistRepository) Create(ctx context.Context, playlist *entity.Playlist) error {
	m := playlistEntityToModel(playlist)

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return errors.Wrap(err, "failed to create playlist")
	}

	playlist.ID = m.ID
	playlist.CreatedAt = m.CreatedAt
	playlist.UpdatedAt = m.UpdatedAt

	return nil
}

// Update rewrites the scalar fields and replaces the membership rows wholesale.
// The reference list is small and ordered, so delete-and-reinsert keeps the
// position column consistent without diffing.
func (r *playlistRepository) Update(ctx context.Context, playlist *entity.Playlist) error {
	result := r.db.WithContext(ctx).
		Model(&model.PlaylistModel{}).
		Where("id = ?", playlist.ID).
		Updates(map[string]any{
			"name":        playlist.Name,
			"description": playlist.Description,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update playlist")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPlaylistNotFound
	}

	err := r.db.WithContext(ctx).
		Delete(&model.PlaylistVideoModel{}, "playlist_id = ?", playlist.ID).Error
	if err != nil {
		return errors.Wrap(err, "failed to clear playlist videos")
	}

	if len(playlist.VideoIDs) == 0 {
		return nil
	}

	rows := make([]model.PlaylistVideoModel, 0, len(playlist.VideoIDs))
	for i, videoID := range playlist.VideoIDs {
		rows = append(rows, model.PlaylistVideoModel{
			PlaylistID: playlist.ID,
			VideoID:    videoID,
			Position:   i,
		})
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrVideoNotFound
		}

		return errors.Wrap(err, "failed to insert playlist videos")
	}

	return nil
}

func (r *playlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Delete(&model.PlaylistVideoModel{}, "playlist_id = ?", id).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete playlist videos")
	}

	result := r.db.WithContext(ctx).Delete(&model.PlaylistModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete playlist")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPlaylistNotFound
	}

	return nil
}

func playlistModelToEntity(m *model.PlaylistModel) *entity.Playlist {
	videoIDs := make([]uuid.UUID, 0, len(m.Videos))
	for i := range m.Videos {
		videoIDs = append(videoIDs, m.Videos[i].VideoID)
	}

	return &entity.Playlist{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		Description: m.Description,
		VideoIDs:    videoIDs,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func playlistEntityToModel(p *entity.Playlist) *model.PlaylistModel {
	videos := make([]model.PlaylistVideoModel, 0, len(p.VideoIDs))
	for i, videoID := range p.VideoIDs {
		videos = append(videos, model.PlaylistVideoModel{
			VideoID:  videoID,
			Position: i,
		})
	}

	return &model.PlaylistModel{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		Videos:      videos,
	}
}
