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

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// sortableVideoColumns whitelists the columns List accepts in SortBy.
// Anything else falls back to created_at.
var sortableVideoColumns = map[string]bool{
	"created_at": true,
	"title":      true,
	"views":      true,
	"duration":   true,
}

type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a video repository bound to the given GORM handle.
func NewVideoRepository(db *gorm.DB) repository.VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Video, error) {
	var m model.VideoModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVideoNotFound
		}

		return nil, errors.Wrap(err, "failed to find video by id")
	}

	return videoModelToEntity(&m), nil
}

func (r *videoRepository) List(ctx context.Context, query repository.VideoQuery) ([]*entity.Video, int64, error) {
	page := query.Page
	if page < 1 {
		page = defaultPage
	}
	limit := query.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	q := r.db.WithContext(ctx).Model(&model.VideoModel{})
	if !query.IncludeDrafts {
		q = q.Where("is_published = ?", true)
	}
	if query.OwnerID != nil {
		q = q.Where("owner_id = ?", *query.OwnerID)
	}
	if query.Search != "" {
		q = q.Where("title ILIKE ?", "%"+query.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count videos")
	}

	sortBy := query.SortBy
	if !sortableVideoColumns[sortBy] {
		sortBy = "created_at"
	}
	order := sortBy + " ASC"
	if query.SortDesc {
		order = sortBy + " DESC"
	}

	var rows []model.VideoModel
	err := q.Order(order).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list videos")
	}

	videos := make([]*entity.Video, 0, len(rows))
	for i := range rows {
		videos = append(videos, videoModelToEntity(&rows[i]))
	}

	return videos, total, nil
}

func (r *videoRepository) Create(ctx context.Context, video *entity.Video) error {
	m := videoEntityToModel(video)

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return errors.Wrap(err, "failed to create video")
	}

	video.ID = m.ID
	video.CreatedAt = m.CreatedAt
	video.UpdatedAt = m.UpdatedAt

	return nil
}

func (r *videoRepository) Update(ctx context.Context, video *entity.Video) error {
	result := r.db.WithContext(ctx).
		Model(&model.VideoModel{}).
		Where("id = ?", video.ID).
		Updates(map[string]any{
			"title":        video.Title,
			"description":  video.Description,
			"thumbnail":    video.Thumbnail,
			"is_published": video.IsPublished,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update video")
	}
	if result.RowsAffected == 0 {
		return repository.ErrVideoNotFound
	}

	return nil
}

func (r *videoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.VideoModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete video")
	}
	if result.RowsAffected == 0 {
		return repository.ErrVideoNotFound
	}

	return nil
}

func (r *videoRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.VideoModel{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1"))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to increment views")
	}
	if result.RowsAffected == 0 {
		return repository.ErrVideoNotFound
	}

	return nil
}

func (r *videoRepository) StatsByOwner(ctx context.Context, ownerID uuid.UUID) (*repository.ChannelStats, error) {
	var stats repository.ChannelStats
	err := r.db.WithContext(ctx).
		Model(&model.VideoModel{}).
		Select("COUNT(*) AS total_videos, COALESCE(SUM(views), 0) AS total_views").
		Where("owner_id = ?", ownerID).
		Scan(&stats).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate channel stats")
	}

	return &stats, nil
}

func videoModelToEntity(m *model.VideoModel) *entity.Video {
	return &entity.Video{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Title:       m.Title,
		Description: m.Description,
		VideoFile:   m.VideoFile,
		Thumbnail:   m.Thumbnail,
		Duration:    m.Duration,
		Views:       m.Views,
		IsPublished: m.IsPublished,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func videoEntityToModel(v *entity.Video) *model.VideoModel {
	return &model.VideoModel{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		Title:       v.Title,
		Description: v.Description,
		VideoFile:   v.VideoFile,
		Thumbnail:   v.Thumbnail,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}
