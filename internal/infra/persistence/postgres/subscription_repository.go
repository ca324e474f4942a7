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

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a subscription repository bound to the given GORM handle.
func NewSubscriptionRepository(db *gorm.DB) repository.SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Find(ctx context.Context, subscriberID, channelID uuid.UUID) (*entity.Subscription, error) {
	var m model.SubscriptionModel
	err := r.db.WithContext(ctx).
		First(&m, "subscriber_id = ? AND channel_id = ?", subscriberID, channelID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSubscriptionNotFound
		}

		return nil, errors.Wrap(err, "failed to find subscription")
	}

	return subscriptionModelToEntity(&m), nil
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *entity.Subscription) error {
	m := model.SubscriptionModel{
		SubscriberID: sub.SubscriberID,
		ChannelID:    sub.ChannelID,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			// Subscribing twice is a no-op from the caller's perspective.
			return nil
		}

		return errors.Wrap(err, "failed to create subscription")
	}

	sub.ID = m.ID
	sub.CreatedAt = m.CreatedAt

	return nil
}

func (r *subscriptionRepository) Delete(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&model.SubscriptionModel{}, "subscriber_id = ? AND channel_id = ?", subscriberID, channelID)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete subscription")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSubscriptionNotFound
	}

	return nil
}

func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*entity.Subscription, error) {
	var rows []model.SubscriptionModel
	err := r.db.WithContext(ctx).
		Where("channel_id = ?", channelID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subscribers")
	}

	return subscriptionModelsToEntities(rows), nil
}

func (r *subscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]*entity.Subscription, error) {
	var rows []model.SubscriptionModel
	err := r.db.WithContext(ctx).
		Where("subscriber_id = ?", subscriberID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subscribed channels")
	}

	return subscriptionModelsToEntities(rows), nil
}

func (r *subscriptionRepository) CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SubscriptionModel{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count subscribers")
	}

	return count, nil
}

func (r *subscriptionRepository) CountSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SubscriptionModel{}).
		Where("subscriber_id = ?", subscriberID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count subscribed channels")
	}

	return count, nil
}

func subscriptionModelToEntity(m *model.SubscriptionModel) *entity.Subscription {
	return &entity.Subscription{
		ID:           m.ID,
		SubscriberID: m.SubscriberID,
		ChannelID:    m.ChannelID,
		CreatedAt:    m.CreatedAt,
	}
}

func subscriptionModelsToEntities(rows []model.SubscriptionModel) []*entity.Subscription {
	subs := make([]*entity.Subscription, 0, len(rows))
	for i := range rows {
		subs = append(subs, subscriptionModelToEntity(&rows[i]))
	}

	return subs
}
