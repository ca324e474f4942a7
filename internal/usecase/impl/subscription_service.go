package impl

import (
	"context"
	"log/slog"

	deliverycontext "vidtube/internal/delivery/context"
	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/repository"
	"vidtube/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// subscriptionService implements the SubscriptionUsecase interface.
type subscriptionService struct {
	subRepo  repository.SubscriptionRepository
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// SubscriptionServiceParams holds dependencies for subscriptionService, injected by Fx.
type SubscriptionServiceParams struct {
	fx.In

	SubRepo  repository.SubscriptionRepository
	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// NewSubscriptionService is the constructor for subscriptionService.
func NewSubscriptionService(params SubscriptionServiceParams) usecase.SubscriptionUsecase {
	return &subscriptionService{
		subRepo:  params.SubRepo,
		userRepo: params.UserRepo,
		logger:   params.Logger,
	}
}

func (srv *subscriptionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Toggle subscribes or unsubscribes depending on the current state.
func (srv *subscriptionService) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (*usecase.ToggleSubscriptionOutput, error) {
	if subscriberID == channelID {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "cannot subscribe to your own channel")
	}

	if _, err := srv.userRepo.FindByID(ctx, channelID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "channel does not exist")
		}

		return nil, errors.Wrap(err, "failed to load channel")
	}

	_, err := srv.subRepo.Find(ctx, subscriberID, channelID)
	switch {
	case err == nil:
		if err := srv.subRepo.Delete(ctx, subscriberID, channelID); err != nil {
			return nil, errors.Wrap(err, "failed to unsubscribe")
		}

		srv.log(ctx).Debug("Unsubscribed", slog.Any("subscriberID", subscriberID), slog.Any("channelID", channelID))

		return &usecase.ToggleSubscriptionOutput{Subscribed: false}, nil

	case errors.Is(err, repository.ErrSubscriptionNotFound):
		sub := &entity.Subscription{
			SubscriberID: subscriberID,
			ChannelID:    channelID,
		}
		if err := srv.subRepo.Create(ctx, sub); err != nil {
			return nil, errors.Wrap(err, "failed to subscribe")
		}

		srv.log(ctx).Debug("Subscribed", slog.Any("subscriberID", subscriberID), slog.Any("channelID", channelID))

		return &usecase.ToggleSubscriptionOutput{Subscribed: true}, nil

	default:
		return nil, errors.Wrap(err, "failed to check subscription")
	}
}

// ListSubscribers returns the users subscribed to a channel.
func (srv *subscriptionService) ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*entity.Subscription, error) {
	subs, err := srv.subRepo.ListSubscribers(ctx, channelID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subscribers")
	}

	return subs, nil
}

// ListSubscribedChannels returns the channels a user subscribes to.
func (srv *subscriptionService) ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]*entity.Subscription, error) {
	subs, err := srv.subRepo.ListSubscribedChannels(ctx, subscriberID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subscribed channels")
	}

	return subs, nil
}
