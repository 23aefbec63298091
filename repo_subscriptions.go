package accounts

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ChannelStats is the aggregate view of a channel's slice of the
// subscription graph, plus the viewer's membership in it.
type ChannelStats struct {
	SubscribersCount   int  `json:"subscribers_count"`
	SubscribedToCount  int  `json:"subscribed_to_count"`
	ViewerIsSubscriber bool `json:"viewer_is_subscriber"`
}

// Subscriptions reads the social graph. This core never mutates edges; the
// subscription write path lives with the channel features, not with accounts.
type Subscriptions interface {
	repository.Repository[*Subscription]

	CountSubscribers(ctx context.Context, channelID uuid.UUID) (int, error)
	CountSubscribersTx(ctx context.Context, tx bun.IDB, channelID uuid.UUID) (int, error)
	CountSubscribedTo(ctx context.Context, subscriberID uuid.UUID) (int, error)
	CountSubscribedToTx(ctx context.Context, tx bun.IDB, subscriberID uuid.UUID) (int, error)
	IsSubscribed(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
	IsSubscribedTx(ctx context.Context, tx bun.IDB, subscriberID, channelID uuid.UUID) (bool, error)

	ChannelStats(ctx context.Context, channelID uuid.UUID, viewerID *uuid.UUID) (*ChannelStats, error)
}

type subscriptions struct {
	repository.Repository[*Subscription]
	db *bun.DB
}

var (
	_ Subscriptions                        = (*subscriptions)(nil)
	_ repository.Repository[*Subscription] = (*subscriptions)(nil)
)

func NewSubscriptionsRepository(db *bun.DB) Subscriptions {
	repo := repository.NewRepository[*Subscription](db, repository.ModelHandlers[*Subscription]{
		NewRecord: func() *Subscription { return &Subscription{} },
		GetID: func(s *Subscription) uuid.UUID {
			if s == nil {
				return uuid.Nil
			}
			return s.ID
		},
		SetID: func(s *Subscription, id uuid.UUID) {
			if s != nil {
				s.ID = id
			}
		},
	})

	return &subscriptions{
		Repository: repo,
		db:         db,
	}
}

func (r *subscriptions) CountSubscribers(ctx context.Context, channelID uuid.UUID) (int, error) {
	return r.CountSubscribersTx(ctx, r.db, channelID)
}

func (r *subscriptions) CountSubscribersTx(ctx context.Context, tx bun.IDB, channelID uuid.UUID) (int, error) {
	return tx.NewSelect().
		Model((*Subscription)(nil)).
		Where("?TableAlias.channel_id = ?", channelID).
		Count(ctx)
}

func (r *subscriptions) CountSubscribedTo(ctx context.Context, subscriberID uuid.UUID) (int, error) {
	return r.CountSubscribedToTx(ctx, r.db, subscriberID)
}

func (r *subscriptions) CountSubscribedToTx(ctx context.Context, tx bun.IDB, subscriberID uuid.UUID) (int, error) {
	return tx.NewSelect().
		Model((*Subscription)(nil)).
		Where("?TableAlias.subscriber_id = ?", subscriberID).
		Count(ctx)
}

func (r *subscriptions) IsSubscribed(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	return r.IsSubscribedTx(ctx, r.db, subscriberID, channelID)
}

func (r *subscriptions) IsSubscribedTx(ctx context.Context, tx bun.IDB, subscriberID, channelID uuid.UUID) (bool, error) {
	return tx.NewSelect().
		Model((*Subscription)(nil)).
		Where("?TableAlias.subscriber_id = ?", subscriberID).
		Where("?TableAlias.channel_id = ?", channelID).
		Exists(ctx)
}

// ChannelStats aggregates both edge directions for a channel and, when a
// viewer is present, their membership among the channel's subscribers.
func (r *subscriptions) ChannelStats(ctx context.Context, channelID uuid.UUID, viewerID *uuid.UUID) (*ChannelStats, error) {
	subscribers, err := r.CountSubscribers(ctx, channelID)
	if err != nil {
		return nil, err
	}

	subscribedTo, err := r.CountSubscribedTo(ctx, channelID)
	if err != nil {
		return nil, err
	}

	stats := &ChannelStats{
		SubscribersCount:  subscribers,
		SubscribedToCount: subscribedTo,
	}

	if viewerID != nil && *viewerID != uuid.Nil {
		subscribed, err := r.IsSubscribed(ctx, *viewerID, channelID)
		if err != nil {
			return nil, err
		}
		stats.ViewerIsSubscriber = subscribed
	}

	return stats, nil
}
