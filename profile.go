package accounts

import (
	"context"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// ChannelProfile is the public projection of an account viewed as a channel.
// It never carries email, password, or session state.
type ChannelProfile struct {
	FullName                  string `json:"full_name"`
	Username                  string `json:"username"`
	Avatar                    string `json:"avatar"`
	CoverImage                string `json:"cover_image"`
	SubscribersCount          int    `json:"subscribers_count"`
	ChannelsSubscribedToCount int    `json:"channels_subscribed_to_count"`
	IsSubscribed              bool   `json:"is_subscribed"`
}

// ChannelProfiles aggregates channel profiles from the user store and the
// subscription graph. Read-only.
type ChannelProfiles struct {
	repo   RepositoryManager
	logger Logger
}

// NewChannelProfiles returns a new ChannelProfiles aggregator
func NewChannelProfiles(repo RepositoryManager) *ChannelProfiles {
	return &ChannelProfiles{
		repo:   repo,
		logger: defLogger{},
	}
}

func (p *ChannelProfiles) WithLogger(logger Logger) *ChannelProfiles {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// GetChannelProfile resolves the channel by handle (case-insensitive) and
// joins in the subscription aggregates. viewerID may be nil for anonymous
// viewers, in which case IsSubscribed is always false.
func (p *ChannelProfiles) GetChannelProfile(ctx context.Context, viewerID *uuid.UUID, handle string) (*ChannelProfile, error) {
	if strings.TrimSpace(handle) == "" {
		return nil, errors.New("channel handle is required", errors.CategoryValidation)
	}

	user, err := p.repo.Users().GetByUsername(ctx, handle)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrChannelNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to resolve channel")
	}

	stats, err := p.repo.Subscriptions().ChannelStats(ctx, user.ID, viewerID)
	if err != nil {
		p.logger.Error("GetChannelProfile stats aggregation failed for channel %s: %v", user.Username, err)
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to aggregate channel stats")
	}

	return &ChannelProfile{
		FullName:                  user.FullName,
		Username:                  user.Username,
		Avatar:                    user.Avatar,
		CoverImage:                user.CoverImage,
		SubscribersCount:          stats.SubscribersCount,
		ChannelsSubscribedToCount: stats.SubscribedToCount,
		IsSubscribed:              stats.ViewerIsSubscriber,
	}, nil
}
