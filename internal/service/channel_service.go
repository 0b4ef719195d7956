package service

import (
	"Trellis/internal/model"
	"Trellis/internal/pkg/consts"
	"Trellis/internal/pkg/mongo"
	"Trellis/internal/pkg/redis"
	"context"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
)

// 频道字典缓存有效期。频道极少变动，过期回源即可
const channelDictTTL = 10 * time.Minute

type ChannelService interface {
	ListChannels(ctx context.Context) ([]*model.ChannelInfo, error)
}

type channelServiceImpl struct {
	channelRepo mongo.ChannelRepo
}

func NewChannelService(channelRepo mongo.ChannelRepo) ChannelService {
	return &channelServiceImpl{channelRepo: channelRepo}
}

// ListChannels 频道字典，redis 缓存优先，未命中回源并回填
func (s *channelServiceImpl) ListChannels(ctx context.Context) ([]*model.ChannelInfo, error) {
	cached, err := redis.GetValue(ctx, consts.ChannelDictKey)
	if err == nil && cached != "" {
		channels := make([]*model.ChannelInfo, 0)
		if err = json.Unmarshal([]byte(cached), &channels); err == nil {
			return channels, nil
		}
		log.WarnContext(ctx, "Failed to decode cached channel dictionary", "err", err)
	}

	channels, err := s.channelRepo.ListChannels(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(channels); err == nil {
		if err = redis.SetWithExpiration(ctx, consts.ChannelDictKey, string(raw), channelDictTTL); err != nil {
			log.ErrorContext(ctx, "Failed to cache channel dictionary", "err", err)
		}
	}
	return channels, nil
}
