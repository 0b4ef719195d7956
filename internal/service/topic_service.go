package service

import (
	"Trellis/internal/model"
	"Trellis/internal/pkg/identity"
	"Trellis/internal/pkg/mongo"
	"context"
	log "log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

type TopicService interface {
	GetTopic(ctx context.Context, topicID string) (*model.RestrictedTopicComprehensive, error)
	SearchTopics(ctx context.Context, fragment string, limit int) ([]*model.RestrictedTopicComprehensive, error)
}

type topicServiceImpl struct {
	topicRepo mongo.TopicRepo
}

func NewTopicService(topicRepo mongo.TopicRepo) TopicService {
	return &topicServiceImpl{topicRepo: topicRepo}
}

// GetTopic 获取话题对外投影，话题原文从 id 还原
func (s *topicServiceImpl) GetTopic(ctx context.Context, topicID string) (*model.RestrictedTopicComprehensive, error) {
	verify := identity.VerifyID(topicID)
	if !verify.IsValid || verify.Category != identity.CategoryTopic {
		return nil, ErrInvalidID
	}
	content, ok := identity.ParseTopicID(verify.ID)
	if !ok {
		return nil, ErrInvalidID
	}

	topic, err := s.topicRepo.FindByID(ctx, verify.ID)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, ErrTopicNotFound
	}

	if err = s.topicRepo.Inc(ctx, verify.ID, bson.M{"totalHitCount": 1}); err != nil {
		log.ErrorContext(ctx, "Failed to update topic hit counter", "topic_id", verify.ID, "err", err)
	}
	return RestrictedFromTopicComprehensive(topic, content), nil
}

// SearchTopics 话题联想：按原文前缀派生 id 前缀做匹配。
// 话题 id 是原文的 base64，同前缀原文的 id 共享前缀字节
func (s *topicServiceImpl) SearchTopics(ctx context.Context, fragment string, limit int) ([]*model.RestrictedTopicComprehensive, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil, ErrInvalidRequestInfo
	}
	if limit <= 0 || limit > 20 {
		limit = 10
	}

	// base64 每 3 字节编码为 4 字符，截掉可能带填充的尾部
	prefix := identity.CreateTopicID(fragment)
	trimmed := len(fragment) / 3 * 4
	if trimmed > 0 {
		prefix = prefix[:1+trimmed]
	} else {
		prefix = "T"
	}

	topics, err := s.topicRepo.SearchByPrefix(ctx, prefix, limit)
	if err != nil {
		return nil, err
	}

	restricted := make([]*model.RestrictedTopicComprehensive, 0, len(topics))
	for _, topic := range topics {
		content, ok := identity.ParseTopicID(topic.TopicID)
		if !ok || !strings.HasPrefix(content, fragment) {
			continue
		}
		restricted = append(restricted, RestrictedFromTopicComprehensive(topic, content))
		if err = s.topicRepo.Inc(ctx, topic.TopicID, bson.M{"totalSearchCount": 1}); err != nil {
			log.ErrorContext(ctx, "Failed to update topic search counter", "topic_id", topic.TopicID, "err", err)
		}
	}
	return restricted, nil
}
