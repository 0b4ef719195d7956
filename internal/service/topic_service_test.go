package service

import (
	"Trellis/internal/model"
	"Trellis/internal/pkg/identity"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeTopicRepo struct {
	topics map[string]*model.TopicComprehensive
	incs   map[string]bson.M
}

func newFakeTopicRepo(contents ...string) *fakeTopicRepo {
	f := &fakeTopicRepo{
		topics: make(map[string]*model.TopicComprehensive),
		incs:   make(map[string]bson.M),
	}
	for _, content := range contents {
		id := identity.CreateTopicID(content)
		f.topics[id] = &model.TopicComprehensive{TopicID: id, ChannelID: "outdoor", Status: 200}
	}
	return f
}

func (f *fakeTopicRepo) FindByID(ctx context.Context, topicID string) (*model.TopicComprehensive, error) {
	return f.topics[topicID], nil
}

func (f *fakeTopicRepo) UpsertOnPostCreate(ctx context.Context, topicID, channelID string) error {
	return nil
}

func (f *fakeTopicRepo) Inc(ctx context.Context, topicID string, fields bson.M) error {
	f.incs[topicID] = fields
	return nil
}

func (f *fakeTopicRepo) SearchByPrefix(ctx context.Context, prefix string, limit int) ([]*model.TopicComprehensive, error) {
	matched := make([]*model.TopicComprehensive, 0)
	for id, topic := range f.topics {
		if strings.HasPrefix(id, prefix) {
			matched = append(matched, topic)
			if len(matched) == limit {
				break
			}
		}
	}
	return matched, nil
}

func TestGetTopicRestoresContent(t *testing.T) {
	repo := newFakeTopicRepo("露營")
	s := &topicServiceImpl{topicRepo: repo}
	topicID := identity.CreateTopicID("露營")

	restricted, err := s.GetTopic(context.Background(), topicID)

	require.NoError(t, err)
	assert.Equal(t, "露營", restricted.Content)
	assert.Equal(t, topicID, restricted.TopicID)
	// 浏览计数已递增
	assert.Equal(t, bson.M{"totalHitCount": 1}, repo.incs[topicID])
}

func TestGetTopicRejectsNonTopicID(t *testing.T) {
	s := &topicServiceImpl{topicRepo: newFakeTopicRepo()}

	_, err := s.GetTopic(context.Background(), "P1234567890")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = s.GetTopic(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestGetTopicNotFound(t *testing.T) {
	s := &topicServiceImpl{topicRepo: newFakeTopicRepo()}

	_, err := s.GetTopic(context.Background(), identity.CreateTopicID("不存在"))
	assert.ErrorIs(t, err, ErrTopicNotFound)
}

func TestSearchTopicsByContentPrefix(t *testing.T) {
	repo := newFakeTopicRepo("露營裝備", "露營地點", "登山")
	s := &topicServiceImpl{topicRepo: repo}

	results, err := s.SearchTopics(context.Background(), "露營", 10)

	require.NoError(t, err)
	require.Len(t, results, 2)
	contents := []string{results[0].Content, results[1].Content}
	assert.Contains(t, contents, "露營裝備")
	assert.Contains(t, contents, "露營地點")
	// 每个命中递增联想计数
	for _, r := range results {
		assert.Equal(t, bson.M{"totalSearchCount": 1}, repo.incs[r.TopicID])
	}
}

func TestSearchTopicsFiltersFalsePrefixHits(t *testing.T) {
	// id 前缀截断到完整 3 字节组，"camera" 与 "camp" 共享
	// 截断后的前缀，需以还原后的原文复核剔除
	repo := newFakeTopicRepo("camping", "campfire", "camera", "cat")
	s := &topicServiceImpl{topicRepo: repo}

	results, err := s.SearchTopics(context.Background(), "camp", 10)

	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, strings.HasPrefix(r.Content, "camp"), r.Content)
	}
}

func TestSearchTopicsRejectsEmptyFragment(t *testing.T) {
	s := &topicServiceImpl{topicRepo: newFakeTopicRepo()}

	_, err := s.SearchTopics(context.Background(), "   ", 10)
	assert.ErrorIs(t, err, ErrInvalidRequestInfo)
}
