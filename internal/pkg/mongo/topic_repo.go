package mongo

import (
	"Trellis/internal/model"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TopicRepo interface {
	FindByID(ctx context.Context, topicID string) (*model.TopicComprehensive, error)
	UpsertOnPostCreate(ctx context.Context, topicID, channelID string) error
	Inc(ctx context.Context, topicID string, fields bson.M) error
	SearchByPrefix(ctx context.Context, prefix string, limit int) ([]*model.TopicComprehensive, error)
}

type TopicRepoImpl struct {
	collection *mongo.Collection
}

func NewTopicRepo(dbs *Databases) TopicRepo {
	return &TopicRepoImpl{collection: dbs.Comprehensive.Collection("topic")}
}

func (s *TopicRepoImpl) FindByID(ctx context.Context, topicID string) (*model.TopicComprehensive, error) {
	var topic model.TopicComprehensive
	err := s.collection.FindOne(ctx, bson.M{"topicId": topicID}).Decode(&topic)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &topic, nil
}

// UpsertOnPostCreate 发帖时按派生 ID upsert 话题：已存在则累计
// 帖数与热度，不存在则建档。话题 ID 由文本确定性派生，
// 同文话题跨帖聚合到同一文档
func (s *TopicRepoImpl) UpsertOnPostCreate(ctx context.Context, topicID, channelID string) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"topicId": topicID},
		bson.M{
			"$inc": bson.M{
				"totalPostCount": 1,
				"totalHitCount":  1,
			},
			"$setOnInsert": bson.M{
				"channelId":               channelID,
				"createdTime":             time.Now().UnixMilli(),
				"status":                  200,
				"totalSearchCount":        0,
				"totalPostDeleteCount":    0,
				"totalLikedCount":         0,
				"totalUndoLikedCount":     0,
				"totalCommentCount":       0,
				"totalCommentDeleteCount": 0,
				"totalSavedCount":         0,
				"totalUndoSavedCount":     0,
			},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// Inc 单条原子 $inc
func (s *TopicRepoImpl) Inc(ctx context.Context, topicID string, fields bson.M) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"topicId": topicID},
		bson.M{"$inc": fields},
	)
	return err
}

// SearchByPrefix 话题 ID 前缀匹配，用于话题搜索
func (s *TopicRepoImpl) SearchByPrefix(ctx context.Context, prefix string, limit int) ([]*model.TopicComprehensive, error) {
	opts := options.Find().
		SetSort(bson.M{"totalPostCount": -1}).
		SetLimit(int64(limit))

	cursor, err := s.collection.Find(ctx,
		bson.M{
			"topicId": bson.M{"$regex": "^" + prefix},
			"status":  bson.M{"$gte": 0},
		},
		opts,
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	topics := make([]*model.TopicComprehensive, 0)
	if err = cursor.All(ctx, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}
