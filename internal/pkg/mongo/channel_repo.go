package mongo

import (
	"Trellis/internal/model"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ChannelRepo interface {
	ListChannels(ctx context.Context) ([]*model.ChannelInfo, error)
}

type ChannelRepoImpl struct {
	collection *mongo.Collection
}

func NewChannelRepo(dbs *Databases) ChannelRepo {
	return &ChannelRepoImpl{collection: dbs.Comprehensive.Collection("channel")}
}

// ListChannels 获取全部正常状态频道，按 sequence 排序
func (s *ChannelRepoImpl) ListChannels(ctx context.Context) ([]*model.ChannelInfo, error) {
	opts := options.Find().SetSort(bson.M{"sequence": 1})

	cursor, err := s.collection.Find(ctx, bson.M{"status": bson.M{"$gte": 0}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	channels := make([]*model.ChannelInfo, 0)
	if err = cursor.All(ctx, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}
