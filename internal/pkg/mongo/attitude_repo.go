package mongo

import (
	"Trellis/internal/model"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AttitudeRepo interface {
	Find(ctx context.Context, memberID, postID string) (*model.AttitudeComprehensive, error)
	Upsert(ctx context.Context, memberID, postID string, update bson.M) error
}

type AttitudeRepoImpl struct {
	collection *mongo.Collection
}

func NewAttitudeRepo(dbs *Databases) AttitudeRepo {
	return &AttitudeRepoImpl{collection: dbs.Comprehensive.Collection("attitude")}
}

// Find 查询态度记录，未命中返回 nil, nil，调用方视作全零
func (s *AttitudeRepoImpl) Find(ctx context.Context, memberID, postID string) (*model.AttitudeComprehensive, error) {
	var attitude model.AttitudeComprehensive
	err := s.collection.FindOne(ctx, bson.M{"memberId": memberID, "postId": postID}).Decode(&attitude)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &attitude, nil
}

// Upsert 合并态度更新，update 为帖子平铺字段或
// commentAttitudeMapping.<id> 嵌套字段的 $set 文档
func (s *AttitudeRepoImpl) Upsert(ctx context.Context, memberID, postID string, update bson.M) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"memberId": memberID, "postId": postID},
		bson.M{"$set": update},
		options.Update().SetUpsert(true),
	)
	return err
}
