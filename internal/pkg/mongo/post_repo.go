package mongo

import (
	"Trellis/internal/model"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type PostRepo interface {
	FindByID(ctx context.Context, postID string) (*model.PostComprehensive, error)
	Insert(ctx context.Context, post *model.PostComprehensive) error
	Edit(ctx context.Context, postID string, update bson.M, snapshot *model.EditedPost) error
	Inc(ctx context.Context, postID string, fields bson.M) error
	SetStatus(ctx context.Context, postID string, status int) error
	SetPinnedComment(ctx context.Context, postID, commentID string) error
	SetImageFullNames(ctx context.Context, postID string, imageFullNames []string) error
}

type PostRepoImpl struct {
	collection *mongo.Collection
}

func NewPostRepo(dbs *Databases) PostRepo {
	return &PostRepoImpl{collection: dbs.Comprehensive.Collection("post")}
}

func (s *PostRepoImpl) FindByID(ctx context.Context, postID string) (*model.PostComprehensive, error) {
	var post model.PostComprehensive
	err := s.collection.FindOne(ctx, bson.M{"postId": postID}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostRepoImpl) Insert(ctx context.Context, post *model.PostComprehensive) error {
	_, err := s.collection.InsertOne(ctx, post)
	return err
}

// Edit 单次更新完成编辑：$set 新内容，$push 编辑前快照，$inc 编辑计数
func (s *PostRepoImpl) Edit(ctx context.Context, postID string, update bson.M, snapshot *model.EditedPost) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"postId": postID},
		bson.M{
			"$set":  update,
			"$push": bson.M{"edited": snapshot},
			"$inc":  bson.M{"totalEditCount": 1},
		},
	)
	return err
}

// Inc 单条原子 $inc，fields 为字段到增量的映射
func (s *PostRepoImpl) Inc(ctx context.Context, postID string, fields bson.M) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"postId": postID},
		bson.M{"$inc": fields},
	)
	return err
}

func (s *PostRepoImpl) SetStatus(ctx context.Context, postID string, status int) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"postId": postID},
		bson.M{"$set": bson.M{"status": status}},
	)
	return err
}

func (s *PostRepoImpl) SetPinnedComment(ctx context.Context, postID, commentID string) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"postId": postID},
		bson.M{"$set": bson.M{"pinnedCommentId": commentID}},
	)
	return err
}

func (s *PostRepoImpl) SetImageFullNames(ctx context.Context, postID string, imageFullNames []string) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"postId": postID},
		bson.M{"$set": bson.M{"imageFullNamesArr": imageFullNames}},
	)
	return err
}
