package mongo

import (
	"Trellis/internal/model"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CommentRepo interface {
	FindByID(ctx context.Context, commentID string) (*model.CommentComprehensive, error)
	FindByPost(ctx context.Context, postID string, limit, offset int) ([]*model.CommentComprehensive, error)
	FindByParent(ctx context.Context, parentID string, limit, offset int) ([]*model.CommentComprehensive, error)
	Insert(ctx context.Context, comment *model.CommentComprehensive) error
	Edit(ctx context.Context, commentID string, update bson.M, snapshot *model.EditedComment) error
	Inc(ctx context.Context, commentID string, fields bson.M) error
	SetStatus(ctx context.Context, commentID string, status int) error
}

type CommentRepoImpl struct {
	collection *mongo.Collection
}

func NewCommentRepo(dbs *Databases) CommentRepo {
	return &CommentRepoImpl{collection: dbs.Comprehensive.Collection("comment")}
}

func (s *CommentRepoImpl) FindByID(ctx context.Context, commentID string) (*model.CommentComprehensive, error) {
	var comment model.CommentComprehensive
	err := s.collection.FindOne(ctx, bson.M{"commentId": commentID}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// FindByPost 获取帖子下的顶级评论，按创建时间正序
func (s *CommentRepoImpl) FindByPost(ctx context.Context, postID string, limit, offset int) ([]*model.CommentComprehensive, error) {
	return s.find(ctx, bson.M{"postId": postID, "parentId": postID}, limit, offset)
}

// FindByParent 获取某顶级评论下的楼中楼
func (s *CommentRepoImpl) FindByParent(ctx context.Context, parentID string, limit, offset int) ([]*model.CommentComprehensive, error) {
	return s.find(ctx, bson.M{"parentId": parentID}, limit, offset)
}

func (s *CommentRepoImpl) find(ctx context.Context, filter bson.M, limit, offset int) ([]*model.CommentComprehensive, error) {
	opts := options.Find().
		SetSort(bson.M{"createdTime": 1}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := make([]*model.CommentComprehensive, 0)
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *CommentRepoImpl) Insert(ctx context.Context, comment *model.CommentComprehensive) error {
	_, err := s.collection.InsertOne(ctx, comment)
	return err
}

// Edit 单次更新完成编辑：$set 新内容与重置后的计数，
// $push 编辑前快照，$inc 编辑计数
func (s *CommentRepoImpl) Edit(ctx context.Context, commentID string, update bson.M, snapshot *model.EditedComment) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"commentId": commentID},
		bson.M{
			"$set":  update,
			"$push": bson.M{"edited": snapshot},
			"$inc":  bson.M{"totalEditCount": 1},
		},
	)
	return err
}

// Inc 单条原子 $inc
func (s *CommentRepoImpl) Inc(ctx context.Context, commentID string, fields bson.M) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"commentId": commentID},
		bson.M{"$inc": fields},
	)
	return err
}

func (s *CommentRepoImpl) SetStatus(ctx context.Context, commentID string, status int) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"commentId": commentID},
		bson.M{"$set": bson.M{"status": status}},
	)
	return err
}
