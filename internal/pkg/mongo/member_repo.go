package mongo

import (
	"Trellis/internal/model"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MemberRepo interface {
	FindByID(ctx context.Context, memberID string) (*model.MemberComprehensive, error)
	Insert(ctx context.Context, member *model.MemberComprehensive) error
	Activate(ctx context.Context, memberID, providerID string, verifiedTimeBySecond int64) error
	UpdateInfo(ctx context.Context, memberID string, update bson.M) error
}

type MemberRepoImpl struct {
	collection *mongo.Collection
}

func NewMemberRepo(dbs *Databases) MemberRepo {
	return &MemberRepoImpl{collection: dbs.Comprehensive.Collection("member")}
}

// FindByID 查询会员聚合文档，未命中返回 nil, nil
func (s *MemberRepoImpl) FindByID(ctx context.Context, memberID string) (*model.MemberComprehensive, error) {
	var member model.MemberComprehensive
	err := s.collection.FindOne(ctx, bson.M{"memberId": memberID}).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (s *MemberRepoImpl) Insert(ctx context.Context, member *model.MemberComprehensive) error {
	_, err := s.collection.InsertOne(ctx, member)
	return err
}

// Activate 邮箱验证通过后将会员置为正常状态并放开发帖/评论
func (s *MemberRepoImpl) Activate(ctx context.Context, memberID, providerID string, verifiedTimeBySecond int64) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"memberId": memberID, "providerId": providerID},
		bson.M{"$set": bson.M{
			"verifiedTimeBySecond": verifiedTimeBySecond,
			"gender":               -1,
			"status":               200,
			"allowPosting":         true,
			"allowCommenting":      true,
		}},
	)
	return err
}

func (s *MemberRepoImpl) UpdateInfo(ctx context.Context, memberID string, update bson.M) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"memberId": memberID},
		bson.M{"$set": update},
	)
	return err
}
