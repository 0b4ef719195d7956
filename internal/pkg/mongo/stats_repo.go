package mongo

import (
	"Trellis/internal/model"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MemberStatsRepo 会员统计文档，statistics.member
type MemberStatsRepo interface {
	FindByID(ctx context.Context, memberID string) (*model.MemberStatistics, error)
	Insert(ctx context.Context, stats *model.MemberStatistics) error
	Inc(ctx context.Context, memberID string, fields bson.M) error
}

type MemberStatsRepoImpl struct {
	collection *mongo.Collection
}

func NewMemberStatsRepo(dbs *Databases) MemberStatsRepo {
	return &MemberStatsRepoImpl{collection: dbs.Statistics.Collection("member")}
}

func (s *MemberStatsRepoImpl) FindByID(ctx context.Context, memberID string) (*model.MemberStatistics, error) {
	var stats model.MemberStatistics
	err := s.collection.FindOne(ctx, bson.M{"memberId": memberID}).Decode(&stats)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &stats, nil
}

func (s *MemberStatsRepoImpl) Insert(ctx context.Context, stats *model.MemberStatistics) error {
	_, err := s.collection.InsertOne(ctx, stats)
	return err
}

// Inc 单条原子 $inc
func (s *MemberStatsRepoImpl) Inc(ctx context.Context, memberID string, fields bson.M) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"memberId": memberID},
		bson.M{"$inc": fields},
	)
	return err
}

// NotificationStatsRepo 未读通知计数文档，statistics.notification
type NotificationStatsRepo interface {
	FindByID(ctx context.Context, memberID string) (*model.NotificationStatistics, error)
	Insert(ctx context.Context, stats *model.NotificationStatistics) error
	Inc(ctx context.Context, memberID string, fields bson.M) error
	ResetCategory(ctx context.Context, memberID, field string) error
}

type NotificationStatsRepoImpl struct {
	collection *mongo.Collection
}

func NewNotificationStatsRepo(dbs *Databases) NotificationStatsRepo {
	return &NotificationStatsRepoImpl{collection: dbs.Statistics.Collection("notification")}
}

func (s *NotificationStatsRepoImpl) FindByID(ctx context.Context, memberID string) (*model.NotificationStatistics, error) {
	var stats model.NotificationStatistics
	err := s.collection.FindOne(ctx, bson.M{"memberId": memberID}).Decode(&stats)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &stats, nil
}

func (s *NotificationStatsRepoImpl) Insert(ctx context.Context, stats *model.NotificationStatistics) error {
	_, err := s.collection.InsertOne(ctx, stats)
	return err
}

func (s *NotificationStatsRepoImpl) Inc(ctx context.Context, memberID string, fields bson.M) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"memberId": memberID},
		bson.M{"$inc": fields},
	)
	return err
}

// ResetCategory 已读后清零某一类未读计数
func (s *NotificationStatsRepoImpl) ResetCategory(ctx context.Context, memberID, field string) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"memberId": memberID},
		bson.M{"$set": bson.M{field: 0}},
	)
	return err
}

// ChannelStatsRepo 频道统计文档，statistics.channel
type ChannelStatsRepo interface {
	Inc(ctx context.Context, channelID string, fields bson.M) error
}

type ChannelStatsRepoImpl struct {
	collection *mongo.Collection
}

func NewChannelStatsRepo(dbs *Databases) ChannelStatsRepo {
	return &ChannelStatsRepoImpl{collection: dbs.Statistics.Collection("channel")}
}

// Inc 频道计数 upsert，频道数量固定，首次命中即建档
func (s *ChannelStatsRepoImpl) Inc(ctx context.Context, channelID string, fields bson.M) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"channelId": channelID},
		bson.M{"$inc": fields},
		options.Update().SetUpsert(true),
	)
	return err
}
