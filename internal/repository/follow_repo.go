package repository

import (
	"Trellis/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepo interface {
	GetMemberFollow(ctx context.Context, followerID, followingID string) (*model.MemberFollow, error)
	UpsertMemberFollow(ctx context.Context, mapping *model.MemberFollow) error
	GetFollowing(ctx context.Context, followerID string, limit, offset int) ([]*model.MemberFollow, error)
	GetFollowedBy(ctx context.Context, followingID string, limit, offset int) ([]*model.MemberFollow, error)
}

type FollowRepoImpl struct {
	db *gorm.DB
}

func NewFollowRepo(db *gorm.DB) FollowRepo {
	return &FollowRepoImpl{db: db}
}

func (s *FollowRepoImpl) GetMemberFollow(ctx context.Context, followerID, followingID string) (*model.MemberFollow, error) {
	var mapping model.MemberFollow
	result := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&mapping)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &mapping, nil
}

func (s *FollowRepoImpl) UpsertMemberFollow(ctx context.Context, mapping *model.MemberFollow) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "follower_id"}, {Name: "following_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_active", "updated_at"}),
		}).
		Create(mapping).Error
}

// GetFollowing 获取关注列表
func (s *FollowRepoImpl) GetFollowing(ctx context.Context, followerID string, limit, offset int) ([]*model.MemberFollow, error) {
	var mappings []*model.MemberFollow
	result := s.db.WithContext(ctx).
		Where("follower_id = ? AND is_active = ?", followerID, true).
		Order("updated_at desc").
		Limit(limit).
		Offset(offset).
		Find(&mappings)

	if result.Error != nil {
		return nil, result.Error
	}
	return mappings, nil
}

// GetFollowedBy 获取粉丝列表
func (s *FollowRepoImpl) GetFollowedBy(ctx context.Context, followingID string, limit, offset int) ([]*model.MemberFollow, error) {
	var mappings []*model.MemberFollow
	result := s.db.WithContext(ctx).
		Where("following_id = ? AND is_active = ?", followingID, true).
		Order("updated_at desc").
		Limit(limit).
		Offset(offset).
		Find(&mappings)

	if result.Error != nil {
		return nil, result.Error
	}
	return mappings, nil
}
