package repository

import (
	"Trellis/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaveRepo interface {
	GetSavedPost(ctx context.Context, memberID, postID string) (*model.SavedPost, error)
	UpsertSavedPost(ctx context.Context, mapping *model.SavedPost) error
	GetSavedPosts(ctx context.Context, memberID string, limit, offset int) ([]*model.SavedPost, error)
}

type SaveRepoImpl struct {
	db *gorm.DB
}

func NewSaveRepo(db *gorm.DB) SaveRepo {
	return &SaveRepoImpl{db: db}
}

func (s *SaveRepoImpl) GetSavedPost(ctx context.Context, memberID, postID string) (*model.SavedPost, error) {
	var mapping model.SavedPost
	result := s.db.WithContext(ctx).
		Where("member_id = ? AND post_id = ?", memberID, postID).
		First(&mapping)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &mapping, nil
}

func (s *SaveRepoImpl) UpsertSavedPost(ctx context.Context, mapping *model.SavedPost) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "member_id"}, {Name: "post_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_active", "updated_at"}),
		}).
		Create(mapping).Error
}

// GetSavedPosts 获取收藏列表，仅含生效行
func (s *SaveRepoImpl) GetSavedPosts(ctx context.Context, memberID string, limit, offset int) ([]*model.SavedPost, error) {
	var mappings []*model.SavedPost
	result := s.db.WithContext(ctx).
		Where("member_id = ? AND is_active = ?", memberID, true).
		Order("updated_at desc").
		Limit(limit).
		Offset(offset).
		Find(&mappings)

	if result.Error != nil {
		return nil, result.Error
	}
	return mappings, nil
}
