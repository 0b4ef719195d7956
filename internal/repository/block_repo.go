package repository

import (
	"Trellis/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlockRepo interface {
	GetBlockedMember(ctx context.Context, blockerID, blockedID string) (*model.BlockedMember, error)
	UpsertBlockedMember(ctx context.Context, mapping *model.BlockedMember) error
	GetBlockedMembers(ctx context.Context, blockerID string, limit, offset int) ([]*model.BlockedMember, error)
}

type BlockRepoImpl struct {
	db *gorm.DB
}

func NewBlockRepo(db *gorm.DB) BlockRepo {
	return &BlockRepoImpl{db: db}
}

// GetBlockedMember 查询拉黑关系行，无行返回 nil, nil
func (s *BlockRepoImpl) GetBlockedMember(ctx context.Context, blockerID, blockedID string) (*model.BlockedMember, error) {
	var mapping model.BlockedMember
	result := s.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		First(&mapping)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &mapping, nil
}

// UpsertBlockedMember 写入或翻转拉黑关系行
func (s *BlockRepoImpl) UpsertBlockedMember(ctx context.Context, mapping *model.BlockedMember) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "blocker_id"}, {Name: "blocked_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_active", "updated_at"}),
		}).
		Create(mapping).Error
}

// GetBlockedMembers 获取拉黑列表，仅含生效行
func (s *BlockRepoImpl) GetBlockedMembers(ctx context.Context, blockerID string, limit, offset int) ([]*model.BlockedMember, error) {
	var mappings []*model.BlockedMember
	result := s.db.WithContext(ctx).
		Where("blocker_id = ? AND is_active = ?", blockerID, true).
		Order("updated_at desc").
		Limit(limit).
		Offset(offset).
		Find(&mappings)

	if result.Error != nil {
		return nil, result.Error
	}
	return mappings, nil
}
