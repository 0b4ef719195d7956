package repository

import (
	"Trellis/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NoticeRepo interface {
	UpsertNotice(ctx context.Context, notice *model.Notice) error
	GetNoticesByMember(ctx context.Context, memberID string, category string, limit, offset int) ([]*model.Notice, error)
	DeleteNotice(ctx context.Context, memberID, noticeID string) error
}

type NoticeRepoImpl struct {
	db *gorm.DB
}

func NewNoticeRepo(db *gorm.DB) NoticeRepo {
	return &NoticeRepoImpl{db: db}
}

// UpsertNotice 写入通知行。通知 ID 由类别与目标确定性派生，
// 重复动作覆盖原行而非累积
func (s *NoticeRepoImpl) UpsertNotice(ctx context.Context, notice *model.Notice) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "member_id"}, {Name: "notice_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"nickname", "post_title", "comment_id", "comment_brief", "updated_at",
			}),
		}).
		Create(notice).Error
}

// GetNoticesByMember 获取某会员的通知列表，category 为空则不过滤类别
func (s *NoticeRepoImpl) GetNoticesByMember(ctx context.Context, memberID string, category string, limit, offset int) ([]*model.Notice, error) {
	var notices []*model.Notice
	query := s.db.WithContext(ctx).
		Where("member_id = ?", memberID)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	result := query.
		Order("updated_at desc").
		Limit(limit).
		Offset(offset).
		Find(&notices)

	if result.Error != nil {
		return nil, result.Error
	}
	return notices, nil
}

func (s *NoticeRepoImpl) DeleteNotice(ctx context.Context, memberID, noticeID string) error {
	return s.db.WithContext(ctx).
		Where("member_id = ? AND notice_id = ?", memberID, noticeID).
		Delete(&model.Notice{}).Error
}
