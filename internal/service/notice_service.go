package service

import (
	"Trellis/internal/model"
	"Trellis/internal/pkg/identity"
	"Trellis/internal/pkg/mongo"
	"Trellis/internal/repository"
	"context"
)

type NoticeService interface {
	ListNotices(ctx context.Context, memberID, category string, page, pageSize int) ([]*model.Notice, error)
	DeleteNotice(ctx context.Context, memberID, noticeID string) error
	GetStatistics(ctx context.Context, memberID string) (*model.NotificationStatistics, error)
	ResetCategory(ctx context.Context, memberID, category string) error
}

// 未读分类字段名，按通知类别索引
var noticeStatsFields = map[string]string{
	identity.NoticeCue:    "cuedCount",
	identity.NoticeReply:  "repliedCount",
	identity.NoticeLike:   "likedCount",
	identity.NoticeSave:   "savedCount",
	identity.NoticeFollow: "followedCount",
}

type noticeServiceImpl struct {
	noticeRepo repository.NoticeRepo
	notifStats mongo.NotificationStatsRepo
}

func NewNoticeService(noticeRepo repository.NoticeRepo, notifStats mongo.NotificationStatsRepo) NoticeService {
	return &noticeServiceImpl{noticeRepo: noticeRepo, notifStats: notifStats}
}

// ListNotices 通知列表按被通知会员分区，只能查自己的。
// category 为空表示全部类别
func (s *noticeServiceImpl) ListNotices(ctx context.Context, memberID, category string, page, pageSize int) ([]*model.Notice, error) {
	if category != "" {
		if _, ok := noticeStatsFields[category]; !ok && category != identity.NoticePin {
			return nil, ErrInvalidRequestInfo
		}
	}
	return s.noticeRepo.GetNoticesByMember(ctx, memberID, category, pageSize, (page-1)*pageSize)
}

func (s *noticeServiceImpl) DeleteNotice(ctx context.Context, memberID, noticeID string) error {
	if noticeID == "" {
		return ErrInvalidID
	}
	return s.noticeRepo.DeleteNotice(ctx, memberID, noticeID)
}

// GetStatistics 未读通知分类计数，未建档等价于全零
func (s *noticeServiceImpl) GetStatistics(ctx context.Context, memberID string) (*model.NotificationStatistics, error) {
	stats, err := s.notifStats.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return &model.NotificationStatistics{MemberID: memberID}, nil
	}
	return stats, nil
}

// ResetCategory 已读清零某一类未读计数
func (s *noticeServiceImpl) ResetCategory(ctx context.Context, memberID, category string) error {
	field, ok := noticeStatsFields[category]
	if !ok {
		return ErrInvalidRequestInfo
	}
	return s.notifStats.ResetCategory(ctx, memberID, field)
}
