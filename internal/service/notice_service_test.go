package service

import (
	"Trellis/internal/model"
	"Trellis/internal/pkg/identity"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeNoticeRepo struct {
	notices []*model.Notice
	deleted []string
}

func (f *fakeNoticeRepo) UpsertNotice(ctx context.Context, notice *model.Notice) error {
	f.notices = append(f.notices, notice)
	return nil
}

func (f *fakeNoticeRepo) GetNoticesByMember(ctx context.Context, memberID string, category string, limit, offset int) ([]*model.Notice, error) {
	matched := make([]*model.Notice, 0)
	for _, n := range f.notices {
		if n.MemberID != memberID {
			continue
		}
		if category != "" && n.Category != category {
			continue
		}
		matched = append(matched, n)
	}
	return matched, nil
}

func (f *fakeNoticeRepo) DeleteNotice(ctx context.Context, memberID, noticeID string) error {
	f.deleted = append(f.deleted, noticeID)
	return nil
}

type fakeNotifStatsRepo struct {
	stats map[string]*model.NotificationStatistics
	reset []string
}

func (f *fakeNotifStatsRepo) FindByID(ctx context.Context, memberID string) (*model.NotificationStatistics, error) {
	return f.stats[memberID], nil
}

func (f *fakeNotifStatsRepo) Insert(ctx context.Context, stats *model.NotificationStatistics) error {
	f.stats[stats.MemberID] = stats
	return nil
}

func (f *fakeNotifStatsRepo) Inc(ctx context.Context, memberID string, fields bson.M) error {
	return nil
}

func (f *fakeNotifStatsRepo) ResetCategory(ctx context.Context, memberID, field string) error {
	f.reset = append(f.reset, field)
	return nil
}

func TestListNoticesFiltersByCategory(t *testing.T) {
	repo := &fakeNoticeRepo{notices: []*model.Notice{
		{MemberID: "M1A2B3C4", NoticeID: "R-M9Z8Y7X6-P1234567890", Category: identity.NoticeReply},
		{MemberID: "M1A2B3C4", NoticeID: "L-M9Z8Y7X6-P1234567890", Category: identity.NoticeLike},
		{MemberID: "M5E6F7G8", NoticeID: "R-M9Z8Y7X6-P0987654321", Category: identity.NoticeReply},
	}}
	s := &noticeServiceImpl{noticeRepo: repo, notifStats: &fakeNotifStatsRepo{}}

	notices, err := s.ListNotices(context.Background(), "M1A2B3C4", identity.NoticeReply, 1, 10)

	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Equal(t, "R-M9Z8Y7X6-P1234567890", notices[0].NoticeID)
}

func TestListNoticesRejectsUnknownCategory(t *testing.T) {
	s := &noticeServiceImpl{noticeRepo: &fakeNoticeRepo{}, notifStats: &fakeNotifStatsRepo{}}

	_, err := s.ListNotices(context.Background(), "M1A2B3C4", "bogus", 1, 10)
	assert.ErrorIs(t, err, ErrInvalidRequestInfo)

	// 置顶类不计未读但允许查询
	_, err = s.ListNotices(context.Background(), "M1A2B3C4", identity.NoticePin, 1, 10)
	assert.NoError(t, err)
}

func TestGetNoticeStatisticsDefaultsToZero(t *testing.T) {
	s := &noticeServiceImpl{
		noticeRepo: &fakeNoticeRepo{},
		notifStats: &fakeNotifStatsRepo{stats: map[string]*model.NotificationStatistics{}},
	}

	stats, err := s.GetStatistics(context.Background(), "M1A2B3C4")

	require.NoError(t, err)
	assert.Equal(t, "M1A2B3C4", stats.MemberID)
	assert.Zero(t, stats.CuedCount)
	assert.Zero(t, stats.RepliedCount)
	assert.Zero(t, stats.LikedCount)
	assert.Zero(t, stats.SavedCount)
	assert.Zero(t, stats.FollowedCount)
}

func TestResetCategoryMapsToStatsField(t *testing.T) {
	statsRepo := &fakeNotifStatsRepo{stats: map[string]*model.NotificationStatistics{}}
	s := &noticeServiceImpl{noticeRepo: &fakeNoticeRepo{}, notifStats: statsRepo}
	ctx := context.Background()

	require.NoError(t, s.ResetCategory(ctx, "M1A2B3C4", identity.NoticeCue))
	require.NoError(t, s.ResetCategory(ctx, "M1A2B3C4", identity.NoticeFollow))
	assert.Equal(t, []string{"cuedCount", "followedCount"}, statsRepo.reset)

	// 置顶类无未读计数可清
	assert.ErrorIs(t, s.ResetCategory(ctx, "M1A2B3C4", identity.NoticePin), ErrInvalidRequestInfo)
	assert.ErrorIs(t, s.ResetCategory(ctx, "M1A2B3C4", ""), ErrInvalidRequestInfo)
}

func TestDeleteNoticeRequiresID(t *testing.T) {
	repo := &fakeNoticeRepo{}
	s := &noticeServiceImpl{noticeRepo: repo, notifStats: &fakeNotifStatsRepo{}}

	assert.ErrorIs(t, s.DeleteNotice(context.Background(), "M1A2B3C4", ""), ErrInvalidID)

	require.NoError(t, s.DeleteNotice(context.Background(), "M1A2B3C4", "R-M9Z8Y7X6-P1234567890"))
	assert.Equal(t, []string{"R-M9Z8Y7X6-P1234567890"}, repo.deleted)
}
