package service

import (
	"Trellis/internal/model"
	"Trellis/internal/pkg/identity"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeChannelRepo struct {
	channels []*model.ChannelInfo
}

func (f *fakeChannelRepo) ListChannels(ctx context.Context) ([]*model.ChannelInfo, error) {
	return f.channels, nil
}

type fakeMemberRepo struct {
	members map[string]*model.MemberComprehensive
}

func (f *fakeMemberRepo) FindByID(ctx context.Context, memberID string) (*model.MemberComprehensive, error) {
	return f.members[memberID], nil
}

func (f *fakeMemberRepo) Insert(ctx context.Context, member *model.MemberComprehensive) error {
	f.members[member.MemberID] = member
	return nil
}

func (f *fakeMemberRepo) Activate(ctx context.Context, memberID, providerID string, verifiedTimeBySecond int64) error {
	return nil
}

func (f *fakeMemberRepo) UpdateInfo(ctx context.Context, memberID string, update bson.M) error {
	return nil
}

func newDraftService(members map[string]*model.MemberComprehensive) *postServiceImpl {
	return &postServiceImpl{
		channelRepo: &fakeChannelRepo{channels: []*model.ChannelInfo{
			{ChannelID: "outdoor", Status: 200},
			{ChannelID: "cooking", Status: 200},
		}},
		memberRepo: &fakeMemberRepo{members: members},
	}
}

func TestValidateDraftTrimsAndDerivesTopics(t *testing.T) {
	s := newDraftService(nil)
	draft := &PostDraft{
		Title:         "  露營裝備清單  ",
		Paragraphs:    []string{"第一段"},
		ChannelID:     "outdoor",
		TopicContents: []string{"露營", " 露營 ", "登山", ""},
	}

	topicIDs, err := s.validateDraft(context.Background(), draft)

	require.NoError(t, err)
	assert.Equal(t, "露營裝備清單", draft.Title)
	// 同内容话题派生同一 id，去重后只剩两个
	require.Len(t, topicIDs, 2)
	assert.Equal(t, identity.CreateTopicID("露營"), topicIDs[0])
	assert.Equal(t, identity.CreateTopicID("登山"), topicIDs[1])
}

func TestValidateDraftRejectsBadInput(t *testing.T) {
	s := newDraftService(nil)

	_, err := s.validateDraft(context.Background(), &PostDraft{
		Title: "   ", ChannelID: "outdoor",
	})
	assert.ErrorIs(t, err, ErrInvalidRequestInfo)

	_, err = s.validateDraft(context.Background(), &PostDraft{
		Title: strings.Repeat("字", 61), ChannelID: "outdoor",
	})
	assert.ErrorIs(t, err, ErrInvalidRequestInfo)

	_, err = s.validateDraft(context.Background(), &PostDraft{
		Title:      "标题",
		Paragraphs: []string{strings.Repeat("字", 1500), strings.Repeat("字", 501)},
		ChannelID:  "outdoor",
	})
	assert.ErrorIs(t, err, ErrContentTooLong)

	_, err = s.validateDraft(context.Background(), &PostDraft{
		Title: "标题", ChannelID: "unknown",
	})
	assert.ErrorIs(t, err, ErrInvalidRequestInfo)
}

func TestValidateDraftCapsTopicCount(t *testing.T) {
	s := newDraftService(nil)
	draft := &PostDraft{
		Title:         "标题",
		ChannelID:     "outdoor",
		TopicContents: []string{"一", "二", "三", "四", "五", "六", "七"},
	}

	topicIDs, err := s.validateDraft(context.Background(), draft)

	require.NoError(t, err)
	assert.Len(t, topicIDs, 5)
}

func TestResolveCuedMembers(t *testing.T) {
	s := newDraftService(map[string]*model.MemberComprehensive{
		"M1A2B3C4": {MemberID: "M1A2B3C4", Nickname: "ayaka", Status: 200},
		"M9Z8Y7X6": {MemberID: "M9Z8Y7X6", Nickname: "haruki", Status: 200},
	})

	infos := s.resolveCuedMembers(context.Background(), []string{
		"M1A2B3C4",    // 存在
		"MNOTEXIST",   // 不存在，丢弃
		"P1234567890", // 非会员 id，丢弃
		"M9Z8Y7X6",    // 存在
	}, 9)

	require.Len(t, infos, 2)
	assert.Equal(t, model.ConciseMemberInfo{MemberID: "M1A2B3C4", Nickname: "ayaka"}, infos[0])
	assert.Equal(t, model.ConciseMemberInfo{MemberID: "M9Z8Y7X6", Nickname: "haruki"}, infos[1])
}

func TestResolveCuedMembersTruncatesToLimit(t *testing.T) {
	members := map[string]*model.MemberComprehensive{
		"M1A2B3C4": {MemberID: "M1A2B3C4", Nickname: "a", Status: 200},
		"M9Z8Y7X6": {MemberID: "M9Z8Y7X6", Nickname: "b", Status: 200},
		"M5E6F7G8": {MemberID: "M5E6F7G8", Nickname: "c", Status: 200},
	}
	s := newDraftService(members)

	// 截断先于校验，超出上限的 id 不再解析
	infos := s.resolveCuedMembers(context.Background(), []string{"M1A2B3C4", "M9Z8Y7X6", "M5E6F7G8"}, 2)
	assert.Len(t, infos, 2)
}

func TestCheckPostingMember(t *testing.T) {
	s := newDraftService(map[string]*model.MemberComprehensive{
		"M1A2B3C4": {MemberID: "M1A2B3C4", Status: 200, AllowPosting: true},
		"M9Z8Y7X6": {MemberID: "M9Z8Y7X6", Status: -2},
		"M5E6F7G8": {MemberID: "M5E6F7G8", Status: 200, AllowPosting: false},
		"M0H1I2J3": {MemberID: "M0H1I2J3", Status: 0, AllowPosting: true},
	})
	ctx := context.Background()

	member, err := s.checkPostingMember(ctx, "M1A2B3C4")
	require.NoError(t, err)
	assert.Equal(t, "M1A2B3C4", member.MemberID)

	_, err = s.checkPostingMember(ctx, "M9Z8Y7X6")
	assert.ErrorIs(t, err, ErrMemberSuspended)

	_, err = s.checkPostingMember(ctx, "M5E6F7G8")
	assert.ErrorIs(t, err, ErrPostingNotAllowed)

	_, err = s.checkPostingMember(ctx, "M0H1I2J3")
	assert.ErrorIs(t, err, ErrPostingNotAllowed)

	_, err = s.checkPostingMember(ctx, "MNOTEXIST")
	assert.ErrorIs(t, err, ErrMemberNotFound)
}
