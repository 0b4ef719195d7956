package service

import (
	"Trellis/internal/model"
	"Trellis/internal/pkg/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestrictedFromPostComprehensiveNetCounters(t *testing.T) {
	post := &model.PostComprehensive{
		PostID:      "P1234567890",
		MemberID:    "M1A2B3C4",
		CreatedTime: 1700000000000,
		Title:       "露營裝備清單",
		Paragraphs:  []string{"第一段", "第二段"},
		ChannelID:   "outdoor",
		TopicIDs:    []string{"T6Zyq54G"},
		Status:      200,

		TotalHitCount:           120,
		TotalLikedCount:         10,
		TotalUndoLikedCount:     3,
		TotalDislikedCount:      5,
		TotalUndoDislikedCount:  1,
		TotalCommentCount:       8,
		TotalCommentDeleteCount: 2,
		TotalSavedCount:         6,
		TotalUndoSavedCount:     4,
	}

	restricted := RestrictedFromPostComprehensive(post)

	assert.Equal(t, int64(7), restricted.TotalLikedCount)
	assert.Equal(t, int64(4), restricted.TotalDislikedCount)
	assert.Equal(t, int64(6), restricted.TotalCommentCount)
	assert.Equal(t, int64(2), restricted.TotalSavedCount)
	assert.Equal(t, int64(120), restricted.TotalHitCount)
	assert.Equal(t, "露營裝備清單", restricted.Title)
	assert.Equal(t, []string{"第一段", "第二段"}, restricted.Paragraphs)
	assert.Nil(t, restricted.EditedTime)
}

func TestRestrictedFromPostComprehensiveDeleted(t *testing.T) {
	post := &model.PostComprehensive{
		PostID:          "P1234567890",
		MemberID:        "M1A2B3C4",
		CreatedTime:     1700000000000,
		Title:           "已删除的标题",
		Paragraphs:      []string{"正文"},
		ImageFullNames:  []string{"abcdefghij.jpeg"},
		TopicIDs:        []string{"T6Zyq54G"},
		PinnedCommentID: "CABCDEFGHIJK",
		Status:          -1,

		TotalHitCount:   9,
		TotalLikedCount: 3,
		Edited:          []model.EditedPost{{EditedTime: 1700000001000}},
	}

	restricted := RestrictedFromPostComprehensive(post)

	// 身份、状态与净计数保留，内容字段全部清空
	assert.Equal(t, "P1234567890", restricted.PostID)
	assert.Equal(t, "M1A2B3C4", restricted.MemberID)
	assert.Equal(t, -1, restricted.Status)
	assert.Equal(t, int64(9), restricted.TotalHitCount)
	assert.Equal(t, int64(3), restricted.TotalLikedCount)
	assert.Empty(t, restricted.Title)
	assert.Empty(t, restricted.Paragraphs)
	assert.Empty(t, restricted.ImageFullNames)
	assert.Empty(t, restricted.TopicIDs)
	assert.Empty(t, restricted.PinnedCommentID)
	assert.Nil(t, restricted.EditedTime)
}

func TestRestrictedFromPostComprehensiveEditedTime(t *testing.T) {
	post := &model.PostComprehensive{
		PostID: "P1234567890",
		Status: 201,
		Edited: []model.EditedPost{
			{EditedTime: 1700000001000},
			{EditedTime: 1700000002000},
		},
	}

	restricted := RestrictedFromPostComprehensive(post)

	// 对 100 取模为 1 的状态暴露最后一次编辑时间
	require.NotNil(t, restricted.EditedTime)
	assert.Equal(t, int64(1700000002000), *restricted.EditedTime)
}

func TestRestrictedFromCommentComprehensiveSubcommentNet(t *testing.T) {
	comment := &model.CommentComprehensive{
		CommentID:                  "CABCDEFGHIJK",
		PostID:                     "P1234567890",
		MemberID:                   "M1A2B3C4",
		Content:                    "写得不错",
		Status:                     200,
		TotalLikedCount:            4,
		TotalUndoLikedCount:        1,
		TotalSubcommentCount:       util.PtrInt64(2),
		TotalSubcommentDeleteCount: util.PtrInt64(5),
	}

	restricted := RestrictedFromCommentComprehensive(comment)

	// 净值为负时收敛到 0
	assert.Equal(t, int64(0), restricted.TotalSubcommentCount)
	assert.Equal(t, int64(3), restricted.TotalLikedCount)
	assert.Equal(t, "写得不错", restricted.Content)
}

func TestRestrictedFromCommentComprehensiveSubcommentSentinel(t *testing.T) {
	subcomment := &model.CommentComprehensive{
		CommentID: "DABCDEFGHIJK",
		ParentID:  "CABCDEFGHIJK",
		PostID:    "P1234567890",
		Content:   "楼中楼回复",
		Status:    200,
	}

	restricted := RestrictedFromCommentComprehensive(subcomment)

	// 楼中楼不追踪子评论计数，以 -1 作哨兵
	assert.Equal(t, int64(-1), restricted.TotalSubcommentCount)
}

func TestRestrictedFromCommentComprehensiveDeleted(t *testing.T) {
	comment := &model.CommentComprehensive{
		CommentID:       "CABCDEFGHIJK",
		PostID:          "P1234567890",
		MemberID:        "M1A2B3C4",
		Content:         "已删除内容",
		CuedMemberInfos: []model.ConciseMemberInfo{{MemberID: "M9Z8Y7X6", Nickname: "ayaka"}},
		Status:          -1,
		TotalLikedCount: 2,
		Edited:          []model.EditedComment{{EditedTime: 1700000001000}},
	}

	restricted := RestrictedFromCommentComprehensive(comment)

	assert.Empty(t, restricted.Content)
	assert.Empty(t, restricted.CuedMemberInfos)
	assert.Equal(t, -1, restricted.Status)
	assert.Equal(t, int64(2), restricted.TotalLikedCount)
	assert.Nil(t, restricted.EditedTime)
}

func TestRestrictedFromMemberComprehensive(t *testing.T) {
	member := &model.MemberComprehensive{
		MemberID:               "M1A2B3C4",
		RegisteredTimeBySecond: 1690000000,
		VerifiedTimeBySecond:   1690000100,
		EmailAddress:           "ayaka@example.com",
		Nickname:               "ayaka",
		BriefIntro:             "自我介绍",
		Gender:                 1,
		BirthdayBySecond:       915148800,
		AvatarImageFullName:    "abcdefghij.jpeg",
		Status:                 200,
	}

	restricted := RestrictedFromMemberComprehensive(member)

	assert.Equal(t, "M1A2B3C4", restricted.MemberID)
	assert.Equal(t, "ayaka", restricted.Nickname)
	assert.Equal(t, "自我介绍", restricted.BriefIntro)
	assert.Equal(t, 1, restricted.Gender)
	assert.Equal(t, int64(915148800), restricted.BirthdayBySecond)
	assert.Equal(t, 200, restricted.Status)
}

func TestRestrictedFromMemberComprehensiveSuspended(t *testing.T) {
	member := &model.MemberComprehensive{
		MemberID:            "M1A2B3C4",
		Nickname:            "ayaka",
		BriefIntro:          "自我介绍",
		AvatarImageFullName: "abcdefghij.jpeg",
		Status:              -3,
	}

	restricted := RestrictedFromMemberComprehensive(member)

	assert.Equal(t, "M1A2B3C4", restricted.MemberID)
	assert.Equal(t, -3, restricted.Status)
	assert.Empty(t, restricted.Nickname)
	assert.Empty(t, restricted.BriefIntro)
	assert.Empty(t, restricted.AvatarImageFullName)
}

func TestMappingFromAttitudeComprehensiveNil(t *testing.T) {
	mapping := MappingFromAttitudeComprehensive(nil)

	require.NotNil(t, mapping)
	assert.Equal(t, 0, mapping.Attitude)
	assert.NotNil(t, mapping.CommentAttitudeMapping)
	assert.Empty(t, mapping.CommentAttitudeMapping)
}

func TestMappingFromAttitudeComprehensiveCopies(t *testing.T) {
	attitude := &model.AttitudeComprehensive{
		MemberID: "M1A2B3C4",
		PostID:   "P1234567890",
		Attitude: 1,
		CommentAttitudeMapping: map[string]int{
			"CABCDEFGHIJK": -1,
		},
	}

	mapping := MappingFromAttitudeComprehensive(attitude)
	mapping.CommentAttitudeMapping["DABCDEFGHIJK"] = 1

	assert.Equal(t, 1, mapping.Attitude)
	// 投影持有独立副本，不回写聚合文档
	assert.NotContains(t, attitude.CommentAttitudeMapping, "DABCDEFGHIJK")
}
