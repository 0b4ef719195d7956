package service

import (
	"Trellis/internal/model"

	"github.com/jinzhu/copier"
)

// 脱敏投影：由聚合文档派生对外可见视图的纯函数集合。
// 不发起任何 I/O，不修改入参。
// 规则：负状态（软删除）清空全部内容字段，仅保留身份、状态与净计数；
// 状态对 100 取模等于 1 时暴露最后一次编辑时间。

// RestrictedFromPostComprehensive 帖子对外投影
func RestrictedFromPostComprehensive(post *model.PostComprehensive) *model.RestrictedPostComprehensive {
	restricted := &model.RestrictedPostComprehensive{
		PostID:          post.PostID,
		MemberID:        post.MemberID,
		CreatedTime:     post.CreatedTime,
		Title:           "",
		ImageFullNames:  []string{},
		Paragraphs:      []string{},
		CuedMemberInfos: []model.ConciseMemberInfo{},
		ChannelID:       post.ChannelID,
		TopicIDs:        []string{},
		PinnedCommentID: "",

		Status: post.Status,

		TotalHitCount:      post.TotalHitCount,
		TotalLikedCount:    post.TotalLikedCount - post.TotalUndoLikedCount,
		TotalDislikedCount: post.TotalDislikedCount - post.TotalUndoDislikedCount,
		TotalCommentCount:  post.TotalCommentCount - post.TotalCommentDeleteCount,
		TotalSavedCount:    post.TotalSavedCount - post.TotalUndoSavedCount,

		EditedTime: nil,
	}
	if post.Status < 0 {
		return restricted
	}
	restricted.Title = post.Title
	restricted.ImageFullNames = append(restricted.ImageFullNames, post.ImageFullNames...)
	restricted.Paragraphs = append(restricted.Paragraphs, post.Paragraphs...)
	restricted.CuedMemberInfos = append(restricted.CuedMemberInfos, post.CuedMemberInfos...)
	restricted.TopicIDs = append(restricted.TopicIDs, post.TopicIDs...)
	restricted.PinnedCommentID = post.PinnedCommentID
	if post.Status%100 == 1 && len(post.Edited) != 0 {
		editedTime := post.Edited[len(post.Edited)-1].EditedTime
		restricted.EditedTime = &editedTime
	}
	return restricted
}

// RestrictedFromCommentComprehensive 评论对外投影。
// 楼中楼不追踪子评论计数，以 -1 作哨兵
func RestrictedFromCommentComprehensive(comment *model.CommentComprehensive) *model.RestrictedCommentComprehensive {
	restricted := &model.RestrictedCommentComprehensive{
		CommentID:       comment.CommentID,
		PostID:          comment.PostID,
		MemberID:        comment.MemberID,
		CreatedTime:     comment.CreatedTime,
		Content:         "",
		CuedMemberInfos: []model.ConciseMemberInfo{},

		Status: comment.Status,

		TotalLikedCount:      comment.TotalLikedCount - comment.TotalUndoLikedCount,
		TotalDislikedCount:   comment.TotalDislikedCount - comment.TotalUndoDislikedCount,
		TotalSubcommentCount: -1,
	}
	if comment.TotalSubcommentCount != nil && comment.TotalSubcommentDeleteCount != nil {
		net := *comment.TotalSubcommentCount - *comment.TotalSubcommentDeleteCount
		if net < 0 {
			net = 0
		}
		restricted.TotalSubcommentCount = net
	}
	if comment.Status < 0 {
		return restricted
	}
	restricted.Content = comment.Content
	restricted.CuedMemberInfos = append(restricted.CuedMemberInfos, comment.CuedMemberInfos...)
	if comment.Status%100 == 1 && len(comment.Edited) != 0 {
		editedTime := comment.Edited[len(comment.Edited)-1].EditedTime
		restricted.EditedTime = &editedTime
	}
	return restricted
}

// RestrictedFromMemberComprehensive 会员对外投影，
// 封停/注销会员隐藏资料字段
func RestrictedFromMemberComprehensive(member *model.MemberComprehensive) *model.RestrictedMemberInfo {
	if member.Status < 0 {
		return &model.RestrictedMemberInfo{
			MemberID: member.MemberID,
			Status:   member.Status,
		}
	}
	restricted := &model.RestrictedMemberInfo{}
	_ = copier.Copy(restricted, member)
	return restricted
}

// RestrictedFromTopicComprehensive 话题对外投影，含解码后的原文
func RestrictedFromTopicComprehensive(topic *model.TopicComprehensive, content string) *model.RestrictedTopicComprehensive {
	return &model.RestrictedTopicComprehensive{
		TopicID:     topic.TopicID,
		Content:     content,
		ChannelID:   topic.ChannelID,
		CreatedTime: topic.CreatedTime,

		Status: topic.Status,

		TotalHitCount:     topic.TotalHitCount,
		TotalSearchCount:  topic.TotalSearchCount,
		TotalPostCount:    topic.TotalPostCount - topic.TotalPostDeleteCount,
		TotalLikedCount:   topic.TotalLikedCount - topic.TotalUndoLikedCount,
		TotalCommentCount: topic.TotalCommentCount - topic.TotalCommentDeleteCount,
		TotalSavedCount:   topic.TotalSavedCount - topic.TotalUndoSavedCount,
	}
}

// MappingFromAttitudeComprehensive 态度记录投影，nil 等价于全零
func MappingFromAttitudeComprehensive(attitude *model.AttitudeComprehensive) *model.AttitudeMapping {
	if attitude == nil {
		return &model.AttitudeMapping{
			Attitude:               0,
			CommentAttitudeMapping: map[string]int{},
		}
	}
	mapping := &model.AttitudeMapping{
		Attitude:               attitude.Attitude,
		CommentAttitudeMapping: make(map[string]int, len(attitude.CommentAttitudeMapping)),
	}
	for id, att := range attitude.CommentAttitudeMapping {
		mapping.CommentAttitudeMapping[id] = att
	}
	return mapping
}
