package service

import (
	"Trellis/internal/api/config"
	"Trellis/internal/model"
	"Trellis/internal/pkg/consts"
	"Trellis/internal/pkg/identity"
	"Trellis/internal/pkg/mongo"
	"Trellis/internal/pkg/util"
	"context"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

type CommentService interface {
	CreateComment(ctx context.Context, memberID, postID, parentID, content string, cuedMemberIDs []string) (string, error)
	GetComment(ctx context.Context, commentID string) (*model.RestrictedCommentComprehensive, error)
	ListComments(ctx context.Context, postID string, page, pageSize int) ([]*model.RestrictedCommentComprehensive, error)
	ListSubcomments(ctx context.Context, parentID string, page, pageSize int) ([]*model.RestrictedCommentComprehensive, error)
	EditComment(ctx context.Context, memberID, commentID, content string, cuedMemberIDs []string) error
	DeleteComment(ctx context.Context, memberID, commentID string) error
}

type commentServiceImpl struct {
	commentRepo  mongo.CommentRepo
	postRepo     mongo.PostRepo
	memberRepo   mongo.MemberRepo
	topicRepo    mongo.TopicRepo
	memberStats  mongo.MemberStatsRepo
	channelStats mongo.ChannelStatsRepo
	dispatcher   *NoticeDispatcher
	generator    *identity.Generator
}

func NewCommentService(
	commentRepo mongo.CommentRepo,
	postRepo mongo.PostRepo,
	memberRepo mongo.MemberRepo,
	topicRepo mongo.TopicRepo,
	memberStats mongo.MemberStatsRepo,
	channelStats mongo.ChannelStatsRepo,
	dispatcher *NoticeDispatcher,
	generator *identity.Generator,
) CommentService {
	return &commentServiceImpl{
		commentRepo:  commentRepo,
		postRepo:     postRepo,
		memberRepo:   memberRepo,
		topicRepo:    topicRepo,
		memberStats:  memberStats,
		channelStats: channelStats,
		dispatcher:   dispatcher,
		generator:    generator,
	}
}

// checkCommentingMember 校验会员存在、状态正常且未被禁评
func (s *commentServiceImpl) checkCommentingMember(ctx context.Context, memberID string) (*model.MemberComprehensive, error) {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	if member.Status < 0 {
		return nil, ErrMemberSuspended
	}
	if member.Status < consts.MemberStatusNormal || !member.AllowCommenting {
		return nil, ErrCommentingNotAllowed
	}
	return member, nil
}

// resolveCuedMembers 解析被 @ 的会员，截断到扇出上限，
// 查不到的 id 静默丢弃
func (s *commentServiceImpl) resolveCuedMembers(ctx context.Context, cuedMemberIDs []string, limit int) []model.ConciseMemberInfo {
	if len(cuedMemberIDs) > limit {
		cuedMemberIDs = cuedMemberIDs[:limit]
	}
	infos := make([]model.ConciseMemberInfo, 0, len(cuedMemberIDs))
	for _, cuedID := range cuedMemberIDs {
		verify := identity.VerifyID(cuedID)
		if !verify.IsValid || verify.Category != identity.CategoryMember {
			continue
		}
		cued, err := s.memberRepo.FindByID(ctx, verify.ID)
		if err != nil || cued == nil {
			continue
		}
		infos = append(infos, model.ConciseMemberInfo{MemberID: cued.MemberID, Nickname: cued.Nickname})
	}
	return infos
}

// CreateComment 发表评论或楼中楼。parentID 等于帖子 id 时为
// 顶级评论（'C'），指向某条顶级评论时为楼中楼（'D'）。
// 评论文档落库即应答，计数与通知在脱离上下文中传播
func (s *commentServiceImpl) CreateComment(ctx context.Context, memberID, postID, parentID, content string, cuedMemberIDs []string) (string, error) {
	verifyPost := identity.VerifyID(postID)
	if !verifyPost.IsValid || verifyPost.Category != identity.CategoryPost {
		return "", ErrInvalidID
	}
	postID = verifyPost.ID
	if content == "" {
		return "", ErrInvalidRequestInfo
	}
	if len([]rune(content)) > consts.MaxContentLength {
		return "", ErrContentTooLong
	}

	member, err := s.checkCommentingMember(ctx, memberID)
	if err != nil {
		return "", err
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return "", err
	}
	if post == nil || post.Status < 0 {
		return "", ErrPostNotFound
	}

	// 确定评论类别与父级
	category := identity.CategoryComment
	var parent *model.CommentComprehensive
	if parentID == "" || parentID == postID {
		parentID = postID
	} else {
		verifyParent := identity.VerifyID(parentID)
		if !verifyParent.IsValid || verifyParent.Category != identity.CategoryComment {
			return "", ErrInvalidID
		}
		parentID = verifyParent.ID
		parent, err = s.commentRepo.FindByID(ctx, parentID)
		if err != nil {
			return "", err
		}
		if parent == nil || parent.Status < 0 {
			return "", ErrCommentNotFound
		}
		category = identity.CategorySubcomment
	}

	cueLimit := config.Cfg.Notification.CreateCueLimit
	cuedInfos := s.resolveCuedMembers(ctx, cuedMemberIDs, cueLimit)

	commentID := s.generator.CreateID(category)
	comment := &model.CommentComprehensive{
		CommentID:       commentID,
		ParentID:        parentID,
		PostID:          postID,
		MemberID:        memberID,
		CreatedTime:     time.Now().UnixMilli(),
		Content:         content,
		CuedMemberInfos: cuedInfos,
		Status:          consts.ContentStatusNormal,
		Edited:          []model.EditedComment{},
	}
	if category == identity.CategoryComment {
		comment.TotalSubcommentCount = util.PtrInt64(0)
		comment.TotalSubcommentDeleteCount = util.PtrInt64(0)
	}

	// 主写
	if err = s.commentRepo.Insert(ctx, comment); err != nil {
		return "", err
	}

	go s.propagateCreate(detachedContext(ctx), member, post, parent, comment)
	return commentID, nil
}

func (s *commentServiceImpl) propagateCreate(ctx context.Context, member *model.MemberComprehensive, post *model.PostComprehensive, parent *model.CommentComprehensive, comment *model.CommentComprehensive) {
	commentID := comment.CommentID

	if err := s.postRepo.Inc(ctx, post.PostID, bson.M{"totalCommentCount": 1}); err != nil {
		log.ErrorContext(ctx, "Primary write succeeded but failed to update post comment counter",
			"aggregate", "comprehensive.post", "post_id", post.PostID, "primary_id", commentID, "err", err)
	}
	if parent != nil {
		if err := s.commentRepo.Inc(ctx, parent.CommentID, bson.M{"totalSubcommentCount": 1}); err != nil {
			log.ErrorContext(ctx, "Primary write succeeded but failed to update parent subcomment counter",
				"aggregate", "comprehensive.comment", "comment_id", parent.CommentID, "primary_id", commentID, "err", err)
		}
	}
	if err := s.memberStats.Inc(ctx, member.MemberID, bson.M{"totalCommentCount": 1}); err != nil {
		log.ErrorContext(ctx, "Primary write succeeded but failed to update member statistics",
			"aggregate", "statistics.member", "member_id", member.MemberID, "primary_id", commentID, "err", err)
	}
	if err := s.channelStats.Inc(ctx, post.ChannelID, bson.M{"totalCommentCount": 1}); err != nil {
		log.ErrorContext(ctx, "Primary write succeeded but failed to update channel statistics",
			"aggregate", "statistics.channel", "channel_id", post.ChannelID, "primary_id", commentID, "err", err)
	}
	for _, topicID := range post.TopicIDs {
		if err := s.topicRepo.Inc(ctx, topicID, bson.M{"totalCommentCount": 1}); err != nil {
			log.ErrorContext(ctx, "Primary write succeeded but failed to update topic statistics",
				"aggregate", "comprehensive.topic", "topic_id", topicID, "primary_id", commentID, "err", err)
		}
	}

	// 回复通知：顶级评论通知帖子作者，楼中楼通知父评论作者
	replyTarget := post.MemberID
	replyCommentID := ""
	if parent != nil {
		replyTarget = parent.MemberID
		replyCommentID = parent.CommentID
	}
	s.dispatcher.Dispatch(ctx, &model.Notice{
		MemberID:     replyTarget,
		NoticeID:     identity.CreateNoticeID(identity.NoticeReply, member.MemberID, post.PostID, replyCommentID),
		Category:     identity.NoticeReply,
		InitiateID:   member.MemberID,
		Nickname:     member.Nickname,
		PostID:       post.PostID,
		PostTitle:    post.Title,
		CommentID:    commentID,
		CommentBrief: util.GetContentBrief(comment.Content),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, "repliedCount", commentID)

	// 提及通知
	for _, cued := range comment.CuedMemberInfos {
		s.dispatcher.Dispatch(ctx, &model.Notice{
			MemberID:     cued.MemberID,
			NoticeID:     identity.CreateNoticeID(identity.NoticeCue, member.MemberID, post.PostID, commentID),
			Category:     identity.NoticeCue,
			InitiateID:   member.MemberID,
			Nickname:     member.Nickname,
			PostID:       post.PostID,
			PostTitle:    post.Title,
			CommentID:    commentID,
			CommentBrief: util.GetContentBrief(comment.Content),
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}, "cuedCount", commentID)
	}
}

func (s *commentServiceImpl) GetComment(ctx context.Context, commentID string) (*model.RestrictedCommentComprehensive, error) {
	verify := identity.VerifyID(commentID)
	if !verify.IsValid {
		return nil, ErrInvalidID
	}
	if verify.Category != identity.CategoryComment && verify.Category != identity.CategorySubcomment {
		return nil, ErrInvalidID
	}
	comment, err := s.commentRepo.FindByID(ctx, verify.ID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	return RestrictedFromCommentComprehensive(comment), nil
}

// ListComments 获取帖子下的顶级评论，软删除的评论以脱敏
// 形态保留在列表中
func (s *commentServiceImpl) ListComments(ctx context.Context, postID string, page, pageSize int) ([]*model.RestrictedCommentComprehensive, error) {
	verify := identity.VerifyID(postID)
	if !verify.IsValid || verify.Category != identity.CategoryPost {
		return nil, ErrInvalidID
	}
	comments, err := s.commentRepo.FindByPost(ctx, verify.ID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	restricted := make([]*model.RestrictedCommentComprehensive, 0, len(comments))
	for _, comment := range comments {
		restricted = append(restricted, RestrictedFromCommentComprehensive(comment))
	}
	return restricted, nil
}

func (s *commentServiceImpl) ListSubcomments(ctx context.Context, parentID string, page, pageSize int) ([]*model.RestrictedCommentComprehensive, error) {
	verify := identity.VerifyID(parentID)
	if !verify.IsValid || verify.Category != identity.CategoryComment {
		return nil, ErrInvalidID
	}
	comments, err := s.commentRepo.FindByParent(ctx, verify.ID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	restricted := make([]*model.RestrictedCommentComprehensive, 0, len(comments))
	for _, comment := range comments {
		restricted = append(restricted, RestrictedFromCommentComprehensive(comment))
	}
	return restricted, nil
}

// EditComment 编辑评论：$set 新内容并重置表态计数对，编辑前
// 状态入快照，状态落入"已编辑"子带。新提及的会员走提及通知
func (s *commentServiceImpl) EditComment(ctx context.Context, memberID, commentID, content string, cuedMemberIDs []string) error {
	verify := identity.VerifyID(commentID)
	if !verify.IsValid {
		return ErrInvalidID
	}
	if verify.Category != identity.CategoryComment && verify.Category != identity.CategorySubcomment {
		return ErrInvalidID
	}
	commentID = verify.ID
	if content == "" {
		return ErrInvalidRequestInfo
	}
	if len([]rune(content)) > consts.MaxContentLength {
		return ErrContentTooLong
	}

	member, err := s.checkCommentingMember(ctx, memberID)
	if err != nil {
		return err
	}

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.MemberID != memberID {
		return ErrPermissionDenied
	}
	if comment.Status < 0 {
		return ErrCommentNotFound
	}

	cueLimit := config.Cfg.Notification.EditCueLimit
	cuedInfos := s.resolveCuedMembers(ctx, cuedMemberIDs, cueLimit)

	snapshot := &model.EditedComment{
		EditedTime:                   time.Now().UnixMilli(),
		ContentBeforeEdit:            comment.Content,
		CuedMemberInfosBeforeEdit:    comment.CuedMemberInfos,
		TotalLikedCountBeforeEdit:    comment.TotalLikedCount,
		TotalDislikedCountBeforeEdit: comment.TotalDislikedCount,
	}
	update := bson.M{
		"content":                content,
		"cuedMemberInfoArr":      cuedInfos,
		"status":                 consts.ContentStatusEdited,
		"totalLikedCount":        0,
		"totalUndoLikedCount":    0,
		"totalDislikedCount":     0,
		"totalUndoDislikedCount": 0,
	}

	// 主写
	if err = s.commentRepo.Edit(ctx, commentID, update, snapshot); err != nil {
		return err
	}

	post, err := s.postRepo.FindByID(ctx, comment.PostID)
	if err != nil || post == nil {
		log.ErrorContext(ctx, "Comment edited but failed to load post for cue fan-out",
			"post_id", comment.PostID, "primary_id", commentID, "err", err)
		post = nil
	}

	go s.propagateEdit(detachedContext(ctx), member, post, comment, content, cuedInfos)
	return nil
}

func (s *commentServiceImpl) propagateEdit(ctx context.Context, member *model.MemberComprehensive, post *model.PostComprehensive, before *model.CommentComprehensive, content string, cuedInfos []model.ConciseMemberInfo) {
	commentID := before.CommentID

	if err := s.memberStats.Inc(ctx, member.MemberID, bson.M{"totalCommentEditCount": 1}); err != nil {
		log.ErrorContext(ctx, "Primary write succeeded but failed to update member statistics",
			"aggregate", "statistics.member", "member_id", member.MemberID, "primary_id", commentID, "err", err)
	}

	if post == nil {
		return
	}

	// 仅对本次新出现的提及发通知
	previous := make(map[string]struct{}, len(before.CuedMemberInfos))
	for _, cued := range before.CuedMemberInfos {
		previous[cued.MemberID] = struct{}{}
	}
	for _, cued := range cuedInfos {
		if _, existed := previous[cued.MemberID]; existed {
			continue
		}
		s.dispatcher.Dispatch(ctx, &model.Notice{
			MemberID:     cued.MemberID,
			NoticeID:     identity.CreateNoticeID(identity.NoticeCue, member.MemberID, post.PostID, commentID),
			Category:     identity.NoticeCue,
			InitiateID:   member.MemberID,
			Nickname:     member.Nickname,
			PostID:       post.PostID,
			PostTitle:    post.Title,
			CommentID:    commentID,
			CommentBrief: util.GetContentBrief(content),
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}, "cuedCount", commentID)
	}
}

// DeleteComment 删除评论：状态置 -1，正文由脱敏投影隐藏。
// 仅楼中楼的删除会递增父评论的楼中楼删除计数
func (s *commentServiceImpl) DeleteComment(ctx context.Context, memberID, commentID string) error {
	verify := identity.VerifyID(commentID)
	if !verify.IsValid {
		return ErrInvalidID
	}
	if verify.Category != identity.CategoryComment && verify.Category != identity.CategorySubcomment {
		return ErrInvalidID
	}
	commentID = verify.ID

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.MemberID != memberID {
		return ErrPermissionDenied
	}
	if comment.Status < 0 {
		return nil
	}

	// 主写
	if err = s.commentRepo.SetStatus(ctx, commentID, consts.ContentStatusDeleted); err != nil {
		return err
	}

	isSubcomment := verify.Category == identity.CategorySubcomment
	go s.propagateDelete(detachedContext(ctx), memberID, comment, isSubcomment)
	return nil
}

func (s *commentServiceImpl) propagateDelete(ctx context.Context, memberID string, comment *model.CommentComprehensive, isSubcomment bool) {
	commentID := comment.CommentID

	if err := s.memberStats.Inc(ctx, memberID, bson.M{"totalCommentDeleteCount": 1}); err != nil {
		log.ErrorContext(ctx, "Primary write succeeded but failed to update member statistics",
			"aggregate", "statistics.member", "member_id", memberID, "primary_id", commentID, "err", err)
	}
	if isSubcomment {
		if err := s.commentRepo.Inc(ctx, comment.ParentID, bson.M{"totalSubcommentDeleteCount": 1}); err != nil {
			log.ErrorContext(ctx, "Primary write succeeded but failed to update parent subcomment delete counter",
				"aggregate", "comprehensive.comment", "comment_id", comment.ParentID, "primary_id", commentID, "err", err)
		}
	}
	if err := s.postRepo.Inc(ctx, comment.PostID, bson.M{"totalCommentDeleteCount": 1}); err != nil {
		log.ErrorContext(ctx, "Primary write succeeded but failed to update post comment delete counter",
			"aggregate", "comprehensive.post", "post_id", comment.PostID, "primary_id", commentID, "err", err)
	}

	post, err := s.postRepo.FindByID(ctx, comment.PostID)
	if err != nil || post == nil {
		log.ErrorContext(ctx, "Primary write succeeded but failed to load post for delete fan-out",
			"post_id", comment.PostID, "primary_id", commentID, "err", err)
		return
	}
	if err := s.channelStats.Inc(ctx, post.ChannelID, bson.M{"totalCommentDeleteCount": 1}); err != nil {
		log.ErrorContext(ctx, "Primary write succeeded but failed to update channel statistics",
			"aggregate", "statistics.channel", "channel_id", post.ChannelID, "primary_id", commentID, "err", err)
	}
	for _, topicID := range post.TopicIDs {
		if err := s.topicRepo.Inc(ctx, topicID, bson.M{"totalCommentDeleteCount": 1}); err != nil {
			log.ErrorContext(ctx, "Primary write succeeded but failed to update topic statistics",
				"aggregate", "comprehensive.topic", "topic_id", topicID, "primary_id", commentID, "err", err)
		}
	}
}
