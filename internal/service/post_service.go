package service

import (
	"Trellis/internal/api/config"
	"Trellis/internal/model"
	"Trellis/internal/pkg/consts"
	"Trellis/internal/pkg/es"
	"Trellis/internal/pkg/identity"
	"Trellis/internal/pkg/mongo"
	"Trellis/internal/pkg/redis"
	"Trellis/internal/pkg/util"
	"context"
	log "log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// PostDraft 发帖/编辑载荷，话题以原文传入，id 由服务端派生
type PostDraft struct {
	Title         string
	Paragraphs    []string
	ChannelID     string
	TopicContents []string
	CuedMemberIDs []string
}

type PostService interface {
	CreatePost(ctx context.Context, memberID string, draft *PostDraft) (string, error)
	GetPost(ctx context.Context, postID string) (*model.RestrictedPostComprehensive, error)
	EditPost(ctx context.Context, memberID, postID string, draft *PostDraft) error
	DeletePost(ctx context.Context, memberID, postID string) error
	PinComment(ctx context.Context, memberID, postID, commentID string) error
	SearchPosts(ctx context.Context, keyword string, page, pageSize int) ([]*es.PostES, error)
	ListLatestPosts(ctx context.Context, page, pageSize int) ([]*es.PostES, error)
	ListPostsByChannel(ctx context.Context, channelID string, page, pageSize int) ([]*es.PostES, error)
	ListPostsByTopic(ctx context.Context, topicID string, page, pageSize int) ([]*es.PostES, error)
}

type postServiceImpl struct {
	postRepo     mongo.PostRepo
	commentRepo  mongo.CommentRepo
	memberRepo   mongo.MemberRepo
	topicRepo    mongo.TopicRepo
	channelRepo  mongo.ChannelRepo
	memberStats  mongo.MemberStatsRepo
	channelStats mongo.ChannelStatsRepo
	postES       es.PostRepo
	dispatcher   *NoticeDispatcher
	generator    *identity.Generator
}

func NewPostService(
	postRepo mongo.PostRepo,
	commentRepo mongo.CommentRepo,
	memberRepo mongo.MemberRepo,
	topicRepo mongo.TopicRepo,
	channelRepo mongo.ChannelRepo,
	memberStats mongo.MemberStatsRepo,
	channelStats mongo.ChannelStatsRepo,
	postES es.PostRepo,
	dispatcher *NoticeDispatcher,
	generator *identity.Generator,
) PostService {
	return &postServiceImpl{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		memberRepo:   memberRepo,
		topicRepo:    topicRepo,
		channelRepo:  channelRepo,
		memberStats:  memberStats,
		channelStats: channelStats,
		postES:       postES,
		dispatcher:   dispatcher,
		generator:    generator,
	}
}

// validateDraft 校验标题/正文/频道/话题，返回派生后的话题 id 列表
func (s *postServiceImpl) validateDraft(ctx context.Context, draft *PostDraft) ([]string, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" || len([]rune(title)) > consts.MaxTitleLength {
		return nil, ErrInvalidRequestInfo
	}
	draft.Title = title

	total := 0
	for _, paragraph := range draft.Paragraphs {
		total += len([]rune(paragraph))
	}
	if total > consts.MaxContentLength {
		return nil, ErrContentTooLong
	}

	channels, err := s.channelRepo.ListChannels(ctx)
	if err != nil {
		return nil, err
	}
	channelOK := false
	for _, channel := range channels {
		if channel.ChannelID == draft.ChannelID {
			channelOK = true
			break
		}
	}
	if !channelOK {
		return nil, ErrInvalidRequestInfo
	}

	if len(draft.TopicContents) > consts.MaxTopicCountPerPost {
		draft.TopicContents = draft.TopicContents[:consts.MaxTopicCountPerPost]
	}
	topicIDs := make([]string, 0, len(draft.TopicContents))
	seen := make(map[string]struct{}, len(draft.TopicContents))
	for _, content := range draft.TopicContents {
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}
		topicID := identity.CreateTopicID(content)
		if _, dup := seen[topicID]; dup {
			continue
		}
		seen[topicID] = struct{}{}
		topicIDs = append(topicIDs, topicID)
	}
	return topicIDs, nil
}

func (s *postServiceImpl) checkPostingMember(ctx context.Context, memberID string) (*model.MemberComprehensive, error) {
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
	if member.Status < consts.MemberStatusNormal || !member.AllowPosting {
		return nil, ErrPostingNotAllowed
	}
	return member, nil
}

func (s *postServiceImpl) resolveCuedMembers(ctx context.Context, cuedMemberIDs []string, limit int) []model.ConciseMemberInfo {
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

// CreatePost 发帖。帖子文档落库即应答，话题聚合、频道/会员统计、
// 提及通知与搜索索引在脱离上下文中传播
func (s *postServiceImpl) CreatePost(ctx context.Context, memberID string, draft *PostDraft) (string, error) {
	member, err := s.checkPostingMember(ctx, memberID)
	if err != nil {
		return "", err
	}
	topicIDs, err := s.validateDraft(ctx, draft)
	if err != nil {
		return "", err
	}

	cuedInfos := s.resolveCuedMembers(ctx, draft.CuedMemberIDs, config.Cfg.Notification.CreateCueLimit)

	postID := s.generator.CreateID(identity.CategoryPost)
	post := &model.PostComprehensive{
		PostID:          postID,
		MemberID:        memberID,
		CreatedTime:     time.Now().UnixMilli(),
		Title:           draft.Title,
		ImageFullNames:  []string{},
		Paragraphs:      draft.Paragraphs,
		CuedMemberInfos: cuedInfos,
		ChannelID:       draft.ChannelID,
		TopicIDs:        topicIDs,
		Status:          consts.ContentStatusNormal,
		Edited:          []model.EditedPost{},
	}

	// 主写
	if err = s.postRepo.Insert(ctx, post); err != nil {
		return "", err
	}

	go s.propagateCreate(detachedContext(ctx), member, post)
	return postID, nil
}

func (s *postServiceImpl) propagateCreate(ctx context.Context, member *model.MemberComprehensive, post *model.PostComprehensive) {
	postID := post.PostID

	for _, topicID := range post.TopicIDs {
		if err := s.topicRepo.UpsertOnPostCreate(ctx, topicID, post.ChannelID); err != nil {
			log.ErrorContext(ctx, "Primary write succeeded but failed to upsert topic",
				"aggregate", "comprehensive.topic", "topic_id", topicID, "primary_id", postID, "err", err)
		}
	}
	if err := s.channelStats.Inc(ctx, post.ChannelID, bson.M{"totalPostCount": 1}); err != nil {
		log.ErrorContext(ctx, "Primary write succeeded but failed to update channel statistics",
			"aggregate", "statistics.channel", "channel_id", post.ChannelID, "primary_id", postID, "err", err)
	}
	if err := s.memberStats.Inc(ctx, member.MemberID, bson.M{"totalCreationCount": 1}); err != nil {
		log.ErrorContext(ctx, "Primary write succeeded but failed to update member statistics",
			"aggregate", "statistics.member", "member_id", member.MemberID, "primary_id", postID, "err", err)
	}

	now := time.Now()
	for _, cued := range post.CuedMemberInfos {
		s.dispatcher.Dispatch(ctx, &model.Notice{
			MemberID:   cued.MemberID,
			NoticeID:   identity.CreateNoticeID(identity.NoticeCue, member.MemberID, postID, ""),
			Category:   identity.NoticeCue,
			InitiateID: member.MemberID,
			Nickname:   member.Nickname,
			PostID:     postID,
			PostTitle:  post.Title,
			CreatedAt:  now,
			UpdatedAt:  now,
		}, "cuedCount", postID)
	}

	s.indexPost(ctx, member.Nickname, post, post.CreatedTime)
}

// indexPost 帖子文档同步到搜索索引，版本取更新时间戳，
// 乱序的旧版本由索引侧冲突跳过
func (s *postServiceImpl) indexPost(ctx context.Context, nickname string, post *model.PostComprehensive, version int64) {
	doc := &es.PostES{
		PostID:      post.PostID,
		MemberID:    post.MemberID,
		Nickname:    nickname,
		Status:      post.Status,
		Title:       post.Title,
		Content:     strings.Join(post.Paragraphs, "\n"),
		TopicIDs:    post.TopicIDs,
		ChannelID:   post.ChannelID,
		CreatedTime: post.CreatedTime,
	}
	if err := s.postES.IndexPost(ctx, doc, version); err != nil {
		log.ErrorContext(ctx, "Primary write succeeded but failed to sync post index",
			"aggregate", "es.post", "post_id", post.PostID, "primary_id", post.PostID, "err", err)
	}
}

// GetPost 获取帖子对外投影。浏览量不直接写文档，先在 redis
// 累加并标脏，由定时任务批量落库
func (s *postServiceImpl) GetPost(ctx context.Context, postID string) (*model.RestrictedPostComprehensive, error) {
	verify := identity.VerifyID(postID)
	if !verify.IsValid || verify.Category != identity.CategoryPost {
		return nil, ErrInvalidID
	}
	post, err := s.postRepo.FindByID(ctx, verify.ID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if post.Status >= 0 {
		if err = redis.Incr(ctx, consts.PostHitKey+post.PostID); err != nil {
			log.ErrorContext(ctx, "Failed to buffer post hit", "post_id", post.PostID, "err", err)
		} else if err = redis.SAdd(ctx, consts.PostHitDirtyKey, post.PostID); err != nil {
			log.ErrorContext(ctx, "Failed to mark post hit dirty", "post_id", post.PostID, "err", err)
		}
	}
	return RestrictedFromPostComprehensive(post), nil
}

// EditPost 编辑帖子：编辑前状态入快照，表态计数对清零，
// 状态落入"已编辑"子带。新话题补聚合，新提及补通知
func (s *postServiceImpl) EditPost(ctx context.Context, memberID, postID string, draft *PostDraft) error {
	verify := identity.VerifyID(postID)
	if !verify.IsValid || verify.Category != identity.CategoryPost {
		return ErrInvalidID
	}
	postID = verify.ID

	member, err := s.checkPostingMember(ctx, memberID)
	if err != nil {
		return err
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.MemberID != memberID {
		return ErrPermissionDenied
	}
	if post.Status < 0 {
		return ErrPostNotFound
	}

	topicIDs, err := s.validateDraft(ctx, draft)
	if err != nil {
		return err
	}
	cuedInfos := s.resolveCuedMembers(ctx, draft.CuedMemberIDs, config.Cfg.Notification.EditCueLimit)

	editedTime := time.Now().UnixMilli()
	snapshot := &model.EditedPost{
		EditedTime:                   editedTime,
		TitleBeforeEdit:              post.Title,
		ImageFullNamesBeforeEdit:     post.ImageFullNames,
		ParagraphsBeforeEdit:         post.Paragraphs,
		CuedMemberInfosBeforeEdit:    post.CuedMemberInfos,
		ChannelIDBeforeEdit:          post.ChannelID,
		TopicIDsBeforeEdit:           post.TopicIDs,
		TotalLikedCountBeforeEdit:    post.TotalLikedCount,
		TotalDislikedCountBeforeEdit: post.TotalDislikedCount,
	}
	update := bson.M{
		"title":                  draft.Title,
		"paragraphsArr":          draft.Paragraphs,
		"cuedMemberInfoArr":      cuedInfos,
		"channelId":              draft.ChannelID,
		"topicIdsArr":            topicIDs,
		"status":                 consts.ContentStatusEdited,
		"totalLikedCount":        0,
		"totalUndoLikedCount":    0,
		"totalDislikedCount":     0,
		"totalUndoDislikedCount": 0,
	}

	// 主写
	if err = s.postRepo.Edit(ctx, postID, update, snapshot); err != nil {
		return err
	}

	go s.propagateEdit(detachedContext(ctx), member, post, draft, topicIDs, cuedInfos, editedTime)
	return nil
}

func (s *postServiceImpl) propagateEdit(ctx context.Context, member *model.MemberComprehensive, before *model.PostComprehensive, draft *PostDraft, topicIDs []string, cuedInfos []model.ConciseMemberInfo, editedTime int64) {
	postID := before.PostID

	if err := s.memberStats.Inc(ctx, member.MemberID, bson.M{"totalCreationEditCount": 1}); err != nil {
		log.ErrorContext(ctx, "Primary write succeeded but failed to update member statistics",
			"aggregate", "statistics.member", "member_id", member.MemberID, "primary_id", postID, "err", err)
	}

	// 仅对本次新挂上的话题补聚合
	previousTopics := make(map[string]struct{}, len(before.TopicIDs))
	for _, topicID := range before.TopicIDs {
		previousTopics[topicID] = struct{}{}
	}
	for _, topicID := range topicIDs {
		if _, existed := previousTopics[topicID]; existed {
			continue
		}
		if err := s.topicRepo.UpsertOnPostCreate(ctx, topicID, draft.ChannelID); err != nil {
			log.ErrorContext(ctx, "Primary write succeeded but failed to upsert topic",
				"aggregate", "comprehensive.topic", "topic_id", topicID, "primary_id", postID, "err", err)
		}
	}

	// 仅对本次新出现的提及发通知
	previousCued := make(map[string]struct{}, len(before.CuedMemberInfos))
	for _, cued := range before.CuedMemberInfos {
		previousCued[cued.MemberID] = struct{}{}
	}
	now := time.Now()
	for _, cued := range cuedInfos {
		if _, existed := previousCued[cued.MemberID]; existed {
			continue
		}
		s.dispatcher.Dispatch(ctx, &model.Notice{
			MemberID:   cued.MemberID,
			NoticeID:   identity.CreateNoticeID(identity.NoticeCue, member.MemberID, postID, ""),
			Category:   identity.NoticeCue,
			InitiateID: member.MemberID,
			Nickname:   member.Nickname,
			PostID:     postID,
			PostTitle:  draft.Title,
			CreatedAt:  now,
			UpdatedAt:  now,
		}, "cuedCount", postID)
	}

	edited := *before
	edited.Title = draft.Title
	edited.Paragraphs = draft.Paragraphs
	edited.ChannelID = draft.ChannelID
	edited.TopicIDs = topicIDs
	edited.Status = consts.ContentStatusEdited
	s.indexPost(ctx, member.Nickname, &edited, editedTime)
}

// DeletePost 删帖：状态置 -1，正文由脱敏投影隐藏，索引文档移除
func (s *postServiceImpl) DeletePost(ctx context.Context, memberID, postID string) error {
	verify := identity.VerifyID(postID)
	if !verify.IsValid || verify.Category != identity.CategoryPost {
		return ErrInvalidID
	}
	postID = verify.ID

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.MemberID != memberID {
		return ErrPermissionDenied
	}
	if post.Status < 0 {
		return nil
	}

	// 主写
	if err = s.postRepo.SetStatus(ctx, postID, consts.ContentStatusDeleted); err != nil {
		return err
	}

	go s.propagateDelete(detachedContext(ctx), memberID, post)
	return nil
}

func (s *postServiceImpl) propagateDelete(ctx context.Context, memberID string, post *model.PostComprehensive) {
	postID := post.PostID

	if err := s.memberStats.Inc(ctx, memberID, bson.M{"totalCreationDeleteCount": 1}); err != nil {
		log.ErrorContext(ctx, "Primary write succeeded but failed to update member statistics",
			"aggregate", "statistics.member", "member_id", memberID, "primary_id", postID, "err", err)
	}
	if err := s.channelStats.Inc(ctx, post.ChannelID, bson.M{"totalPostDeleteCount": 1}); err != nil {
		log.ErrorContext(ctx, "Primary write succeeded but failed to update channel statistics",
			"aggregate", "statistics.channel", "channel_id", post.ChannelID, "primary_id", postID, "err", err)
	}
	for _, topicID := range post.TopicIDs {
		if err := s.topicRepo.Inc(ctx, topicID, bson.M{"totalPostDeleteCount": 1}); err != nil {
			log.ErrorContext(ctx, "Primary write succeeded but failed to update topic statistics",
				"aggregate", "comprehensive.topic", "topic_id", topicID, "primary_id", postID, "err", err)
		}
	}
	if err := s.postES.DeletePost(ctx, postID); err != nil {
		log.ErrorContext(ctx, "Primary write succeeded but failed to remove post from index",
			"aggregate", "es.post", "post_id", postID, "primary_id", postID, "err", err)
	}
}

// PinComment 置顶/取消置顶评论，仅作者可操作，commentID 置空
// 表示取消置顶。置顶会给评论作者发通知，不计入未读
func (s *postServiceImpl) PinComment(ctx context.Context, memberID, postID, commentID string) error {
	verifyPost := identity.VerifyID(postID)
	if !verifyPost.IsValid || verifyPost.Category != identity.CategoryPost {
		return ErrInvalidID
	}
	postID = verifyPost.ID

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil || post.Status < 0 {
		return ErrPostNotFound
	}
	if post.MemberID != memberID {
		return ErrPermissionDenied
	}

	if commentID == "" {
		return s.postRepo.SetPinnedComment(ctx, postID, "")
	}

	verifyComment := identity.VerifyID(commentID)
	if !verifyComment.IsValid || verifyComment.Category != identity.CategoryComment {
		return ErrInvalidID
	}
	commentID = verifyComment.ID

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil || comment.Status < 0 || comment.PostID != postID {
		return ErrCommentNotFound
	}

	// 主写
	if err = s.postRepo.SetPinnedComment(ctx, postID, commentID); err != nil {
		return err
	}

	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil || member == nil {
		log.ErrorContext(ctx, "Comment pinned but failed to load initiator for pin notice",
			"member_id", memberID, "primary_id", commentID, "err", err)
		return nil
	}

	now := time.Now()
	go s.dispatcher.Dispatch(detachedContext(ctx), &model.Notice{
		MemberID:     comment.MemberID,
		NoticeID:     identity.CreateNoticeID(identity.NoticePin, memberID, postID, commentID),
		Category:     identity.NoticePin,
		InitiateID:   memberID,
		Nickname:     member.Nickname,
		PostID:       postID,
		PostTitle:    post.Title,
		CommentID:    commentID,
		CommentBrief: util.GetContentBrief(comment.Content),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, "", commentID)
	return nil
}

func (s *postServiceImpl) SearchPosts(ctx context.Context, keyword string, page, pageSize int) ([]*es.PostES, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrInvalidRequestInfo
	}
	return s.postES.SearchPosts(ctx, keyword, (page-1)*pageSize, pageSize)
}

func (s *postServiceImpl) ListLatestPosts(ctx context.Context, page, pageSize int) ([]*es.PostES, error) {
	return s.postES.GetLatestPosts(ctx, (page-1)*pageSize, pageSize)
}

func (s *postServiceImpl) ListPostsByChannel(ctx context.Context, channelID string, page, pageSize int) ([]*es.PostES, error) {
	if channelID == "" {
		return nil, ErrInvalidRequestInfo
	}
	return s.postES.GetPostsByChannel(ctx, channelID, (page-1)*pageSize, pageSize)
}

func (s *postServiceImpl) ListPostsByTopic(ctx context.Context, topicID string, page, pageSize int) ([]*es.PostES, error) {
	verify := identity.VerifyID(topicID)
	if !verify.IsValid || verify.Category != identity.CategoryTopic {
		return nil, ErrInvalidID
	}
	return s.postES.GetPostsByTopic(ctx, verify.ID, (page-1)*pageSize, pageSize)
}
