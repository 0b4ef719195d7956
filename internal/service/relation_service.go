package service

import (
	"Trellis/internal/model"
	"Trellis/internal/pkg/consts"
	"Trellis/internal/pkg/identity"
	"Trellis/internal/pkg/mongo"
	"Trellis/internal/pkg/redis"
	"Trellis/internal/repository"
	"context"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

type RelationService interface {
	Block(ctx context.Context, memberID, targetID string) error
	Unblock(ctx context.Context, memberID, targetID string) error
	ListBlocked(ctx context.Context, memberID string, page, pageSize int) ([]model.ConciseMemberInfo, error)
	Follow(ctx context.Context, memberID, targetID string) error
	Unfollow(ctx context.Context, memberID, targetID string) error
	ListFollowing(ctx context.Context, memberID string, page, pageSize int) ([]model.ConciseMemberInfo, error)
	ListFollowedBy(ctx context.Context, memberID string, page, pageSize int) ([]model.ConciseMemberInfo, error)
	ToggleSavedPost(ctx context.Context, memberID, postID string) (bool, error)
	ListSavedPosts(ctx context.Context, memberID string, page, pageSize int) ([]*model.RestrictedPostComprehensive, error)
}

type relationServiceImpl struct {
	blockRepo   repository.BlockRepo
	followRepo  repository.FollowRepo
	saveRepo    repository.SaveRepo
	memberRepo  mongo.MemberRepo
	postRepo    mongo.PostRepo
	memberStats mongo.MemberStatsRepo
	dispatcher  *NoticeDispatcher
}

func NewRelationService(
	blockRepo repository.BlockRepo,
	followRepo repository.FollowRepo,
	saveRepo repository.SaveRepo,
	memberRepo mongo.MemberRepo,
	postRepo mongo.PostRepo,
	memberStats mongo.MemberStatsRepo,
	dispatcher *NoticeDispatcher,
) RelationService {
	return &relationServiceImpl{
		blockRepo:   blockRepo,
		followRepo:  followRepo,
		saveRepo:    saveRepo,
		memberRepo:  memberRepo,
		postRepo:    postRepo,
		memberStats: memberStats,
		dispatcher:  dispatcher,
	}
}

// verifyTargetMember 校验目标会员 id 合法、存在且未封停
func (s *relationServiceImpl) verifyTargetMember(ctx context.Context, memberID, targetID string) (*model.MemberComprehensive, error) {
	verify := identity.VerifyID(targetID)
	if !verify.IsValid || verify.Category != identity.CategoryMember {
		return nil, ErrInvalidID
	}
	if verify.ID == memberID {
		return nil, ErrInvalidRequestInfo
	}
	target, err := s.memberRepo.FindByID(ctx, verify.ID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrMemberNotFound
	}
	return target, nil
}

// Block 拉黑目标会员：关系行置生效并同步屏蔽名单缓存。
// 已生效时幂等返回
func (s *relationServiceImpl) Block(ctx context.Context, memberID, targetID string) error {
	target, err := s.verifyTargetMember(ctx, memberID, targetID)
	if err != nil {
		return err
	}

	existing, err := s.blockRepo.GetBlockedMember(ctx, memberID, target.MemberID)
	if err != nil {
		return err
	}
	if existing != nil && existing.IsActive {
		return nil
	}

	now := time.Now()
	if err = s.blockRepo.UpsertBlockedMember(ctx, &model.BlockedMember{
		BlockerID: memberID,
		BlockedID: target.MemberID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return err
	}

	if err = redis.SAdd(ctx, consts.BlockMappingKey+memberID, target.MemberID); err != nil {
		log.ErrorContext(ctx, "Blocking relationship saved but failed to update cache",
			"blocker_id", memberID, "blocked_id", target.MemberID, "err", err)
	}
	if err = s.memberStats.Inc(ctx, memberID, bson.M{"totalBlockedCount": 1}); err != nil {
		log.ErrorContext(ctx, "Blocking relationship saved but failed to update member statistics",
			"aggregate", "statistics.member", "member_id", memberID, "err", err)
	}
	return nil
}

// Unblock 解除拉黑：关系行翻转为不生效并从缓存移除
func (s *relationServiceImpl) Unblock(ctx context.Context, memberID, targetID string) error {
	verify := identity.VerifyID(targetID)
	if !verify.IsValid || verify.Category != identity.CategoryMember {
		return ErrInvalidID
	}
	targetID = verify.ID

	existing, err := s.blockRepo.GetBlockedMember(ctx, memberID, targetID)
	if err != nil {
		return err
	}
	if existing == nil || !existing.IsActive {
		return nil
	}

	existing.IsActive = false
	existing.UpdatedAt = time.Now()
	if err = s.blockRepo.UpsertBlockedMember(ctx, existing); err != nil {
		return err
	}
	if err = redis.SRem(ctx, consts.BlockMappingKey+memberID, targetID); err != nil {
		log.ErrorContext(ctx, "Blocking relationship lifted but failed to update cache",
			"blocker_id", memberID, "blocked_id", targetID, "err", err)
	}
	return nil
}

// resolveMembers 批量把会员 id 解析为摘要信息，缺档跳过
func (s *relationServiceImpl) resolveMembers(ctx context.Context, memberIDs []string) []model.ConciseMemberInfo {
	infos := make([]model.ConciseMemberInfo, 0, len(memberIDs))
	for _, memberID := range memberIDs {
		member, err := s.memberRepo.FindByID(ctx, memberID)
		if err != nil || member == nil {
			continue
		}
		infos = append(infos, model.ConciseMemberInfo{MemberID: member.MemberID, Nickname: member.Nickname})
	}
	return infos
}

func (s *relationServiceImpl) ListBlocked(ctx context.Context, memberID string, page, pageSize int) ([]model.ConciseMemberInfo, error) {
	mappings, err := s.blockRepo.GetBlockedMembers(ctx, memberID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(mappings))
	for _, mapping := range mappings {
		ids = append(ids, mapping.BlockedID)
	}
	return s.resolveMembers(ctx, ids), nil
}

// Follow 关注目标会员。关系行落库即应答，统计与关注通知在
// 脱离上下文中传播，重复关注幂等
func (s *relationServiceImpl) Follow(ctx context.Context, memberID, targetID string) error {
	target, err := s.verifyTargetMember(ctx, memberID, targetID)
	if err != nil {
		return err
	}
	if target.Status < 0 {
		return ErrMemberSuspended
	}

	existing, err := s.followRepo.GetMemberFollow(ctx, memberID, target.MemberID)
	if err != nil {
		return err
	}
	if existing != nil && existing.IsActive {
		return nil
	}

	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}
	if member.Status < 0 {
		return ErrMemberSuspended
	}

	now := time.Now()
	if err = s.followRepo.UpsertMemberFollow(ctx, &model.MemberFollow{
		FollowerID:  memberID,
		FollowingID: target.MemberID,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}); err != nil {
		return err
	}

	go s.propagateFollow(detachedContext(ctx), member, target)
	return nil
}

func (s *relationServiceImpl) propagateFollow(ctx context.Context, member, target *model.MemberComprehensive) {
	if err := s.memberStats.Inc(ctx, member.MemberID, bson.M{"totalFollowingCount": 1}); err != nil {
		log.ErrorContext(ctx, "Primary write succeeded but failed to update member statistics",
			"aggregate", "statistics.member", "member_id", member.MemberID, "primary_id", target.MemberID, "err", err)
	}
	if err := s.memberStats.Inc(ctx, target.MemberID, bson.M{"totalFollowedByCount": 1}); err != nil {
		log.ErrorContext(ctx, "Primary write succeeded but failed to update member statistics",
			"aggregate", "statistics.member", "member_id", target.MemberID, "primary_id", target.MemberID, "err", err)
	}
	now := time.Now()
	s.dispatcher.Dispatch(ctx, &model.Notice{
		MemberID:   target.MemberID,
		NoticeID:   identity.CreateNoticeID(identity.NoticeFollow, member.MemberID, "", ""),
		Category:   identity.NoticeFollow,
		InitiateID: member.MemberID,
		Nickname:   member.Nickname,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, "followedCount", target.MemberID)
}

func (s *relationServiceImpl) Unfollow(ctx context.Context, memberID, targetID string) error {
	verify := identity.VerifyID(targetID)
	if !verify.IsValid || verify.Category != identity.CategoryMember {
		return ErrInvalidID
	}
	targetID = verify.ID

	existing, err := s.followRepo.GetMemberFollow(ctx, memberID, targetID)
	if err != nil {
		return err
	}
	if existing == nil || !existing.IsActive {
		return nil
	}
	existing.IsActive = false
	existing.UpdatedAt = time.Now()
	return s.followRepo.UpsertMemberFollow(ctx, existing)
}

func (s *relationServiceImpl) ListFollowing(ctx context.Context, memberID string, page, pageSize int) ([]model.ConciseMemberInfo, error) {
	mappings, err := s.followRepo.GetFollowing(ctx, memberID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(mappings))
	for _, mapping := range mappings {
		ids = append(ids, mapping.FollowingID)
	}
	return s.resolveMembers(ctx, ids), nil
}

func (s *relationServiceImpl) ListFollowedBy(ctx context.Context, memberID string, page, pageSize int) ([]model.ConciseMemberInfo, error) {
	mappings, err := s.followRepo.GetFollowedBy(ctx, memberID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(mappings))
	for _, mapping := range mappings {
		ids = append(ids, mapping.FollowerID)
	}
	return s.resolveMembers(ctx, ids), nil
}

// ToggleSavedPost 收藏/取消收藏翻转，返回翻转后的状态。
// 收藏走 raw 侧计数并给作者发收藏通知，取消走 undo 侧计数
func (s *relationServiceImpl) ToggleSavedPost(ctx context.Context, memberID, postID string) (bool, error) {
	verify := identity.VerifyID(postID)
	if !verify.IsValid || verify.Category != identity.CategoryPost {
		return false, ErrInvalidID
	}
	postID = verify.ID

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return false, err
	}
	if post == nil || post.Status < 0 {
		return false, ErrPostNotFound
	}

	existing, err := s.saveRepo.GetSavedPost(ctx, memberID, postID)
	if err != nil {
		return false, err
	}
	nextActive := existing == nil || !existing.IsActive

	now := time.Now()
	if err = s.saveRepo.UpsertSavedPost(ctx, &model.SavedPost{
		MemberID:  memberID,
		PostID:    postID,
		IsActive:  nextActive,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return false, err
	}

	go s.propagateSave(detachedContext(ctx), memberID, post, nextActive)
	return nextActive, nil
}

func (s *relationServiceImpl) propagateSave(ctx context.Context, memberID string, post *model.PostComprehensive, saved bool) {
	if !saved {
		if err := s.postRepo.Inc(ctx, post.PostID, bson.M{"totalUndoSavedCount": 1}); err != nil {
			log.ErrorContext(ctx, "Primary write succeeded but failed to update post save counters",
				"aggregate", "comprehensive.post", "post_id", post.PostID, "primary_id", post.PostID, "err", err)
		}
		return
	}

	if err := s.postRepo.Inc(ctx, post.PostID, bson.M{"totalSavedCount": 1}); err != nil {
		log.ErrorContext(ctx, "Primary write succeeded but failed to update post save counters",
			"aggregate", "comprehensive.post", "post_id", post.PostID, "primary_id", post.PostID, "err", err)
	}
	if err := s.memberStats.Inc(ctx, post.MemberID, bson.M{"totalSavedCount": 1}); err != nil {
		log.ErrorContext(ctx, "Primary write succeeded but failed to update member statistics",
			"aggregate", "statistics.member", "member_id", post.MemberID, "primary_id", post.PostID, "err", err)
	}

	actor, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil || actor == nil {
		log.ErrorContext(ctx, "Primary write succeeded but failed to load initiator for save notice",
			"member_id", memberID, "primary_id", post.PostID, "err", err)
		return
	}
	now := time.Now()
	s.dispatcher.Dispatch(ctx, &model.Notice{
		MemberID:   post.MemberID,
		NoticeID:   identity.CreateNoticeID(identity.NoticeSave, memberID, post.PostID, ""),
		Category:   identity.NoticeSave,
		InitiateID: memberID,
		Nickname:   actor.Nickname,
		PostID:     post.PostID,
		PostTitle:  post.Title,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, "savedCount", post.PostID)
}

func (s *relationServiceImpl) ListSavedPosts(ctx context.Context, memberID string, page, pageSize int) ([]*model.RestrictedPostComprehensive, error) {
	mappings, err := s.saveRepo.GetSavedPosts(ctx, memberID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	posts := make([]*model.RestrictedPostComprehensive, 0, len(mappings))
	for _, mapping := range mappings {
		post, err := s.postRepo.FindByID(ctx, mapping.PostID)
		if err != nil || post == nil {
			continue
		}
		posts = append(posts, RestrictedFromPostComprehensive(post))
	}
	return posts, nil
}
