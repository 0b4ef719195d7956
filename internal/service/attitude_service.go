package service

import (
	"Trellis/internal/model"
	"Trellis/internal/pkg/identity"
	"Trellis/internal/pkg/mongo"
	"context"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

type AttitudeService interface {
	GetMapping(ctx context.Context, memberID, postID string) (*model.AttitudeMapping, error)
	Express(ctx context.Context, memberID, postID, targetID string, attitude int) error
}

type attitudeServiceImpl struct {
	attitudeRepo mongo.AttitudeRepo
	postRepo     mongo.PostRepo
	commentRepo  mongo.CommentRepo
	memberRepo   mongo.MemberRepo
	memberStats  mongo.MemberStatsRepo
	dispatcher   *NoticeDispatcher
}

func NewAttitudeService(
	attitudeRepo mongo.AttitudeRepo,
	postRepo mongo.PostRepo,
	commentRepo mongo.CommentRepo,
	memberRepo mongo.MemberRepo,
	memberStats mongo.MemberStatsRepo,
	dispatcher *NoticeDispatcher,
) AttitudeService {
	return &attitudeServiceImpl{
		attitudeRepo: attitudeRepo,
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		memberRepo:   memberRepo,
		memberStats:  memberStats,
		dispatcher:   dispatcher,
	}
}

// GetMapping 获取调用者对某帖的态度映射，无记录等价于全零
func (s *attitudeServiceImpl) GetMapping(ctx context.Context, memberID, postID string) (*model.AttitudeMapping, error) {
	verify := identity.VerifyID(postID)
	if !verify.IsValid || verify.Category != identity.CategoryPost {
		return nil, ErrInvalidID
	}
	attitude, err := s.attitudeRepo.Find(ctx, memberID, verify.ID)
	if err != nil {
		return nil, err
	}
	return MappingFromAttitudeComprehensive(attitude), nil
}

// clampAttitude 态度值收敛到 {-1, 0, 1}，其余一律视作 0
func clampAttitude(attitude int) int {
	if attitude == -1 || attitude == 1 {
		return attitude
	}
	return 0
}

// Express 表态。目标为帖子时写平铺字段，为评论/楼中楼时写
// 嵌套映射；主写（态度 upsert）成功即应答，目标计数对与
// 作者统计、点赞通知在脱离上下文中传播
func (s *attitudeServiceImpl) Express(ctx context.Context, memberID, postID, targetID string, attitude int) error {
	verifyPost := identity.VerifyID(postID)
	if !verifyPost.IsValid || verifyPost.Category != identity.CategoryPost {
		return ErrInvalidID
	}
	verifyTarget := identity.VerifyID(targetID)
	if !verifyTarget.IsValid {
		return ErrInvalidID
	}
	switch verifyTarget.Category {
	case identity.CategoryPost, identity.CategoryComment, identity.CategorySubcomment:
	default:
		return ErrInvalidID
	}

	postID = verifyPost.ID
	targetID = verifyTarget.ID
	attitude = clampAttitude(attitude)

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	var comment *model.CommentComprehensive
	if verifyTarget.Category != identity.CategoryPost {
		comment, err = s.commentRepo.FindByID(ctx, targetID)
		if err != nil {
			return err
		}
		if comment == nil {
			return ErrCommentNotFound
		}
	}

	// 读取既有态度，决定计数对的走向
	existing, err := s.attitudeRepo.Find(ctx, memberID, postID)
	if err != nil {
		return err
	}
	prior := 0
	if existing != nil {
		if verifyTarget.Category == identity.CategoryPost {
			prior = existing.Attitude
		} else {
			prior = existing.CommentAttitudeMapping[targetID]
		}
	}
	if prior == attitude {
		return nil
	}

	// 主写：合并进态度聚合
	var update bson.M
	if verifyTarget.Category == identity.CategoryPost {
		update = bson.M{"attitude": attitude}
	} else {
		update = bson.M{"commentAttitudeMapping." + targetID: attitude}
	}
	if err = s.attitudeRepo.Upsert(ctx, memberID, postID, update); err != nil {
		return err
	}

	go s.propagateAttitude(detachedContext(ctx), memberID, post, comment, verifyTarget.Category, prior, attitude)
	return nil
}

// attitudeIncFields 由 prior→next 推导 raw/undo 计数对增量，
// 撤销走 undo 侧递增而非 raw 侧递减
func attitudeIncFields(prior, next int) bson.M {
	fields := bson.M{}
	switch prior {
	case 1:
		fields["totalUndoLikedCount"] = 1
	case -1:
		fields["totalUndoDislikedCount"] = 1
	}
	switch next {
	case 1:
		fields["totalLikedCount"] = 1
	case -1:
		fields["totalDislikedCount"] = 1
	}
	return fields
}

func (s *attitudeServiceImpl) propagateAttitude(ctx context.Context, memberID string, post *model.PostComprehensive, comment *model.CommentComprehensive, category string, prior, next int) {
	fields := attitudeIncFields(prior, next)
	if len(fields) == 0 {
		return
	}

	var authorID string
	var primaryID string
	if category == identity.CategoryPost {
		authorID = post.MemberID
		primaryID = post.PostID
		if err := s.postRepo.Inc(ctx, post.PostID, fields); err != nil {
			log.ErrorContext(ctx, "Primary write succeeded but failed to update post attitude counters",
				"aggregate", "comprehensive.post", "post_id", post.PostID, "primary_id", primaryID, "err", err)
		}
	} else {
		authorID = comment.MemberID
		primaryID = comment.CommentID
		if err := s.commentRepo.Inc(ctx, comment.CommentID, fields); err != nil {
			log.ErrorContext(ctx, "Primary write succeeded but failed to update comment attitude counters",
				"aggregate", "comprehensive.comment", "comment_id", comment.CommentID, "primary_id", primaryID, "err", err)
		}
	}

	// 表态者统计
	actorFields := bson.M{}
	switch next {
	case 1:
		actorFields["totalLikeCount"] = 1
	case -1:
		actorFields["totalDislikeCount"] = 1
	}
	if len(actorFields) != 0 {
		if err := s.memberStats.Inc(ctx, memberID, actorFields); err != nil {
			log.ErrorContext(ctx, "Primary write succeeded but failed to update member statistics",
				"aggregate", "statistics.member", "member_id", memberID, "primary_id", primaryID, "err", err)
		}
	}

	// 作者被动统计
	authorFields := bson.M{}
	if category == identity.CategoryPost {
		switch next {
		case 1:
			authorFields["totalCreationLikedCount"] = 1
		case -1:
			authorFields["totalCreationDislikedCount"] = 1
		}
	} else {
		switch next {
		case 1:
			authorFields["totalCommentLikedCount"] = 1
		case -1:
			authorFields["totalCommentDislikedCount"] = 1
		}
	}
	if len(authorFields) != 0 {
		if err := s.memberStats.Inc(ctx, authorID, authorFields); err != nil {
			log.ErrorContext(ctx, "Primary write succeeded but failed to update member statistics",
				"aggregate", "statistics.member", "member_id", authorID, "primary_id", primaryID, "err", err)
		}
	}

	// 点赞通知
	if next == 1 {
		actor, err := s.memberRepo.FindByID(ctx, memberID)
		if err != nil || actor == nil {
			log.ErrorContext(ctx, "Primary write succeeded but failed to load initiator for like notice",
				"member_id", memberID, "primary_id", primaryID, "err", err)
			return
		}
		commentID := ""
		if comment != nil {
			commentID = comment.CommentID
		}
		notice := &model.Notice{
			MemberID:   authorID,
			NoticeID:   identity.CreateNoticeID(identity.NoticeLike, memberID, post.PostID, commentID),
			Category:   identity.NoticeLike,
			InitiateID: memberID,
			Nickname:   actor.Nickname,
			PostID:     post.PostID,
			PostTitle:  post.Title,
			CommentID:  commentID,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		s.dispatcher.Dispatch(ctx, notice, "likedCount", primaryID)
	}
}
