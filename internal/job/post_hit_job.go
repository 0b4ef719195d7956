package job

import (
	"Trellis/internal/pkg/consts"
	"Trellis/internal/pkg/logger"
	"Trellis/internal/pkg/mongo"
	"Trellis/internal/pkg/redis"
	"context"
	log "log/slog"
	"strconv"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// PostHitJob 浏览量落库：请求路径只在 redis 累加增量并标脏，
// 这里批量取出增量写回帖子文档与作者/频道/话题统计
type PostHitJob struct {
	postRepo     mongo.PostRepo
	memberStats  mongo.MemberStatsRepo
	channelStats mongo.ChannelStatsRepo
	topicRepo    mongo.TopicRepo
}

func NewPostHitJob(
	postRepo mongo.PostRepo,
	memberStats mongo.MemberStatsRepo,
	channelStats mongo.ChannelStatsRepo,
	topicRepo mongo.TopicRepo,
) *PostHitJob {
	return &PostHitJob{
		postRepo:     postRepo,
		memberStats:  memberStats,
		channelStats: channelStats,
		topicRepo:    topicRepo,
	}
}

func (s *PostHitJob) Run() {
	traceID := "job-hit-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	// 脏集合先改名，避免与进行中的请求互相覆盖
	processingKey := consts.PostHitDirtyKey + ":processing"
	if err := redis.Rename(ctx, consts.PostHitDirtyKey, processingKey); err != nil {
		return
	}

	postIDs, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get post hit dirty set error", "err", err)
		return
	}

	flushed := 0
	for _, postID := range postIDs {
		countStr, err := redis.GetDel(ctx, consts.PostHitKey+postID)
		if err != nil {
			log.ErrorContext(ctx, "get post hit buffer error", "post_id", postID, "err", err)
			continue
		}
		count, err := strconv.ParseInt(countStr, 10, 64)
		if err != nil || count <= 0 {
			continue
		}

		if err = s.postRepo.Inc(ctx, postID, bson.M{"totalHitCount": count}); err != nil {
			log.ErrorContext(ctx, "flush post hit count error", "post_id", postID, "err", err)
			continue
		}

		post, err := s.postRepo.FindByID(ctx, postID)
		if err != nil || post == nil {
			log.ErrorContext(ctx, "load post for hit fan-out error", "post_id", postID, "err", err)
			continue
		}
		if err = s.memberStats.Inc(ctx, post.MemberID, bson.M{"totalCreationHitCount": count}); err != nil {
			log.ErrorContext(ctx, "flush member hit count error", "member_id", post.MemberID, "err", err)
		}
		if err = s.channelStats.Inc(ctx, post.ChannelID, bson.M{"totalHitCount": count}); err != nil {
			log.ErrorContext(ctx, "flush channel hit count error", "channel_id", post.ChannelID, "err", err)
		}
		for _, topicID := range post.TopicIDs {
			if err = s.topicRepo.Inc(ctx, topicID, bson.M{"totalHitCount": count}); err != nil {
				log.ErrorContext(ctx, "flush topic hit count error", "topic_id", topicID, "err", err)
			}
		}
		flushed++
	}

	if err = redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete post hit processing set error", "err", err)
	}

	log.InfoContext(ctx, "flush post hits success", "dirty_count", len(postIDs), "flushed_count", flushed)
}
