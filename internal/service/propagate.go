package service

import (
	"Trellis/internal/model"
	"Trellis/internal/pkg/consts"
	"Trellis/internal/pkg/logger"
	"Trellis/internal/pkg/mongo"
	"Trellis/internal/pkg/redis"
	"Trellis/internal/repository"
	"context"
	log "log/slog"

	"go.mongodb.org/mongo-driver/bson"
)

// detachedContext 构造用于扇出传播的脱离上下文：主写已应答，
// 传播不受请求生命周期取消影响，但保留 trace id 以便对账
func detachedContext(ctx context.Context) context.Context {
	bgCtx := context.Background()
	if traceID, ok := ctx.Value(logger.TraceIDKey).(string); ok {
		bgCtx = context.WithValue(bgCtx, logger.TraceIDKey, traceID)
	}
	return bgCtx
}

// NoticeDispatcher 通知扇出：拉黑抑制 + 通知行 upsert + 未读计数。
// 所有失败只记录不上抛，主写的应答不受影响
type NoticeDispatcher struct {
	blockRepo  repository.BlockRepo
	noticeRepo repository.NoticeRepo
	notifStats mongo.NotificationStatsRepo
}

func NewNoticeDispatcher(
	blockRepo repository.BlockRepo,
	noticeRepo repository.NoticeRepo,
	notifStats mongo.NotificationStatsRepo,
) *NoticeDispatcher {
	return &NoticeDispatcher{
		blockRepo:  blockRepo,
		noticeRepo: noticeRepo,
		notifStats: notifStats,
	}
}

// IsBlocking 查询 blocker 是否拉黑了 blocked。优先查 redis 集合，
// 未命中回源关系表并回填正向结果。查询失败按未拉黑处理并记录，
// 宁可多发通知也不吞掉内容主写之外的动作
func (d *NoticeDispatcher) IsBlocking(ctx context.Context, blockerID, blockedID string) bool {
	key := consts.BlockMappingKey + blockerID
	if hit, err := redis.SIsMember(ctx, key, blockedID); err == nil && hit {
		return true
	}

	mapping, err := d.blockRepo.GetBlockedMember(ctx, blockerID, blockedID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to look up blocking relationship",
			"blocker_id", blockerID, "blocked_id", blockedID, "err", err)
		return false
	}
	if mapping == nil || !mapping.IsActive {
		return false
	}
	_ = redis.SAdd(ctx, key, blockedID)
	return true
}

// Dispatch 向目标会员投递一条通知并累计对应未读分类。
// 目标拉黑发起者时静默跳过。statsField 为未读计数字段名，
// 置空表示该类通知不计入未读
func (d *NoticeDispatcher) Dispatch(ctx context.Context, notice *model.Notice, statsField string, primaryID string) {
	if notice.MemberID == notice.InitiateID {
		return
	}
	if d.IsBlocking(ctx, notice.MemberID, notice.InitiateID) {
		return
	}

	if err := d.noticeRepo.UpsertNotice(ctx, notice); err != nil {
		log.ErrorContext(ctx, "Primary write succeeded but failed to upsert notice",
			"aggregate", "notices", "notice_id", notice.NoticeID,
			"member_id", notice.MemberID, "primary_id", primaryID, "err", err)
		return
	}

	if statsField == "" {
		return
	}
	if err := d.notifStats.Inc(ctx, notice.MemberID, bson.M{statsField: 1}); err != nil {
		log.ErrorContext(ctx, "Primary write succeeded but failed to update notification statistics",
			"aggregate", "statistics.notification", "field", statsField,
			"member_id", notice.MemberID, "primary_id", primaryID, "err", err)
	}
}
