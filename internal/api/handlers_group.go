package api

import "Trellis/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	MemberHandler   *handler.MemberHandler
	RelationHandler *handler.RelationHandler
	PostHandler     *handler.PostHandler
	CommentHandler  *handler.CommentHandler
	AttitudeHandler *handler.AttitudeHandler
	NoticeHandler   *handler.NoticeHandler
	TopicHandler    *handler.TopicHandler
}
