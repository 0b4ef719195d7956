package wire

import (
	"Trellis/internal/api"
	"Trellis/internal/api/handler"
	"Trellis/internal/job"
	"Trellis/internal/pkg/cron"
	"Trellis/internal/pkg/es"
	"Trellis/internal/pkg/identity"
	"Trellis/internal/pkg/mongo"
	"Trellis/internal/repository"
	"Trellis/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router      *gin.Engine
	DB          *gorm.DB
	CronManager *cron.Manager
}

func BuildApplication(db *gorm.DB, dbs *mongo.Databases) (*ApplicationContainer, error) {
	// 关系表
	credentialRepo := repository.NewCredentialRepo(db)
	noticeRepo := repository.NewNoticeRepo(db)
	blockRepo := repository.NewBlockRepo(db)
	followRepo := repository.NewFollowRepo(db)
	saveRepo := repository.NewSaveRepo(db)

	// 文档聚合
	memberRepo := mongo.NewMemberRepo(dbs)
	postRepo := mongo.NewPostRepo(dbs)
	commentRepo := mongo.NewCommentRepo(dbs)
	topicRepo := mongo.NewTopicRepo(dbs)
	channelRepo := mongo.NewChannelRepo(dbs)
	attitudeRepo := mongo.NewAttitudeRepo(dbs)
	memberStats := mongo.NewMemberStatsRepo(dbs)
	notifStats := mongo.NewNotificationStatsRepo(dbs)
	channelStats := mongo.NewChannelStatsRepo(dbs)
	journalRepo := mongo.NewJournalRepo(dbs)

	// 搜索索引
	postES := es.NewPostRepo(es.Client)

	generator := identity.Default()
	dispatcher := service.NewNoticeDispatcher(blockRepo, noticeRepo, notifStats)

	memberService := service.NewMemberService(memberRepo, memberStats, notifStats, journalRepo, credentialRepo, postES, generator)
	relationService := service.NewRelationService(blockRepo, followRepo, saveRepo, memberRepo, postRepo, memberStats, dispatcher)
	postService := service.NewPostService(postRepo, commentRepo, memberRepo, topicRepo, channelRepo, memberStats, channelStats, postES, dispatcher, generator)
	commentService := service.NewCommentService(commentRepo, postRepo, memberRepo, topicRepo, memberStats, channelStats, dispatcher, generator)
	attitudeService := service.NewAttitudeService(attitudeRepo, postRepo, commentRepo, memberRepo, memberStats, dispatcher)
	noticeService := service.NewNoticeService(noticeRepo, notifStats)
	topicService := service.NewTopicService(topicRepo)
	channelService := service.NewChannelService(channelRepo)
	uploadService := service.NewUploadService(postRepo, memberRepo, generator)

	handlers := &api.HandlersGroup{
		MemberHandler:   handler.NewMemberHandler(memberService, uploadService),
		RelationHandler: handler.NewRelationHandler(relationService),
		PostHandler:     handler.NewPostHandler(postService, uploadService),
		CommentHandler:  handler.NewCommentHandler(commentService),
		AttitudeHandler: handler.NewAttitudeHandler(attitudeService),
		NoticeHandler:   handler.NewNoticeHandler(noticeService),
		TopicHandler:    handler.NewTopicHandler(topicService, channelService),
	}

	router := api.SetupRouter(handlers)

	postHitJob := job.NewPostHitJob(postRepo, memberStats, channelStats, topicRepo)
	cronMgr := cron.NewCronManager(postHitJob)

	return &ApplicationContainer{
		Router:      router,
		DB:          db,
		CronManager: cronMgr,
	}, nil
}
