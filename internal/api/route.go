package api

import (
	"Trellis/internal/api/middleware"
	"Trellis/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})

		memberGroup := apiGroup.Group("/member")
		{
			// 无需登录即可访问的接口
			memberGroup.POST("/signup", group.MemberHandler.Signup)
			memberGroup.POST("/verify", group.MemberHandler.VerifyEmail)
			memberGroup.POST("/login", group.MemberHandler.Login)
			memberGroup.GET("/:member_id/info", group.MemberHandler.GetInfo)
			memberGroup.GET("/:member_id/statistics", group.MemberHandler.GetStatistics)

			authGroup := memberGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.MemberHandler.Logout)
				authGroup.PUT("/info", group.MemberHandler.UpdateInfo)
				authGroup.POST("/avatar", group.MemberHandler.UploadAvatar)
			}
		}

		relationGroup := apiGroup.Group("/relation")
		{
			relationGroup.Use(middleware.AuthMiddleware())
			{
				relationGroup.POST("/block/:member_id", group.RelationHandler.Block)
				relationGroup.DELETE("/block/:member_id", group.RelationHandler.Unblock)
				relationGroup.GET("/blocked", group.RelationHandler.GetBlockedMembers)

				relationGroup.POST("/follow/:member_id", group.RelationHandler.Follow)
				relationGroup.DELETE("/follow/:member_id", group.RelationHandler.Unfollow)
				relationGroup.GET("/followings", group.RelationHandler.GetFollowings)
				relationGroup.GET("/followedby", group.RelationHandler.GetFollowedBy)

				relationGroup.POST("/save/:post_id", group.RelationHandler.ToggleSavedPost)
				relationGroup.GET("/saved", group.RelationHandler.GetSavedPosts)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			postGroup.GET("/detail/:post_id", group.PostHandler.GetPost)
			postGroup.GET("/latest", group.PostHandler.GetLatestPosts)
			postGroup.GET("/search", group.PostHandler.SearchPosts)
			postGroup.GET("/channel/:channel_id", group.PostHandler.GetPostsByChannel)
			postGroup.GET("/topic/:topic_id", group.PostHandler.GetPostsByTopic)

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.PUT("/:post_id", group.PostHandler.EditPost)
				authGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
				authGroup.PUT("/:post_id/pin", group.PostHandler.PinComment)
				authGroup.POST("/:post_id/images", group.PostHandler.UploadImages)
			}
		}

		commentGroup := apiGroup.Group("/comments")
		{
			commentGroup.GET("/detail/:comment_id", group.CommentHandler.GetComment)
			commentGroup.GET("/list/:post_id", group.CommentHandler.GetComments)
			commentGroup.GET("/sub/:comment_id", group.CommentHandler.GetSubcomments)

			authGroup := commentGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.CommentHandler.CreateComment)
				authGroup.PUT("/:comment_id", group.CommentHandler.EditComment)
				authGroup.DELETE("/:comment_id", group.CommentHandler.DeleteComment)
			}
		}

		attitudeGroup := apiGroup.Group("/attitude")
		attitudeGroup.Use(middleware.AuthMiddleware())
		{
			attitudeGroup.GET("/:post_id", group.AttitudeHandler.GetMapping)
			attitudeGroup.POST("/:post_id", group.AttitudeHandler.Express)
		}

		noticeGroup := apiGroup.Group("/notices")
		noticeGroup.Use(middleware.AuthMiddleware())
		{
			noticeGroup.GET("", group.NoticeHandler.GetNotices)
			noticeGroup.DELETE("/:notice_id", group.NoticeHandler.DeleteNotice)
			noticeGroup.GET("/statistics", group.NoticeHandler.GetStatistics)
			noticeGroup.POST("/read/:category", group.NoticeHandler.MarkRead)
		}

		topicGroup := apiGroup.Group("/topics")
		{
			topicGroup.GET("/detail/:topic_id", group.TopicHandler.GetTopic)
			topicGroup.GET("/search", group.TopicHandler.SearchTopics)
		}

		apiGroup.GET("/channels", group.TopicHandler.GetChannels)
	}

	return r
}
