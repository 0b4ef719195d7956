package handler

import (
	"Trellis/internal/pkg/response"
	"Trellis/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type TopicHandler struct {
	topicSvc   service.TopicService
	channelSvc service.ChannelService
}

func NewTopicHandler(topicSvc service.TopicService, channelSvc service.ChannelService) *TopicHandler {
	return &TopicHandler{topicSvc: topicSvc, channelSvc: channelSvc}
}

func (s *TopicHandler) GetTopic(c *gin.Context) {
	topic, err := s.topicSvc.GetTopic(c.Request.Context(), c.Param("topic_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, topic)
}

// SearchTopics 话题联想，fragment 为原文前缀
func (s *TopicHandler) SearchTopics(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		limit = 10
	}
	topics, err := s.topicSvc.SearchTopics(c.Request.Context(), c.Query("fragment"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, topics)
}

func (s *TopicHandler) GetChannels(c *gin.Context) {
	channels, err := s.channelSvc.ListChannels(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, channels)
}
