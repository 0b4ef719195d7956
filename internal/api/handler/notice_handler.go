package handler

import (
	"Trellis/internal/api/middleware"
	"Trellis/internal/pkg/response"
	"Trellis/internal/service"

	"github.com/gin-gonic/gin"
)

type NoticeHandler struct {
	noticeSvc service.NoticeService
}

func NewNoticeHandler(noticeSvc service.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeSvc: noticeSvc}
}

// GetNotices 通知按被通知会员分区，只能查自己的
func (s *NoticeHandler) GetNotices(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)
	page, pageSize := getPagination(c)

	notices, err := s.noticeSvc.ListNotices(c.Request.Context(), memberID, c.Query("category"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, notices)
}

func (s *NoticeHandler) DeleteNotice(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)
	if err := s.noticeSvc.DeleteNotice(c.Request.Context(), memberID, c.Param("notice_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, "Notice deleted")
}

func (s *NoticeHandler) GetStatistics(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)

	stats, err := s.noticeSvc.GetStatistics(c.Request.Context(), memberID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// MarkRead 已读清零某一类未读计数
func (s *NoticeHandler) MarkRead(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)
	if err := s.noticeSvc.ResetCategory(c.Request.Context(), memberID, c.Param("category")); err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, "Marked as read")
}
