package handler

import (
	"Trellis/internal/api/middleware"
	"Trellis/internal/pkg/response"
	"Trellis/internal/service"

	"github.com/gin-gonic/gin"
)

type RelationHandler struct {
	relationSvc service.RelationService
}

func NewRelationHandler(relationSvc service.RelationService) *RelationHandler {
	return &RelationHandler{relationSvc: relationSvc}
}

func (s *RelationHandler) Block(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)
	if err := s.relationSvc.Block(c.Request.Context(), memberID, c.Param("member_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, "Blocked")
}

func (s *RelationHandler) Unblock(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)
	if err := s.relationSvc.Unblock(c.Request.Context(), memberID, c.Param("member_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, "Unblocked")
}

func (s *RelationHandler) GetBlockedMembers(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)
	page, pageSize := getPagination(c)

	members, err := s.relationSvc.ListBlocked(c.Request.Context(), memberID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, members)
}

func (s *RelationHandler) Follow(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)
	if err := s.relationSvc.Follow(c.Request.Context(), memberID, c.Param("member_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, "Followed")
}

func (s *RelationHandler) Unfollow(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)
	if err := s.relationSvc.Unfollow(c.Request.Context(), memberID, c.Param("member_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, "Unfollowed")
}

func (s *RelationHandler) GetFollowings(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)
	page, pageSize := getPagination(c)

	members, err := s.relationSvc.ListFollowing(c.Request.Context(), memberID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, members)
}

func (s *RelationHandler) GetFollowedBy(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)
	page, pageSize := getPagination(c)

	members, err := s.relationSvc.ListFollowedBy(c.Request.Context(), memberID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, members)
}

// ToggleSavedPost 收藏翻转，响应携带翻转后的状态
func (s *RelationHandler) ToggleSavedPost(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)

	saved, err := s.relationSvc.ToggleSavedPost(c.Request.Context(), memberID, c.Param("post_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]bool{"saved": saved})
}

func (s *RelationHandler) GetSavedPosts(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)
	page, pageSize := getPagination(c)

	posts, err := s.relationSvc.ListSavedPosts(c.Request.Context(), memberID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}
