package handler

import (
	"Trellis/internal/api/dto"
	"Trellis/internal/api/middleware"
	"Trellis/internal/pkg/response"
	"Trellis/internal/pkg/util"
	"Trellis/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentSvc service.CommentService
}

func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{commentSvc: commentSvc}
}

func (s *CommentHandler) CreateComment(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)

	var createDTO dto.CreateCommentDTO
	if err := c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	commentID, err := s.commentSvc.CreateComment(c.Request.Context(), memberID,
		createDTO.PostID, createDTO.ParentID, createDTO.Content, createDTO.CuedMemberIDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]string{"commentId": commentID})
}

func (s *CommentHandler) GetComment(c *gin.Context) {
	comment, err := s.commentSvc.GetComment(c.Request.Context(), c.Param("comment_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

func (s *CommentHandler) GetComments(c *gin.Context) {
	page, pageSize := getPagination(c)

	comments, err := s.commentSvc.ListComments(c.Request.Context(), c.Param("post_id"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

func (s *CommentHandler) GetSubcomments(c *gin.Context) {
	page, pageSize := getPagination(c)

	comments, err := s.commentSvc.ListSubcomments(c.Request.Context(), c.Param("comment_id"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

func (s *CommentHandler) EditComment(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)

	var editDTO dto.EditCommentDTO
	if err := c.ShouldBind(&editDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&editDTO); err != nil {
		response.Error(c, err)
		return
	}
	err := s.commentSvc.EditComment(c.Request.Context(), memberID,
		c.Param("comment_id"), editDTO.Content, editDTO.CuedMemberIDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, "Comment edited")
}

func (s *CommentHandler) DeleteComment(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)
	if err := s.commentSvc.DeleteComment(c.Request.Context(), memberID, c.Param("comment_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, "Comment deleted")
}
