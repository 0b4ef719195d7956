package handler

import (
	"Trellis/internal/api/dto"
	"Trellis/internal/api/middleware"
	"Trellis/internal/pkg/response"
	"Trellis/internal/pkg/util"
	"Trellis/internal/service"
	"mime/multipart"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc   service.PostService
	uploadSvc service.UploadService
}

func NewPostHandler(postSvc service.PostService, uploadSvc service.UploadService) *PostHandler {
	return &PostHandler{postSvc: postSvc, uploadSvc: uploadSvc}
}

func (s *PostHandler) bindDraft(c *gin.Context) (*service.PostDraft, error) {
	var draftDTO dto.PostDraftDTO
	if err := c.ShouldBind(&draftDTO); err != nil {
		return nil, err
	}
	if err := util.ValidateDTO(&draftDTO); err != nil {
		return nil, err
	}
	return &service.PostDraft{
		Title:         draftDTO.Title,
		Paragraphs:    draftDTO.Paragraphs,
		ChannelID:     draftDTO.ChannelID,
		TopicContents: draftDTO.TopicContents,
		CuedMemberIDs: draftDTO.CuedMemberIDs,
	}, nil
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)

	draft, err := s.bindDraft(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	postID, err := s.postSvc.CreatePost(c.Request.Context(), memberID, draft)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]string{"postId": postID})
}

func (s *PostHandler) GetPost(c *gin.Context) {
	post, err := s.postSvc.GetPost(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) EditPost(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)

	draft, err := s.bindDraft(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = s.postSvc.EditPost(c.Request.Context(), memberID, c.Param("post_id"), draft); err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, "Post edited")
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)
	if err := s.postSvc.DeletePost(c.Request.Context(), memberID, c.Param("post_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, "Post deleted")
}

// PinComment commentId 置空表示取消置顶
func (s *PostHandler) PinComment(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)

	var pinDTO dto.PinCommentDTO
	if err := c.ShouldBind(&pinDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := s.postSvc.PinComment(c.Request.Context(), memberID, c.Param("post_id"), pinDTO.CommentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, "Pinned comment updated")
}

func (s *PostHandler) SearchPosts(c *gin.Context) {
	page, pageSize := getPagination(c)

	posts, err := s.postSvc.SearchPosts(c.Request.Context(), c.Query("keyword"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) GetLatestPosts(c *gin.Context) {
	page, pageSize := getPagination(c)

	posts, err := s.postSvc.ListLatestPosts(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) GetPostsByChannel(c *gin.Context) {
	page, pageSize := getPagination(c)

	posts, err := s.postSvc.ListPostsByChannel(c.Request.Context(), c.Param("channel_id"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) GetPostsByTopic(c *gin.Context) {
	page, pageSize := getPagination(c)

	posts, err := s.postSvc.ListPostsByTopic(c.Request.Context(), c.Param("topic_id"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// UploadImages 多文件字段 files，上传后返回帖子的完整图片名数组
func (s *PostHandler) UploadImages(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, service.ErrInvalidRequestInfo)
		return
	}
	var files []*multipart.FileHeader
	if form != nil {
		files = form.File["files"]
	}

	imageFullNames, err := s.uploadSvc.UploadPostImages(c.Request.Context(), memberID, c.Param("post_id"), files)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string][]string{"imageFullNamesArr": imageFullNames})
}
