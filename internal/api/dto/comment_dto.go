package dto

// CreateCommentDTO parentId 为空或等于 postId 时为顶级评论
type CreateCommentDTO struct {
	PostID        string   `json:"postId" binding:"required"`
	ParentID      string   `json:"parentId"`
	Content       string   `json:"content" binding:"required" validate:"min=1,max=2000"`
	CuedMemberIDs []string `json:"cuedMemberIdsArr"`
}

type EditCommentDTO struct {
	Content       string   `json:"content" binding:"required" validate:"min=1,max=2000"`
	CuedMemberIDs []string `json:"cuedMemberIdsArr"`
}
