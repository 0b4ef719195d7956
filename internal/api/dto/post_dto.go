package dto

// PostDraftDTO 发帖/编辑共用载荷，话题传原文，id 由服务端派生
type PostDraftDTO struct {
	Title         string   `json:"title" binding:"required" validate:"min=1,max=60"`
	Paragraphs    []string `json:"paragraphsArr" binding:"required"`
	ChannelID     string   `json:"channelId" binding:"required"`
	TopicContents []string `json:"topicContentsArr" validate:"max=5"`
	CuedMemberIDs []string `json:"cuedMemberIdsArr"`
}

type PinCommentDTO struct {
	CommentID string `json:"commentId"`
}
