package dto

// ExpressAttitudeDTO 目标可为帖子本身或帖下评论/楼中楼
type ExpressAttitudeDTO struct {
	TargetID string `json:"targetId" binding:"required"`
	Attitude int    `json:"attitude" validate:"min=-1,max=1"`
}
