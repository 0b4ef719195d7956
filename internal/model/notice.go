package model

import "time"

// Notice 通知行，分区键为被通知会员，行键为确定性通知 ID，
// 同一发起者对同一目标重复动作只会覆盖同一行
type Notice struct {
	MemberID     string    `gorm:"primaryKey;type:varchar(16)" json:"memberId"`
	NoticeID     string    `gorm:"primaryKey;type:varchar(64)" json:"noticeId"`
	Category     string    `gorm:"type:varchar(8);not null;index:idx_member_category" json:"category"`
	InitiateID   string    `gorm:"type:varchar(16);not null" json:"initiateId"`
	Nickname     string    `gorm:"type:varchar(32);not null" json:"nickname"`
	PostID       string    `gorm:"type:varchar(16)" json:"postId"`
	PostTitle    string    `gorm:"type:varchar(64)" json:"postTitle"`
	CommentID    string    `gorm:"type:varchar(16)" json:"commentId"`
	CommentBrief string    `gorm:"type:varchar(32)" json:"commentBrief"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Notice) TableName() string {
	return "notices"
}
