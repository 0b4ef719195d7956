package model

import "time"

// SavedPost 收藏关系行，IsActive 翻转而非删除
type SavedPost struct {
	MemberID  string    `gorm:"primaryKey;type:varchar(16)" json:"memberId"`
	PostID    string    `gorm:"primaryKey;type:varchar(16)" json:"postId"`
	IsActive  bool      `gorm:"type:tinyint(1);not null;default:1" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (SavedPost) TableName() string {
	return "saved_posts"
}
