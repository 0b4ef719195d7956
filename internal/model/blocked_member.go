package model

import "time"

// BlockedMember 拉黑关系行，分区键为拉黑者，行键为被拉黑者
type BlockedMember struct {
	BlockerID string    `gorm:"primaryKey;type:varchar(16)" json:"blockerId"`
	BlockedID string    `gorm:"primaryKey;type:varchar(16)" json:"blockedId"`
	IsActive  bool      `gorm:"type:tinyint(1);not null;default:1" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (BlockedMember) TableName() string {
	return "blocked_members"
}
