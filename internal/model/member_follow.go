package model

import "time"

type MemberFollow struct {
	FollowerID  string    `gorm:"primaryKey;type:varchar(16)" json:"followerId"`
	FollowingID string    `gorm:"primaryKey;type:varchar(16);index:idx_following_id" json:"followingId"`
	IsActive    bool      `gorm:"type:tinyint(1);not null;default:1" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (MemberFollow) TableName() string {
	return "member_follows"
}
