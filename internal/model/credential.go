package model

import "time"

// Credential 登录凭据行，分区键为邮箱地址散列，行键区分
// 登录口令与各类验证 Token
type Credential struct {
	EmailAddressHash string    `gorm:"primaryKey;type:varchar(64)" json:"-"`
	RowKey           string    `gorm:"primaryKey;type:varchar(32)" json:"-"`
	MemberID         string    `gorm:"type:varchar(16);not null;index:idx_member_id" json:"memberId"`
	PasswordHash     string    `gorm:"type:varchar(128)" json:"-"`
	Token            string    `gorm:"type:varchar(16)" json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (Credential) TableName() string {
	return "credentials"
}
