package repository

import (
	"Trellis/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 凭据行键
const (
	CredentialRowLogin       = "Login"
	CredentialRowVerifyEmail = "VerifyEmailAddress"
	CredentialRowResetPass   = "ResetPassword"
)

type CredentialRepo interface {
	GetCredential(ctx context.Context, emailAddressHash, rowKey string) (*model.Credential, error)
	InsertCredential(ctx context.Context, credential *model.Credential) error
	UpsertCredential(ctx context.Context, credential *model.Credential) error
}

type CredentialRepoImpl struct {
	db *gorm.DB
}

func NewCredentialRepo(db *gorm.DB) CredentialRepo {
	return &CredentialRepoImpl{db: db}
}

// GetCredential 查询凭据行，无行返回 nil, nil
func (s *CredentialRepoImpl) GetCredential(ctx context.Context, emailAddressHash, rowKey string) (*model.Credential, error) {
	var credential model.Credential
	result := s.db.WithContext(ctx).
		Where("email_address_hash = ? AND row_key = ?", emailAddressHash, rowKey).
		First(&credential)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &credential, nil
}

// InsertCredential 纯插入，主键冲突原样返回，由上层判重
func (s *CredentialRepoImpl) InsertCredential(ctx context.Context, credential *model.Credential) error {
	return s.db.WithContext(ctx).Create(credential).Error
}

func (s *CredentialRepoImpl) UpsertCredential(ctx context.Context, credential *model.Credential) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email_address_hash"}, {Name: "row_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"member_id", "password_hash", "token", "updated_at"}),
		}).
		Create(credential).Error
}
