package service

import (
	"Trellis/internal/model"
	"Trellis/internal/pkg/consts"
	"Trellis/internal/pkg/es"
	"Trellis/internal/pkg/identity"
	"Trellis/internal/pkg/mongo"
	"Trellis/internal/pkg/redis"
	"Trellis/internal/pkg/security"
	"Trellis/internal/pkg/util"
	"Trellis/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.mongodb.org/mongo-driver/bson"
)

type MemberService interface {
	Signup(ctx context.Context, emailAddress, password string) (string, error)
	VerifyEmail(ctx context.Context, emailAddress, providerID, token string) error
	Login(ctx context.Context, emailAddress, password string) (string, error)
	Logout(ctx context.Context, tokenSignature string) error
	GetInfo(ctx context.Context, memberID string) (*model.RestrictedMemberInfo, error)
	UpdateInfo(ctx context.Context, callerID, memberID string, info *MemberInfoUpdate) error
	GetStatistics(ctx context.Context, memberID string) (*model.MemberStatistics, error)
}

// MemberInfoUpdate 资料更新载荷，nil 字段保持不变
type MemberInfoUpdate struct {
	Nickname   *string
	BriefIntro *string
	Gender     *int
	Birthday   *int64
}

type memberServiceImpl struct {
	memberRepo     mongo.MemberRepo
	memberStats    mongo.MemberStatsRepo
	notifStats     mongo.NotificationStatsRepo
	journalRepo    mongo.JournalRepo
	credentialRepo repository.CredentialRepo
	postES         es.PostRepo
	generator      *identity.Generator
}

func NewMemberService(
	memberRepo mongo.MemberRepo,
	memberStats mongo.MemberStatsRepo,
	notifStats mongo.NotificationStatsRepo,
	journalRepo mongo.JournalRepo,
	credentialRepo repository.CredentialRepo,
	postES es.PostRepo,
	generator *identity.Generator,
) MemberService {
	return &memberServiceImpl{
		memberRepo:     memberRepo,
		memberStats:    memberStats,
		notifStats:     notifStats,
		journalRepo:    journalRepo,
		credentialRepo: credentialRepo,
		postES:         postES,
		generator:      generator,
	}
}

// Signup 注册：写登录凭据行与验证令牌行，建待验证会员文档。
// 令牌本应随验证邮件送达，邮件投递不在本服务内，先行落日志
func (s *memberServiceImpl) Signup(ctx context.Context, emailAddress, password string) (string, error) {
	emailAddress = strings.TrimSpace(strings.ToLower(emailAddress))
	if !util.VerifyEmailAddress(emailAddress) {
		return "", ErrImproperEmailAddress
	}
	if !util.VerifyPassword(password) {
		return "", ErrImproperPassword
	}

	emailAddressHash := util.HashEmailAddress(emailAddress)
	existing, err := s.credentialRepo.GetCredential(ctx, emailAddressHash, repository.CredentialRowLogin)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrEmailAddressTaken
	}

	memberID := s.generator.CreateID(identity.CategoryMember)
	token := s.generator.CreateToken()
	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return "", err
	}

	// 登录凭据行纯插入，并发注册同一邮箱以主键冲突判重
	now := time.Now()
	if err = s.credentialRepo.InsertCredential(ctx, &model.Credential{
		EmailAddressHash: emailAddressHash,
		RowKey:           repository.CredentialRowLogin,
		MemberID:         memberID,
		PasswordHash:     passwordHash,
		CreatedAt:        now,
		UpdatedAt:        now,
	}); err != nil {
		if isDuplicateError(err) {
			return "", ErrEmailAddressTaken
		}
		return "", err
	}
	if err = s.credentialRepo.UpsertCredential(ctx, &model.Credential{
		EmailAddressHash: emailAddressHash,
		RowKey:           repository.CredentialRowVerifyEmail,
		MemberID:         memberID,
		Token:            token,
		CreatedAt:        now,
		UpdatedAt:        now,
	}); err != nil {
		return "", err
	}

	// 昵称初始为邮箱本地部分，待会员自行修改
	nickname := emailAddress
	if at := strings.IndexByte(emailAddress, '@'); at > 0 {
		nickname = emailAddress[:at]
	}
	member := &model.MemberComprehensive{
		MemberID:               memberID,
		ProviderID:             consts.ProviderTrellis,
		RegisteredTimeBySecond: now.Unix(),
		EmailAddress:           emailAddress,
		Nickname:               nickname,
		Gender:                 consts.GenderSecret,
		Status:                 consts.MemberStatusPending,
	}
	if err = s.memberRepo.Insert(ctx, member); err != nil {
		return "", err
	}

	log.InfoContext(ctx, "Email verification token issued",
		"member_id", memberID, "provider_id", consts.ProviderTrellis, "token", token)
	return memberID, nil
}

// VerifyEmail 验证邮箱：令牌核对通过后激活会员并建统计文档
func (s *memberServiceImpl) VerifyEmail(ctx context.Context, emailAddress, providerID, token string) error {
	emailAddress = strings.TrimSpace(strings.ToLower(emailAddress))
	if !util.VerifyEmailAddress(emailAddress) || token == "" {
		return ErrInvalidRequestInfo
	}
	if providerID == "" {
		providerID = consts.ProviderTrellis
	}

	emailAddressHash := util.HashEmailAddress(emailAddress)
	credential, err := s.credentialRepo.GetCredential(ctx, emailAddressHash, repository.CredentialRowVerifyEmail)
	if err != nil {
		return err
	}
	if credential == nil {
		return ErrCredentialNotFound
	}
	if credential.Token != strings.ToUpper(token) {
		return ErrTokenNotMatch
	}

	member, err := s.memberRepo.FindByID(ctx, credential.MemberID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}
	// 仅待验证状态可激活，已激活或已封停一律拒绝
	if member.Status != consts.MemberStatusPending {
		return ErrActivateNotAllowed
	}

	now := time.Now()
	if err = s.memberRepo.Activate(ctx, member.MemberID, providerID, now.Unix()); err != nil {
		return err
	}
	if err = s.memberStats.Insert(ctx, &model.MemberStatistics{MemberID: member.MemberID}); err != nil {
		log.ErrorContext(ctx, "Member activated but failed to create member statistics",
			"aggregate", "statistics.member", "member_id", member.MemberID, "err", err)
	}
	if err = s.notifStats.Insert(ctx, &model.NotificationStatistics{MemberID: member.MemberID}); err != nil {
		log.ErrorContext(ctx, "Member activated but failed to create notification statistics",
			"aggregate", "statistics.notification", "member_id", member.MemberID, "err", err)
	}
	if err = s.journalRepo.InsertLogin(ctx, &model.LoginJournal{
		MemberID:   member.MemberID,
		Category:   "success",
		ProviderID: providerID,
		Timestamp:  now.Format(time.RFC3339),
		Message:    "Email address verified.",
	}); err != nil {
		log.ErrorContext(ctx, "Member activated but failed to write login journal",
			"aggregate", "journal.login", "member_id", member.MemberID, "err", err)
	}
	return nil
}

// Login 登录：口令核对通过后签发 JWT 并落登录流水
func (s *memberServiceImpl) Login(ctx context.Context, emailAddress, password string) (string, error) {
	emailAddress = strings.TrimSpace(strings.ToLower(emailAddress))
	if !util.VerifyEmailAddress(emailAddress) || password == "" {
		return "", ErrInvalidRequestInfo
	}

	emailAddressHash := util.HashEmailAddress(emailAddress)
	credential, err := s.credentialRepo.GetCredential(ctx, emailAddressHash, repository.CredentialRowLogin)
	if err != nil {
		return "", err
	}
	if credential == nil {
		return "", ErrCredentialNotFound
	}
	if err = security.CheckPasswordHash(password, credential.PasswordHash); err != nil {
		s.journalLogin(ctx, credential.MemberID, "error", "Password does not match.")
		return "", ErrInvalidIdentity
	}

	member, err := s.memberRepo.FindByID(ctx, credential.MemberID)
	if err != nil {
		return "", err
	}
	if member == nil {
		return "", ErrMemberNotFound
	}
	if member.Status < 0 {
		s.journalLogin(ctx, member.MemberID, "error", "Member suspended or deactivated.")
		return "", ErrMemberSuspended
	}
	if member.Status == consts.MemberStatusPending {
		return "", ErrActivateNotAllowed
	}

	token, err := security.GenerateToken(member.MemberID)
	if err != nil {
		return "", err
	}
	s.journalLogin(ctx, member.MemberID, "success", "Login.")
	return token, nil
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}

func (s *memberServiceImpl) journalLogin(ctx context.Context, memberID, category, message string) {
	if err := s.journalRepo.InsertLogin(ctx, &model.LoginJournal{
		MemberID:   memberID,
		Category:   category,
		ProviderID: consts.ProviderTrellis,
		Timestamp:  time.Now().Format(time.RFC3339),
		Message:    message,
	}); err != nil {
		log.ErrorContext(ctx, "Failed to write login journal",
			"aggregate", "journal.login", "member_id", memberID, "err", err)
	}
}

// Logout 注销当前 token：签名进撤销名单，存活期与 token 一致
func (s *memberServiceImpl) Logout(ctx context.Context, tokenSignature string) error {
	if tokenSignature == "" {
		return ErrInvalidIdentity
	}
	return redis.SetWithExpiration(ctx, consts.TokenRevokedKey+tokenSignature, 1, security.JWTExpirationTime)
}

func (s *memberServiceImpl) GetInfo(ctx context.Context, memberID string) (*model.RestrictedMemberInfo, error) {
	verify := identity.VerifyID(memberID)
	if !verify.IsValid || verify.Category != identity.CategoryMember {
		return nil, ErrInvalidID
	}
	member, err := s.memberRepo.FindByID(ctx, verify.ID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	return RestrictedFromMemberComprehensive(member), nil
}

// UpdateInfo 更新资料，仅本人可操作。昵称变更会在脱离上下文中
// 同步到帖子索引，搜索结果里的作者名随之更新
func (s *memberServiceImpl) UpdateInfo(ctx context.Context, callerID, memberID string, info *MemberInfoUpdate) error {
	verify := identity.VerifyID(memberID)
	if !verify.IsValid || verify.Category != identity.CategoryMember {
		return ErrInvalidID
	}
	memberID = verify.ID
	if callerID != memberID {
		return ErrPermissionDenied
	}

	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}
	if member.Status < 0 {
		return ErrMemberSuspended
	}

	update := bson.M{}
	nicknameChanged := false
	if info.Nickname != nil {
		nickname := strings.TrimSpace(*info.Nickname)
		if nickname == "" || len([]rune(nickname)) > consts.MaxNicknameLength {
			return ErrInvalidRequestInfo
		}
		if nickname != member.Nickname {
			update["nickname"] = nickname
			nicknameChanged = true
		}
	}
	if info.BriefIntro != nil {
		if len([]rune(*info.BriefIntro)) > consts.MaxBriefIntroLen {
			return ErrContentTooLong
		}
		update["briefIntro"] = *info.BriefIntro
	}
	if info.Gender != nil {
		switch *info.Gender {
		case consts.GenderSecret, consts.GenderFemale, consts.GenderMale:
			update["gender"] = *info.Gender
		default:
			return ErrInvalidRequestInfo
		}
	}
	if info.Birthday != nil {
		update["birthdayBySecond"] = *info.Birthday
	}
	if len(update) == 0 {
		return nil
	}

	if err = s.memberRepo.UpdateInfo(ctx, memberID, update); err != nil {
		return err
	}

	if nicknameChanged {
		nickname := update["nickname"].(string)
		go func(ctx context.Context) {
			if err := s.postES.UpdatePostMemberNickname(ctx, memberID, nickname); err != nil {
				log.ErrorContext(ctx, "Member info updated but failed to sync nickname to post index",
					"member_id", memberID, "err", err)
			}
		}(detachedContext(ctx))
	}
	return nil
}

// GetStatistics 会员统计，未建档等价于全零
func (s *memberServiceImpl) GetStatistics(ctx context.Context, memberID string) (*model.MemberStatistics, error) {
	verify := identity.VerifyID(memberID)
	if !verify.IsValid || verify.Category != identity.CategoryMember {
		return nil, ErrInvalidID
	}
	stats, err := s.memberStats.FindByID(ctx, verify.ID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return &model.MemberStatistics{MemberID: verify.ID}, nil
	}
	return stats, nil
}
