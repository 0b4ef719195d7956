package dto

type SignupDTO struct {
	EmailAddress string `json:"emailAddress" binding:"required" validate:"email"`
	Password     string `json:"password" binding:"required" validate:"min=8,max=64"`
}

type VerifyEmailDTO struct {
	EmailAddress string `json:"emailAddress" binding:"required" validate:"email"`
	ProviderID   string `json:"providerId"`
	Token        string `json:"token" binding:"required" validate:"len=8"`
}

type LoginDTO struct {
	EmailAddress string `json:"emailAddress" binding:"required" validate:"email"`
	Password     string `json:"password" binding:"required"`
}

// UpdateMemberInfoDTO 资料更新，nil 字段保持不变
type UpdateMemberInfoDTO struct {
	Nickname   *string `json:"nickname,omitempty"`
	BriefIntro *string `json:"briefIntro,omitempty"`
	Gender     *int    `json:"gender,omitempty"`
	Birthday   *int64  `json:"birthdayBySecond,omitempty"`
}
