package model

// MemberComprehensive 会员聚合文档，存于 comprehensive.member
type MemberComprehensive struct {
	MemberID               string `bson:"memberId" json:"memberId"`
	ProviderID             string `bson:"providerId" json:"-"`
	RegisteredTimeBySecond int64  `bson:"registeredTimeBySecond" json:"registeredTimeBySecond"`
	VerifiedTimeBySecond   int64  `bson:"verifiedTimeBySecond" json:"verifiedTimeBySecond"`
	EmailAddress           string `bson:"emailAddress" json:"-"`
	Nickname               string `bson:"nickname" json:"nickname"`
	BriefIntro             string `bson:"briefIntro" json:"briefIntro"`
	Gender                 int    `bson:"gender" json:"gender"`
	BirthdayBySecond       int64  `bson:"birthdayBySecond" json:"birthdayBySecond"`
	AvatarImageFullName    string `bson:"avatarImageFullName" json:"avatarImageFullName"`

	// 管理字段：状态码含义见 consts
	Status          int  `bson:"status" json:"status"`
	AllowPosting    bool `bson:"allowPosting" json:"allowPosting"`
	AllowCommenting bool `bson:"allowCommenting" json:"allowCommenting"`
}

// ConciseMemberInfo @ 到的会员的摘要信息，嵌入帖子/评论文档
type ConciseMemberInfo struct {
	MemberID string `bson:"memberId" json:"memberId"`
	Nickname string `bson:"nickname" json:"nickname"`
}

// RestrictedMemberInfo 对外可见的会员信息投影
type RestrictedMemberInfo struct {
	MemberID               string `json:"memberId"`
	RegisteredTimeBySecond int64  `json:"registeredTimeBySecond"`
	VerifiedTimeBySecond   int64  `json:"verifiedTimeBySecond"`
	Nickname               string `json:"nickname"`
	BriefIntro             string `json:"briefIntro"`
	Gender                 int    `json:"gender"`
	BirthdayBySecond       int64  `json:"birthdayBySecond"`
	AvatarImageFullName    string `json:"avatarImageFullName"`
	Status                 int    `json:"status"`
}
