package consts

// 会员状态码：负数为封停/注销，0 为待邮箱验证，200 以上为正常。
// 状态码对 100 取模等于 1 表示"已编辑"子状态（201 = 正常且已编辑）。
const (
	MemberStatusDeactivated = -3
	MemberStatusSuspended   = -2
	MemberStatusPending     = 0
	MemberStatusNormal      = 200
)

// 内容状态码：帖子 / 评论通用
const (
	ContentStatusDeleted = -1
	ContentStatusNormal  = 200
	ContentStatusEdited  = 201
)

const (
	TopicStatusNormal = 200
)

// 性别：-1 保密
const (
	GenderSecret = -1
	GenderFemale = 0
	GenderMale   = 1
)

const (
	MimePrefixImage = "image"
)

// 内容长度限制
const (
	MaxTitleLength     = 60
	MaxContentLength   = 2000
	MaxNicknameLength  = 13
	MaxBriefIntroLen   = 150
	ContentBriefLength = 21
	NicknameBriefLimit = 10
)

// 自建账号体系的 provider 标识
const ProviderTrellis = "TrellisMemberSystem"

const (
	MaxTopicCountPerPost = 5
)

// 图片上传限制
const (
	MaxImageCountPerPost = 9
	MaxImageWidth        = 960
	MaxImageHeight       = 1600
)
