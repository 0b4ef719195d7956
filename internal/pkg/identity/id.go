package identity

import (
	"encoding/base64"
	"math/rand"
	"strings"
)

// 实体 id 规则：
//
//   - 会员 id：8 ~ 9 位，大写，'M' 开头
//   - 通知 id：6 ~ 7 位，大写，'N' 开头（旧式随机通知 id，现已由组合 id 取代）
//   - 话题 id：'T' + 话题内容的 base64 编码，长度不限
//   - 评论 id：12 ~ 13 位，大写，一级评论 'C' 开头，子评论 'D' 开头
//   - 帖子 id：10 ~ 11 位，大写，'P' 开头
//
// 长度均含前缀字符。随机部分为 base36 大写字符；令牌为 8 位大写十六进制。

const (
	CategoryMember     = "member"
	CategoryNotice     = "notice"
	CategoryComment    = "comment"
	CategorySubcomment = "subcomment"
	CategoryPost       = "post"
	CategoryTopic      = "topic"
)

const base36Digits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
const hexDigits = "0123456789ABCDEF"

// idSpec 每个类别的前缀与总长度区间（含前缀）
type idSpec struct {
	prefix    byte
	minLength int
	maxLength int
}

var idSpecs = map[string]idSpec{
	CategoryMember:     {'M', 8, 9},
	CategoryNotice:     {'N', 6, 7},
	CategoryComment:    {'C', 12, 13},
	CategorySubcomment: {'D', 12, 13},
	CategoryPost:       {'P', 10, 11},
}

var categoryByPrefix = map[byte]string{
	'M': CategoryMember,
	'N': CategoryNotice,
	'C': CategoryComment,
	'D': CategorySubcomment,
	'P': CategoryPost,
	'T': CategoryTopic,
}

// Generator 随机 id 生成器。随机源可注入，便于测试时给定确定序列。
type Generator struct {
	intn func(n int) int
}

func NewGenerator(intn func(n int) int) *Generator {
	if intn == nil {
		intn = rand.Intn
	}
	return &Generator{intn: intn}
}

var std = NewGenerator(nil)

// Default 进程级默认生成器
func Default() *Generator {
	return std
}

// CreateID 按类别生成随机 id，总长度落在该类别的长度区间内
func (g *Generator) CreateID(category string) string {
	spec, ok := idSpecs[category]
	if !ok {
		return ""
	}
	tail := spec.minLength - 1 + g.intn(spec.maxLength-spec.minLength+1)
	var b strings.Builder
	b.WriteByte(spec.prefix)
	for i := 0; i < tail; i++ {
		b.WriteByte(base36Digits[g.intn(36)])
	}
	return b.String()
}

// CreateToken 生成 8 位大写十六进制令牌（邮箱验证 / 重置密码）
func (g *Generator) CreateToken() string {
	var b strings.Builder
	for i := 0; i < 8; i++ {
		b.WriteByte(hexDigits[g.intn(16)])
	}
	return b.String()
}

// CreateImageName 生成 10 位小写图片文件名主体
func (g *Generator) CreateImageName() string {
	var b strings.Builder
	for i := 0; i < 10; i++ {
		b.WriteByte(base36Digits[g.intn(36)])
	}
	return strings.ToLower(b.String())
}

// CreateTopicID 话题 id 由话题内容决定：相同内容必得相同 id，
// 这样同一话题在不同帖子间可以按 id 直接 upsert 聚合。
func CreateTopicID(content string) string {
	return "T" + base64.StdEncoding.EncodeToString([]byte(content))
}

// ParseTopicID 还原话题 id 中的原始内容
func ParseTopicID(topicID string) (string, bool) {
	if len(topicID) < 2 || topicID[0] != 'T' {
		return "", false
	}
	raw, err := base64.StdEncoding.DecodeString(topicID[1:])
	if err != nil {
		return "", false
	}
	return string(raw), true
}
