package util

import (
	"Trellis/internal/pkg/consts"
	"crypto/sha256"
	"encoding/hex"
	"regexp"
)

var cueRegex = regexp.MustCompile(`@([A-Z0-9]+)`)
var emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// VerifyEmailAddress 校验邮箱地址格式
func VerifyEmailAddress(emailAddress string) bool {
	return emailRegex.MatchString(emailAddress)
}

// VerifyPassword 口令要求 8 位以上且同时含字母与数字
func VerifyPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter, hasDigit := false, false
	for _, c := range password {
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			hasLetter = true
		}
	}
	return hasLetter && hasDigit
}

// HashEmailAddress 邮箱地址散列，作为凭据表的分区键
func HashEmailAddress(emailAddress string) string {
	sum := sha256.Sum256([]byte(emailAddress))
	return hex.EncodeToString(sum[:])
}

// ExtractCuedMemberIDs 提取正文中 @ 到的成员 ID 列表，按出现顺序去重
func ExtractCuedMemberIDs(rawContent string) []string {
	matches := cueRegex.FindAllStringSubmatch(rawContent, -1)

	idSet := make(map[string]struct{})
	ids := make([]string, 0)

	for _, m := range matches {
		if len(m) > 1 {
			memberID := m[1]
			if _, exists := idSet[memberID]; !exists {
				idSet[memberID] = struct{}{}
				ids = append(ids, memberID)
			}
		}
	}

	return ids
}

// GetContentBrief 截取正文摘要，超长按 rune 截断并补省略号
func GetContentBrief(content string) string {
	return truncateRunes(content, consts.ContentBriefLength)
}

// GetNicknameBrief 截取昵称摘要，超过 10 字保留前 7 字补省略号
func GetNicknameBrief(nickname string) string {
	runes := []rune(nickname)
	if len(runes) <= consts.NicknameBriefLimit {
		return nickname
	}
	return string(runes[:7]) + "..."
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// PtrInt 用于将 int 转换为 *int
func PtrInt(i int) *int {
	return &i
}

// PtrInt64 用于将 int64 转换为 *int64
func PtrInt64(i int64) *int64 {
	return &i
}

// PtrStr 用于将 string 转换为 *string
func PtrStr(s string) *string {
	return &s
}

// PtrFloat32 用于将 float32 转换为 *float32
func PtrFloat32(f float32) *float32 {
	return &f
}
