package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCuedMemberIDs(t *testing.T) {
	content := "感谢 @M1A2B3C4 和 @M9Z8Y7X6 的建议，@M1A2B3C4 说得对"
	ids := ExtractCuedMemberIDs(content)

	// 按出现顺序去重
	assert.Equal(t, []string{"M1A2B3C4", "M9Z8Y7X6"}, ids)
}

func TestExtractCuedMemberIDsEmpty(t *testing.T) {
	assert.Empty(t, ExtractCuedMemberIDs("没有艾特任何人"))
	assert.Empty(t, ExtractCuedMemberIDs(""))
}

func TestGetContentBrief(t *testing.T) {
	short := "短内容"
	assert.Equal(t, short, GetContentBrief(short))

	long := strings.Repeat("字", 30)
	brief := GetContentBrief(long)
	assert.Equal(t, strings.Repeat("字", 21)+"...", brief)
}

func TestGetNicknameBrief(t *testing.T) {
	assert.Equal(t, "ayaka", GetNicknameBrief("ayaka"))
	// 恰好 10 字不截断
	assert.Equal(t, "十个字昵称刚好不截断", GetNicknameBrief("十个字昵称刚好不截断"))

	// 超过 10 字保留前 7 字补省略号
	assert.Equal(t, "这是一个超过十...", GetNicknameBrief("这是一个超过十个字的很长昵称"))
}

func TestVerifyEmailAddress(t *testing.T) {
	valid := []string{
		"ayaka@example.com",
		"a.b+c@sub.domain.org",
		"USER@EXAMPLE.IO",
	}
	for _, addr := range valid {
		assert.True(t, VerifyEmailAddress(addr), addr)
	}

	invalid := []string{
		"",
		"plain",
		"@example.com",
		"user@",
		"user@domain",
		"user @example.com",
	}
	for _, addr := range invalid {
		assert.False(t, VerifyEmailAddress(addr), addr)
	}
}

func TestVerifyPassword(t *testing.T) {
	assert.True(t, VerifyPassword("abcdef12"))
	assert.True(t, VerifyPassword("P4ssword!"))

	assert.False(t, VerifyPassword("short1"))
	assert.False(t, VerifyPassword("onlyletters"))
	assert.False(t, VerifyPassword("12345678"))
}

func TestHashEmailAddress(t *testing.T) {
	first := HashEmailAddress("ayaka@example.com")
	second := HashEmailAddress("ayaka@example.com")
	other := HashEmailAddress("other@example.com")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Len(t, first, 64)
}
