package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIDRoundTrip(t *testing.T) {
	g := Default()
	categories := []string{CategoryMember, CategoryNotice, CategoryComment, CategorySubcomment, CategoryPost}

	for _, category := range categories {
		for i := 0; i < 200; i++ {
			id := g.CreateID(category)
			result := VerifyID(id)
			require.True(t, result.IsValid, "generated id %q should verify", id)
			assert.Equal(t, category, result.Category)
			assert.Equal(t, id, result.ID)
		}
	}
}

func TestCreateIDLengthBands(t *testing.T) {
	g := Default()
	cases := []struct {
		category string
		prefix   byte
		min, max int
	}{
		{CategoryMember, 'M', 8, 9},
		{CategoryNotice, 'N', 6, 7},
		{CategoryComment, 'C', 12, 13},
		{CategorySubcomment, 'D', 12, 13},
		{CategoryPost, 'P', 10, 11},
	}
	for _, c := range cases {
		for i := 0; i < 100; i++ {
			id := g.CreateID(c.category)
			assert.Equal(t, c.prefix, id[0])
			assert.GreaterOrEqual(t, len(id), c.min)
			assert.LessOrEqual(t, len(id), c.max)
			assert.Equal(t, strings.ToUpper(id), id)
		}
	}
}

func TestCreateIDDeterministicSource(t *testing.T) {
	g := NewGenerator(func(n int) int { return 0 })
	assert.Equal(t, "M0000000", g.CreateID(CategoryMember))
	assert.Equal(t, "P000000000", g.CreateID(CategoryPost))
	assert.Equal(t, "00000000", g.CreateToken())
}

func TestVerifyIDRejectsBadInput(t *testing.T) {
	cases := []string{
		"",            // 空
		"X1234567",    // 未知前缀
		"M123",        // 会员 id 过短
		"M1234567890", // 会员 id 过长
		"N12",         // 通知 id 过短
		"C1234567",    // 评论 id 过短
		"P12345678",   // 帖子 id 过短
		"P123456789012", // 帖子 id 过长
		"M12345_7",    // 非法字符
	}
	for _, raw := range cases {
		result := VerifyID(raw)
		assert.False(t, result.IsValid, "expected %q to be invalid", raw)
		assert.Empty(t, result.ID)
	}
}

func TestVerifyIDNormalizesCase(t *testing.T) {
	result := VerifyID("p1234567890")
	require.True(t, result.IsValid)
	assert.Equal(t, CategoryPost, result.Category)
	assert.Equal(t, "P1234567890", result.ID)
}

func TestCreateTopicIDDeterministic(t *testing.T) {
	a := CreateTopicID("露營")
	b := CreateTopicID("露營")
	c := CreateTopicID("登山")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "T"))

	content, ok := ParseTopicID(a)
	require.True(t, ok)
	assert.Equal(t, "露營", content)

	result := VerifyID(a)
	assert.True(t, result.IsValid)
	assert.Equal(t, CategoryTopic, result.Category)
}

func TestCreateNoticeIDComposition(t *testing.T) {
	assert.Equal(t, "C-M1A2B3C4-P1234567890-CABCDEFGHIJKL",
		CreateNoticeID(NoticeCue, "M1A2B3C4", "P1234567890", "CABCDEFGHIJKL"))
	assert.Equal(t, "R-M1A2B3C4-P1234567890",
		CreateNoticeID(NoticeReply, "M1A2B3C4", "P1234567890", ""))
	// save 类不含评论段
	assert.Equal(t, "S-M1A2B3C4-P1234567890",
		CreateNoticeID(NoticeSave, "M1A2B3C4", "P1234567890", "CABCDEFGHIJKL"))
	// follow 类只含发起者
	assert.Equal(t, "F-M1A2B3C4",
		CreateNoticeID(NoticeFollow, "M1A2B3C4", "P1234567890", "CABCDEFGHIJKL"))
	assert.Empty(t, CreateNoticeID("unknown", "M1A2B3C4", "", ""))
}

func TestCreateNoticeIDIdempotentKey(t *testing.T) {
	// 同一发起者对同一目标重复同一动作得到同一 id
	first := CreateNoticeID(NoticeCue, "M9Z8Y7X6W5", "P1234567890", "")
	second := CreateNoticeID(NoticeCue, "M9Z8Y7X6W5", "P1234567890", "")
	assert.Equal(t, first, second)
}
