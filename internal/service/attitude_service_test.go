package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestClampAttitude(t *testing.T) {
	assert.Equal(t, 1, clampAttitude(1))
	assert.Equal(t, -1, clampAttitude(-1))
	assert.Equal(t, 0, clampAttitude(0))
	assert.Equal(t, 0, clampAttitude(2))
	assert.Equal(t, 0, clampAttitude(-7))
}

func TestAttitudeIncFields(t *testing.T) {
	cases := []struct {
		name     string
		prior    int
		next     int
		expected bson.M
	}{
		{
			name:     "中立转点赞",
			prior:    0,
			next:     1,
			expected: bson.M{"totalLikedCount": 1},
		},
		{
			name:     "中立转点踩",
			prior:    0,
			next:     -1,
			expected: bson.M{"totalDislikedCount": 1},
		},
		{
			name:     "点赞撤销",
			prior:    1,
			next:     0,
			expected: bson.M{"totalUndoLikedCount": 1},
		},
		{
			name:     "点踩撤销",
			prior:    -1,
			next:     0,
			expected: bson.M{"totalUndoDislikedCount": 1},
		},
		{
			name:  "点赞转点踩",
			prior: 1,
			next:  -1,
			expected: bson.M{
				"totalUndoLikedCount": 1,
				"totalDislikedCount":  1,
			},
		},
		{
			name:  "点踩转点赞",
			prior: -1,
			next:  1,
			expected: bson.M{
				"totalUndoDislikedCount": 1,
				"totalLikedCount":        1,
			},
		},
		{
			name:     "无变化",
			prior:    0,
			next:     0,
			expected: bson.M{},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, attitudeIncFields(c.prior, c.next))
		})
	}
}

// 撤销走 undo 侧递增，raw 计数永不回退，
// 任一迁移路径下 raw 与 undo 的差值与直接状态一致
func TestAttitudeCountersMonotonic(t *testing.T) {
	type counters struct {
		liked, undoLiked, disliked, undoDisliked int
	}
	apply := func(c *counters, fields bson.M) {
		if v, ok := fields["totalLikedCount"]; ok {
			c.liked += v.(int)
		}
		if v, ok := fields["totalUndoLikedCount"]; ok {
			c.undoLiked += v.(int)
		}
		if v, ok := fields["totalDislikedCount"]; ok {
			c.disliked += v.(int)
		}
		if v, ok := fields["totalUndoDislikedCount"]; ok {
			c.undoDisliked += v.(int)
		}
	}

	var c counters
	transitions := []int{1, -1, 0, 1, 1, 0, -1, -1, 1, 0}
	prior := 0
	for _, next := range transitions {
		if next == prior {
			continue
		}
		apply(&c, attitudeIncFields(prior, next))
		prior = next
	}

	assert.GreaterOrEqual(t, c.liked, c.undoLiked)
	assert.GreaterOrEqual(t, c.disliked, c.undoDisliked)
	// 终态为中立，净值归零
	assert.Equal(t, 0, c.liked-c.undoLiked)
	assert.Equal(t, 0, c.disliked-c.undoDisliked)
}
