package es

// PostES 写入 ES 的帖子文档
type PostES struct {
	PostID      string   `json:"post_id"`
	MemberID    string   `json:"member_id"`
	Nickname    string   `json:"nickname"`
	Status      int      `json:"status"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	TopicIDs    []string `json:"topic_ids"`
	ChannelID   string   `json:"channel_id"`
	CreatedTime int64    `json:"created_time"`

	Sort []interface{} `json:"-"`
}
