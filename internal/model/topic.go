package model

// TopicComprehensive 话题聚合文档，存于 comprehensive.topic。
// 话题 ID 由文本内容派生，同文必同 ID，跨帖 upsert 聚合
type TopicComprehensive struct {
	TopicID     string `bson:"topicId" json:"topicId"`
	ChannelID   string `bson:"channelId" json:"channelId"`
	CreatedTime int64  `bson:"createdTime" json:"createdTime"`

	Status int `bson:"status" json:"status"`

	TotalHitCount           int64 `bson:"totalHitCount" json:"totalHitCount"`
	TotalSearchCount        int64 `bson:"totalSearchCount" json:"totalSearchCount"`
	TotalPostCount          int64 `bson:"totalPostCount" json:"totalPostCount"`
	TotalPostDeleteCount    int64 `bson:"totalPostDeleteCount" json:"totalPostDeleteCount"`
	TotalLikedCount         int64 `bson:"totalLikedCount" json:"totalLikedCount"`
	TotalUndoLikedCount     int64 `bson:"totalUndoLikedCount" json:"totalUndoLikedCount"`
	TotalCommentCount       int64 `bson:"totalCommentCount" json:"totalCommentCount"`
	TotalCommentDeleteCount int64 `bson:"totalCommentDeleteCount" json:"totalCommentDeleteCount"`
	TotalSavedCount         int64 `bson:"totalSavedCount" json:"totalSavedCount"`
	TotalUndoSavedCount     int64 `bson:"totalUndoSavedCount" json:"totalUndoSavedCount"`
}

// RestrictedTopicComprehensive 对外投影：净计数
type RestrictedTopicComprehensive struct {
	TopicID     string `json:"topicId"`
	Content     string `json:"content"`
	ChannelID   string `json:"channelId"`
	CreatedTime int64  `json:"createdTime"`

	Status int `json:"status"`

	TotalHitCount     int64 `json:"totalHitCount"`
	TotalSearchCount  int64 `json:"totalSearchCount"`
	TotalPostCount    int64 `json:"totalPostCount"`
	TotalLikedCount   int64 `json:"totalLikedCount"`
	TotalCommentCount int64 `json:"totalCommentCount"`
	TotalSavedCount   int64 `json:"totalSavedCount"`
}
