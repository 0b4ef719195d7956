package model

// ChannelInfo 频道元数据，存于 comprehensive.channel，含多语言名称
type ChannelInfo struct {
	ChannelID string            `bson:"channelId" json:"channelId"`
	Name      map[string]string `bson:"name" json:"name"`
	Svg       string            `bson:"svgIconPath" json:"svgIconPath"`
	Sequence  int               `bson:"sequence" json:"sequence"`
	Status    int               `bson:"status" json:"status"`
}

// ChannelStatistics 频道统计文档，存于 statistics.channel
type ChannelStatistics struct {
	ChannelID string `bson:"channelId" json:"channelId"`

	TotalHitCount           int64 `bson:"totalHitCount" json:"totalHitCount"`
	TotalPostCount          int64 `bson:"totalPostCount" json:"totalPostCount"`
	TotalPostDeleteCount    int64 `bson:"totalPostDeleteCount" json:"totalPostDeleteCount"`
	TotalCommentCount       int64 `bson:"totalCommentCount" json:"totalCommentCount"`
	TotalCommentDeleteCount int64 `bson:"totalCommentDeleteCount" json:"totalCommentDeleteCount"`
}
