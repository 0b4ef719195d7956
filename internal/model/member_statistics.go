package model

// MemberStatistics 会员统计文档，存于 statistics.member，
// 全部为 raw/undo 计数对的 raw 侧或独立累计值
type MemberStatistics struct {
	MemberID string `bson:"memberId" json:"memberId"`

	// 创作
	TotalCreationCount       int64 `bson:"totalCreationCount" json:"totalCreationCount"`
	TotalCreationEditCount   int64 `bson:"totalCreationEditCount" json:"totalCreationEditCount"`
	TotalCreationDeleteCount int64 `bson:"totalCreationDeleteCount" json:"totalCreationDeleteCount"`

	// 评论
	TotalCommentCount       int64 `bson:"totalCommentCount" json:"totalCommentCount"`
	TotalCommentEditCount   int64 `bson:"totalCommentEditCount" json:"totalCommentEditCount"`
	TotalCommentDeleteCount int64 `bson:"totalCommentDeleteCount" json:"totalCommentDeleteCount"`

	// 主动行为
	TotalLikeCount      int64 `bson:"totalLikeCount" json:"totalLikeCount"`
	TotalDislikeCount   int64 `bson:"totalDislikeCount" json:"totalDislikeCount"`
	TotalFollowingCount int64 `bson:"totalFollowingCount" json:"totalFollowingCount"`
	TotalBlockedCount   int64 `bson:"totalBlockedCount" json:"totalBlockedCount"`

	// 被动累计
	TotalCreationHitCount      int64 `bson:"totalCreationHitCount" json:"totalCreationHitCount"`
	TotalCreationLikedCount    int64 `bson:"totalCreationLikedCount" json:"totalCreationLikedCount"`
	TotalCreationDislikedCount int64 `bson:"totalCreationDislikedCount" json:"totalCreationDislikedCount"`
	TotalSavedCount            int64 `bson:"totalSavedCount" json:"totalSavedCount"`
	TotalCommentLikedCount     int64 `bson:"totalCommentLikedCount" json:"totalCommentLikedCount"`
	TotalCommentDislikedCount  int64 `bson:"totalCommentDislikedCount" json:"totalCommentDislikedCount"`
	TotalFollowedByCount       int64 `bson:"totalFollowedByCount" json:"totalFollowedByCount"`
}

// NotificationStatistics 未读通知分类计数，存于 statistics.notification，
// 自上次清零以来的累计
type NotificationStatistics struct {
	MemberID      string `bson:"memberId" json:"memberId"`
	CuedCount     int64  `bson:"cuedCount" json:"cuedCount"`
	RepliedCount  int64  `bson:"repliedCount" json:"repliedCount"`
	LikedCount    int64  `bson:"likedCount" json:"likedCount"`
	SavedCount    int64  `bson:"savedCount" json:"savedCount"`
	FollowedCount int64  `bson:"followedCount" json:"followedCount"`
}
