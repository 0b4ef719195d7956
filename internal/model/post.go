package model

// PostComprehensive 帖子聚合文档，存于 comprehensive.post
type PostComprehensive struct {
	PostID          string              `bson:"postId" json:"postId"`
	MemberID        string              `bson:"memberId" json:"memberId"`
	CreatedTime     int64               `bson:"createdTime" json:"createdTime"`
	Title           string              `bson:"title" json:"title"`
	ImageFullNames  []string            `bson:"imageFullNamesArr" json:"imageFullNamesArr"`
	Paragraphs      []string            `bson:"paragraphsArr" json:"paragraphsArr"`
	CuedMemberInfos []ConciseMemberInfo `bson:"cuedMemberInfoArr" json:"cuedMemberInfoArr"`
	ChannelID       string              `bson:"channelId" json:"channelId"`
	TopicIDs        []string            `bson:"topicIdsArr" json:"topicIdsArr"`
	PinnedCommentID string              `bson:"pinnedCommentId" json:"pinnedCommentId"`

	Status int `bson:"status" json:"status"`

	// raw/undo 计数对
	TotalHitCount           int64 `bson:"totalHitCount" json:"totalHitCount"`
	TotalLikedCount         int64 `bson:"totalLikedCount" json:"totalLikedCount"`
	TotalUndoLikedCount     int64 `bson:"totalUndoLikedCount" json:"totalUndoLikedCount"`
	TotalDislikedCount      int64 `bson:"totalDislikedCount" json:"totalDislikedCount"`
	TotalUndoDislikedCount  int64 `bson:"totalUndoDislikedCount" json:"totalUndoDislikedCount"`
	TotalCommentCount       int64 `bson:"totalCommentCount" json:"totalCommentCount"`
	TotalCommentDeleteCount int64 `bson:"totalCommentDeleteCount" json:"totalCommentDeleteCount"`
	TotalSavedCount         int64 `bson:"totalSavedCount" json:"totalSavedCount"`
	TotalUndoSavedCount     int64 `bson:"totalUndoSavedCount" json:"totalUndoSavedCount"`
	TotalEditCount          int64 `bson:"totalEditCount" json:"totalEditCount"`

	// 编辑历史，仅追加，每项为编辑前快照
	Edited []EditedPost `bson:"edited" json:"-"`
}

// EditedPost 帖子编辑前快照
type EditedPost struct {
	EditedTime                   int64               `bson:"editedTime" json:"editedTime"`
	TitleBeforeEdit              string              `bson:"titleBeforeEdit" json:"titleBeforeEdit"`
	ImageFullNamesBeforeEdit     []string            `bson:"imageFullNamesArrBeforeEdit" json:"imageFullNamesArrBeforeEdit"`
	ParagraphsBeforeEdit         []string            `bson:"paragraphsArrBeforeEdit" json:"paragraphsArrBeforeEdit"`
	CuedMemberInfosBeforeEdit    []ConciseMemberInfo `bson:"cuedMemberInfoArrBeforeEdit" json:"cuedMemberInfoArrBeforeEdit"`
	ChannelIDBeforeEdit          string              `bson:"channelIdBeforeEdit" json:"channelIdBeforeEdit"`
	TopicIDsBeforeEdit           []string            `bson:"topicIdsArrBeforeEdit" json:"topicIdsArrBeforeEdit"`
	TotalLikedCountBeforeEdit    int64               `bson:"totalLikedCountBeforeEdit" json:"totalLikedCountBeforeEdit"`
	TotalDislikedCountBeforeEdit int64               `bson:"totalDislikedCountBeforeEdit" json:"totalDislikedCountBeforeEdit"`
}

// RestrictedPostComprehensive 对外投影：净计数，删除态正文清空
type RestrictedPostComprehensive struct {
	PostID          string              `json:"postId"`
	MemberID        string              `json:"memberId"`
	CreatedTime     int64               `json:"createdTime"`
	Title           string              `json:"title"`
	ImageFullNames  []string            `json:"imageFullNamesArr"`
	Paragraphs      []string            `json:"paragraphsArr"`
	CuedMemberInfos []ConciseMemberInfo `json:"cuedMemberInfoArr"`
	ChannelID       string              `json:"channelId"`
	TopicIDs        []string            `json:"topicIdsArr"`
	PinnedCommentID string              `json:"pinnedCommentId"`

	Status int `json:"status"`

	TotalHitCount      int64 `json:"totalHitCount"`
	TotalLikedCount    int64 `json:"totalLikedCount"`
	TotalDislikedCount int64 `json:"totalDislikedCount"`
	TotalCommentCount  int64 `json:"totalCommentCount"`
	TotalSavedCount    int64 `json:"totalSavedCount"`

	EditedTime *int64 `json:"editedTime"`
}
