package model

// CommentComprehensive 评论聚合文档，存于 comprehensive.comment。
// 顶级评论（'C' 前缀）与楼中楼（'D' 前缀）共用一个形态，
// 仅顶级评论维护楼中楼计数对，指针为 nil 表示不适用
type CommentComprehensive struct {
	CommentID       string              `bson:"commentId" json:"commentId"`
	ParentID        string              `bson:"parentId" json:"parentId"`
	PostID          string              `bson:"postId" json:"postId"`
	MemberID        string              `bson:"memberId" json:"memberId"`
	CreatedTime     int64               `bson:"createdTime" json:"createdTime"`
	Content         string              `bson:"content" json:"content"`
	CuedMemberInfos []ConciseMemberInfo `bson:"cuedMemberInfoArr" json:"cuedMemberInfoArr"`

	Status int `bson:"status" json:"status"`

	TotalLikedCount        int64 `bson:"totalLikedCount" json:"totalLikedCount"`
	TotalUndoLikedCount    int64 `bson:"totalUndoLikedCount" json:"totalUndoLikedCount"`
	TotalDislikedCount     int64 `bson:"totalDislikedCount" json:"totalDislikedCount"`
	TotalUndoDislikedCount int64 `bson:"totalUndoDislikedCount" json:"totalUndoDislikedCount"`
	TotalEditCount         int64 `bson:"totalEditCount" json:"totalEditCount"`

	TotalSubcommentCount       *int64 `bson:"totalSubcommentCount,omitempty" json:"totalSubcommentCount,omitempty"`
	TotalSubcommentDeleteCount *int64 `bson:"totalSubcommentDeleteCount,omitempty" json:"totalSubcommentDeleteCount,omitempty"`

	Edited []EditedComment `bson:"edited" json:"-"`
}

// EditedComment 评论编辑前快照
type EditedComment struct {
	EditedTime                   int64               `bson:"editedTime" json:"editedTime"`
	ContentBeforeEdit            string              `bson:"contentBeforeEdit" json:"contentBeforeEdit"`
	CuedMemberInfosBeforeEdit    []ConciseMemberInfo `bson:"cuedMemberInfoArrBeforeEdit" json:"cuedMemberInfoArrBeforeEdit"`
	TotalLikedCountBeforeEdit    int64               `bson:"totalLikedCountBeforeEdit" json:"totalLikedCountBeforeEdit"`
	TotalDislikedCountBeforeEdit int64               `bson:"totalDislikedCountBeforeEdit" json:"totalDislikedCountBeforeEdit"`
}

// RestrictedCommentComprehensive 对外投影。
// TotalSubcommentCount 为 -1 表示楼中楼不追踪此计数
type RestrictedCommentComprehensive struct {
	CommentID       string              `json:"commentId"`
	PostID          string              `json:"postId"`
	MemberID        string              `json:"memberId"`
	CreatedTime     int64               `json:"createdTime"`
	Content         string              `json:"content"`
	CuedMemberInfos []ConciseMemberInfo `json:"cuedMemberInfoArr"`

	Status int `json:"status"`

	TotalLikedCount      int64 `json:"totalLikedCount"`
	TotalDislikedCount   int64 `json:"totalDislikedCount"`
	TotalSubcommentCount int64 `json:"totalSubcommentCount"`

	EditedTime *int64 `json:"editedTime,omitempty"`
}
