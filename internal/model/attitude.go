package model

// AttitudeComprehensive 会员对某帖的态度记录，存于 comprehensive.attitude。
// Attitude 为帖子整体的 -1/0/1，CommentAttitudeMapping 为
// 各评论 ID 到态度值的映射
type AttitudeComprehensive struct {
	MemberID               string         `bson:"memberId" json:"memberId"`
	PostID                 string         `bson:"postId" json:"postId"`
	Attitude               int            `bson:"attitude" json:"attitude"`
	CommentAttitudeMapping map[string]int `bson:"commentAttitudeMapping" json:"commentAttitudeMapping"`
}

// AttitudeMapping 对外投影，缺省记录等价于全零
type AttitudeMapping struct {
	Attitude               int            `json:"attitude"`
	CommentAttitudeMapping map[string]int `json:"commentAttitudeMapping"`
}
