package identity

// 通知类别
const (
	NoticeCue    = "cue"
	NoticeReply  = "reply"
	NoticeLike   = "like"
	NoticePin    = "pin"
	NoticeSave   = "save"
	NoticeFollow = "follow"
)

var noticeTags = map[string]string{
	NoticeCue:    "C",
	NoticeReply:  "R",
	NoticeLike:   "L",
	NoticePin:    "P",
	NoticeSave:   "S",
	NoticeFollow: "F",
}

// CreateNoticeID 组合式通知 id：类别标记 + 发起者 + 可选帖子 + 可选评论，'-' 连接。
// save 类不含评论段，follow 类只含发起者。同一发起者对同一目标重复同一动作
// 必然得到同一 id，通知因此按 id 原地 upsert 而不会堆积重复记录。
func CreateNoticeID(category, initiateID, postID, commentID string) string {
	tag, ok := noticeTags[category]
	if !ok {
		return ""
	}
	id := tag + "-" + initiateID
	if category == NoticeFollow {
		return id
	}
	if postID != "" {
		id += "-" + postID
	}
	if category == NoticeSave {
		return id
	}
	if commentID != "" {
		id += "-" + commentID
	}
	return id
}
