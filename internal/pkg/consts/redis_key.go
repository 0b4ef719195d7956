package consts

// Redis Key 前缀
const (
	PostHitKey      = "post:hit:"        // string, 浏览量增量缓冲
	PostHitDirtyKey = "post:hit:dirty"   // set, 待落库的帖子 id
	BlockMappingKey = "member:blocking:" // set, 屏蔽名单缓存
	TokenRevokedKey = "token:revoked:"   // string, 已注销 token 签名
	ChannelDictKey  = "channel:dict"     // string, 频道字典缓存
)
