package model

// LoginJournal 登录/验证流水，存于 journal.login
type LoginJournal struct {
	MemberID   string `bson:"memberId" json:"memberId"`
	Category   string `bson:"category" json:"category"`
	ProviderID string `bson:"providerId" json:"providerId"`
	Timestamp  string `bson:"timestamp" json:"timestamp"`
	Message    string `bson:"message" json:"message"`
}
