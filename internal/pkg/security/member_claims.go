package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	JWTSecret         string = "Trellis"
	JWTExpirationTime        = time.Hour * 24 * 15
)

// MemberClaims 定义了 Token 中需要包含的业务信息
type MemberClaims struct {
	MemberID string `json:"member_id"`
	jwt.RegisteredClaims
}
