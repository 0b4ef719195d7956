package middleware

import (
	"Trellis/internal/pkg/consts"
	"Trellis/internal/pkg/redis"
	"Trellis/internal/pkg/response"
	"Trellis/internal/pkg/security"
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// MemberIDKey gin context 与 request context 中的调用者 id 键
const MemberIDKey = "member_id"

// AuthMiddleware 验证 JWT 并将会员身份注入 Context。
// 已注销的 token 以签名登记在撤销名单，命中即拒绝
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, http.StatusUnauthorized, "Token missing or malformed")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, "Token missing or malformed")
			c.Abort()
			return
		}

		value, err := redis.GetValue(c.Request.Context(), consts.TokenRevokedKey+signature)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Attempt failed due to an unexpected error")
			c.Abort()
			return
		}
		if value != "" {
			response.Fail(c, http.StatusUnauthorized, "Token invalid or expired")
			c.Abort()
			return
		}

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, "Token invalid or expired")
			c.Abort()
			return
		}

		c.Set(MemberIDKey, claims.MemberID)
		c.Set("token_signature", signature)

		newCtx := context.WithValue(c.Request.Context(), MemberIDKey, claims.MemberID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}
