package middleware

import (
	"Trellis/internal/pkg/security"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入会员 id，失败或缺失则为空串
func AuthOptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Set(MemberIDKey, "")
			c.Next()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := security.ValidateToken(token)

		if err != nil {
			c.Set(MemberIDKey, "")
		} else {
			c.Set(MemberIDKey, claims.MemberID)
			newCtx := context.WithValue(c.Request.Context(), MemberIDKey, claims.MemberID)
			c.Request = c.Request.WithContext(newCtx)
		}

		c.Next()
	}
}
