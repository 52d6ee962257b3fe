package middleware

import (
	"Cuben/internal/pkg/security"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入会员 ID，失败或缺失则 ID 为 0
func AuthOptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Set("member_id", uint64(0))
			c.Next()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := security.ValidateToken(token)

		if err != nil {
			c.Set("member_id", uint64(0))
		} else {
			c.Set("member_id", claims.MemberID)
			c.Set("member_type", claims.MemberType)
			newCtx := context.WithValue(c.Request.Context(), "member_id", claims.MemberID)
			c.Request = c.Request.WithContext(newCtx)
		}

		c.Next()
	}
}
