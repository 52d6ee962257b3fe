package middleware

import (
	"Cuben/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// CheckMemberTypes 检查当前会员类型是否在允许列表内
func CheckMemberTypes(allowedTypes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		memberType := c.GetString("member_type")

		hasPermission := false
		for _, allowed := range allowedTypes {
			if memberType == allowed {
				hasPermission = true
				break
			}
		}

		if !hasPermission {
			response.Fail(c, response.Forbidden, "权限不足：无权访问该资源")
			c.Abort()
			return
		}

		c.Next()
	}
}
