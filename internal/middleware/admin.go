package middleware

import (
	"picto-go/internal/utils"

	"github.com/gin-gonic/gin"
)

// StaffMiddleware staff权限中间件
func StaffMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsStaff(c) {
			utils.Forbidden(c, "需要管理员权限")
			c.Abort()
			return
		}
		c.Next()
	}
}
