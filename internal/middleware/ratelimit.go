package middleware

import (
	"picto-go/internal/utils"
	"picto-go/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RateLimit 按客户端IP限流的中间件。
// Redis不可用时记录错误并放行请求
func RateLimit(limiter *ratelimit.Limiter, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Errorf("限流检查失败: %v", err)
			c.Next()
			return
		}

		if !allowed {
			utils.TooManyRequests(c, "请求过于频繁,请稍后再试")
			c.Abort()
			return
		}

		c.Next()
	}
}
