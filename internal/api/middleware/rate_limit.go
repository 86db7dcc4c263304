package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"digital-supervision/backend/pkg/redis"
	"digital-supervision/backend/pkg/response"
)

// RateLimit 按 IP + 路由限流，用于登录接口
// rdb 为 nil 或 Redis 出错时放行
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	retryAfter := strconv.Itoa(int(window.Seconds()))

	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		allowed, err := rdb.CheckRateLimit(c.Request.Context(), c.FullPath()+":"+c.ClientIP(), limit, window)
		if err != nil || allowed {
			c.Next()
			return
		}

		c.Header("Retry-After", retryAfter)
		response.Error(c, http.StatusTooManyRequests, 10004, "ส่งคำขอบ่อยเกินไป กรุณาลองใหม่ภายหลัง")
		c.Abort()
	}
}
