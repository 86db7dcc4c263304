package middleware

import (
	"github.com/gin-gonic/gin"
)

// reportCSP 打印报告只含内联样式与图片（照片可能是 data URL 或 B2 外链）
const reportCSP = "default-src 'none'; style-src 'unsafe-inline'; img-src 'self' data: https:; frame-ancestors 'none'"

// SecurityHeaders 安全响应头；JSON 接口与打印页共用同一套严格 CSP
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Content-Security-Policy", reportCSP)

		c.Next()
	}
}
