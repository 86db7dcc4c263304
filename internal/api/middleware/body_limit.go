package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"digital-supervision/backend/pkg/response"
)

// BodyLimit 请求体大小限制，评估照片以 data URL 内嵌在 JSON 中，上限需按 photo.max_photos 配置
// 声明了 Content-Length 的请求直接拒绝，其余请求读取超限时由绑定失败后补写 413
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 || c.Request.Body == nil {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			tooLarge(c)
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()

		for _, e := range c.Errors {
			var mbe *http.MaxBytesError
			if errors.As(e.Err, &mbe) && !c.Writer.Written() {
				tooLarge(c)
				return
			}
		}
	}
}

func tooLarge(c *gin.Context) {
	response.Error(c, http.StatusRequestEntityTooLarge, 10005, "ข้อมูลที่ส่งมีขนาดใหญ่เกินไป")
}
