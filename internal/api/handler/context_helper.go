package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"digital-supervision/backend/internal/api/middleware"
	"digital-supervision/backend/internal/model"
	"digital-supervision/backend/internal/service"
	"digital-supervision/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	return mustGetString(c, middleware.CtxUserID)
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	return mustGetString(c, middleware.CtxRole)
}

// MustGetCaller 组装当前会话，供 Service 做权限判断
func MustGetCaller(c *gin.Context) (service.Caller, bool) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return service.Caller{}, false
	}
	role, ok := MustGetRole(c)
	if !ok {
		return service.Caller{}, false
	}
	return service.Caller{
		UserID: userID,
		Role:   model.Role(role),
		Name:   c.GetString(middleware.CtxName),
	}, true
}

// tokenSession 当前 Token 的 jti 与过期时间，缺失时返回零值
func tokenSession(c *gin.Context) (string, time.Time) {
	jti := c.GetString(middleware.CtxTokenJTI)
	exp, _ := c.Get(middleware.CtxTokenExp)
	t, _ := exp.(time.Time)
	return jti, t
}

func mustGetString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		response.Unauthorized(c, 10002, "กรุณาเข้าสู่ระบบ")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "กรุณาเข้าสู่ระบบ")
		return "", false
	}
	return s, true
}
