package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"digital-supervision/backend/internal/dto"
	"digital-supervision/backend/internal/service"
	"digital-supervision/backend/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login 管理员/督导登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "กรุณากรอก Username และ Password")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// TeacherLogin 教师凭教师编号登录
// POST /api/v1/auth/teacher-login
func (h *AuthHandler) TeacherLogin(c *gin.Context) {
	var req dto.TeacherLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "กรุณากรอก Teacher ID")
		return
	}

	result, err := h.authSvc.TeacherLogin(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// Logout 登出并吊销当前 Token
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, exp := tokenSession(c)
	if err := h.authSvc.Logout(c.Request.Context(), jti, exp); err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.OK(c, nil)
}

// Me 当前登录用户
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	user, err := h.authSvc.GetCurrentUser(c.Request.Context(), caller)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, user)
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, 11001, service.ErrInvalidCredentials.Error())
	case errors.Is(err, service.ErrInvalidTeacherID):
		response.Error(c, http.StatusUnauthorized, 11002, service.ErrInvalidTeacherID.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.Unauthorized(c, 10002, service.ErrUserNotFound.Error())
	default:
		handleCommonError(c, err)
	}
}
