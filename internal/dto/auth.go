package dto

// ── 认证模块 DTO ──

// LoginRequest 管理员/督导登录
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required,max=128"`
}

// TeacherLoginRequest 教师使用教师编号登录
type TeacherLoginRequest struct {
	TeacherID string `json:"teacher_id" binding:"required,max=32"`
}
