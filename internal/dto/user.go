package dto

// ── 用户模块 DTO ──
// binding 标签由 gin 校验请求形状，validate 标签由服务层做按角色的表单校验

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	Role    string `form:"role"    binding:"omitempty,oneof=ADMIN SUPERVISOR TEACHER"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Name      string `json:"name"       validate:"required,max=100" msg:"กรุณากรอกชื่อ-นามสกุล"`
	Role      string `json:"role"       validate:"required,oneof=ADMIN SUPERVISOR TEACHER" msg:"สิทธิ์การใช้งานไม่ถูกต้อง"`
	Username  string `json:"username"   validate:"required_unless=Role TEACHER,max=64" msg:"กรุณากรอก Username และ Password"`
	Password  string `json:"password"   validate:"required_unless=Role TEACHER,max=128" msg:"กรุณากรอก Username และ Password"`
	TeacherID string `json:"teacher_id" validate:"required_if=Role TEACHER,max=32" msg:"กรุณากรอก Teacher ID"`
}

// UpdateUserRequest 更新用户请求；角色不可修改，字段为 nil 表示不变
type UpdateUserRequest struct {
	Name      *string `json:"name"       validate:"omitempty,max=100"`
	Username  *string `json:"username"   validate:"omitempty,max=64"`
	Password  *string `json:"password"   validate:"omitempty,max=128"`
	TeacherID *string `json:"teacher_id" validate:"omitempty,max=32"`
}
