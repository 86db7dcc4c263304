package model

// Role 用户角色，创建后不可变更
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSupervisor Role = "SUPERVISOR"
	RoleTeacher    Role = "TEACHER"
)

// Valid 是否为已知角色
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleTeacher:
		return true
	}
	return false
}

// IsStaff 管理员与督导使用用户名+密码登录
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleSupervisor
}

// User 用户
// 教师仅有 TeacherID，不持有密码
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash,omitempty"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	TeacherID    string `json:"teacher_id,omitempty"`
	BaseModel
}
