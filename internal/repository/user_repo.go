package repository

import (
	"context"
	"strings"

	"digital-supervision/backend/internal/model"
	"digital-supervision/backend/pkg/store"
)

// UserListFilters 用户列表筛选条件
type UserListFilters struct {
	Role    model.Role
	Keyword string // 匹配姓名、用户名、教师编号
}

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByTeacherID(ctx context.Context, teacherID string) (*model.User, error)
	List(ctx context.Context, filters UserListFilters) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
}

// userRepo UserRepository 的记录存储实现
type userRepo struct {
	c collection[model.User]
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(st store.Store) UserRepository {
	return &userRepo{c: newCollection(st, store.NamespaceUsers, func(u *model.User) string { return u.ID })}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.c.insert(ctx, *user)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.c.find(ctx, id)
}

// GetByUsername 用户名大小写敏感
func (r *userRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.c.first(ctx, func(u *model.User) bool { return u.Username == username })
}

func (r *userRepo) GetByTeacherID(ctx context.Context, teacherID string) (*model.User, error) {
	return r.c.first(ctx, func(u *model.User) bool {
		return u.Role == model.RoleTeacher && u.TeacherID == teacherID
	})
}

func (r *userRepo) List(ctx context.Context, filters UserListFilters) ([]model.User, error) {
	kw := strings.ToLower(strings.TrimSpace(filters.Keyword))
	return r.c.filter(ctx, func(u *model.User) bool {
		if filters.Role != "" && u.Role != filters.Role {
			return false
		}
		if kw == "" {
			return true
		}
		return strings.Contains(strings.ToLower(u.Name), kw) ||
			strings.Contains(strings.ToLower(u.Username), kw) ||
			strings.Contains(strings.ToLower(u.TeacherID), kw)
	})
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.c.replace(ctx, *user)
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	return r.c.remove(ctx, id)
}
