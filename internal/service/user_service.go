package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"digital-supervision/backend/internal/dto"
	"digital-supervision/backend/internal/model"
	"digital-supervision/backend/internal/repository"
	"digital-supervision/backend/pkg/validate"
)

// ── 用户模块业务错误 ──

var (
	ErrUsernameExists   = errors.New("Username นี้ถูกใช้งานแล้ว")
	ErrTeacherIDExists  = errors.New("Teacher ID นี้ถูกใช้งานแล้ว")
	ErrCannotDeleteSelf = errors.New("ไม่สามารถลบบัญชีของตนเองได้")
)

// UserService 用户管理业务接口（仅管理员）
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id string, caller Caller) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.TrimSpace(req.Username)
	req.TeacherID = strings.TrimSpace(req.TeacherID)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	user := &model.User{
		ID:   uuid.New().String(),
		Name: req.Name,
		Role: model.Role(req.Role),
	}
	user.Touch(time.Now())

	if user.Role == model.RoleTeacher {
		// 教师没有密码，用户名可选
		user.TeacherID = req.TeacherID
		user.Username = req.Username
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("密码加密失败", zap.Error(err))
			return nil, err
		}
		user.Username = req.Username
		user.PasswordHash = string(hash)
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := s.checkUnique(ctx, tx, user); err != nil {
			return err
		}
		return tx.User.Create(ctx, user)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("创建用户失败", zap.Error(err))
		}
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// checkUnique 用户名与教师编号全局唯一
func (s *userService) checkUnique(ctx context.Context, tx *repository.Repository, user *model.User) error {
	if user.Username != "" {
		existing, err := tx.User.GetByUsername(ctx, user.Username)
		if err != nil && !errors.Is(err, repository.ErrRecordNotFound) {
			return err
		}
		if existing != nil && existing.ID != user.ID {
			return ErrUsernameExists
		}
	}
	if user.TeacherID != "" {
		existing, err := tx.User.GetByTeacherID(ctx, user.TeacherID)
		if err != nil && !errors.Is(err, repository.ErrRecordNotFound) {
			return err
		}
		if existing != nil && existing.ID != user.ID {
			return ErrTeacherIDExists
		}
	}
	return nil
}

// ────────────────────── GetByID ──────────────────────

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, error) {
	users, err := s.repo.User.List(ctx, repository.UserListFilters{
		Role:    model.Role(req.Role),
		Keyword: req.Keyword,
	})
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	var updated *model.User
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		user, err := tx.User.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if err := applyUserUpdate(user, req); err != nil {
			return err
		}
		if err := s.checkUnique(ctx, tx, user); err != nil {
			return err
		}

		user.Touch(time.Now())
		if err := tx.User.Update(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("更新用户失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}

	resp := toUserResponse(updated)
	return &resp, nil
}

// applyUserUpdate 按角色应用修改，修改后仍需满足创建时的表单规则
func applyUserUpdate(user *model.User, req *dto.UpdateUserRequest) error {
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if user.Name == "" {
		return validationError("กรุณากรอกชื่อ-นามสกุล")
	}

	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
	}

	if user.Role == model.RoleTeacher {
		if req.TeacherID != nil {
			user.TeacherID = strings.TrimSpace(*req.TeacherID)
		}
		if user.TeacherID == "" {
			return validationError("กรุณากรอก Teacher ID")
		}
		return nil
	}

	if user.Username == "" {
		return validationError("กรุณากรอก Username และ Password")
	}
	// 密码留空表示不修改
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.PasswordHash = string(hash)
	}
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *userService) Delete(ctx context.Context, id string, caller Caller) error {
	if id == caller.UserID {
		return ErrCannotDeleteSelf
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.User.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		return nil
	})
	if err != nil && !isBusinessError(err) {
		s.logger.Error("删除用户失败", zap.String("id", id), zap.Error(err))
	}
	return err
}
