package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"digital-supervision/backend/internal/dto"
	"digital-supervision/backend/internal/model"
	"digital-supervision/backend/internal/repository"
	pkgerrors "digital-supervision/backend/pkg/errors"
	"digital-supervision/backend/pkg/jwt"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง")
	ErrInvalidTeacherID   = errors.New("รหัสประจำตัวครูไม่ถูกต้อง")
	ErrUserNotFound       = errors.New("ไม่พบผู้ใช้งาน")
)

// AuthService 认证业务接口
type AuthService interface {
	// Login 管理员/督导使用用户名密码登录
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// TeacherLogin 教师仅凭教师编号登录
	TeacherLogin(ctx context.Context, req *dto.TeacherLoginRequest) (*dto.TokenResponse, error)
	// Logout 吊销当前 Token，未启用黑名单时为空操作
	Logout(ctx context.Context, jti string, exp time.Time) error
	GetCurrentUser(ctx context.Context, caller Caller) (*dto.UserResponse, error)
}

type authService struct {
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询用户
	user, err := s.repo.User.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 教师不能使用用户名密码登录
	if !user.Role.IsStaff() || user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	// 3. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// ────────────────────── TeacherLogin ──────────────────────

func (s *authService) TeacherLogin(ctx context.Context, req *dto.TeacherLoginRequest) (*dto.TokenResponse, error) {
	teacherID := strings.TrimSpace(req.TeacherID)
	if teacherID == "" {
		return nil, ErrInvalidTeacherID
	}

	user, err := s.repo.User.GetByTeacherID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrInvalidTeacherID
		}
		s.logger.Error("查询教师失败", zap.Error(err))
		return nil, err
	}

	return s.issueToken(user)
}

func (s *authService) issueToken(user *model.User) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.ID, string(user.Role), user.Name)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int(s.jwtMgr.TTL().Seconds()),
		User:        toUserResponse(user),
	}, nil
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, jti string, exp time.Time) error {
	if s.blacklist == nil || jti == "" {
		return nil
	}

	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil
	}

	if err := s.blacklist.BlacklistToken(ctx, jti, ttl); err != nil {
		s.logger.Error("加入 Token 黑名单失败", zap.String("jti", jti), zap.Error(err))
		return fmt.Errorf("%w: %v", pkgerrors.ErrStorageUnavailable, err)
	}
	return nil
}

// ────────────────────── GetCurrentUser ──────────────────────

func (s *authService) GetCurrentUser(ctx context.Context, caller Caller) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询当前用户失败", zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}
