package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"digital-supervision/backend/config"
	"digital-supervision/backend/internal/dto"
	"digital-supervision/backend/pkg/jwt"
)

// ── Mock Blacklist ──

type mockBlacklist struct {
	jtis map[string]time.Duration
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	m.jtis[jti] = ttl
	return nil
}

func newTestAuthService(t *testing.T, bl TokenBlacklist) (AuthService, *jwt.Manager) {
	t.Helper()
	jwtMgr := jwt.NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing",
		AccessTokenTTL: time.Hour,
	})
	return NewAuthService(newSeededRepo(t), jwtMgr, bl, testLogger()), jwtMgr
}

func TestLogin_Success(t *testing.T) {
	svc, jwtMgr := newTestAuthService(t, nil)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "admin", Password: "0000"})
	if err != nil {
		t.Fatalf("期望登录成功，实际错误: %v", err)
	}
	if resp.User.Role != "ADMIN" {
		t.Errorf("期望角色 ADMIN，实际=%s", resp.User.Role)
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("期望 expires_in=3600，实际=%d", resp.ExpiresIn)
	}

	claims, err := jwtMgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.UserID != "1" || claims.Name != "ผู้ดูแลระบบ" {
		t.Errorf("Token 声明不正确: %+v", claims)
	}
}

func TestLogin_SupervisorSuccess(t *testing.T) {
	svc, _ := newTestAuthService(t, nil)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "sup1", Password: "password"})
	if err != nil {
		t.Fatalf("期望登录成功，实际错误: %v", err)
	}
	if resp.User.ID != "2" {
		t.Errorf("期望用户 ID=2，实际=%s", resp.User.ID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t, nil)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "admin", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际=%v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newTestAuthService(t, nil)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "nobody", Password: "0000"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际=%v", err)
	}
}

func TestLogin_TeacherRejected(t *testing.T) {
	svc, _ := newTestAuthService(t, nil)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "tea1", Password: ""})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望教师不能用密码登录，实际=%v", err)
	}
}

func TestTeacherLogin(t *testing.T) {
	svc, _ := newTestAuthService(t, nil)

	resp, err := svc.TeacherLogin(context.Background(), &dto.TeacherLoginRequest{TeacherID: " T001 "})
	if err != nil {
		t.Fatalf("期望登录成功，实际错误: %v", err)
	}
	if resp.User.ID != "4" || resp.User.Role != "TEACHER" {
		t.Errorf("期望教师 4，实际=%+v", resp.User)
	}

	_, err = svc.TeacherLogin(context.Background(), &dto.TeacherLoginRequest{TeacherID: "T999"})
	if !errors.Is(err, ErrInvalidTeacherID) {
		t.Errorf("期望 ErrInvalidTeacherID，实际=%v", err)
	}
}

func TestLogout_Blacklist(t *testing.T) {
	bl := &mockBlacklist{jtis: make(map[string]time.Duration)}
	svc, _ := newTestAuthService(t, bl)

	if err := svc.Logout(context.Background(), "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("登出失败: %v", err)
	}
	if _, ok := bl.jtis["jti-1"]; !ok {
		t.Error("期望 jti 被加入黑名单")
	}

	// 已过期的 Token 无需加入黑名单
	if err := svc.Logout(context.Background(), "jti-2", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("登出失败: %v", err)
	}
	if _, ok := bl.jtis["jti-2"]; ok {
		t.Error("期望过期 Token 不加入黑名单")
	}
}

func TestLogout_NoBlacklist(t *testing.T) {
	svc, _ := newTestAuthService(t, nil)
	if err := svc.Logout(context.Background(), "jti", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("期望未启用黑名单时登出成功，实际=%v", err)
	}
}

func TestGetCurrentUser(t *testing.T) {
	svc, _ := newTestAuthService(t, nil)

	u, err := svc.GetCurrentUser(context.Background(), tea1Caller)
	if err != nil {
		t.Fatalf("查询当前用户失败: %v", err)
	}
	if u.TeacherID != "T001" {
		t.Errorf("期望 teacher_id=T001，实际=%s", u.TeacherID)
	}

	_, err = svc.GetCurrentUser(context.Background(), Caller{UserID: "404", Role: "ADMIN"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际=%v", err)
	}
}
