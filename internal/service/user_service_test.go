package service

import (
	"context"
	"errors"
	"testing"

	"digital-supervision/backend/internal/dto"
	pkgerrors "digital-supervision/backend/pkg/errors"
)

func strPtr(s string) *string { return &s }

func TestUserCreate_Supervisor(t *testing.T) {
	repo := newSeededRepo(t)
	svc := NewUserService(repo, testLogger())

	u, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Name: "ครูสมศักดิ์", Role: "SUPERVISOR", Username: "sup3", Password: "secret",
	})
	if err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	if u.ID == "" || u.Role != "SUPERVISOR" {
		t.Errorf("返回用户不正确: %+v", u)
	}

	stored, err := repo.User.GetByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("查询用户失败: %v", err)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "secret" {
		t.Error("期望密码以 bcrypt 哈希保存")
	}
}

func TestUserCreate_TeacherHasNoPassword(t *testing.T) {
	repo := newSeededRepo(t)
	svc := NewUserService(repo, testLogger())

	u, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Name: "ครูใหม่", Role: "TEACHER", TeacherID: "T010", Password: "ignored",
	})
	if err != nil {
		t.Fatalf("创建教师失败: %v", err)
	}
	stored, _ := repo.User.GetByID(context.Background(), u.ID)
	if stored.PasswordHash != "" {
		t.Error("期望教师没有密码")
	}
}

func TestUserCreate_ValidationMessages(t *testing.T) {
	svc := NewUserService(newSeededRepo(t), testLogger())

	tests := []struct {
		name string
		req  dto.CreateUserRequest
		want string
	}{
		{"缺少姓名", dto.CreateUserRequest{Role: "ADMIN", Username: "x", Password: "y"}, "กรุณากรอกชื่อ-นามสกุล"},
		{"督导缺少密码", dto.CreateUserRequest{Name: "ก", Role: "SUPERVISOR", Username: "x"}, "กรุณากรอก Username และ Password"},
		{"教师缺少编号", dto.CreateUserRequest{Name: "ก", Role: "TEACHER"}, "กรุณากรอก Teacher ID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tt.req)
			if !errors.Is(err, pkgerrors.ErrValidation) {
				t.Fatalf("期望校验错误，实际=%v", err)
			}
			if err.Error() != tt.want {
				t.Errorf("期望提示 %q，实际 %q", tt.want, err.Error())
			}
		})
	}
}

func TestUserCreate_Duplicates(t *testing.T) {
	svc := NewUserService(newSeededRepo(t), testLogger())

	_, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Name: "ซ้ำ", Role: "ADMIN", Username: "admin", Password: "x",
	})
	if !errors.Is(err, ErrUsernameExists) {
		t.Errorf("期望 ErrUsernameExists，实际=%v", err)
	}

	_, err = svc.Create(context.Background(), &dto.CreateUserRequest{
		Name: "ซ้ำ", Role: "TEACHER", TeacherID: "T001",
	})
	if !errors.Is(err, ErrTeacherIDExists) {
		t.Errorf("期望 ErrTeacherIDExists，实际=%v", err)
	}
}

func TestUserList_Filters(t *testing.T) {
	svc := NewUserService(newSeededRepo(t), testLogger())

	teachers, err := svc.List(context.Background(), &dto.UserListRequest{Role: "TEACHER"})
	if err != nil {
		t.Fatalf("列出用户失败: %v", err)
	}
	if len(teachers) != 2 {
		t.Errorf("期望 2 名教师，实际=%d", len(teachers))
	}

	found, _ := svc.List(context.Background(), &dto.UserListRequest{Keyword: "สมหญิง"})
	if len(found) != 1 || found[0].ID != "3" {
		t.Errorf("期望关键字命中用户 3，实际=%+v", found)
	}
}

func TestUserUpdate(t *testing.T) {
	svc := NewUserService(newSeededRepo(t), testLogger())

	u, err := svc.Update(context.Background(), "4", &dto.UpdateUserRequest{Name: strPtr("ครูวิชัย ใจดี")})
	if err != nil {
		t.Fatalf("更新用户失败: %v", err)
	}
	if u.Name != "ครูวิชัย ใจดี" || u.TeacherID != "T001" {
		t.Errorf("更新结果不正确: %+v", u)
	}

	_, err = svc.Update(context.Background(), "4", &dto.UpdateUserRequest{TeacherID: strPtr("")})
	if !errors.Is(err, pkgerrors.ErrValidation) {
		t.Errorf("期望清空教师编号校验失败，实际=%v", err)
	}

	_, err = svc.Update(context.Background(), "5", &dto.UpdateUserRequest{TeacherID: strPtr("T001")})
	if !errors.Is(err, ErrTeacherIDExists) {
		t.Errorf("期望 ErrTeacherIDExists，实际=%v", err)
	}

	_, err = svc.Update(context.Background(), "404", &dto.UpdateUserRequest{Name: strPtr("x")})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际=%v", err)
	}
}

func TestUserDelete(t *testing.T) {
	svc := NewUserService(newSeededRepo(t), testLogger())

	if err := svc.Delete(context.Background(), "1", adminCaller); !errors.Is(err, ErrCannotDeleteSelf) {
		t.Errorf("期望 ErrCannotDeleteSelf，实际=%v", err)
	}
	if err := svc.Delete(context.Background(), "5", adminCaller); err != nil {
		t.Fatalf("删除用户失败: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), "5"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望用户已删除，实际=%v", err)
	}
	if err := svc.Delete(context.Background(), "5", adminCaller); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际=%v", err)
	}
}
