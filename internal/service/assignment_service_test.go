package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"digital-supervision/backend/internal/dto"
	"digital-supervision/backend/internal/repository"
	pkgerrors "digital-supervision/backend/pkg/errors"
	"digital-supervision/backend/pkg/notify"
)

func newTestAssignmentService(t *testing.T) (AssignmentService, *repository.Repository, *notify.Recorder) {
	t.Helper()
	repo := newSeededRepo(t)
	rec := &notify.Recorder{}
	return NewAssignmentService(repo, rec, testLogger()), repo, rec
}

func cartRequest(subjects ...string) *dto.CreateAssignmentCartRequest {
	return &dto.CreateAssignmentCartRequest{
		SupervisorID: "3",
		TeacherID:    "5",
		ClassID:      "c2",
		SubjectIDs:   subjects,
	}
}

func TestCreateCart_FansOut(t *testing.T) {
	svc, repo, rec := newTestAssignmentService(t)

	created, err := svc.CreateCart(context.Background(), cartRequest("s2", "s3"))
	if err != nil {
		t.Fatalf("创建督导任务失败: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("期望创建 2 条任务，实际=%d", len(created))
	}
	for i, a := range created {
		if a.Status != "PENDING" {
			t.Errorf("任务 %d 期望 PENDING，实际=%s", i, a.Status)
		}
		if a.Year != DefaultYear || a.Semester != DefaultSemester {
			t.Errorf("任务 %d 期望默认学期 %s/%s，实际 %s/%s", i, DefaultSemester, DefaultYear, a.Semester, a.Year)
		}
		if a.SupervisorName != "ครูสมหญิง (ผู้นิเทศ)" || a.TeacherName != "ครูวิมล" || a.ClassName != "ม.4/2" {
			t.Errorf("任务 %d 关联名称不正确: %+v", i, a)
		}
	}
	if created[0].SubjectID != "s2" || created[1].SubjectID != "s3" {
		t.Errorf("期望按科目顺序创建，实际=%s,%s", created[0].SubjectID, created[1].SubjectID)
	}

	all, _ := repo.Assignment.List(context.Background(), repository.AssignmentListFilters{})
	if len(all) != 3 {
		t.Errorf("期望共 3 条任务，实际=%d", len(all))
	}
	if len(rec.Sent()) != 1 {
		t.Errorf("期望发送 1 条通知，实际=%d", len(rec.Sent()))
	}
}

func TestCreateCart_Validation(t *testing.T) {
	svc, repo, _ := newTestAssignmentService(t)

	_, err := svc.CreateCart(context.Background(), cartRequest())
	if !errors.Is(err, pkgerrors.ErrValidation) {
		t.Fatalf("期望校验错误，实际=%v", err)
	}
	if err.Error() != "กรุณาระบุ ผู้นิเทศ ครู ห้องเรียน และเลือกวิชา" {
		t.Errorf("提示信息不正确: %s", err.Error())
	}

	req := cartRequest("s1")
	req.ClassID = ""
	if _, err := svc.CreateCart(context.Background(), req); !errors.Is(err, pkgerrors.ErrValidation) {
		t.Errorf("期望缺少班级时校验失败，实际=%v", err)
	}

	all, _ := repo.Assignment.List(context.Background(), repository.AssignmentListFilters{})
	if len(all) != 1 {
		t.Errorf("期望校验失败时不写入任务，实际=%d", len(all))
	}
}

func TestCreateCart_References(t *testing.T) {
	svc, repo, rec := newTestAssignmentService(t)

	tests := []struct {
		name   string
		mutate func(*dto.CreateAssignmentCartRequest)
		want   error
	}{
		{"督导角色错误", func(r *dto.CreateAssignmentCartRequest) { r.SupervisorID = "4" }, ErrInvalidSupervisor},
		{"教师角色错误", func(r *dto.CreateAssignmentCartRequest) { r.TeacherID = "2" }, ErrInvalidTeacher},
		{"班级不存在", func(r *dto.CreateAssignmentCartRequest) { r.ClassID = "c9" }, ErrClassNotFound},
		{"科目不存在", func(r *dto.CreateAssignmentCartRequest) { r.SubjectIDs = []string{"s1", "s9"} }, ErrSubjectNotFound},
		{"科目重复", func(r *dto.CreateAssignmentCartRequest) { r.SubjectIDs = []string{"s1", "s1"} }, ErrDuplicateSubject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := cartRequest("s1")
			tt.mutate(req)
			if _, err := svc.CreateCart(context.Background(), req); !errors.Is(err, tt.want) {
				t.Errorf("期望 %v，实际=%v", tt.want, err)
			}
		})
	}

	all, _ := repo.Assignment.List(context.Background(), repository.AssignmentListFilters{})
	if len(all) != 1 {
		t.Errorf("期望失败时不写入任务，实际=%d", len(all))
	}
	if len(rec.Sent()) != 0 {
		t.Errorf("期望失败时不发送通知，实际=%d", len(rec.Sent()))
	}
}

func TestAssignmentList_ScopedByRole(t *testing.T) {
	svc, _, _ := newTestAssignmentService(t)
	ctx := context.Background()
	if _, err := svc.CreateCart(ctx, cartRequest("s2", "s4")); err != nil {
		t.Fatalf("创建督导任务失败: %v", err)
	}

	all, err := svc.List(ctx, &dto.AssignmentListRequest{}, adminCaller)
	if err != nil {
		t.Fatalf("列出任务失败: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("管理员期望看到 3 条，实际=%d", len(all))
	}
	if all[0].Status != "PENDING" {
		t.Errorf("期望未完成任务排在前面，实际=%s", all[0].Status)
	}

	// 督导传入其他督导的筛选条件也只能看到自己的任务
	own, _ := svc.List(ctx, &dto.AssignmentListRequest{SupervisorID: "3"}, sup1Caller)
	if len(own) != 1 || own[0].ID != "a1" {
		t.Errorf("督导 2 期望只看到 a1，实际=%+v", own)
	}

	pending, _ := svc.List(ctx, &dto.AssignmentListRequest{Status: "PENDING"}, sup2Caller)
	if len(pending) != 2 {
		t.Errorf("督导 3 期望 2 条未完成任务，实际=%d", len(pending))
	}

	teacher, _ := svc.List(ctx, &dto.AssignmentListRequest{}, tea1Caller)
	if len(teacher) != 1 {
		t.Errorf("教师 4 期望 1 条任务，实际=%d", len(teacher))
	}
}

func TestAssignmentList_Keyword(t *testing.T) {
	svc, _, _ := newTestAssignmentService(t)
	ctx := context.Background()
	if _, err := svc.CreateCart(ctx, cartRequest("s2")); err != nil {
		t.Fatalf("创建督导任务失败: %v", err)
	}

	tests := []struct {
		keyword string
		want    int
	}{
		{"วิชัย", 1},
		{"วิทยา", 1},
		{"ค21101", 1},
		{"ครู", 2},
		{"ไม่มี", 0},
	}
	for _, tt := range tests {
		got, err := svc.List(ctx, &dto.AssignmentListRequest{Keyword: tt.keyword}, adminCaller)
		if err != nil {
			t.Fatalf("列出任务失败: %v", err)
		}
		if len(got) != tt.want {
			t.Errorf("关键字 %q 期望 %d 条，实际=%d", tt.keyword, tt.want, len(got))
		}
	}
}

func TestAssignmentGetByID_Access(t *testing.T) {
	svc, _, _ := newTestAssignmentService(t)
	ctx := context.Background()

	a, err := svc.GetByID(ctx, "a1", sup1Caller)
	if err != nil {
		t.Fatalf("查询任务失败: %v", err)
	}
	if a.EvaluationID != "e1" || a.SubjectName != "คณิตศาสตร์พื้นฐาน" {
		t.Errorf("任务详情不正确: %+v", a)
	}

	if _, err := svc.GetByID(ctx, "a1", sup2Caller); !errors.Is(err, ErrNoPermission) {
		t.Errorf("期望 ErrNoPermission，实际=%v", err)
	}
	if _, err := svc.GetByID(ctx, "a1", tea2Caller); !errors.Is(err, ErrNoPermission) {
		t.Errorf("期望 ErrNoPermission，实际=%v", err)
	}
	if _, err := svc.GetByID(ctx, "missing", adminCaller); !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("期望 ErrAssignmentNotFound，实际=%v", err)
	}
}

func TestAssignmentDelete(t *testing.T) {
	svc, _, _ := newTestAssignmentService(t)
	ctx := context.Background()

	if err := svc.Delete(ctx, "a1"); !errors.Is(err, ErrAssignmentCompleted) {
		t.Errorf("期望已完成任务不可删除，实际=%v", err)
	}

	created, err := svc.CreateCart(ctx, cartRequest("s2"))
	if err != nil {
		t.Fatalf("创建督导任务失败: %v", err)
	}
	if err := svc.Delete(ctx, created[0].ID); err != nil {
		t.Fatalf("删除任务失败: %v", err)
	}
	if err := svc.Delete(ctx, created[0].ID); !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("期望 ErrAssignmentNotFound，实际=%v", err)
	}
}

func TestAssignmentResponse_MissingJoins(t *testing.T) {
	svc, repo, _ := newTestAssignmentService(t)
	ctx := context.Background()

	if err := repo.Subject.Delete(ctx, "s1"); err != nil {
		t.Fatalf("删除科目失败: %v", err)
	}
	a, err := svc.GetByID(ctx, "a1", adminCaller)
	if err != nil {
		t.Fatalf("期望关联缺失时仍可查询，实际=%v", err)
	}
	if a.SubjectName != "" || !strings.Contains(a.TeacherName, "วิชัย") {
		t.Errorf("期望科目名称为空，实际=%+v", a)
	}
}
