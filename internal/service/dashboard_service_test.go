package service

import (
	"context"
	"errors"
	"testing"

	"digital-supervision/backend/internal/model"
)

func TestDashboard_Admin(t *testing.T) {
	svc := NewDashboardService(newSeededRepo(t), testLogger())

	d, err := svc.Get(context.Background(), adminCaller)
	if err != nil {
		t.Fatalf("构建看板失败: %v", err)
	}
	if d.Admin == nil || d.Supervisor != nil || d.Teacher != nil {
		t.Fatalf("期望仅返回管理员看板，实际=%+v", d)
	}
	if d.Admin.TotalAssignments != 1 || d.Admin.CompletedAssignments != 1 {
		t.Errorf("任务统计不正确: %+v", d.Admin)
	}
	if d.Admin.AveragePercentage != 91 {
		t.Errorf("期望平均 91，实际=%v", d.Admin.AveragePercentage)
	}
	if len(d.Admin.SubjectAverages) != 1 {
		t.Errorf("期望 1 个科目平均分，实际=%d", len(d.Admin.SubjectAverages))
	}
}

func TestDashboard_Supervisor(t *testing.T) {
	repo := newSeededRepo(t)
	svc := NewDashboardService(repo, testLogger())
	ctx := context.Background()

	pending := model.Assignment{ID: "a2", SupervisorID: "2", TeacherID: "5", ClassID: "c1", SubjectID: "s2", Status: model.AssignmentPending}
	if err := repo.Assignment.CreateBatch(ctx, []model.Assignment{pending}); err != nil {
		t.Fatalf("创建任务失败: %v", err)
	}

	d, err := svc.Get(ctx, sup1Caller)
	if err != nil {
		t.Fatalf("构建看板失败: %v", err)
	}
	if d.Supervisor.Pending != 1 || d.Supervisor.Completed != 1 {
		t.Errorf("期望 1 未完成 1 已完成，实际=%+v", d.Supervisor)
	}

	d, _ = svc.Get(ctx, sup2Caller)
	if d.Supervisor.Pending != 0 || d.Supervisor.Completed != 0 {
		t.Errorf("期望督导 3 没有任务，实际=%+v", d.Supervisor)
	}
}

func TestDashboard_Teacher(t *testing.T) {
	svc := NewDashboardService(newSeededRepo(t), testLogger())
	ctx := context.Background()

	d, err := svc.Get(ctx, tea1Caller)
	if err != nil {
		t.Fatalf("构建看板失败: %v", err)
	}
	td := d.Teacher
	if td.Evaluations != 1 || td.AveragePercentage != 91 || td.LatestTerm != "1/2568" {
		t.Errorf("教师看板不正确: %+v", td)
	}
	if len(td.GradeCounts) != 1 || td.GradeCounts[0].Grade != string(model.GradeExcellent) || td.GradeCounts[0].Color != "#26A69A" {
		t.Errorf("等级分布不正确: %+v", td.GradeCounts)
	}
	if len(td.Recent) != 1 {
		t.Errorf("期望 1 条最近评估，实际=%d", len(td.Recent))
	}

	d, _ = svc.Get(ctx, tea2Caller)
	if d.Teacher.Evaluations != 0 || d.Teacher.LatestTerm != "-" || len(d.Teacher.GradeCounts) != 0 {
		t.Errorf("期望空教师看板，实际=%+v", d.Teacher)
	}
}

func TestDashboard_UnknownRole(t *testing.T) {
	svc := NewDashboardService(newSeededRepo(t), testLogger())
	if _, err := svc.Get(context.Background(), Caller{UserID: "x", Role: "GUEST"}); !errors.Is(err, ErrNoPermission) {
		t.Errorf("期望 ErrNoPermission，实际=%v", err)
	}
}
