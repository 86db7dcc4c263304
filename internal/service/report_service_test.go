package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"digital-supervision/backend/internal/model"
)

func TestSubjectAverages(t *testing.T) {
	repo := newSeededRepo(t)
	svc := NewReportService(repo, testLogger())
	ctx := context.Background()

	avgs, err := svc.SubjectAverages(ctx)
	if err != nil {
		t.Fatalf("统计科目平均分失败: %v", err)
	}
	if len(avgs) != 1 {
		t.Fatalf("期望 1 个科目，实际=%d", len(avgs))
	}
	if avgs[0].SubjectID != "s1" || avgs[0].Average != 91 || avgs[0].Evaluations != 1 {
		t.Errorf("科目平均分不正确: %+v", avgs[0])
	}

	// 追加一次 80% 的评估后平均为 85.5
	a := model.Assignment{ID: "a9", SupervisorID: "2", TeacherID: "5", ClassID: "c1", SubjectID: "s1", Status: model.AssignmentCompleted}
	if err := repo.Assignment.CreateBatch(ctx, []model.Assignment{a}); err != nil {
		t.Fatalf("创建任务失败: %v", err)
	}
	if err := repo.Evaluation.Create(ctx, &model.Evaluation{ID: "e9", AssignmentID: "a9", Percentage: 80}); err != nil {
		t.Fatalf("创建评估失败: %v", err)
	}
	// 未完成任务上的评估不计入
	p := model.Assignment{ID: "a10", SupervisorID: "2", TeacherID: "5", ClassID: "c1", SubjectID: "s2", Status: model.AssignmentPending}
	if err := repo.Assignment.CreateBatch(ctx, []model.Assignment{p}); err != nil {
		t.Fatalf("创建任务失败: %v", err)
	}
	if err := repo.Evaluation.Create(ctx, &model.Evaluation{ID: "e10", AssignmentID: "a10", Percentage: 70}); err != nil {
		t.Fatalf("创建评估失败: %v", err)
	}

	avgs, _ = svc.SubjectAverages(ctx)
	if len(avgs) != 1 || avgs[0].Average != 85.5 || avgs[0].Evaluations != 2 {
		t.Errorf("期望 s1 平均 85.5，实际=%+v", avgs)
	}
}

func TestRenderEvaluation(t *testing.T) {
	svc := NewReportService(newSeededRepo(t), testLogger())
	ctx := context.Background()

	body, err := svc.RenderEvaluation(ctx, "e1", tea1Caller)
	if err != nil {
		t.Fatalf("渲染报告失败: %v", err)
	}
	html := string(body)
	for _, want := range []string{"ครูวิชัย", "ครูสมชาย (ผู้นิเทศ)", "ค21101", "91", "ดีมาก", "เพิ่มการใช้เทคโนโลยีในบางช่วง"} {
		if !strings.Contains(html, want) {
			t.Errorf("期望报告包含 %q", want)
		}
	}

	if _, err := svc.RenderEvaluation(ctx, "e1", tea2Caller); !errors.Is(err, ErrNoPermission) {
		t.Errorf("期望 ErrNoPermission，实际=%v", err)
	}
	if _, err := svc.RenderEvaluation(ctx, "e404", adminCaller); !errors.Is(err, ErrEvaluationNotFound) {
		t.Errorf("期望 ErrEvaluationNotFound，实际=%v", err)
	}
}

func TestRenderEvaluation_MissingJoins(t *testing.T) {
	repo := newSeededRepo(t)
	svc := NewReportService(repo, testLogger())
	ctx := context.Background()

	if err := repo.User.Delete(ctx, "4"); err != nil {
		t.Fatalf("删除教师失败: %v", err)
	}
	if err := repo.Assignment.Delete(ctx, "a1"); err != nil {
		t.Fatalf("删除任务失败: %v", err)
	}

	body, err := svc.RenderEvaluation(ctx, "e1", adminCaller)
	if err != nil {
		t.Fatalf("期望关联缺失时仍可渲染，实际=%v", err)
	}
	if strings.Contains(string(body), "ครูวิชัย") {
		t.Error("期望已删除的教师不出现在报告中")
	}

	if _, err := svc.RenderEvaluation(ctx, "e1", sup1Caller); !errors.Is(err, ErrNoPermission) {
		t.Errorf("期望任务缺失时仅管理员可见，实际=%v", err)
	}
}
