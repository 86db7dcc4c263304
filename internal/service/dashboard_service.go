package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"digital-supervision/backend/internal/dto"
	"digital-supervision/backend/internal/model"
	"digital-supervision/backend/internal/repository"
)

// 教师看板显示的最近评估条数
const recentEvaluations = 5

// DashboardService 看板业务接口
type DashboardService interface {
	Get(ctx context.Context, caller Caller) (*dto.DashboardResponse, error)
}

// dashboardBuilder 某一角色的看板构建函数
type dashboardBuilder func(ctx context.Context, caller Caller, resp *dto.DashboardResponse) error

type dashboardService struct {
	repo     *repository.Repository
	logger   *zap.Logger
	builders map[model.Role]dashboardBuilder
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(repo *repository.Repository, logger *zap.Logger) DashboardService {
	s := &dashboardService{repo: repo, logger: logger}
	s.builders = map[model.Role]dashboardBuilder{
		model.RoleAdmin:      s.buildAdmin,
		model.RoleSupervisor: s.buildSupervisor,
		model.RoleTeacher:    s.buildTeacher,
	}
	return s
}

func (s *dashboardService) Get(ctx context.Context, caller Caller) (*dto.DashboardResponse, error) {
	build, ok := s.builders[caller.Role]
	if !ok {
		return nil, ErrNoPermission
	}

	resp := &dto.DashboardResponse{Role: string(caller.Role)}
	if err := build(ctx, caller, resp); err != nil {
		s.logger.Error("构建看板失败", zap.String("role", string(caller.Role)), zap.Error(err))
		return nil, err
	}
	return resp, nil
}

// ────────────────────── Admin ──────────────────────

func (s *dashboardService) buildAdmin(ctx context.Context, _ Caller, resp *dto.DashboardResponse) error {
	assignments, err := s.repo.Assignment.List(ctx, repository.AssignmentListFilters{})
	if err != nil {
		return err
	}
	l, err := loadLookup(ctx, s.repo)
	if err != nil {
		return err
	}

	completed := 0
	for i := range assignments {
		if assignments[i].IsCompleted() {
			completed++
		}
	}

	// 总平均分统计所有评估
	sum, n := 0, 0
	for _, e := range l.evals {
		sum += e.Percentage
		n++
	}
	avg := 0.0
	if n > 0 {
		avg = round1(float64(sum) / float64(n))
	}

	resp.Admin = &dto.AdminDashboardResponse{
		TotalAssignments:     len(assignments),
		CompletedAssignments: completed,
		AveragePercentage:    avg,
		SubjectAverages:      subjectAverages(l, assignments),
	}
	return nil
}

// ────────────────────── Supervisor ──────────────────────

func (s *dashboardService) buildSupervisor(ctx context.Context, caller Caller, resp *dto.DashboardResponse) error {
	assignments, err := s.repo.Assignment.List(ctx, repository.AssignmentListFilters{SupervisorID: caller.UserID})
	if err != nil {
		return err
	}

	d := &dto.SupervisorDashboardResponse{}
	for i := range assignments {
		if assignments[i].IsCompleted() {
			d.Completed++
		} else {
			d.Pending++
		}
	}
	resp.Supervisor = d
	return nil
}

// ────────────────────── Teacher ──────────────────────

func (s *dashboardService) buildTeacher(ctx context.Context, caller Caller, resp *dto.DashboardResponse) error {
	assignments, err := s.repo.Assignment.List(ctx, repository.AssignmentListFilters{TeacherID: caller.UserID})
	if err != nil {
		return err
	}
	l, err := loadLookup(ctx, s.repo)
	if err != nil {
		return err
	}

	history := make([]dto.EvaluationDetailResponse, 0)
	for i := range assignments {
		e, ok := l.evalByAssignment[assignments[i].ID]
		if !ok {
			continue
		}
		history = append(history, dto.EvaluationDetailResponse{
			Evaluation: toEvaluationResponse(e),
			Assignment: l.toAssignmentResponse(&assignments[i]),
		})
	}
	sortByDateDesc(history)

	d := &dto.TeacherDashboardResponse{
		Evaluations: len(history),
		LatestTerm:  "-",
		GradeCounts: gradeCounts(history),
	}
	if len(history) > 0 {
		sum := 0
		for _, h := range history {
			sum += h.Evaluation.Percentage
		}
		d.AveragePercentage = round1(float64(sum) / float64(len(history)))
		d.LatestTerm = fmt.Sprintf("%s/%s", history[0].Assignment.Semester, history[0].Assignment.Year)
	}
	if len(history) > recentEvaluations {
		d.Recent = history[:recentEvaluations]
	} else {
		d.Recent = history
	}

	resp.Teacher = d
	return nil
}

// gradeCounts 按等级由高到低计数，计数为 0 的等级不返回
func gradeCounts(history []dto.EvaluationDetailResponse) []dto.GradeCountResponse {
	counts := make(map[model.Grade]int, len(model.Grades))
	for _, h := range history {
		counts[model.Grade(h.Evaluation.Grade)]++
	}

	result := make([]dto.GradeCountResponse, 0, len(model.Grades))
	for _, g := range model.Grades {
		if counts[g] == 0 {
			continue
		}
		result = append(result, dto.GradeCountResponse{Grade: string(g), Color: g.Color(), Count: counts[g]})
	}
	return result
}
