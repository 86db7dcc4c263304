package service

import (
	"context"
	"errors"
	"math"
	"sort"

	"go.uber.org/zap"

	"digital-supervision/backend/internal/dto"
	"digital-supervision/backend/internal/model"
	"digital-supervision/backend/internal/report"
	"digital-supervision/backend/internal/repository"
)

// ReportService 报表业务接口
type ReportService interface {
	// SubjectAverages 各科目已完成评估的平均百分比
	SubjectAverages(ctx context.Context) ([]dto.SubjectAverageResponse, error)
	// RenderEvaluation 生成可打印的评估报告 HTML
	RenderEvaluation(ctx context.Context, evaluationID string, caller Caller) ([]byte, error)
}

type reportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

// ────────────────────── SubjectAverages ──────────────────────

func (s *reportService) SubjectAverages(ctx context.Context) ([]dto.SubjectAverageResponse, error) {
	assignments, err := s.repo.Assignment.List(ctx, repository.AssignmentListFilters{})
	if err != nil {
		s.logger.Error("列出督导任务失败", zap.Error(err))
		return nil, err
	}
	l, err := loadLookup(ctx, s.repo)
	if err != nil {
		s.logger.Error("加载关联数据失败", zap.Error(err))
		return nil, err
	}
	return subjectAverages(l, assignments), nil
}

// subjectAverages 仅统计有评估的已完成任务，平均值为 0 的科目不返回
func subjectAverages(l *lookup, assignments []model.Assignment) []dto.SubjectAverageResponse {
	type acc struct {
		sum, n int
	}
	bySubject := make(map[string]*acc)
	for i := range assignments {
		a := &assignments[i]
		if !a.IsCompleted() {
			continue
		}
		e, ok := l.evalByAssignment[a.ID]
		if !ok {
			continue
		}
		v, ok := bySubject[a.SubjectID]
		if !ok {
			v = &acc{}
			bySubject[a.SubjectID] = v
		}
		v.sum += e.Percentage
		v.n++
	}

	result := make([]dto.SubjectAverageResponse, 0, len(bySubject))
	for id, v := range bySubject {
		avg := round1(float64(v.sum) / float64(v.n))
		if avg <= 0 {
			continue
		}
		resp := dto.SubjectAverageResponse{SubjectID: id, Evaluations: v.n, Average: avg}
		if sub, ok := l.subjects[id]; ok {
			resp.SubjectCode = sub.Code
			resp.SubjectName = sub.Name
		}
		result = append(result, resp)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].SubjectCode != result[j].SubjectCode {
			return result[i].SubjectCode < result[j].SubjectCode
		}
		return result[i].SubjectID < result[j].SubjectID
	})
	return result
}

// round1 保留一位小数
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ────────────────────── RenderEvaluation ──────────────────────

func (s *reportService) RenderEvaluation(ctx context.Context, evaluationID string, caller Caller) ([]byte, error) {
	e, err := s.repo.Evaluation.GetByID(ctx, evaluationID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrEvaluationNotFound
		}
		s.logger.Error("查询评估失败", zap.String("id", evaluationID), zap.Error(err))
		return nil, err
	}

	// 任务缺失时仅管理员可查看，关联字段渲染为占位符
	var a *model.Assignment
	a, err = s.repo.Assignment.GetByID(ctx, e.AssignmentID)
	if err != nil {
		if !errors.Is(err, repository.ErrRecordNotFound) {
			s.logger.Error("查询督导任务失败", zap.Error(err))
			return nil, err
		}
		if caller.Role != model.RoleAdmin {
			return nil, ErrNoPermission
		}
		a = &model.Assignment{ID: e.AssignmentID}
	} else if !canView(caller, a) {
		return nil, ErrNoPermission
	}

	l, err := loadLookup(ctx, s.repo)
	if err != nil {
		s.logger.Error("加载关联数据失败", zap.Error(err))
		return nil, err
	}
	rubric, err := s.repo.Criteria.Get(ctx)
	if err != nil {
		s.logger.Error("读取评分表失败", zap.Error(err))
		return nil, err
	}
	settings, err := loadSettings(ctx, s.repo)
	if err != nil {
		s.logger.Error("读取评分尺度失败", zap.Error(err))
		return nil, err
	}

	joined := l.toAssignmentResponse(a)
	doc := report.Document{
		EvaluationID:   e.ID,
		TeacherName:    joined.TeacherName,
		SupervisorName: joined.SupervisorName,
		SubjectCode:    joined.SubjectCode,
		SubjectName:    joined.SubjectName,
		ClassName:      joined.ClassName,
		Year:           a.Year,
		Semester:       a.Semester,
		Date:           e.Date,
		Percentage:     e.Percentage,
		TotalScore:     e.TotalScore,
		Grade:          e.Grade,
		Strengths:      e.Strengths,
		Improvements:   e.Improvements,
		Suggestions:    e.Suggestions,
		Photos:         e.Photos,
		Sections:       report.Breakdown(rubric, settings, e.Scores),
	}

	body, err := report.Render(ctx, doc)
	if err != nil {
		s.logger.Error("渲染评估报告失败", zap.String("id", evaluationID), zap.Error(err))
		return nil, err
	}
	return body, nil
}
