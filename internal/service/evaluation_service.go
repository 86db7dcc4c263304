package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"digital-supervision/backend/internal/dto"
	"digital-supervision/backend/internal/model"
	"digital-supervision/backend/internal/repository"
	"digital-supervision/backend/internal/scoring"
	"digital-supervision/backend/pkg/notify"
	"digital-supervision/backend/pkg/photo"
)

// ── 评估模块业务错误 ──

var ErrEvaluationNotFound = errors.New("ไม่พบผลการประเมิน")

// EvaluationService 评估业务接口
type EvaluationService interface {
	// Submit 督导提交评估，成功后任务变为 COMPLETED
	Submit(ctx context.Context, assignmentID string, req *dto.SubmitEvaluationRequest, caller Caller) (*dto.EvaluationResponse, error)
	GetDetail(ctx context.Context, id string, caller Caller) (*dto.EvaluationDetailResponse, error)
	// ListForTeacher 教师本人的评估记录，最新在前
	ListForTeacher(ctx context.Context, caller Caller) ([]dto.EvaluationDetailResponse, error)
}

type evaluationService struct {
	repo        *repository.Repository
	photos      *photo.Processor
	notifier    notify.Notifier
	submitDelay time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

// NewEvaluationService 创建 EvaluationService 实例
func NewEvaluationService(
	repo *repository.Repository,
	photos *photo.Processor,
	notifier notify.Notifier,
	submitDelay time.Duration,
	logger *zap.Logger,
) EvaluationService {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &evaluationService{
		repo:        repo,
		photos:      photos,
		notifier:    notifier,
		submitDelay: submitDelay,
		logger:      logger,
		now:         time.Now,
	}
}

// ────────────────────── Submit ──────────────────────

func (s *evaluationService) Submit(ctx context.Context, assignmentID string, req *dto.SubmitEvaluationRequest, caller Caller) (*dto.EvaluationResponse, error) {
	if caller.Role != model.RoleSupervisor {
		return nil, ErrNoPermission
	}

	// 每次提交只等待一次
	if s.submitDelay > 0 {
		timer := time.NewTimer(s.submitDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	var (
		evaluation *model.Evaluation
		assignment *model.Assignment
	)
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		a, err := tx.Assignment.GetByID(ctx, assignmentID)
		if err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return ErrAssignmentNotFound
			}
			return err
		}
		if a.SupervisorID != caller.UserID {
			return ErrNoPermission
		}
		if a.IsCompleted() {
			return ErrAssignmentCompleted
		}
		if _, err := tx.Evaluation.GetByAssignmentID(ctx, a.ID); err == nil {
			return ErrAssignmentCompleted
		} else if !errors.Is(err, repository.ErrRecordNotFound) {
			return err
		}

		// 使用提交时的评分表与评分尺度
		rubric, err := tx.Criteria.Get(ctx)
		if err != nil {
			return err
		}
		settings, err := loadSettings(ctx, tx)
		if err != nil {
			return err
		}
		result, err := scoring.Score(rubric, settings.MaxScaleValue, req.Scores)
		if err != nil {
			return err
		}

		photos, err := s.photos.Process(ctx, req.Photos)
		if err != nil {
			return err
		}

		e := &model.Evaluation{
			ID:           uuid.New().String(),
			AssignmentID: a.ID,
			Date:         s.now(),
			Scores:       result.Scores,
			TotalScore:   result.TotalScore,
			Percentage:   result.Percentage,
			Grade:        result.Grade,
			Strengths:    req.Strengths,
			Improvements: req.Improvements,
			Suggestions:  req.Suggestions,
			Photos:       photos,
		}
		if err := tx.Evaluation.Create(ctx, e); err != nil {
			return err
		}

		a.Status = model.AssignmentCompleted
		a.Touch(e.Date)
		if err := tx.Assignment.Update(ctx, a); err != nil {
			// 状态更新失败时撤销已写入的评估
			if derr := tx.Evaluation.Delete(ctx, e.ID); derr != nil {
				s.logger.Error("撤销评估失败", zap.String("evaluation_id", e.ID), zap.Error(derr))
			}
			return err
		}

		evaluation, assignment = e, a
		return nil
	})
	if err != nil {
		if !isBusinessError(err) && !errors.Is(err, context.Canceled) {
			s.logger.Error("提交评估失败", zap.String("assignment_id", assignmentID), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("评估已提交",
		zap.String("assignment_id", assignment.ID),
		zap.String("evaluation_id", evaluation.ID),
		zap.Int("percentage", evaluation.Percentage),
	)
	s.notifySubmitted(ctx, assignment, evaluation)

	resp := toEvaluationResponse(evaluation)
	return &resp, nil
}

func (s *evaluationService) notifySubmitted(ctx context.Context, a *model.Assignment, e *model.Evaluation) {
	l, err := loadLookup(ctx, s.repo)
	if err != nil {
		s.logger.Warn("加载关联数据失败", zap.Error(err))
		return
	}
	resp := l.toAssignmentResponse(a)
	text := fmt.Sprintf("นิเทศเสร็จสิ้น: %s วิชา %s %s ได้ %d%% (%s)",
		resp.TeacherName, resp.SubjectCode, resp.SubjectName, e.Percentage, e.Grade)
	if err := s.notifier.Notify(ctx, text); err != nil {
		s.logger.Warn("发送通知失败", zap.Error(err))
	}
}

// ────────────────────── GetDetail ──────────────────────

func (s *evaluationService) GetDetail(ctx context.Context, id string, caller Caller) (*dto.EvaluationDetailResponse, error) {
	e, err := s.repo.Evaluation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrEvaluationNotFound
		}
		s.logger.Error("查询评估失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	l, err := loadLookup(ctx, s.repo)
	if err != nil {
		s.logger.Error("加载关联数据失败", zap.Error(err))
		return nil, err
	}

	detail, ok := s.detail(ctx, l, e, caller)
	if !ok {
		return nil, ErrNoPermission
	}
	return detail, nil
}

// detail 组装详情；任务已被删除时仅管理员可见
func (s *evaluationService) detail(ctx context.Context, l *lookup, e *model.Evaluation, caller Caller) (*dto.EvaluationDetailResponse, bool) {
	a, err := s.repo.Assignment.GetByID(ctx, e.AssignmentID)
	if err != nil {
		if caller.Role != model.RoleAdmin {
			return nil, false
		}
		return &dto.EvaluationDetailResponse{
			Evaluation: toEvaluationResponse(e),
			Assignment: dto.AssignmentResponse{ID: e.AssignmentID, EvaluationID: e.ID},
		}, true
	}
	if !canView(caller, a) {
		return nil, false
	}
	return &dto.EvaluationDetailResponse{
		Evaluation: toEvaluationResponse(e),
		Assignment: l.toAssignmentResponse(a),
	}, true
}

// ────────────────────── ListForTeacher ──────────────────────

func (s *evaluationService) ListForTeacher(ctx context.Context, caller Caller) ([]dto.EvaluationDetailResponse, error) {
	if caller.Role != model.RoleTeacher {
		return nil, ErrNoPermission
	}

	assignments, err := s.repo.Assignment.List(ctx, repository.AssignmentListFilters{TeacherID: caller.UserID})
	if err != nil {
		s.logger.Error("列出督导任务失败", zap.Error(err))
		return nil, err
	}
	byID := make(map[string]*model.Assignment, len(assignments))
	for i := range assignments {
		byID[assignments[i].ID] = &assignments[i]
	}

	evals, err := s.repo.Evaluation.List(ctx)
	if err != nil {
		s.logger.Error("列出评估失败", zap.Error(err))
		return nil, err
	}

	l, err := loadLookup(ctx, s.repo)
	if err != nil {
		s.logger.Error("加载关联数据失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EvaluationDetailResponse, 0)
	for i := range evals {
		a, ok := byID[evals[i].AssignmentID]
		if !ok {
			continue
		}
		result = append(result, dto.EvaluationDetailResponse{
			Evaluation: toEvaluationResponse(&evals[i]),
			Assignment: l.toAssignmentResponse(a),
		})
	}

	sortByDateDesc(result)
	return result, nil
}
