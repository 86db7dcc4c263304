package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"digital-supervision/backend/internal/dto"
	"digital-supervision/backend/internal/model"
	"digital-supervision/backend/internal/repository"
	"digital-supervision/backend/pkg/notify"
	"digital-supervision/backend/pkg/validate"
)

// ── 督导任务模块业务错误 ──

var (
	ErrAssignmentNotFound  = errors.New("ไม่พบรายการนิเทศ")
	ErrAssignmentCompleted = errors.New("รายการนิเทศนี้ประเมินเสร็จสิ้นแล้ว")
	ErrInvalidSupervisor   = errors.New("ไม่พบผู้นิเทศที่เลือก")
	ErrInvalidTeacher      = errors.New("ไม่พบครูที่เลือก")
	ErrDuplicateSubject    = errors.New("เลือกรายวิชาซ้ำ")
)

// 购物车默认学年/学期
const (
	DefaultYear     = "2568"
	DefaultSemester = "1"
)

// AssignmentService 督导任务业务接口
type AssignmentService interface {
	// CreateCart 为每门科目各创建一条 PENDING 任务
	CreateCart(ctx context.Context, req *dto.CreateAssignmentCartRequest) ([]dto.AssignmentResponse, error)
	List(ctx context.Context, req *dto.AssignmentListRequest, caller Caller) ([]dto.AssignmentResponse, error)
	GetByID(ctx context.Context, id string, caller Caller) (*dto.AssignmentResponse, error)
	// Delete 仅允许删除未完成的任务
	Delete(ctx context.Context, id string) error
}

type assignmentService struct {
	repo     *repository.Repository
	notifier notify.Notifier
	logger   *zap.Logger
}

// NewAssignmentService 创建 AssignmentService 实例
func NewAssignmentService(repo *repository.Repository, notifier notify.Notifier, logger *zap.Logger) AssignmentService {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &assignmentService{repo: repo, notifier: notifier, logger: logger}
}

// ────────────────────── CreateCart ──────────────────────

func (s *assignmentService) CreateCart(ctx context.Context, req *dto.CreateAssignmentCartRequest) ([]dto.AssignmentResponse, error) {
	if req.Year == "" {
		req.Year = DefaultYear
	}
	if req.Semester == "" {
		req.Semester = DefaultSemester
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(req.SubjectIDs))
	for _, id := range req.SubjectIDs {
		if _, ok := seen[id]; ok {
			return nil, ErrDuplicateSubject
		}
		seen[id] = struct{}{}
	}

	now := time.Now()
	assignments := make([]model.Assignment, 0, len(req.SubjectIDs))
	for _, subjectID := range req.SubjectIDs {
		a := model.Assignment{
			ID:           uuid.New().String(),
			SupervisorID: req.SupervisorID,
			TeacherID:    req.TeacherID,
			ClassID:      req.ClassID,
			SubjectID:    subjectID,
			Status:       model.AssignmentPending,
			Year:         req.Year,
			Semester:     req.Semester,
		}
		a.Touch(now)
		assignments = append(assignments, a)
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := checkCartReferences(ctx, tx, req); err != nil {
			return err
		}
		return tx.Assignment.CreateBatch(ctx, assignments)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("创建督导任务失败", zap.Error(err))
		}
		return nil, err
	}

	l, err := loadLookup(ctx, s.repo)
	if err != nil {
		s.logger.Error("加载关联数据失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		result = append(result, l.toAssignmentResponse(&assignments[i]))
	}

	s.notify(ctx, fmt.Sprintf("มอบหมายการนิเทศใหม่ %d รายการ: %s นิเทศ %s",
		len(assignments), l.userName(req.SupervisorID), l.userName(req.TeacherID)))

	return result, nil
}

// checkCartReferences 督导/教师角色正确，班级与科目存在
func checkCartReferences(ctx context.Context, tx *repository.Repository, req *dto.CreateAssignmentCartRequest) error {
	supervisor, err := tx.User.GetByID(ctx, req.SupervisorID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return ErrInvalidSupervisor
		}
		return err
	}
	if supervisor.Role != model.RoleSupervisor {
		return ErrInvalidSupervisor
	}

	teacher, err := tx.User.GetByID(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return ErrInvalidTeacher
		}
		return err
	}
	if teacher.Role != model.RoleTeacher {
		return ErrInvalidTeacher
	}

	if _, err := tx.SchoolClass.GetByID(ctx, req.ClassID); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		return err
	}

	for _, id := range req.SubjectIDs {
		if _, err := tx.Subject.GetByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return ErrSubjectNotFound
			}
			return err
		}
	}
	return nil
}

// ────────────────────── List ──────────────────────

func (s *assignmentService) List(ctx context.Context, req *dto.AssignmentListRequest, caller Caller) ([]dto.AssignmentResponse, error) {
	filters := repository.AssignmentListFilters{
		SupervisorID: req.SupervisorID,
		TeacherID:    req.TeacherID,
		SubjectID:    req.SubjectID,
		Status:       model.AssignmentStatus(req.Status),
	}

	// 督导与教师只能看到自己的任务
	switch caller.Role {
	case model.RoleAdmin:
	case model.RoleSupervisor:
		filters.SupervisorID = caller.UserID
	case model.RoleTeacher:
		filters.TeacherID = caller.UserID
	default:
		return nil, ErrNoPermission
	}

	assignments, err := s.repo.Assignment.List(ctx, filters)
	if err != nil {
		s.logger.Error("列出督导任务失败", zap.Error(err))
		return nil, err
	}

	l, err := loadLookup(ctx, s.repo)
	if err != nil {
		s.logger.Error("加载关联数据失败", zap.Error(err))
		return nil, err
	}

	kw := strings.ToLower(strings.TrimSpace(req.Keyword))
	result := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		resp := l.toAssignmentResponse(&assignments[i])
		if kw != "" && !matchAssignmentKeyword(&resp, kw) {
			continue
		}
		result = append(result, resp)
	}

	// 未完成在前，其余按创建时间倒序
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Status != result[j].Status {
			return result[i].Status == string(model.AssignmentPending)
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func matchAssignmentKeyword(a *dto.AssignmentResponse, kw string) bool {
	return strings.Contains(strings.ToLower(a.TeacherName), kw) ||
		strings.Contains(strings.ToLower(a.SubjectName), kw) ||
		strings.Contains(strings.ToLower(a.SubjectCode), kw)
}

// ────────────────────── GetByID ──────────────────────

func (s *assignmentService) GetByID(ctx context.Context, id string, caller Caller) (*dto.AssignmentResponse, error) {
	a, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询督导任务失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if !canView(caller, a) {
		return nil, ErrNoPermission
	}

	l, err := loadLookup(ctx, s.repo)
	if err != nil {
		s.logger.Error("加载关联数据失败", zap.Error(err))
		return nil, err
	}

	resp := l.toAssignmentResponse(a)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *assignmentService) Delete(ctx context.Context, id string) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		a, err := tx.Assignment.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return ErrAssignmentNotFound
			}
			return err
		}
		if a.IsCompleted() {
			return ErrAssignmentCompleted
		}
		return tx.Assignment.Delete(ctx, id)
	})
	if err != nil && !isBusinessError(err) {
		s.logger.Error("删除督导任务失败", zap.String("id", id), zap.Error(err))
	}
	return err
}

func (s *assignmentService) notify(ctx context.Context, text string) {
	if err := s.notifier.Notify(ctx, text); err != nil {
		s.logger.Warn("发送通知失败", zap.Error(err))
	}
}
