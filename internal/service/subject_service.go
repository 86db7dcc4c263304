package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"digital-supervision/backend/internal/dto"
	"digital-supervision/backend/internal/model"
	"digital-supervision/backend/internal/repository"
	"digital-supervision/backend/pkg/validate"
)

// ── 科目模块业务错误 ──

var (
	ErrSubjectNotFound   = errors.New("ไม่พบรายวิชา")
	ErrSubjectCodeExists = errors.New("รหัสวิชานี้มีอยู่แล้ว")
)

// SubjectService 科目管理业务接口
type SubjectService interface {
	Create(ctx context.Context, req *dto.SubjectRequest) (*dto.SubjectResponse, error)
	List(ctx context.Context, req *dto.SubjectListRequest) ([]dto.SubjectResponse, error)
	Update(ctx context.Context, id string, req *dto.SubjectRequest) (*dto.SubjectResponse, error)
	Delete(ctx context.Context, id string) error
}

type subjectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubjectService 创建 SubjectService 实例
func NewSubjectService(repo *repository.Repository, logger *zap.Logger) SubjectService {
	return &subjectService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *subjectService) Create(ctx context.Context, req *dto.SubjectRequest) (*dto.SubjectResponse, error) {
	normalizeSubjectRequest(req)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	subject := &model.Subject{
		ID:     uuid.New().String(),
		Code:   req.Code,
		Name:   req.Name,
		Credit: req.Credit,
		Type:   model.SubjectType(req.Type),
	}
	subject.Touch(time.Now())

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := checkSubjectCode(ctx, tx, subject); err != nil {
			return err
		}
		return tx.Subject.Create(ctx, subject)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("创建科目失败", zap.Error(err))
		}
		return nil, err
	}

	return toSubjectResponse(subject), nil
}

// ────────────────────── List ──────────────────────

func (s *subjectService) List(ctx context.Context, req *dto.SubjectListRequest) ([]dto.SubjectResponse, error) {
	subjects, err := s.repo.Subject.List(ctx, repository.SubjectListFilters{
		Type:    model.SubjectType(req.Type),
		Keyword: req.Keyword,
	})
	if err != nil {
		s.logger.Error("列出科目失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		result = append(result, *toSubjectResponse(&subjects[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *subjectService) Update(ctx context.Context, id string, req *dto.SubjectRequest) (*dto.SubjectResponse, error) {
	normalizeSubjectRequest(req)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	var updated *model.Subject
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		subject, err := tx.Subject.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return ErrSubjectNotFound
			}
			return err
		}

		subject.Code = req.Code
		subject.Name = req.Name
		subject.Credit = req.Credit
		subject.Type = model.SubjectType(req.Type)
		if err := checkSubjectCode(ctx, tx, subject); err != nil {
			return err
		}

		subject.Touch(time.Now())
		if err := tx.Subject.Update(ctx, subject); err != nil {
			return err
		}
		updated = subject
		return nil
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("更新科目失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}

	return toSubjectResponse(updated), nil
}

// ────────────────────── Delete ──────────────────────

func (s *subjectService) Delete(ctx context.Context, id string) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Subject.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return ErrSubjectNotFound
			}
			return err
		}
		return nil
	})
	if err != nil && !isBusinessError(err) {
		s.logger.Error("删除科目失败", zap.String("id", id), zap.Error(err))
	}
	return err
}

func normalizeSubjectRequest(req *dto.SubjectRequest) {
	req.Code = strings.TrimSpace(req.Code)
	req.Name = strings.TrimSpace(req.Name)
	if req.Type == "" {
		req.Type = string(model.SubjectFundamental)
	}
}

func checkSubjectCode(ctx context.Context, tx *repository.Repository, subject *model.Subject) error {
	existing, err := tx.Subject.GetByCode(ctx, subject.Code)
	if err != nil && !errors.Is(err, repository.ErrRecordNotFound) {
		return err
	}
	if existing != nil && existing.ID != subject.ID {
		return ErrSubjectCodeExists
	}
	return nil
}

func toSubjectResponse(s *model.Subject) *dto.SubjectResponse {
	return &dto.SubjectResponse{
		ID:     s.ID,
		Code:   s.Code,
		Name:   s.Name,
		Credit: s.Credit,
		Type:   string(s.Type),
	}
}
