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

// ── 班级模块业务错误 ──

var ErrClassNotFound = errors.New("ไม่พบชั้นเรียน")

// SchoolClassService 班级管理业务接口
type SchoolClassService interface {
	Create(ctx context.Context, req *dto.SchoolClassRequest) (*dto.SchoolClassResponse, error)
	List(ctx context.Context) ([]dto.SchoolClassResponse, error)
	Update(ctx context.Context, id string, req *dto.SchoolClassRequest) (*dto.SchoolClassResponse, error)
	Delete(ctx context.Context, id string) error
}

type schoolClassService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSchoolClassService 创建 SchoolClassService 实例
func NewSchoolClassService(repo *repository.Repository, logger *zap.Logger) SchoolClassService {
	return &schoolClassService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *schoolClassService) Create(ctx context.Context, req *dto.SchoolClassRequest) (*dto.SchoolClassResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	class := &model.SchoolClass{ID: uuid.New().String(), Name: req.Name}
	class.Touch(time.Now())

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		return tx.SchoolClass.Create(ctx, class)
	})
	if err != nil {
		s.logger.Error("创建班级失败", zap.Error(err))
		return nil, err
	}

	return toSchoolClassResponse(class), nil
}

// ────────────────────── List ──────────────────────

func (s *schoolClassService) List(ctx context.Context) ([]dto.SchoolClassResponse, error) {
	classes, err := s.repo.SchoolClass.List(ctx)
	if err != nil {
		s.logger.Error("列出班级失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SchoolClassResponse, 0, len(classes))
	for i := range classes {
		result = append(result, *toSchoolClassResponse(&classes[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *schoolClassService) Update(ctx context.Context, id string, req *dto.SchoolClassRequest) (*dto.SchoolClassResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	var updated *model.SchoolClass
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		class, err := tx.SchoolClass.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return ErrClassNotFound
			}
			return err
		}
		class.Name = req.Name
		class.Touch(time.Now())
		if err := tx.SchoolClass.Update(ctx, class); err != nil {
			return err
		}
		updated = class
		return nil
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("更新班级失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}

	return toSchoolClassResponse(updated), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 不级联，引用该班级的任务保留，展示时名称为空
func (s *schoolClassService) Delete(ctx context.Context, id string) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.SchoolClass.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return ErrClassNotFound
			}
			return err
		}
		return nil
	})
	if err != nil && !isBusinessError(err) {
		s.logger.Error("删除班级失败", zap.String("id", id), zap.Error(err))
	}
	return err
}

func toSchoolClassResponse(c *model.SchoolClass) *dto.SchoolClassResponse {
	return &dto.SchoolClassResponse{ID: c.ID, Name: c.Name}
}
