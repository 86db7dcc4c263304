package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"digital-supervision/backend/internal/dto"
	"digital-supervision/backend/internal/model"
	"digital-supervision/backend/internal/repository"
	"digital-supervision/backend/pkg/validate"
)

// ── 评分表模块业务错误 ──

var (
	ErrSectionNotFound = errors.New("ไม่พบหัวข้อการประเมิน")
	ErrItemNotFound    = errors.New("ไม่พบข้อประเมิน")
	ErrInvalidScale    = errors.New("จำนวนระดับคะแนนต้องเป็น 3, 4, 5 หรือ 10")
	ErrInvalidLevel    = errors.New("ไม่พบระดับคะแนนที่ระบุ")
)

// 新建分组/评分项的默认值
const (
	DefaultSectionTitle = "ส่วนใหม่"
	DefaultSectionColor = "#26A69A"
	DefaultItemLabel    = "ข้อประเมินใหม่"
	defaultMaxScale     = 5
)

// CriteriaService 评分表与评分尺度业务接口
type CriteriaService interface {
	GetRubric(ctx context.Context) ([]dto.CriteriaSectionResponse, error)
	AddSection(ctx context.Context, req *dto.CreateSectionRequest) (*dto.CriteriaSectionResponse, error)
	UpdateSection(ctx context.Context, sectionID string, req *dto.UpdateSectionRequest) (*dto.CriteriaSectionResponse, error)
	DeleteSection(ctx context.Context, sectionID string) error
	AddItem(ctx context.Context, sectionID string, req *dto.CreateItemRequest) (*dto.CriteriaItemResponse, error)
	UpdateItem(ctx context.Context, sectionID, itemID string, req *dto.UpdateItemRequest) (*dto.CriteriaItemResponse, error)
	DeleteItem(ctx context.Context, sectionID, itemID string) error

	GetSettings(ctx context.Context) (*dto.SettingsResponse, error)
	// UpdateSettings 先按新等级数重建等级，再应用名称修改
	UpdateSettings(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type criteriaService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCriteriaService 创建 CriteriaService 实例
func NewCriteriaService(repo *repository.Repository, logger *zap.Logger) CriteriaService {
	return &criteriaService{repo: repo, logger: logger}
}

// ────────────────────── GetRubric ──────────────────────

func (s *criteriaService) GetRubric(ctx context.Context) ([]dto.CriteriaSectionResponse, error) {
	rubric, err := s.repo.Criteria.Get(ctx)
	if err != nil {
		s.logger.Error("读取评分表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CriteriaSectionResponse, 0, len(rubric))
	for i := range rubric {
		result = append(result, toSectionResponse(&rubric[i]))
	}
	return result, nil
}

// ────────────────────── Section ──────────────────────

func (s *criteriaService) AddSection(ctx context.Context, req *dto.CreateSectionRequest) (*dto.CriteriaSectionResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	section := model.CriteriaSection{
		ID:    uuid.New().String(),
		Title: DefaultSectionTitle,
		Color: DefaultSectionColor,
		Items: []model.CriteriaItem{},
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		section.Title = strings.TrimSpace(*req.Title)
	}
	if req.Color != nil && *req.Color != "" {
		section.Color = *req.Color
	}

	err := s.updateRubric(ctx, func(rubric model.Rubric) (model.Rubric, error) {
		return append(rubric, section), nil
	})
	if err != nil {
		return nil, err
	}

	resp := toSectionResponse(&section)
	return &resp, nil
}

func (s *criteriaService) UpdateSection(ctx context.Context, sectionID string, req *dto.UpdateSectionRequest) (*dto.CriteriaSectionResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	var updated model.CriteriaSection
	err := s.updateRubric(ctx, func(rubric model.Rubric) (model.Rubric, error) {
		idx := rubric.FindSection(sectionID)
		if idx < 0 {
			return nil, ErrSectionNotFound
		}
		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return nil, validationError("กรุณาระบุชื่อหัวข้อ")
			}
			rubric[idx].Title = title
		}
		if req.Color != nil && *req.Color != "" {
			rubric[idx].Color = *req.Color
		}
		updated = rubric[idx]
		return rubric, nil
	})
	if err != nil {
		return nil, err
	}

	resp := toSectionResponse(&updated)
	return &resp, nil
}

// DeleteSection 已提交评估中的分数快照不受影响
func (s *criteriaService) DeleteSection(ctx context.Context, sectionID string) error {
	return s.updateRubric(ctx, func(rubric model.Rubric) (model.Rubric, error) {
		idx := rubric.FindSection(sectionID)
		if idx < 0 {
			return nil, ErrSectionNotFound
		}
		return append(rubric[:idx], rubric[idx+1:]...), nil
	})
}

// ────────────────────── Item ──────────────────────

func (s *criteriaService) AddItem(ctx context.Context, sectionID string, req *dto.CreateItemRequest) (*dto.CriteriaItemResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	item := model.CriteriaItem{ID: uuid.New().String(), Label: DefaultItemLabel}
	if req.Label != nil && strings.TrimSpace(*req.Label) != "" {
		item.Label = strings.TrimSpace(*req.Label)
	}

	err := s.updateRubric(ctx, func(rubric model.Rubric) (model.Rubric, error) {
		idx := rubric.FindSection(sectionID)
		if idx < 0 {
			return nil, ErrSectionNotFound
		}
		rubric[idx].Items = append(rubric[idx].Items, item)
		return rubric, nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.CriteriaItemResponse{ID: item.ID, Label: item.Label}, nil
}

func (s *criteriaService) UpdateItem(ctx context.Context, sectionID, itemID string, req *dto.UpdateItemRequest) (*dto.CriteriaItemResponse, error) {
	req.Label = strings.TrimSpace(req.Label)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	var updated model.CriteriaItem
	err := s.updateRubric(ctx, func(rubric model.Rubric) (model.Rubric, error) {
		sIdx := rubric.FindSection(sectionID)
		if sIdx < 0 {
			return nil, ErrSectionNotFound
		}
		iIdx := rubric[sIdx].FindItem(itemID)
		if iIdx < 0 {
			return nil, ErrItemNotFound
		}
		rubric[sIdx].Items[iIdx].Label = req.Label
		updated = rubric[sIdx].Items[iIdx]
		return rubric, nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.CriteriaItemResponse{ID: updated.ID, Label: updated.Label}, nil
}

func (s *criteriaService) DeleteItem(ctx context.Context, sectionID, itemID string) error {
	return s.updateRubric(ctx, func(rubric model.Rubric) (model.Rubric, error) {
		sIdx := rubric.FindSection(sectionID)
		if sIdx < 0 {
			return nil, ErrSectionNotFound
		}
		iIdx := rubric[sIdx].FindItem(itemID)
		if iIdx < 0 {
			return nil, ErrItemNotFound
		}
		items := rubric[sIdx].Items
		rubric[sIdx].Items = append(items[:iIdx], items[iIdx+1:]...)
		return rubric, nil
	})
}

// updateRubric 在锁内读取、修改并整体写回评分表
func (s *criteriaService) updateRubric(ctx context.Context, fn func(model.Rubric) (model.Rubric, error)) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		rubric, err := tx.Criteria.Get(ctx)
		if err != nil {
			return err
		}
		next, err := fn(rubric)
		if err != nil {
			return err
		}
		return tx.Criteria.Save(ctx, next)
	})
	if err != nil && !isBusinessError(err) {
		s.logger.Error("更新评分表失败", zap.Error(err))
	}
	return err
}

// ────────────────────── Settings ──────────────────────

func (s *criteriaService) GetSettings(ctx context.Context) (*dto.SettingsResponse, error) {
	settings, err := loadSettings(ctx, s.repo)
	if err != nil {
		s.logger.Error("读取评分尺度失败", zap.Error(err))
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

func (s *criteriaService) UpdateSettings(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if req.MaxScaleValue != nil && !model.IsAllowedScale(*req.MaxScaleValue) {
		return nil, ErrInvalidScale
	}

	var updated model.SystemSettings
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		current, err := loadSettings(ctx, tx)
		if err != nil {
			return err
		}

		next := current
		if req.MaxScaleValue != nil && *req.MaxScaleValue != current.MaxScaleValue {
			next = current.WithMaxScale(*req.MaxScaleValue)
		} else {
			next.RatingLevels = append([]model.RatingScaleLevel(nil), current.RatingLevels...)
		}

		for _, lv := range req.RatingLevels {
			found := false
			for i := range next.RatingLevels {
				if next.RatingLevels[i].Value == lv.Value {
					next.RatingLevels[i].Label = strings.TrimSpace(lv.Label)
					found = true
					break
				}
			}
			if !found {
				return ErrInvalidLevel
			}
		}

		if err := tx.Settings.Save(ctx, &next); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("更新评分尺度失败", zap.Error(err))
		}
		return nil, err
	}

	return toSettingsResponse(updated), nil
}

// loadSettings 读取评分尺度，记录缺失时使用默认 5 级
func loadSettings(ctx context.Context, repo *repository.Repository) (model.SystemSettings, error) {
	settings, err := repo.Settings.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return model.SystemSettings{}.WithMaxScale(defaultMaxScale), nil
		}
		return model.SystemSettings{}, err
	}
	return *settings, nil
}

func toSectionResponse(sec *model.CriteriaSection) dto.CriteriaSectionResponse {
	items := make([]dto.CriteriaItemResponse, 0, len(sec.Items))
	for _, it := range sec.Items {
		items = append(items, dto.CriteriaItemResponse{ID: it.ID, Label: it.Label})
	}
	return dto.CriteriaSectionResponse{
		ID:    sec.ID,
		Title: sec.Title,
		Color: sec.Color,
		Items: items,
	}
}

func toSettingsResponse(s model.SystemSettings) *dto.SettingsResponse {
	levels := make([]dto.RatingLevelResponse, 0, len(s.RatingLevels))
	for _, l := range s.RatingLevels {
		levels = append(levels, dto.RatingLevelResponse{Value: l.Value, Label: l.Label})
	}
	return &dto.SettingsResponse{
		MaxScaleValue:      s.MaxScaleValue,
		RatingLevels:       levels,
		AllowedScaleValues: model.AllowedScaleValues,
	}
}
