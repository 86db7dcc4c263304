package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"digital-supervision/backend/internal/model"
	pkgerrors "digital-supervision/backend/pkg/errors"
	"digital-supervision/backend/pkg/store"
)

// CriteriaRepository 评分表数据访问接口（整体读写）
type CriteriaRepository interface {
	Get(ctx context.Context) (model.Rubric, error)
	Save(ctx context.Context, rubric model.Rubric) error
}

type criteriaRepo struct {
	c collection[model.CriteriaSection]
}

// NewCriteriaRepo 创建 CriteriaRepository 实例
func NewCriteriaRepo(st store.Store) CriteriaRepository {
	return &criteriaRepo{c: newCollection(st, store.NamespaceCriteria, func(s *model.CriteriaSection) string { return s.ID })}
}

func (r *criteriaRepo) Get(ctx context.Context) (model.Rubric, error) {
	sections, err := r.c.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range sections {
		if sections[i].Items == nil {
			sections[i].Items = []model.CriteriaItem{}
		}
	}
	return model.Rubric(sections), nil
}

func (r *criteriaRepo) Save(ctx context.Context, rubric model.Rubric) error {
	return r.c.overwrite(ctx, rubric)
}

// ── 评分尺度 ──

// SettingsRepository 系统设置数据访问接口（单条记录）
type SettingsRepository interface {
	Get(ctx context.Context) (*model.SystemSettings, error)
	Save(ctx context.Context, settings *model.SystemSettings) error
}

type settingsRepo struct {
	st store.Store
}

// NewSettingsRepo 创建 SettingsRepository 实例
func NewSettingsRepo(st store.Store) SettingsRepository {
	return &settingsRepo{st: st}
}

func (r *settingsRepo) Get(ctx context.Context) (*model.SystemSettings, error) {
	raw, err := r.st.Get(ctx, store.NamespaceSettings)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("%w: 读取 settings: %v", pkgerrors.ErrStorageUnavailable, err)
	}
	var s model.SystemSettings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: 解析 settings: %v", pkgerrors.ErrStorageUnavailable, err)
	}
	return &s, nil
}

func (r *settingsRepo) Save(ctx context.Context, settings *model.SystemSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("序列化 settings 失败: %w", err)
	}
	if err := r.st.Set(ctx, store.NamespaceSettings, raw); err != nil {
		return fmt.Errorf("%w: 写入 settings: %v", pkgerrors.ErrStorageUnavailable, err)
	}
	return nil
}
