package repository

import (
	"context"

	"digital-supervision/backend/internal/model"
	"digital-supervision/backend/pkg/store"
)

// SchoolClassRepository 班级数据访问接口
type SchoolClassRepository interface {
	Create(ctx context.Context, class *model.SchoolClass) error
	GetByID(ctx context.Context, id string) (*model.SchoolClass, error)
	List(ctx context.Context) ([]model.SchoolClass, error)
	Update(ctx context.Context, class *model.SchoolClass) error
	Delete(ctx context.Context, id string) error
}

type schoolClassRepo struct {
	c collection[model.SchoolClass]
}

// NewSchoolClassRepo 创建 SchoolClassRepository 实例
func NewSchoolClassRepo(st store.Store) SchoolClassRepository {
	return &schoolClassRepo{c: newCollection(st, store.NamespaceClasses, func(c *model.SchoolClass) string { return c.ID })}
}

func (r *schoolClassRepo) Create(ctx context.Context, class *model.SchoolClass) error {
	return r.c.insert(ctx, *class)
}

func (r *schoolClassRepo) GetByID(ctx context.Context, id string) (*model.SchoolClass, error) {
	return r.c.find(ctx, id)
}

func (r *schoolClassRepo) List(ctx context.Context) ([]model.SchoolClass, error) {
	return r.c.all(ctx)
}

func (r *schoolClassRepo) Update(ctx context.Context, class *model.SchoolClass) error {
	return r.c.replace(ctx, *class)
}

func (r *schoolClassRepo) Delete(ctx context.Context, id string) error {
	return r.c.remove(ctx, id)
}
