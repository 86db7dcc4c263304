package repository

import (
	"context"
	"strings"

	"digital-supervision/backend/internal/model"
	"digital-supervision/backend/pkg/store"
)

// SubjectListFilters 科目列表筛选条件
type SubjectListFilters struct {
	Type    model.SubjectType
	Keyword string // 匹配代码与名称
}

// SubjectRepository 科目数据访问接口
type SubjectRepository interface {
	Create(ctx context.Context, subject *model.Subject) error
	GetByID(ctx context.Context, id string) (*model.Subject, error)
	GetByCode(ctx context.Context, code string) (*model.Subject, error)
	List(ctx context.Context, filters SubjectListFilters) ([]model.Subject, error)
	Update(ctx context.Context, subject *model.Subject) error
	Delete(ctx context.Context, id string) error
}

type subjectRepo struct {
	c collection[model.Subject]
}

// NewSubjectRepo 创建 SubjectRepository 实例
func NewSubjectRepo(st store.Store) SubjectRepository {
	return &subjectRepo{c: newCollection(st, store.NamespaceSubjects, func(s *model.Subject) string { return s.ID })}
}

func (r *subjectRepo) Create(ctx context.Context, subject *model.Subject) error {
	return r.c.insert(ctx, *subject)
}

func (r *subjectRepo) GetByID(ctx context.Context, id string) (*model.Subject, error) {
	return r.c.find(ctx, id)
}

func (r *subjectRepo) GetByCode(ctx context.Context, code string) (*model.Subject, error) {
	return r.c.first(ctx, func(s *model.Subject) bool { return s.Code == code })
}

func (r *subjectRepo) List(ctx context.Context, filters SubjectListFilters) ([]model.Subject, error) {
	kw := strings.ToLower(strings.TrimSpace(filters.Keyword))
	return r.c.filter(ctx, func(s *model.Subject) bool {
		if filters.Type != "" && s.Type != filters.Type {
			return false
		}
		if kw == "" {
			return true
		}
		return strings.Contains(strings.ToLower(s.Code), kw) ||
			strings.Contains(strings.ToLower(s.Name), kw)
	})
}

func (r *subjectRepo) Update(ctx context.Context, subject *model.Subject) error {
	return r.c.replace(ctx, *subject)
}

func (r *subjectRepo) Delete(ctx context.Context, id string) error {
	return r.c.remove(ctx, id)
}
