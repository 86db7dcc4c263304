package repository

import (
	"context"

	"digital-supervision/backend/internal/model"
	"digital-supervision/backend/pkg/store"
)

// AssignmentListFilters 督导任务筛选条件，零值表示不限
type AssignmentListFilters struct {
	SupervisorID string
	TeacherID    string
	SubjectID    string
	ClassID      string
	Status       model.AssignmentStatus
}

func (f AssignmentListFilters) match(a *model.Assignment) bool {
	if f.SupervisorID != "" && a.SupervisorID != f.SupervisorID {
		return false
	}
	if f.TeacherID != "" && a.TeacherID != f.TeacherID {
		return false
	}
	if f.SubjectID != "" && a.SubjectID != f.SubjectID {
		return false
	}
	if f.ClassID != "" && a.ClassID != f.ClassID {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	return true
}

// AssignmentRepository 督导任务数据访问接口
type AssignmentRepository interface {
	CreateBatch(ctx context.Context, assignments []model.Assignment) error
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	List(ctx context.Context, filters AssignmentListFilters) ([]model.Assignment, error)
	Update(ctx context.Context, assignment *model.Assignment) error
	Delete(ctx context.Context, id string) error
}

type assignmentRepo struct {
	c collection[model.Assignment]
}

// NewAssignmentRepo 创建 AssignmentRepository 实例
func NewAssignmentRepo(st store.Store) AssignmentRepository {
	return &assignmentRepo{c: newCollection(st, store.NamespaceAssignments, func(a *model.Assignment) string { return a.ID })}
}

// CreateBatch 一次写入整批任务，要么全部成功要么全部失败
func (r *assignmentRepo) CreateBatch(ctx context.Context, assignments []model.Assignment) error {
	return r.c.insert(ctx, assignments...)
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	return r.c.find(ctx, id)
}

func (r *assignmentRepo) List(ctx context.Context, filters AssignmentListFilters) ([]model.Assignment, error) {
	return r.c.filter(ctx, filters.match)
}

func (r *assignmentRepo) Update(ctx context.Context, assignment *model.Assignment) error {
	return r.c.replace(ctx, *assignment)
}

func (r *assignmentRepo) Delete(ctx context.Context, id string) error {
	return r.c.remove(ctx, id)
}
