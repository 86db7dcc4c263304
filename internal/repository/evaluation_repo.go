package repository

import (
	"context"

	"digital-supervision/backend/internal/model"
	"digital-supervision/backend/pkg/store"
)

// EvaluationRepository 评估结果数据访问接口
// 评估创建后不修改；Delete 仅用于提交失败时撤销
type EvaluationRepository interface {
	Create(ctx context.Context, evaluation *model.Evaluation) error
	GetByID(ctx context.Context, id string) (*model.Evaluation, error)
	GetByAssignmentID(ctx context.Context, assignmentID string) (*model.Evaluation, error)
	List(ctx context.Context) ([]model.Evaluation, error)
	Delete(ctx context.Context, id string) error
}

type evaluationRepo struct {
	c collection[model.Evaluation]
}

// NewEvaluationRepo 创建 EvaluationRepository 实例
func NewEvaluationRepo(st store.Store) EvaluationRepository {
	return &evaluationRepo{c: newCollection(st, store.NamespaceEvaluations, func(e *model.Evaluation) string { return e.ID })}
}

func (r *evaluationRepo) Create(ctx context.Context, evaluation *model.Evaluation) error {
	return r.c.insert(ctx, *evaluation)
}

func (r *evaluationRepo) GetByID(ctx context.Context, id string) (*model.Evaluation, error) {
	return r.c.find(ctx, id)
}

func (r *evaluationRepo) GetByAssignmentID(ctx context.Context, assignmentID string) (*model.Evaluation, error) {
	return r.c.first(ctx, func(e *model.Evaluation) bool { return e.AssignmentID == assignmentID })
}

func (r *evaluationRepo) List(ctx context.Context) ([]model.Evaluation, error) {
	return r.c.all(ctx)
}

func (r *evaluationRepo) Delete(ctx context.Context, id string) error {
	return r.c.remove(ctx, id)
}
