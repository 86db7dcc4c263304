package repository

import (
	"context"
	"errors"
	"sync"

	"digital-supervision/backend/pkg/store"
)

var (
	// ErrRecordNotFound 记录不存在
	ErrRecordNotFound = errors.New("record not found")
	// ErrDuplicateKey 主键重复
	ErrDuplicateKey = errors.New("duplicate key")
)

// Repository 所有 Repository 的聚合入口
// 各 Repository 的写操作是对整个命名空间的读-改-写，须在 Transaction 内调用
type Repository struct {
	User        UserRepository
	SchoolClass SchoolClassRepository
	Subject     SubjectRepository
	Assignment  AssignmentRepository
	Evaluation  EvaluationRepository
	Criteria    CriteriaRepository
	Settings    SettingsRepository

	mu *sync.Mutex
}

// NewRepository 创建 Repository 聚合
func NewRepository(st store.Store) *Repository {
	return &Repository{
		User:        NewUserRepo(st),
		SchoolClass: NewSchoolClassRepo(st),
		Subject:     NewSubjectRepo(st),
		Assignment:  NewAssignmentRepo(st),
		Evaluation:  NewEvaluationRepo(st),
		Criteria:    NewCriteriaRepo(st),
		Settings:    NewSettingsRepo(st),
		mu:          &sync.Mutex{},
	}
}

// Transaction 在进程级互斥下执行 fn，串行化所有写操作
// 存储层没有回滚能力，fn 需自行撤销已完成的部分写入
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.mu != nil {
		r.mu.Lock()
		defer r.mu.Unlock()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(r)
}
