// Package store 提供按命名空间整体读写的记录存储。
// 每个命名空间保存一份完整的 JSON 文档（集合或单条记录）。
package store

import (
	"context"
	"errors"
)

// ErrNotFound 命名空间尚未写入
var ErrNotFound = errors.New("namespace not found")

// 逻辑命名空间
const (
	NamespaceUsers       = "users"
	NamespaceClasses     = "classes"
	NamespaceSubjects    = "subjects"
	NamespaceAssignments = "assignments"
	NamespaceEvaluations = "evaluations"
	NamespaceCriteria    = "criteria"
	NamespaceSettings    = "settings"
)

// Namespaces 全部命名空间，顺序与初始化顺序一致
var Namespaces = []string{
	NamespaceUsers,
	NamespaceClasses,
	NamespaceSubjects,
	NamespaceAssignments,
	NamespaceEvaluations,
	NamespaceCriteria,
	NamespaceSettings,
}

// Store 记录存储接口
type Store interface {
	// Get 读取命名空间的原始文档，不存在时返回 ErrNotFound
	Get(ctx context.Context, namespace string) ([]byte, error)
	// Set 整体覆盖命名空间的文档
	Set(ctx context.Context, namespace string, data []byte) error
	Close() error
}
