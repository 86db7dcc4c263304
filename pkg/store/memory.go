package store

import (
	"context"
	"sync"
)

// MemoryStore 进程内存储，用于测试与临时运行
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory 创建空的内存存储
func NewMemory() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, namespace string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[namespace]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemoryStore) Set(_ context.Context, namespace string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := make([]byte, len(data))
	copy(v, data)
	m.data[namespace] = v
	return nil
}

func (m *MemoryStore) Close() error { return nil }
