package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"digital-supervision/backend/internal/repository"
	"digital-supervision/backend/internal/seed"
	"digital-supervision/backend/pkg/store"
)

// seedTime 默认数据的时间戳
var seedTime = time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)

// 默认数据中的账号
var (
	adminCaller   = Caller{UserID: "1", Role: "ADMIN", Name: "ผู้ดูแลระบบ"}
	sup1Caller    = Caller{UserID: "2", Role: "SUPERVISOR", Name: "ครูสมชาย (ผู้นิเทศ)"}
	sup2Caller    = Caller{UserID: "3", Role: "SUPERVISOR", Name: "ครูสมหญิง (ผู้นิเทศ)"}
	tea1Caller    = Caller{UserID: "4", Role: "TEACHER", Name: "ครูวิชัย"}
	tea2Caller    = Caller{UserID: "5", Role: "TEACHER", Name: "ครูวิมล"}
	seedDatasetMu sync.Mutex
	seedDataset   *seed.Dataset
)

// seededStore 返回写入默认数据的内存存储
func seededStore(t *testing.T) *store.MemoryStore {
	t.Helper()

	// bcrypt 较慢，默认数据只生成一次
	seedDatasetMu.Lock()
	if seedDataset == nil {
		ds, err := seed.Default(seedTime)
		if err != nil {
			seedDatasetMu.Unlock()
			t.Fatalf("生成默认数据失败: %v", err)
		}
		seedDataset = ds
	}
	ds := seedDataset
	seedDatasetMu.Unlock()

	st := store.NewMemory()
	if err := seed.Apply(context.Background(), st, ds); err != nil {
		t.Fatalf("写入默认数据失败: %v", err)
	}
	return st
}

func newSeededRepo(t *testing.T) *repository.Repository {
	t.Helper()
	return repository.NewRepository(seededStore(t))
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

// failingStore 对指定命名空间的写入返回错误
type failingStore struct {
	store.Store
	failOn string
}

var errInjected = errors.New("injected failure")

func (f *failingStore) Set(ctx context.Context, namespace string, data []byte) error {
	if namespace == f.failOn {
		return errInjected
	}
	return f.Store.Set(ctx, namespace, data)
}
