package database

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"digital-supervision/backend/pkg/store"
)

func TestNewSQLite_RecordStore(t *testing.T) {
	db, err := NewSQLite(filepath.Join(t.TempDir(), "dss.sqlite"), zap.NewNop())
	if err != nil {
		t.Fatalf("NewSQLite 失败: %v", err)
	}
	s := store.NewSQL(db)
	defer s.Close()

	ctx := context.Background()
	if _, err := s.Get(ctx, store.NamespaceUsers); err != store.ErrNotFound {
		t.Fatalf("期望 ErrNotFound，实际: %v", err)
	}

	if err := s.Set(ctx, store.NamespaceUsers, []byte(`[1]`)); err != nil {
		t.Fatalf("Set 失败: %v", err)
	}
	// 再次写入走 upsert
	if err := s.Set(ctx, store.NamespaceUsers, []byte(`[1,2]`)); err != nil {
		t.Fatalf("Set(upsert) 失败: %v", err)
	}

	got, err := s.Get(ctx, store.NamespaceUsers)
	if err != nil {
		t.Fatalf("Get 失败: %v", err)
	}
	if string(got) != `[1,2]` {
		t.Errorf("期望 [1,2]，实际 %s", got)
	}
}
