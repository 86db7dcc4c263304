//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"digital-supervision/backend/config"
	"digital-supervision/backend/internal/model"
	"digital-supervision/backend/internal/repository"
	"digital-supervision/backend/pkg/database"
	"digital-supervision/backend/pkg/store"
)

// ═══════════════════════════════════════════════════════════
// PostgreSQL 记录存储集成测试
// ═══════════════════════════════════════════════════════════

var testStore store.Store

func TestMain(m *testing.M) {
	cfg := &config.DatabaseConfig{
		Host:     envOr("TEST_DB_HOST", "localhost"),
		Port:     5433,
		Name:     envOr("TEST_DB_NAME", "digital_supervision_test"),
		User:     envOr("TEST_DB_USER", "postgres"),
		Password: envOr("TEST_DB_PASSWORD", "postgres"),
		SSLMode:  "disable",
		Timezone: "Asia/Bangkok",
	}

	db, err := database.NewPostgres(cfg, zap.NewNop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}
	testStore = store.NewSQL(db)

	code := m.Run()
	_ = testStore.Close()
	os.Exit(code)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func TestIntegration_AssignmentRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRepository(testStore)

	id := fmt.Sprintf("it-%d", time.Now().UnixNano())
	err := repo.Transaction(ctx, func(tx *repository.Repository) error {
		return tx.Assignment.CreateBatch(ctx, []model.Assignment{{
			ID: id, SupervisorID: "2", TeacherID: "4", ClassID: "c1", SubjectID: "s1",
			Status: model.AssignmentPending, Year: "2568", Semester: "1",
		}})
	})
	if err != nil {
		t.Fatalf("创建任务失败: %v", err)
	}
	defer func() {
		_ = repo.Transaction(ctx, func(tx *repository.Repository) error {
			return tx.Assignment.Delete(ctx, id)
		})
	}()

	a, err := repo.Assignment.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("读取任务失败: %v", err)
	}
	if a.Status != model.AssignmentPending || a.Year != "2568" {
		t.Errorf("读取结果与写入不一致: %+v", a)
	}
}
