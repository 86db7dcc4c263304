package photo

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store 照片落地接口，返回写入 Evaluation.photos 的引用（data URL 或外链）
type Store interface {
	Put(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

// ── Inline：直接内嵌为 data URL ──

// InlineStore 不落地，保持原系统的内嵌图片行为
type InlineStore struct{}

func (InlineStore) Put(_ context.Context, _ string, data []byte, contentType string) (string, error) {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// ── Local：写入本地目录，由 HTTP 服务以 urlPrefix 暴露 ──

// LocalStore 本地目录存储
type LocalStore struct {
	dir       string
	urlPrefix string
}

// NewLocalStore 创建本地目录存储
func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建照片目录失败: %w", err)
	}
	return &LocalStore{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// Dir 返回本地根目录
func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Put(_ context.Context, name string, data []byte, _ string) (string, error) {
	if err := os.WriteFile(filepath.Join(s.dir, filepath.Base(name)), data, 0o644); err != nil {
		return "", fmt.Errorf("写入照片失败: %w", err)
	}
	return s.urlPrefix + "/" + filepath.Base(name), nil
}
