package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: 8080},
		Storage: StorageConfig{Driver: StorageBolt},
		Auth:    AuthConfig{JWTSecret: "0123456789abcdef0123"},
		Photo:   PhotoConfig{Backend: PhotoInline, MaxWidth: 1280},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("期望校验通过，实际: %v", err)
	}
}

func TestValidate_ShortSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = "short"
	if err := cfg.Validate(); err == nil {
		t.Error("期望短密钥校验失败")
	}
}

func TestValidate_UnknownStorage(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Driver = "localstorage"
	if err := cfg.Validate(); err == nil {
		t.Error("期望未知存储后端校验失败")
	}
}

func TestValidate_RedisStorageRequiresRedis(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Driver = StorageRedis
	if err := cfg.Validate(); err == nil {
		t.Error("期望 redis 未启用时校验失败")
	}
	cfg.Redis.Enabled = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("期望校验通过，实际: %v", err)
	}
}

func TestValidate_B2RequiresCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.Photo.Backend = PhotoB2
	if err := cfg.Validate(); err == nil {
		t.Error("期望缺少 B2 配置时校验失败")
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 9090
auth:
  jwt_secret: test-secret-key-for-unit-testing
evaluation:
  submit_delay: 1500ms
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("期望 port=9090，实际=%d", cfg.Server.Port)
	}
	if cfg.Evaluation.SubmitDelay != 1500*time.Millisecond {
		t.Errorf("期望 submit_delay=1.5s，实际=%s", cfg.Evaluation.SubmitDelay)
	}
	if cfg.Storage.Driver != StorageBolt {
		t.Errorf("期望默认存储为 bolt，实际=%s", cfg.Storage.Driver)
	}
	if cfg.Photo.MaxWidth != 1280 {
		t.Errorf("期望默认 max_width=1280，实际=%d", cfg.Photo.MaxWidth)
	}
}
