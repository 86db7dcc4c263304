package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Database   DatabaseConfig   `mapstructure:"db"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Log        LogConfig        `mapstructure:"log"`
	Evaluation EvaluationConfig `mapstructure:"evaluation"`
	Photo      PhotoConfig      `mapstructure:"photo"`
	Notify     NotifyConfig     `mapstructure:"notify"`
	Seed       SeedConfig       `mapstructure:"seed"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port        int        `mapstructure:"port"`
	BodyLimitMB int64      `mapstructure:"body_limit_mb"`
	CORS        CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// 记录存储后端
const (
	StorageBolt     = "bolt"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// StorageConfig 记录存储配置（按命名空间保存整份集合）
type StorageConfig struct {
	Driver     string `mapstructure:"driver"`
	BoltPath   string `mapstructure:"bolt_path"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// DatabaseConfig PostgreSQL 数据库配置（storage.driver=postgres 时使用）
type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Name         string `mapstructure:"name"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	SSLMode      string `mapstructure:"sslmode"`
	Timezone     string `mapstructure:"timezone"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig JWT 认证配置
type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	LoginRateLimit int           `mapstructure:"login_rate_limit"` // 每分钟每 IP 登录次数
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EvaluationConfig 评估提交配置
type EvaluationConfig struct {
	// SubmitDelay 提交前的固定等待，仅供前端展示加载状态
	SubmitDelay time.Duration `mapstructure:"submit_delay"`
}

// 照片存储后端
const (
	PhotoInline = "inline"
	PhotoLocal  = "local"
	PhotoB2     = "b2"
)

// PhotoConfig 评估照片处理配置
type PhotoConfig struct {
	Backend     string   `mapstructure:"backend"`
	MaxWidth    int      `mapstructure:"max_width"`
	JPEGQuality int      `mapstructure:"jpeg_quality"`
	MaxPhotos   int      `mapstructure:"max_photos"`
	LocalDir    string   `mapstructure:"local_dir"`
	B2          B2Config `mapstructure:"b2"`
}

// B2Config Backblaze B2 配置
type B2Config struct {
	AccountID string `mapstructure:"account_id"`
	AppKey    string `mapstructure:"app_key"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
}

// NotifyConfig 通知配置（Telegram）
type NotifyConfig struct {
	TelegramToken  string `mapstructure:"telegram_token"`
	TelegramChatID int64  `mapstructure:"telegram_chat_id"`
}

// SeedConfig 默认数据初始化配置
type SeedConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load 从 .env、配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.body_limit_mb", 20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("storage.driver", StorageBolt)
	v.SetDefault("storage.bolt_path", "./data/dss.db")
	v.SetDefault("storage.sqlite_path", "./data/dss.sqlite")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "digital_supervision")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Asia/Bangkok")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.access_token_ttl", "12h")
	v.SetDefault("auth.login_rate_limit", 20)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("evaluation.submit_delay", "0s")

	v.SetDefault("photo.backend", PhotoInline)
	v.SetDefault("photo.max_width", 1280)
	v.SetDefault("photo.jpeg_quality", 80)
	v.SetDefault("photo.max_photos", 10)
	v.SetDefault("photo.local_dir", "./data/photos")
	v.SetDefault("photo.b2.prefix", "evaluations/")

	v.SetDefault("seed.enabled", true)

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("DSS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 长度不能少于 16 字符")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	switch c.Storage.Driver {
	case StorageBolt, StorageRedis, StoragePostgres, StorageSQLite:
	default:
		return fmt.Errorf("配置校验失败: 不支持的 storage.driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == StorageRedis && !c.Redis.Enabled {
		return fmt.Errorf("配置校验失败: storage.driver=redis 需要 redis.enabled=true")
	}
	switch c.Photo.Backend {
	case PhotoInline, PhotoLocal:
	case PhotoB2:
		if c.Photo.B2.AccountID == "" || c.Photo.B2.AppKey == "" || c.Photo.B2.Bucket == "" {
			return fmt.Errorf("配置校验失败: photo.backend=b2 需要完整的 photo.b2 配置")
		}
	default:
		return fmt.Errorf("配置校验失败: 不支持的 photo.backend %q", c.Photo.Backend)
	}
	if c.Photo.MaxWidth <= 0 {
		return fmt.Errorf("配置校验失败: photo.max_width 必须大于 0")
	}
	if c.Evaluation.SubmitDelay < 0 {
		return fmt.Errorf("配置校验失败: evaluation.submit_delay 不能为负数")
	}
	return nil
}
