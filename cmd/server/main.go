package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"digital-supervision/backend/config"
	"digital-supervision/backend/internal/api/handler"
	"digital-supervision/backend/internal/api/router"
	"digital-supervision/backend/internal/repository"
	"digital-supervision/backend/internal/seed"
	"digital-supervision/backend/internal/service"
	"digital-supervision/backend/pkg/database"
	"digital-supervision/backend/pkg/jwt"
	applogger "digital-supervision/backend/pkg/logger"
	"digital-supervision/backend/pkg/notify"
	"digital-supervision/backend/pkg/photo"
	"digital-supervision/backend/pkg/redis"
	"digital-supervision/backend/pkg/store"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接 Redis（可选：storage.driver=redis 时必需，否则失败降级运行）
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			if cfg.Storage.Driver == config.StorageRedis {
				logger.Fatal("Redis 连接失败", zap.Error(err))
			}
			logger.Warn("Redis 连接失败，Token 黑名单与登录限流将不可用", zap.Error(err))
			rdb = nil
		}
	}

	// 4. 打开记录存储
	st, err := openStore(cfg, rdb, logger)
	if err != nil {
		logger.Fatal("记录存储初始化失败", zap.Error(err))
	}

	// 4.1 首次启动写入默认数据
	if cfg.Seed.Enabled {
		seeded, err := seed.EnsureSeeded(context.Background(), st, time.Now())
		if err != nil {
			logger.Fatal("默认数据初始化失败", zap.Error(err))
		}
		if seeded {
			logger.Info("已写入默认数据")
		}
	}

	// 5. 初始化 JWT 管理器
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. 可选协作者：照片存储、通知
	photoStore, err := openPhotoStore(cfg)
	if err != nil {
		logger.Fatal("照片存储初始化失败", zap.Error(err))
	}
	deps := service.Deps{
		Photos:   photo.NewProcessor(photoStore, cfg.Photo.MaxWidth, cfg.Photo.JPEGQuality, cfg.Photo.MaxPhotos),
		Notifier: openNotifier(cfg, logger),
	}
	if rdb != nil {
		deps.Blacklist = rdb
	}

	// 7. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(st)
	svc := service.NewService(cfg, repo, jwtMgr, deps, logger)
	h := handler.NewHandler(svc)

	// 8. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 9. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭记录存储；redis 后端与 rdb 是同一连接，由下方统一关闭
	if cfg.Storage.Driver != config.StorageRedis {
		if err := st.Close(); err != nil {
			logger.Error("记录存储关闭异常", zap.Error(err))
		}
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}

// openStore 按 storage.driver 选择记录存储后端
func openStore(cfg *config.Config, rdb *redis.Client, logger *zap.Logger) (store.Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageRedis:
		if rdb == nil {
			return nil, fmt.Errorf("storage.driver=redis 但 Redis 未连接")
		}
		return rdb, nil
	case config.StoragePostgres:
		db, err := database.NewPostgres(&cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		return store.NewSQL(db), nil
	case config.StorageSQLite:
		db, err := database.NewSQLite(cfg.Storage.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		return store.NewSQL(db), nil
	default:
		logger.Info("使用 bbolt 记录存储", zap.String("path", cfg.Storage.BoltPath))
		return store.NewBolt(cfg.Storage.BoltPath)
	}
}

// openPhotoStore 按 photo.backend 选择照片落地位置
func openPhotoStore(cfg *config.Config) (photo.Store, error) {
	switch cfg.Photo.Backend {
	case config.PhotoLocal:
		return photo.NewLocalStore(cfg.Photo.LocalDir, "/photos")
	case config.PhotoB2:
		b := cfg.Photo.B2
		return photo.NewB2Store(context.Background(), b.AccountID, b.AppKey, b.Bucket, b.Prefix)
	default:
		return photo.InlineStore{}, nil
	}
}

// openNotifier 配置了 Telegram Token 时发送通知，否则不发送
func openNotifier(cfg *config.Config, logger *zap.Logger) notify.Notifier {
	if cfg.Notify.TelegramToken == "" {
		return notify.Nop{}
	}
	tg, err := notify.NewTelegram(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID)
	if err != nil {
		logger.Warn("Telegram 初始化失败，通知将不会发送", zap.Error(err))
		return notify.Nop{}
	}
	return tg
}
