package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"digital-supervision/backend/config"
	"digital-supervision/backend/internal/model"
	"digital-supervision/backend/internal/repository"
	pkgerrors "digital-supervision/backend/pkg/errors"
	"digital-supervision/backend/pkg/jwt"
	"digital-supervision/backend/pkg/notify"
	"digital-supervision/backend/pkg/photo"
)

// ErrNoPermission 调用者无权访问该资源
var ErrNoPermission = pkgerrors.ErrNoPermission

// Caller 当前登录会话，由认证中间件解析后显式传入各 Service
type Caller struct {
	UserID string
	Role   model.Role
	Name   string
}

// TokenBlacklist 登出时吊销 Token（Redis 实现）
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// Deps 可选的外部协作者，nil 表示未启用
type Deps struct {
	Blacklist TokenBlacklist
	Photos    *photo.Processor
	Notifier  notify.Notifier
}

// Service 所有 Service 的聚合入口
type Service struct {
	Auth        AuthService
	User        UserService
	SchoolClass SchoolClassService
	Subject     SubjectService
	Assignment  AssignmentService
	Evaluation  EvaluationService
	Criteria    CriteriaService
	Report      ReportService
	Dashboard   DashboardService
	Export      ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	deps Deps,
	logger *zap.Logger,
) *Service {
	if deps.Notifier == nil {
		deps.Notifier = notify.Nop{}
	}
	if deps.Photos == nil {
		deps.Photos = photo.NewProcessor(photo.InlineStore{}, cfg.Photo.MaxWidth, cfg.Photo.JPEGQuality, cfg.Photo.MaxPhotos)
	}

	return &Service{
		Auth:        NewAuthService(repo, jwtMgr, deps.Blacklist, logger),
		User:        NewUserService(repo, logger),
		SchoolClass: NewSchoolClassService(repo, logger),
		Subject:     NewSubjectService(repo, logger),
		Assignment:  NewAssignmentService(repo, deps.Notifier, logger),
		Evaluation:  NewEvaluationService(repo, deps.Photos, deps.Notifier, cfg.Evaluation.SubmitDelay, logger),
		Criteria:    NewCriteriaService(repo, logger),
		Report:      NewReportService(repo, logger),
		Dashboard:   NewDashboardService(repo, logger),
		Export:      NewExportService(repo, logger),
	}
}
