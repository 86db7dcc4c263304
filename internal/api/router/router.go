package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"digital-supervision/backend/config"
	"digital-supervision/backend/internal/api/handler"
	"digital-supervision/backend/internal/api/middleware"
	"digital-supervision/backend/internal/model"
	"digital-supervision/backend/pkg/jwt"
	"digital-supervision/backend/pkg/redis"
)

var (
	roleAdmin      = string(model.RoleAdmin)
	roleSupervisor = string(model.RoleSupervisor)
	roleTeacher    = string(model.RoleTeacher)
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitMB << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── 本地照片 ──
	if cfg.Photo.Backend == config.PhotoLocal {
		r.Static("/photos", cfg.Photo.LocalDir)
	}

	loginLimit := middleware.RateLimit(rdb, cfg.Auth.LoginRateLimit, time.Minute)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", loginLimit, h.Auth.Login)
			auth.POST("/teacher-login", loginLimit, h.Auth.TeacherLogin)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			authorized.GET("/dashboard", h.Dashboard.Get)

			// 用户模块
			users := authorized.Group("/users", middleware.RoleAuth(roleAdmin))
			{
				users.GET("", h.User.List)
				users.POST("", h.User.Create)
				users.GET("/:id", h.User.Get)
				users.PUT("/:id", h.User.Update)
				users.DELETE("/:id", h.User.Delete)
			}

			// 班级模块
			classes := authorized.Group("/classes")
			{
				classes.GET("", h.SchoolClass.List)
				classes.POST("", middleware.RoleAuth(roleAdmin), h.SchoolClass.Create)
				classes.PUT("/:id", middleware.RoleAuth(roleAdmin), h.SchoolClass.Update)
				classes.DELETE("/:id", middleware.RoleAuth(roleAdmin), h.SchoolClass.Delete)
			}

			// 科目模块
			subjects := authorized.Group("/subjects")
			{
				subjects.GET("", h.Subject.List)
				subjects.POST("", middleware.RoleAuth(roleAdmin), h.Subject.Create)
				subjects.PUT("/:id", middleware.RoleAuth(roleAdmin), h.Subject.Update)
				subjects.DELETE("/:id", middleware.RoleAuth(roleAdmin), h.Subject.Delete)
			}

			// 督导任务模块（查询范围由 Service 层按角色限定）
			assignments := authorized.Group("/assignments")
			{
				assignments.GET("", h.Assignment.List)
				assignments.GET("/:id", h.Assignment.Get)
				assignments.POST("/cart", middleware.RoleAuth(roleAdmin), h.Assignment.CreateCart)
				assignments.DELETE("/:id", middleware.RoleAuth(roleAdmin), h.Assignment.Delete)
				assignments.POST("/:id/evaluation", middleware.RoleAuth(roleSupervisor), h.Assignment.SubmitEvaluation)
			}

			// 评分表模块
			criteria := authorized.Group("/criteria")
			{
				criteria.GET("", h.Criteria.GetRubric)
				criteria.GET("/settings", h.Criteria.GetSettings)
				criteria.PUT("/settings", middleware.RoleAuth(roleSupervisor), h.Criteria.UpdateSettings)
				criteria.POST("/sections", middleware.RoleAuth(roleSupervisor), h.Criteria.AddSection)
				criteria.PUT("/sections/:id", middleware.RoleAuth(roleSupervisor), h.Criteria.UpdateSection)
				criteria.DELETE("/sections/:id", middleware.RoleAuth(roleSupervisor), h.Criteria.DeleteSection)
				criteria.POST("/sections/:id/items", middleware.RoleAuth(roleSupervisor), h.Criteria.AddItem)
				criteria.PUT("/sections/:id/items/:itemId", middleware.RoleAuth(roleSupervisor), h.Criteria.UpdateItem)
				criteria.DELETE("/sections/:id/items/:itemId", middleware.RoleAuth(roleSupervisor), h.Criteria.DeleteItem)
			}

			// 评估结果模块
			evaluations := authorized.Group("/evaluations")
			{
				evaluations.GET("/me", middleware.RoleAuth(roleTeacher), h.Evaluation.Mine)
				evaluations.GET("/:id", h.Evaluation.Detail)
				evaluations.GET("/:id/print", h.Evaluation.Print)
			}

			// 报表与导出
			authorized.GET("/reports/subjects", middleware.RoleAuth(roleAdmin), h.Report.SubjectAverages)
			export := authorized.Group("/export")
			{
				export.GET("/evaluations", middleware.RoleAuth(roleAdmin), h.Export.ExportEvaluations)
				export.GET("/calendar", h.Export.ExportCalendar)
			}
		}
	}

	return r
}
