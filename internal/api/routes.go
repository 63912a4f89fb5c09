package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/nikita2423/approval-bff/docs" // 导入生成的 docs 包
	"github.com/nikita2423/approval-bff/internal/auth"
	"github.com/nikita2423/approval-bff/internal/config"
	"github.com/nikita2423/approval-bff/internal/websocket"
)

// RouterDeps 路由依赖
type RouterDeps struct {
	Config      *config.Config
	Logger      *logrus.Logger
	DB          *gorm.DB
	TokenParser *auth.TokenParser
	Hub         *websocket.Hub

	Auth      *AuthController
	Cases     *CaseController
	Drafts    *DraftController
	Matches   *MatchController
	Decisions *DecisionController
	Extract   *ExtractController
}

// SetupRoutes 配置路由
func SetupRoutes(deps *RouterDeps) *gin.Engine {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// 中间件
	router.Use(RequestIDMiddleware())
	router.Use(RequestLogMiddleware(deps.Logger))
	router.Use(ErrorHandlerMiddleware())
	router.Use(SecurityHeadersMiddleware())
	router.Use(CORSMiddleware(deps.Config.CORS.AllowedOrigins))
	if deps.Config.RateLimit.Enabled {
		router.Use(RateLimitMiddleware(deps.Config.RateLimit.RPS, deps.Config.RateLimit.Burst))
	}

	// CSRF: 令牌通过 Cookie 鉴权,写操作必须携带 CSRF 令牌
	csrfConfig := DefaultCSRFConfig()
	csrfConfig.CookieSecure = deps.Config.IsProduction()
	csrfStore := NewCSRFStore(csrfConfig)

	// 健康检查
	healthController := NewHealthController(deps.DB)
	router.GET("/health", healthController.Check)

	// Prometheus 指标端点
	router.GET("/metrics", MetricsHandler)

	// WebSocket 路由: 决定事件推送
	if deps.Hub != nil && deps.TokenParser != nil {
		router.GET("/ws/decisions", websocket.Handler(deps.Hub, deps.TokenParser))
	}

	// Swagger UI 路由
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 路由组
	v1 := router.Group("/api/v1")

	// 认证路由(无需令牌)
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", deps.Auth.Login)
		authGroup.POST("/logout", deps.Auth.Logout)
		authGroup.GET("/csrf", CSRFTokenHandler(csrfStore))
	}

	// 业务路由(需要令牌)
	authorized := v1.Group("")
	authorized.Use(auth.AuthMiddleware(deps.TokenParser))
	authorized.Use(CSRFMiddleware(csrfStore))
	{
		authorized.GET("/auth/me", deps.Auth.Me)

		// 案件路由
		cases := authorized.Group("/cases")
		{
			cases.GET("", deps.Cases.List)
			cases.GET("/cached", deps.Cases.Cached)
			cases.GET("/:id", deps.Cases.Get)
		}

		// 草稿路由
		drafts := authorized.Group("/drafts")
		{
			// 具体路径必须在 /:id 之前注册
			drafts.GET("/selection", deps.Drafts.Selection)
			drafts.DELETE("/selection", deps.Drafts.ClearSelection)
			drafts.POST("/selection/all-pending", deps.Drafts.SelectAllPending)
			drafts.PUT("/common", deps.Drafts.SetCommonFields)
			drafts.POST("/common/apply", deps.Drafts.ApplyCommonFields)
			drafts.POST("/create-cases", deps.Drafts.CreateCases)

			drafts.POST("", deps.Drafts.Create)
			drafts.GET("", deps.Drafts.List)
			drafts.GET("/:id", deps.Drafts.Get)
			drafts.PUT("/:id", deps.Drafts.Update)
			drafts.DELETE("/:id", deps.Drafts.Delete)
			drafts.POST("/:id/files", deps.Drafts.AttachFile)
			drafts.POST("/:id/select", deps.Drafts.ToggleSelection)
		}

		// 相似检索路由
		matches := authorized.Group("/matches")
		{
			matches.POST("/query", deps.Matches.Query)
			matches.GET("", deps.Matches.Matches)
			matches.GET("/analysis", deps.Matches.Analysis)
		}

		// 决定路由
		decisions := authorized.Group("/decisions")
		{
			decisions.POST("/generate", deps.Decisions.Generate)
			decisions.GET("/pending", deps.Decisions.Pending)
			decisions.PUT("/justification", deps.Decisions.EditJustification)
			decisions.POST("/commit", deps.Decisions.Commit)
			decisions.GET("/audits", deps.Decisions.Audits)
		}

		// 文档抽取路由
		extract := authorized.Group("/extract")
		{
			extract.POST("/application", deps.Extract.Application)
			extract.POST("/eg", deps.Extract.EG)
			extract.POST("/catalogue", deps.Extract.Catalogue)
		}
	}

	// 自定义 NoRoute 处理器,返回 JSON 格式的 404
	router.NoRoute(func(c *gin.Context) {
		Error(c, http.StatusNotFound, "route not found", "the requested route does not exist")
	})

	return router
}
