package container

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/nikita2423/approval-bff/internal/auth"
	"github.com/nikita2423/approval-bff/internal/client"
	"github.com/nikita2423/approval-bff/internal/config"
	"github.com/nikita2423/approval-bff/internal/database"
	"github.com/nikita2423/approval-bff/internal/metrics"
	"github.com/nikita2423/approval-bff/internal/repository"
	"github.com/nikita2423/approval-bff/internal/service"
	"github.com/nikita2423/approval-bff/internal/store"
	"github.com/nikita2423/approval-bff/internal/websocket"
)

// Container 依赖注入容器
// 管理数据库、上游客户端、本地存储和服务的装配
type Container struct {
	db        *gorm.DB
	logger    *logrus.Logger
	parser    *auth.TokenParser
	hub       *websocket.Hub
	collector *metrics.Collector

	caseClient    *client.CaseClient
	matchClient   *client.MatchClient
	suggestClient *client.SuggestClient
	extractClient *client.ExtractClient
	authClient    *client.AuthClient

	session *store.SessionStore
	cases   *store.CaseStore
	drafts  *store.DraftStore
	review  *store.ReviewState

	matchService         service.MatchService
	justificationService service.JustificationService
	decisionService      service.DecisionService
	draftService         service.DraftService
	auditService         service.AuditService
}

// NewContainer 创建依赖注入容器
// 根据配置初始化所有依赖组件
func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	// 1. 初始化审计数据库
	db, err := database.Connect(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audit database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate audit database: %w", err)
	}

	// 2. 初始化上游客户端
	// 案件管理后端同时承载案件 CRUD、相似匹配和登录
	caseClient := client.NewCaseClient(cfg.Upstream.CaseAPIURL)
	matchClient := client.NewMatchClient(cfg.Upstream.CaseAPIURL)
	suggestClient := client.NewSuggestClient(cfg.Upstream.InferenceURL)
	extractClient := client.NewExtractClient(cfg.Upstream.InferenceURL, cfg.Upstream.CatalogueURL)
	authClient := client.NewAuthClient(cfg.Upstream.CaseAPIURL)

	// 3. 初始化本地存储
	session := store.NewSessionStore()
	cases := store.NewCaseStore(caseClient)
	drafts := store.NewDraftStore()
	review := store.NewReviewState()

	// 4. 初始化 WebSocket Hub 和令牌解析器
	hub := websocket.NewHub(logger)
	parser := auth.NewTokenParser()

	// 5. 装配服务
	auditService := service.NewAuditService(repository.NewDecisionAuditRepository(db))
	matchService := service.NewMatchService(matchClient, review)
	justificationService := service.NewJustificationService(matchService, suggestClient, cases, review, logger)
	decisionService := service.NewDecisionService(caseClient, cases, drafts, review, auditService, hub, logger)
	draftService := service.NewDraftService(drafts, cases, caseClient, logger)

	// 6. 指标采集器: 周期性上报未对账的本地补丁数
	collector := metrics.NewCollector(cases, 15*time.Second)
	collector.Start()

	return &Container{
		db:                   db,
		logger:               logger,
		parser:               parser,
		hub:                  hub,
		collector:            collector,
		caseClient:           caseClient,
		matchClient:          matchClient,
		suggestClient:        suggestClient,
		extractClient:        extractClient,
		authClient:           authClient,
		session:              session,
		cases:                cases,
		drafts:               drafts,
		review:               review,
		matchService:         matchService,
		justificationService: justificationService,
		decisionService:      decisionService,
		draftService:         draftService,
		auditService:         auditService,
	}, nil
}

// DB 获取审计数据库连接
func (c *Container) DB() *gorm.DB {
	return c.db
}

// Logger 获取日志记录器
func (c *Container) Logger() *logrus.Logger {
	return c.logger
}

// TokenParser 获取令牌解析器
func (c *Container) TokenParser() *auth.TokenParser {
	return c.parser
}

// Hub 获取 WebSocket Hub
func (c *Container) Hub() *websocket.Hub {
	return c.hub
}

// CaseClient 获取案件管理客户端
func (c *Container) CaseClient() *client.CaseClient {
	return c.caseClient
}

// ExtractClient 获取文档抽取客户端
func (c *Container) ExtractClient() *client.ExtractClient {
	return c.extractClient
}

// AuthClient 获取认证客户端
func (c *Container) AuthClient() *client.AuthClient {
	return c.authClient
}

// SessionStore 获取会话状态
func (c *Container) SessionStore() *store.SessionStore {
	return c.session
}

// CaseStore 获取案件缓存
func (c *Container) CaseStore() *store.CaseStore {
	return c.cases
}

// DraftStore 获取草稿存储
func (c *Container) DraftStore() *store.DraftStore {
	return c.drafts
}

// ReviewState 获取审批编排状态
func (c *Container) ReviewState() *store.ReviewState {
	return c.review
}

// MatchService 获取相似检索服务
func (c *Container) MatchService() service.MatchService {
	return c.matchService
}

// JustificationService 获取理由编排服务
func (c *Container) JustificationService() service.JustificationService {
	return c.justificationService
}

// DecisionService 获取决定提交服务
func (c *Container) DecisionService() service.DecisionService {
	return c.decisionService
}

// DraftService 获取草稿服务
func (c *Container) DraftService() service.DraftService {
	return c.draftService
}

// AuditService 获取审计服务
func (c *Container) AuditService() service.AuditService {
	return c.auditService
}

// Close 关闭容器,清理资源
func (c *Container) Close() error {
	if c.collector != nil {
		c.collector.Stop()
	}
	if c.db != nil {
		sqlDB, err := c.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	return nil
}
