package api

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// CSRFConfig CSRF 配置
type CSRFConfig struct {
	TokenLength    int           // Token 长度
	TokenTTL       time.Duration // Token 有效期
	HeaderName     string        // Token 请求头名称
	CookieName     string        // Cookie 名称
	CookieSecure   bool          // Cookie 是否仅 HTTPS
	CookieSameSite http.SameSite // Cookie SameSite 属性
}

// DefaultCSRFConfig 默认 CSRF 配置
func DefaultCSRFConfig() *CSRFConfig {
	return &CSRFConfig{
		TokenLength:    32,
		TokenTTL:       24 * time.Hour,
		HeaderName:     "X-CSRF-Token",
		CookieName:     "csrf_token",
		CookieSecure:   false, // 开发环境默认 false
		CookieSameSite: http.SameSiteStrictMode,
	}
}

// CSRFStore CSRF Token 存储
// 令牌在进程内有效,随服务重启失效
type CSRFStore struct {
	tokens map[string]time.Time
	mu     sync.RWMutex
	config *CSRFConfig
}

// NewCSRFStore 创建 CSRF 存储
func NewCSRFStore(config *CSRFConfig) *CSRFStore {
	if config == nil {
		config = DefaultCSRFConfig()
	}
	store := &CSRFStore{
		tokens: make(map[string]time.Time),
		config: config,
	}

	// 启动清理过期 token 的 goroutine
	go store.cleanupExpiredTokens()

	return store
}

// GenerateToken 生成 CSRF Token
func (s *CSRFStore) GenerateToken() (string, error) {
	bytes := make([]byte, s.config.TokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(bytes)

	s.mu.Lock()
	s.tokens[token] = time.Now().Add(s.config.TokenTTL)
	s.mu.Unlock()

	return token, nil
}

// ValidateToken 验证 CSRF Token
func (s *CSRFStore) ValidateToken(token string) bool {
	if token == "" {
		return false
	}

	s.mu.RLock()
	expiresAt, exists := s.tokens[token]
	s.mu.RUnlock()

	if !exists {
		return false
	}

	if time.Now().After(expiresAt) {
		s.mu.Lock()
		delete(s.tokens, token)
		s.mu.Unlock()
		return false
	}

	return true
}

// cleanupExpiredTokens 清理过期的 token
func (s *CSRFStore) cleanupExpiredTokens() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		now := time.Now()
		for token, expiresAt := range s.tokens {
			if now.After(expiresAt) {
				delete(s.tokens, token)
			}
		}
		s.mu.Unlock()
	}
}

// CSRFMiddleware CSRF 保护中间件
// 令牌来自请求头,头缺失时回退到 Cookie
func CSRFMiddleware(store *CSRFStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		// GET、HEAD、OPTIONS 请求不需要 CSRF 保护
		if c.Request.Method == http.MethodGet ||
			c.Request.Method == http.MethodHead ||
			c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		token := c.GetHeader(store.config.HeaderName)
		if token == "" {
			if cookie, err := c.Cookie(store.config.CookieName); err == nil {
				token = cookie
			}
		}

		if !store.ValidateToken(token) {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "invalid csrf token",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CSRFTokenHandler 签发 CSRF Token
// 令牌同时写入响应体和 Cookie,后续写操作通过请求头携带
func CSRFTokenHandler(store *CSRFStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := store.GenerateToken()
		if err != nil {
			Error(c, http.StatusInternalServerError, "failed to generate csrf token", err.Error())
			return
		}

		cfg := store.config
		c.SetSameSite(cfg.CookieSameSite)
		c.SetCookie(cfg.CookieName, token, int(cfg.TokenTTL.Seconds()), "/", "", cfg.CookieSecure, true)

		Success(c, gin.H{"csrfToken": token})
	}
}
