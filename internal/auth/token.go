package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims 访问令牌声明
// 认证服务签发的 JWT,BFF 只提取声明用于标识用户,签名由认证服务自行校验
type Claims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// TokenParser 访问令牌解析器
type TokenParser struct {
	parser *jwt.Parser
}

// NewTokenParser 创建令牌解析器
func NewTokenParser() *TokenParser {
	return &TokenParser{
		parser: jwt.NewParser(),
	}
}

// ParseClaims 解析令牌声明(不校验签名)
// 过期的令牌视为无效
func (p *TokenParser) ParseClaims(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, _, err := p.parser.ParseUnverified(tokenString, claims)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	// 验证过期时间
	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, errors.New("token expired")
	}

	return claims, nil
}

// BearerToken 从请求提取访问令牌
// 优先取 Authorization 头,其次取登录时写入的 httpOnly Cookie
func BearerToken(c *gin.Context) string {
	token := c.GetHeader("Authorization")
	if token != "" {
		// 移除 "Bearer " 前缀
		if len(token) > 7 && strings.EqualFold(token[:7], "Bearer ") {
			token = token[7:]
		}
		return token
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

// AuthMiddleware 访问令牌认证中间件
// 校验令牌存在且可解析,并将用户信息存入上下文
func AuthMiddleware(parser *TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "missing access token",
			})
			c.Abort()
			return
		}

		claims, err := parser.ParseClaims(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "invalid token",
				"detail":  err.Error(),
			})
			c.Abort()
			return
		}

		// 将用户信息存储到上下文
		c.Set("user_id", claims.Sub)
		c.Set("email", claims.Email)
		c.Set("name", claims.Name)
		c.Set("access_token", token)

		c.Next()
	}
}
