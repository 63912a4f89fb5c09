package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nikita2423/approval-bff/internal/auth"
	"github.com/nikita2423/approval-bff/internal/client"
	"github.com/nikita2423/approval-bff/internal/store"
)

// LoginAPI 认证后端接口
type LoginAPI interface {
	Login(ctx context.Context, email, password string) (*client.LoginResponse, error)
}

// AuthController 认证控制器
// 登录后把令牌写入 httpOnly Cookie,前端不直接接触令牌
type AuthController struct {
	authAPI LoginAPI
	parser  *auth.TokenParser
	session *store.SessionStore
	cases   *store.CaseStore
	drafts  *store.DraftStore
	review  *store.ReviewState
	secure  bool
}

// NewAuthController 创建认证控制器
// secure 为 true 时 Cookie 仅通过 HTTPS 发送
func NewAuthController(authAPI LoginAPI, parser *auth.TokenParser, session *store.SessionStore, cases *store.CaseStore, drafts *store.DraftStore, review *store.ReviewState, secure bool) *AuthController {
	return &AuthController{
		authAPI: authAPI,
		parser:  parser,
		session: session,
		cases:   cases,
		drafts:  drafts,
		review:  review,
		secure:  secure,
	}
}

// loginRequest 登录请求
type loginRequest struct {
	Email    string `json:"email" binding:"required"`    // 邮箱
	Password string `json:"password" binding:"required"` // 密码
}

// Cookie 有效期,与令牌常见有效期一致
const cookieMaxAge = 8 * 3600

// Login 登录
// @Summary      登录
// @Description  通过认证服务登录,成功后令牌写入 httpOnly Cookie
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "登录信息"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	resp, err := c.authAPI.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		Error(ctx, http.StatusUnauthorized, "login failed", err.Error())
		return
	}

	user := store.User{Email: req.Email}
	if claims, err := c.parser.ParseClaims(resp.AccessToken); err == nil {
		user.ID = claims.Sub
		user.Name = claims.Name
		if claims.Email != "" {
			user.Email = claims.Email
		}
	}
	c.session.Begin(user, resp.AccessToken, resp.RefreshToken)

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie("access_token", resp.AccessToken, cookieMaxAge, "/", "", c.secure, true)
	if resp.RefreshToken != "" {
		ctx.SetCookie("refresh_token", resp.RefreshToken, cookieMaxAge, "/", "", c.secure, true)
	}

	Success(ctx, gin.H{"user": user})
}

// Logout 登出
// @Summary      登出
// @Description  清除会话和令牌 Cookie,重置全部本地存储
// @Tags         认证
// @Produce      json
// @Success      200  {object}  Response
// @Router       /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetCookie("access_token", "", -1, "/", "", c.secure, true)
	ctx.SetCookie("refresh_token", "", -1, "/", "", c.secure, true)

	// 会话结束时撤掉全部本地状态
	c.session.End()
	c.cases.Reset()
	c.drafts.Reset()
	c.review.Clear()

	Success(ctx, nil)
}

// Me 当前用户
// @Summary      当前用户
// @Description  返回当前会话的用户信息
// @Tags         认证
// @Produce      json
// @Success      200  {object}  Response
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/me [get]
// @Security     BearerAuth
func (c *AuthController) Me(ctx *gin.Context) {
	user, ok := c.session.User()
	if !ok {
		Error(ctx, http.StatusUnauthorized, "not logged in", "")
		return
	}
	Success(ctx, user)
}
