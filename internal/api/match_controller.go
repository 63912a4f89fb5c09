package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nikita2423/approval-bff/internal/service"
	"github.com/nikita2423/approval-bff/internal/store"
)

// MatchController 相似检索控制器
type MatchController struct {
	matchService service.MatchService
	review       *store.ReviewState
}

// NewMatchController 创建相似检索控制器
func NewMatchController(matchService service.MatchService, review *store.ReviewState) *MatchController {
	return &MatchController{
		matchService: matchService,
		review:       review,
	}
}

// Query 执行相似检索
// @Summary      相似检索
// @Description  查询相似案例并全量替换匹配缓存
// @Tags         相似检索
// @Accept       json
// @Produce      json
// @Param        request body service.MatchQuery true "查询参数"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /matches/query [post]
// @Security     BearerAuth
func (c *MatchController) Query(ctx *gin.Context) {
	var req service.MatchQuery
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	token := ctx.GetString("access_token")
	matches, err := c.matchService.Query(ctx.Request.Context(), token, &req)
	if err != nil {
		if errors.Is(err, service.ErrMissingMatchFields) {
			Error(ctx, http.StatusBadRequest, "invalid query", err.Error())
			return
		}
		Error(ctx, http.StatusBadGateway, "similarity query failed", err.Error())
		return
	}
	Success(ctx, matches)
}

// Matches 返回匹配缓存
// @Summary      当前匹配缓存
// @Tags         相似检索
// @Produce      json
// @Success      200  {object}  Response
// @Router       /matches [get]
// @Security     BearerAuth
func (c *MatchController) Matches(ctx *gin.Context) {
	Success(ctx, c.review.Matches())
}

// Analysis 返回相似案例分析摘要
// @Summary      相似案例分析
// @Tags         相似检索
// @Produce      json
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /matches/analysis [get]
// @Security     BearerAuth
func (c *MatchController) Analysis(ctx *gin.Context) {
	analysis, ok := c.review.Analysis()
	if !ok {
		Error(ctx, http.StatusNotFound, "no analysis available", "run a similarity query first")
		return
	}
	Success(ctx, analysis)
}
