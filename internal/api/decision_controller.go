package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nikita2423/approval-bff/internal/model"
	"github.com/nikita2423/approval-bff/internal/service"
	"github.com/nikita2423/approval-bff/internal/store"
	"github.com/nikita2423/approval-bff/internal/utils"
)

// DecisionController 审批决定控制器
// 负责批量理由生成、待确认决定的查看和编辑、决定提交
type DecisionController struct {
	justification service.JustificationService
	decision      service.DecisionService
	audit         service.AuditService
	review        *store.ReviewState
}

// NewDecisionController 创建决定控制器
func NewDecisionController(justification service.JustificationService, decision service.DecisionService, audit service.AuditService, review *store.ReviewState) *DecisionController {
	return &DecisionController{
		justification: justification,
		decision:      decision,
		audit:         audit,
		review:        review,
	}
}

// generateRequest 批量生成理由请求
type generateRequest struct {
	Decision model.StatusType `json:"decision" binding:"required"` // approved 或 rejected
	CaseIDs  []string         `json:"caseIds" binding:"required"`  // 按选择顺序的案件 ID
}

// editJustificationRequest 编辑理由请求
type editJustificationRequest struct {
	Justification string `json:"justification" binding:"required"`
}

// 理由文本的最大长度
const maxJustificationLength = 4096

// commitRequest 提交决定请求
// 缺省时使用待确认决定
type commitRequest struct {
	Decision      model.StatusType `json:"decision"`
	Justification string           `json:"justification"`
	CaseIDs       []string         `json:"caseIds"`
}

// Generate 批量生成审批理由
// @Summary      批量生成理由
// @Description  按选择顺序逐案件检索相似案例并生成理由,整批永不中断
// @Tags         决定
// @Accept       json
// @Produce      json
// @Param        request body generateRequest true "决定和目标案件"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Router       /decisions/generate [post]
// @Security     BearerAuth
func (c *DecisionController) Generate(ctx *gin.Context) {
	var req generateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	for _, id := range req.CaseIDs {
		if err := utils.ValidateCaseID(id); err != nil {
			Error(ctx, http.StatusBadRequest, "invalid case ID", err.Error())
			return
		}
	}

	token := ctx.GetString("access_token")
	result, err := c.justification.GenerateBatch(ctx.Request.Context(), token, req.Decision, req.CaseIDs)
	if err != nil {
		if errors.Is(err, service.ErrEmptySelection) || errors.Is(err, service.ErrInvalidDecision) {
			Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
			return
		}
		Error(ctx, http.StatusInternalServerError, "failed to generate justification", err.Error())
		return
	}
	Success(ctx, result)
}

// Pending 查看待确认决定
// @Summary      待确认决定
// @Tags         决定
// @Produce      json
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /decisions/pending [get]
// @Security     BearerAuth
func (c *DecisionController) Pending(ctx *gin.Context) {
	pending, ok := c.review.Pending()
	if !ok {
		Error(ctx, http.StatusNotFound, "no pending decision", "")
		return
	}
	Success(ctx, pending)
}

// EditJustification 编辑待确认决定的理由
// @Summary      编辑理由
// @Description  覆盖待确认决定的理由文本,提交时对整批案件生效
// @Tags         决定
// @Accept       json
// @Produce      json
// @Param        request body editJustificationRequest true "理由文本"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /decisions/justification [put]
// @Security     BearerAuth
func (c *DecisionController) EditJustification(ctx *gin.Context) {
	var req editJustificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	justification, err := utils.TrimAndValidate(req.Justification, maxJustificationLength)
	if err != nil {
		Error(ctx, http.StatusBadRequest, "invalid justification", err.Error())
		return
	}

	if !c.review.SetJustification(justification) {
		Error(ctx, http.StatusNotFound, "no pending decision", "")
		return
	}
	pending, _ := c.review.Pending()
	Success(ctx, pending)
}

// Commit 提交审批决定
// @Summary      提交决定
// @Description  并发写入全部目标案件,任一失败时统一回退为本地补丁
// @Tags         决定
// @Accept       json
// @Produce      json
// @Param        request body commitRequest false "提交内容,缺省使用待确认决定"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Router       /decisions/commit [post]
// @Security     BearerAuth
func (c *DecisionController) Commit(ctx *gin.Context) {
	var req commitRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
			return
		}
	}

	// 缺省字段回退到待确认决定
	if req.Decision == "" || req.Justification == "" || len(req.CaseIDs) == 0 {
		pending, ok := c.review.Pending()
		if !ok {
			Error(ctx, http.StatusBadRequest, "no pending decision", "generate a justification first")
			return
		}
		if req.Decision == "" {
			req.Decision = pending.Decision
		}
		if req.Justification == "" {
			req.Justification = pending.Justification
		}
		if len(req.CaseIDs) == 0 {
			req.CaseIDs = pending.CaseIDs
		}
	}

	userID := ctx.GetString("user_id")
	result, err := c.decision.Commit(ctx.Request.Context(), userID, req.CaseIDs, req.Decision, req.Justification)
	if err != nil {
		Error(ctx, http.StatusBadRequest, "failed to commit decision", err.Error())
		return
	}
	Success(ctx, result)
}

// Audits 查询决定审计日志
// @Summary      审计日志
// @Tags         决定
// @Produce      json
// @Param        userId query string false "按操作人过滤"
// @Param        caseId query string false "按案件过滤"
// @Param        limit  query int    false "最近条数"
// @Success      200  {object}  Response
// @Failure      500  {object}  ErrorResponse
// @Router       /decisions/audits [get]
// @Security     BearerAuth
func (c *DecisionController) Audits(ctx *gin.Context) {
	var (
		records interface{}
		err     error
	)

	switch {
	case ctx.Query("userId") != "":
		records, err = c.audit.ListByUser(ctx.Query("userId"))
	case ctx.Query("caseId") != "":
		records, err = c.audit.ListByCase(ctx.Query("caseId"))
	default:
		limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
		records, err = c.audit.ListRecent(limit)
	}
	if err != nil {
		// 交给错误处理中间件统一响应
		_ = ctx.Error(WrapError(err, http.StatusInternalServerError, "failed to query audit records"))
		return
	}
	Success(ctx, records)
}
