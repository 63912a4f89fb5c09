package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nikita2423/approval-bff/internal/model"
	"github.com/nikita2423/approval-bff/internal/store"
	"github.com/nikita2423/approval-bff/internal/utils"
)

// CaseController 案件控制器
// 案件由外部案件管理后端持久化,本服务只维护带本地补丁的缓存视图
type CaseController struct {
	cases *store.CaseStore
}

// NewCaseController 创建案件控制器
func NewCaseController(cases *store.CaseStore) *CaseController {
	return &CaseController{cases: cases}
}

// List 拉取案件列表
// @Summary      拉取案件列表
// @Description  按过滤条件从案件管理后端拉取,拉取失败时缓存清空
// @Tags         案件
// @Produce      json
// @Param        status     query string false "案件状态"
// @Param        caseNumber query string false "案件编号"
// @Param        recdEG     query bool   false "是否已收到 EG 表单"
// @Param        categoryId query string false "品类 ID"
// @Param        userId     query string false "归属用户 ID"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /cases [get]
// @Security     BearerAuth
func (c *CaseController) List(ctx *gin.Context) {
	filters, err := parseCaseFilters(ctx)
	if err != nil {
		Error(ctx, http.StatusBadRequest, "invalid filters", err.Error())
		return
	}

	cases, err := c.cases.Fetch(ctx.Request.Context(), filters)
	if err != nil {
		Error(ctx, http.StatusBadGateway, "failed to fetch cases", err.Error())
		return
	}

	Success(ctx, cases)
}

// Cached 返回本地缓存视图
// @Summary      本地案件视图
// @Description  返回套用本地补丁后的缓存,不访问后端
// @Tags         案件
// @Produce      json
// @Success      200  {object}  Response
// @Router       /cases/cached [get]
// @Security     BearerAuth
func (c *CaseController) Cached(ctx *gin.Context) {
	Success(ctx, c.cases.Cases())
}

// Get 获取单个案件
// @Summary      获取案件详情
// @Description  从本地缓存按 ID 返回案件
// @Tags         案件
// @Produce      json
// @Param        id path string true "案件 ID"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /cases/{id} [get]
// @Security     BearerAuth
func (c *CaseController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := utils.ValidateCaseID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid case ID", err.Error())
		return
	}

	result, ok := c.cases.Get(id)
	if !ok {
		Error(ctx, http.StatusNotFound, "case not found", "")
		return
	}
	Success(ctx, result)
}

// parseCaseFilters 从查询参数构建案件过滤器
func parseCaseFilters(ctx *gin.Context) (model.CaseFilters, error) {
	var filters model.CaseFilters

	if v := ctx.Query("status"); v != "" {
		status := model.StatusType(v)
		if !status.Valid() {
			return filters, &APIError{Code: 400, Message: "invalid status value"}
		}
		filters.Status = &status
	}
	if v := ctx.Query("caseNumber"); v != "" {
		if err := utils.ValidateCaseNumber(v); err != nil {
			return filters, err
		}
		filters.CaseNumber = &v
	}
	if v := ctx.Query("recdEG"); v != "" {
		recd, err := strconv.ParseBool(v)
		if err != nil {
			return filters, err
		}
		filters.RecdEG = &recd
	}
	if v := ctx.Query("categoryId"); v != "" {
		filters.CategoryID = &v
	}
	if v := ctx.Query("userId"); v != "" {
		filters.UserID = &v
	}

	return filters, nil
}
