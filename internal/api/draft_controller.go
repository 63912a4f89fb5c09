package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nikita2423/approval-bff/internal/model"
	"github.com/nikita2423/approval-bff/internal/service"
	"github.com/nikita2423/approval-bff/internal/store"
	"github.com/nikita2423/approval-bff/internal/utils"
)

// DraftController 产品草稿控制器
type DraftController struct {
	draftService service.DraftService
	drafts       *store.DraftStore
}

// NewDraftController 创建草稿控制器
func NewDraftController(draftService service.DraftService, drafts *store.DraftStore) *DraftController {
	return &DraftController{
		draftService: draftService,
		drafts:       drafts,
	}
}

// validateDraftID 验证草稿 ID
func (c *DraftController) validateDraftID(ctx *gin.Context, id string) bool {
	if err := utils.ValidateDraftID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid draft ID", err.Error())
		return false
	}
	return true
}

// createDraftRequest 新增草稿请求
type createDraftRequest struct {
	Name        string `json:"name" binding:"required"` // 产品名称
	SKU         string `json:"sku"`                     // SKU
	Category    string `json:"category"`                // 品类
	Season      string `json:"season"`                  // 季节
	Tranche     string `json:"tranche"`                 // 批次
	Supplier    string `json:"supplier"`                // 供应商
	Description string `json:"description"`             // 描述
}

// updateDraftRequest 更新草稿请求
// 指针字段缺省表示不修改
type updateDraftRequest struct {
	Name        *string `json:"name"`
	SKU         *string `json:"sku"`
	Category    *string `json:"category"`
	Season      *string `json:"season"`
	Tranche     *string `json:"tranche"`
	Supplier    *string `json:"supplier"`
	Description *string `json:"description"`
}

// attachFileRequest 附加文件请求
type attachFileRequest struct {
	Name   string             `json:"name" binding:"required"` // 文件名
	Type   model.FileType     `json:"type" binding:"required"` // 文件类型
	Ref    string             `json:"ref"`                     // 上传后的文件引用
	Status model.UploadStatus `json:"status"`                  // 上传状态
}

// commonFieldsRequest 通用季节/批次请求
type commonFieldsRequest struct {
	Season  string `json:"season"`
	Tranche string `json:"tranche"`
}

// createCasesRequest 草稿转案件请求
type createCasesRequest struct {
	DraftIDs []string `json:"draftIds"` // 缺省时使用当前选择集
}

// Create 新增草稿
// @Summary      新增产品草稿
// @Tags         草稿
// @Accept       json
// @Produce      json
// @Param        request body createDraftRequest true "草稿信息"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Router       /drafts [post]
// @Security     BearerAuth
func (c *DraftController) Create(ctx *gin.Context) {
	var req createDraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	draft, err := c.draftService.Add(model.ProductDraft{
		Name:        utils.SanitizeString(req.Name),
		SKU:         req.SKU,
		Category:    req.Category,
		Season:      req.Season,
		Tranche:     req.Tranche,
		Supplier:    req.Supplier,
		Description: req.Description,
	})
	if err != nil {
		Error(ctx, http.StatusBadRequest, "failed to create draft", err.Error())
		return
	}
	Success(ctx, draft)
}

// List 草稿列表
// @Summary      草稿列表
// @Tags         草稿
// @Produce      json
// @Success      200  {object}  Response
// @Router       /drafts [get]
// @Security     BearerAuth
func (c *DraftController) List(ctx *gin.Context) {
	Success(ctx, c.draftService.List())
}

// Get 获取草稿
// @Summary      获取草稿详情
// @Tags         草稿
// @Produce      json
// @Param        id path string true "草稿 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /drafts/{id} [get]
// @Security     BearerAuth
func (c *DraftController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateDraftID(ctx, id) {
		return
	}

	draft, err := c.draftService.Get(id)
	if err != nil {
		Error(ctx, http.StatusNotFound, "draft not found", err.Error())
		return
	}
	Success(ctx, draft)
}

// Update 更新草稿
// @Summary      更新草稿字段
// @Tags         草稿
// @Accept       json
// @Produce      json
// @Param        id path string true "草稿 ID"
// @Param        request body updateDraftRequest true "更新字段"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /drafts/{id} [put]
// @Security     BearerAuth
func (c *DraftController) Update(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateDraftID(ctx, id) {
		return
	}

	var req updateDraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	err := c.draftService.Update(id, func(d *model.ProductDraft) {
		if req.Name != nil {
			d.Name = utils.SanitizeString(*req.Name)
		}
		if req.SKU != nil {
			d.SKU = *req.SKU
		}
		if req.Category != nil {
			d.Category = *req.Category
		}
		if req.Season != nil {
			d.Season = *req.Season
		}
		if req.Tranche != nil {
			d.Tranche = *req.Tranche
		}
		if req.Supplier != nil {
			d.Supplier = *req.Supplier
		}
		if req.Description != nil {
			d.Description = *req.Description
		}
	})
	if err != nil {
		Error(ctx, http.StatusNotFound, "draft not found", err.Error())
		return
	}

	draft, _ := c.draftService.Get(id)
	Success(ctx, draft)
}

// Delete 删除草稿
// @Summary      删除草稿
// @Tags         草稿
// @Produce      json
// @Param        id path string true "草稿 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /drafts/{id} [delete]
// @Security     BearerAuth
func (c *DraftController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateDraftID(ctx, id) {
		return
	}

	if err := c.draftService.Remove(id); err != nil {
		Error(ctx, http.StatusNotFound, "draft not found", err.Error())
		return
	}
	Success(ctx, nil)
}

// AttachFile 附加文件引用
// @Summary      附加文件
// @Description  为草稿记录一个已上传文件的引用,同类型文件覆盖
// @Tags         草稿
// @Accept       json
// @Produce      json
// @Param        id path string true "草稿 ID"
// @Param        request body attachFileRequest true "文件信息"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /drafts/{id}/files [post]
// @Security     BearerAuth
func (c *DraftController) AttachFile(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateDraftID(ctx, id) {
		return
	}

	var req attachFileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	status := req.Status
	if status == "" {
		status = model.UploadPending
		if req.Ref != "" {
			status = model.UploadDone
		}
	}

	err := c.draftService.AttachFile(id, model.ProductFile{
		ID:     req.Ref,
		Name:   req.Name,
		Type:   req.Type,
		Ref:    req.Ref,
		Status: status,
	})
	if err != nil {
		Error(ctx, http.StatusNotFound, "draft not found", err.Error())
		return
	}

	draft, _ := c.draftService.Get(id)
	Success(ctx, draft)
}

// ToggleSelection 切换草稿选中状态
// @Summary      切换选中
// @Tags         草稿
// @Produce      json
// @Param        id path string true "草稿 ID"
// @Success      200  {object}  Response
// @Router       /drafts/{id}/select [post]
// @Security     BearerAuth
func (c *DraftController) ToggleSelection(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateDraftID(ctx, id) {
		return
	}
	c.drafts.ToggleSelection(id)
	Success(ctx, c.drafts.Selection())
}

// SelectAllPending 选中全部待审核草稿
// @Summary      全选待审核草稿
// @Tags         草稿
// @Produce      json
// @Success      200  {object}  Response
// @Router       /drafts/selection/all-pending [post]
// @Security     BearerAuth
func (c *DraftController) SelectAllPending(ctx *gin.Context) {
	c.drafts.SelectAllPending()
	Success(ctx, c.drafts.Selection())
}

// Selection 当前选择集
// @Summary      查询选择集
// @Tags         草稿
// @Produce      json
// @Success      200  {object}  Response
// @Router       /drafts/selection [get]
// @Security     BearerAuth
func (c *DraftController) Selection(ctx *gin.Context) {
	Success(ctx, c.drafts.Selection())
}

// ClearSelection 清空选择集
// @Summary      清空选择集
// @Tags         草稿
// @Produce      json
// @Success      200  {object}  Response
// @Router       /drafts/selection [delete]
// @Security     BearerAuth
func (c *DraftController) ClearSelection(ctx *gin.Context) {
	c.drafts.ClearSelection()
	Success(ctx, nil)
}

// SetCommonFields 设置通用季节和批次
// @Summary      设置通用季节/批次
// @Tags         草稿
// @Accept       json
// @Produce      json
// @Param        request body commonFieldsRequest true "通用字段"
// @Success      200  {object}  Response
// @Router       /drafts/common [put]
// @Security     BearerAuth
func (c *DraftController) SetCommonFields(ctx *gin.Context) {
	var req commonFieldsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	c.drafts.SetCommonSeason(req.Season)
	c.drafts.SetCommonTranche(req.Tranche)
	Success(ctx, nil)
}

// ApplyCommonFields 套用通用季节和批次到全部草稿
// @Summary      套用通用季节/批次
// @Tags         草稿
// @Produce      json
// @Success      200  {object}  Response
// @Router       /drafts/common/apply [post]
// @Security     BearerAuth
func (c *DraftController) ApplyCommonFields(ctx *gin.Context) {
	c.drafts.ApplyCommonSeasonAndTranche()
	Success(ctx, c.draftService.List())
}

// CreateCases 草稿批量转案件
// @Summary      草稿转案件
// @Description  把选中(或指定)的草稿逐个转换为案件,单个失败不影响其余
// @Tags         草稿
// @Accept       json
// @Produce      json
// @Param        request body createCasesRequest false "目标草稿"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Router       /drafts/create-cases [post]
// @Security     BearerAuth
func (c *DraftController) CreateCases(ctx *gin.Context) {
	// 请求体可选,缺省时使用当前选择集
	var req createCasesRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
			return
		}
	}

	userID := ctx.GetString("user_id")
	result, err := c.draftService.CreateCases(ctx.Request.Context(), userID, req.DraftIDs)
	if err != nil {
		Error(ctx, http.StatusBadRequest, "failed to create cases", err.Error())
		return
	}
	Success(ctx, result)
}
