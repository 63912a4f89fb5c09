package api

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nikita2423/approval-bff/internal/client"
	"github.com/nikita2423/approval-bff/internal/model"
	"github.com/nikita2423/approval-bff/internal/service"
)

// ExtractAPI 文档抽取后端接口
type ExtractAPI interface {
	ExtractApplication(ctx context.Context, filename string, file io.Reader) (*client.ExtractResult, error)
	ExtractEG(ctx context.Context, filename string, file io.Reader, tranche string) (*client.ExtractResult, error)
	ExtractCatalogue(ctx context.Context, filename string, file io.Reader, productName string) (*client.ExtractResult, error)
}

// ExtractController 文档抽取控制器
// 把上传的文档转发给抽取服务,结果可直接写入对应草稿
type ExtractController struct {
	extractAPI   ExtractAPI
	draftService service.DraftService
	logger       *logrus.Logger
}

// NewExtractController 创建文档抽取控制器
func NewExtractController(extractAPI ExtractAPI, draftService service.DraftService, logger *logrus.Logger) *ExtractController {
	return &ExtractController{
		extractAPI:   extractAPI,
		draftService: draftService,
		logger:       logger,
	}
}

// Application 抽取申请表
// @Summary      抽取申请表
// @Description  转发申请表文件到抽取服务,draftId 存在时结果写入草稿
// @Tags         文档抽取
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData file   true  "申请表文件"
// @Param        draftId formData string false "目标草稿 ID"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /extract/application [post]
// @Security     BearerAuth
func (c *ExtractController) Application(ctx *gin.Context) {
	filename, file, ok := formFile(ctx)
	if !ok {
		return
	}
	defer file.Close()

	result, err := c.extractAPI.ExtractApplication(ctx.Request.Context(), filename, file)
	if err != nil {
		Error(ctx, http.StatusBadGateway, "extraction failed", err.Error())
		return
	}

	c.storeExtracted(ctx, model.FileApplication, result.Data)
	Success(ctx, result.Data)
}

// EG 抽取 EG 表单
// @Summary      抽取 EG 表单
// @Description  转发 EG 表单文件到抽取服务,tranche 随表单上送并回填结果
// @Tags         文档抽取
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData file   true  "EG 表单文件"
// @Param        tranche formData string false "批次"
// @Param        draftId formData string false "目标草稿 ID"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /extract/eg [post]
// @Security     BearerAuth
func (c *ExtractController) EG(ctx *gin.Context) {
	filename, file, ok := formFile(ctx)
	if !ok {
		return
	}
	defer file.Close()

	tranche := ctx.PostForm("tranche")
	result, err := c.extractAPI.ExtractEG(ctx.Request.Context(), filename, file, tranche)
	if err != nil {
		Error(ctx, http.StatusBadGateway, "extraction failed", err.Error())
		return
	}

	c.storeExtracted(ctx, model.FileEG, result.Data)
	Success(ctx, result.Data)
}

// Catalogue 抽取产品目录
// @Summary      抽取产品目录
// @Tags         文档抽取
// @Accept       multipart/form-data
// @Produce      json
// @Param        file        formData file   true  "目录文件"
// @Param        productName formData string false "产品名称"
// @Param        draftId     formData string false "目标草稿 ID"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /extract/catalogue [post]
// @Security     BearerAuth
func (c *ExtractController) Catalogue(ctx *gin.Context) {
	filename, file, ok := formFile(ctx)
	if !ok {
		return
	}
	defer file.Close()

	productName := ctx.PostForm("productName")
	result, err := c.extractAPI.ExtractCatalogue(ctx.Request.Context(), filename, file, productName)
	if err != nil {
		Error(ctx, http.StatusBadGateway, "extraction failed", err.Error())
		return
	}

	c.storeExtracted(ctx, model.FileCatalogue, result.Data)
	Success(ctx, result.Data)
}

// storeExtracted 把抽取结果写入草稿
// draftId 缺省时只返回结果不落草稿
func (c *ExtractController) storeExtracted(ctx *gin.Context, fileType model.FileType, data map[string]interface{}) {
	draftID := ctx.PostForm("draftId")
	if draftID == "" {
		return
	}
	if err := c.draftService.SetExtractedData(draftID, fileType, data); err != nil {
		c.logger.WithField("draft_id", draftID).WithError(err).Warn("failed to store extracted data")
	}
}

// formFile 从 multipart 表单取文件
func formFile(ctx *gin.Context) (string, io.ReadCloser, bool) {
	header, err := ctx.FormFile("file")
	if err != nil {
		Error(ctx, http.StatusBadRequest, "file is required", err.Error())
		return "", nil, false
	}
	file, err := header.Open()
	if err != nil {
		Error(ctx, http.StatusBadRequest, "failed to read file", err.Error())
		return "", nil, false
	}
	return header.Filename, file, true
}
