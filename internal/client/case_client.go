package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/nikita2423/approval-bff/internal/model"
)

// CaseClient 案件管理后端客户端
type CaseClient struct {
	client *httpClient
}

// NewCaseClient 创建案件管理客户端
func NewCaseClient(baseURL string) *CaseClient {
	return &CaseClient{
		client: newHTTPClient(baseURL),
	}
}

// CreateCaseResult 创建案件的后端返回
type CreateCaseResult struct {
	ID     string `json:"id"`
	CaseID string `json:"caseId"`
}

// CreatedCaseID 返回后端生成的案件 ID
// 后端的两个版本分别使用 id 和 caseId 字段
func (r *CreateCaseResult) CreatedCaseID() string {
	if r.ID != "" {
		return r.ID
	}
	return r.CaseID
}

// Create 创建案件
func (c *CaseClient) Create(ctx context.Context, req *model.CreateCaseRequest) (*CreateCaseResult, error) {
	var result CreateCaseResult
	if err := c.client.postJSON(ctx, "/cases/create", nil, req, &result); err != nil {
		return nil, fmt.Errorf("failed to create case: %w", err)
	}
	return &result, nil
}

// List 查询案件列表
func (c *CaseClient) List(ctx context.Context, filters model.CaseFilters) ([]model.Case, error) {
	query := url.Values{}
	if filters.Status != nil {
		query.Set("status", string(*filters.Status))
	}
	if filters.CaseNumber != nil {
		query.Set("caseNumber", *filters.CaseNumber)
	}
	if filters.RecdEG != nil {
		query.Set("recdEG", strconv.FormatBool(*filters.RecdEG))
	}
	if filters.CategoryID != nil {
		query.Set("categoryId", *filters.CategoryID)
	}
	if filters.UserID != nil {
		query.Set("userId", *filters.UserID)
	}

	path := "/cases"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var cases []model.Case
	if err := c.client.getJSON(ctx, path, nil, &cases); err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	return cases, nil
}

// UpdateStatusJustificationRequest 更新案件状态和理由的请求
type UpdateStatusJustificationRequest struct {
	Status        model.StatusType `json:"status"`
	Justification string           `json:"justification"`
}

// UpdateStatusJustification 更新案件状态和审批理由
func (c *CaseClient) UpdateStatusJustification(ctx context.Context, caseID string, req *UpdateStatusJustificationRequest) (*model.Case, error) {
	var updated model.Case
	path := fmt.Sprintf("/cases/%s/status-justification", url.PathEscape(caseID))
	if err := c.client.postJSON(ctx, path, nil, req, &updated); err != nil {
		return nil, fmt.Errorf("failed to update case %s: %w", caseID, err)
	}
	return &updated, nil
}
