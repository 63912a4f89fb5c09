package client

import (
	"context"
	"fmt"

	"github.com/nikita2423/approval-bff/internal/model"
)

// SuggestClient 理由生成服务客户端
type SuggestClient struct {
	client *httpClient
}

// NewSuggestClient 创建理由生成客户端
func NewSuggestClient(baseURL string) *SuggestClient {
	return &SuggestClient{
		client: newHTTPClient(baseURL),
	}
}

// SuggestRequest 理由生成请求
// 字段名与推理后端约定一致
type SuggestRequest struct {
	SimilarMatches  []model.MatchContext   `json:"similar_matches"`
	CurrentCase     interface{}            `json:"current_case"`
	ApplicationData map[string]interface{} `json:"application_data"`
}

// SuggestResponse 理由生成响应
type SuggestResponse struct {
	Data struct {
		Justification string `json:"justification"`
	} `json:"data"`
}

// Suggest 请求生成审批理由
func (c *SuggestClient) Suggest(ctx context.Context, req *SuggestRequest) (*SuggestResponse, error) {
	// 保证 similar_matches 和 application_data 序列化为空集合而不是 null
	if req.SimilarMatches == nil {
		req.SimilarMatches = []model.MatchContext{}
	}
	if req.ApplicationData == nil {
		req.ApplicationData = map[string]interface{}{}
	}

	var resp SuggestResponse
	if err := c.client.postJSON(ctx, "/suggest/justification", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to generate justification: %w", err)
	}
	return &resp, nil
}
