package client

import (
	"context"
	"fmt"
)

// MatchClient 数据集相似匹配服务客户端
type MatchClient struct {
	client *httpClient
}

// NewMatchClient 创建相似匹配客户端
func NewMatchClient(baseURL string) *MatchClient {
	return &MatchClient{
		client: newHTTPClient(baseURL),
	}
}

// MatchRequest 相似匹配请求
type MatchRequest struct {
	Item             map[string]interface{} `json:"item"`
	SrcField         string                 `json:"srcField"`
	DatasetName      string                 `json:"datasetName"`
	DatasetType      string                 `json:"datasetType,omitempty"`
	DstField         string                 `json:"dstField,omitempty"`
	DescriptionField string                 `json:"descriptionField,omitempty"`
}

// RawMatch 相似匹配服务返回的单条结果
type RawMatch struct {
	Dataset RawDataset `json:"dataset"`
	Score   float64    `json:"score"`
}

// RawDataset 匹配结果中的数据集记录
type RawDataset struct {
	ID       string                 `json:"id"`
	Metadata map[string]interface{} `json:"metadata"`
}

// MatchResponse 相似匹配响应
type MatchResponse struct {
	SimilarMatches []RawMatch `json:"similarMatches"`
}

// Match 执行相似匹配查询
// token 为当前会话的访问令牌,透传给后端
func (c *MatchClient) Match(ctx context.Context, token string, req *MatchRequest) (*MatchResponse, error) {
	headers := map[string]string{}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	var resp MatchResponse
	if err := c.client.postJSON(ctx, "/datasets/match", headers, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch similar matches: %w", err)
	}
	return &resp, nil
}
