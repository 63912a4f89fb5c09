package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/nikita2423/approval-bff/internal/client"
	"github.com/nikita2423/approval-bff/internal/metrics"
	"github.com/nikita2423/approval-bff/internal/model"
	"github.com/nikita2423/approval-bff/internal/store"
)

// MatchAPI 相似匹配后端接口
type MatchAPI interface {
	Match(ctx context.Context, token string, req *client.MatchRequest) (*client.MatchResponse, error)
}

// MatchService 相似检索服务接口
type MatchService interface {
	Query(ctx context.Context, token string, query *MatchQuery) ([]model.SimilarityMatch, error)
}

// MatchQuery 相似检索查询
// @Description 相似检索的查询参数
type MatchQuery struct {
	Item             map[string]interface{} `json:"item" binding:"required"`        // 查询条目
	SrcField         string                 `json:"srcField" binding:"required"`    // 源字段名
	DatasetName      string                 `json:"datasetName" binding:"required"` // 数据集名称
	DatasetType      string                 `json:"datasetType,omitempty"`          // 数据集类型
	DstField         string                 `json:"dstField,omitempty"`             // 目标字段名
	DescriptionField string                 `json:"descriptionField,omitempty"`     // 描述字段名
}

// 验证错误
var (
	ErrMissingMatchFields = errors.New("missing required fields: item, srcField, datasetName")
)

// matchService 相似检索服务实现
type matchService struct {
	api    MatchAPI
	review *store.ReviewState
}

// NewMatchService 创建相似检索服务
func NewMatchService(api MatchAPI, review *store.ReviewState) MatchService {
	return &matchService{
		api:    api,
		review: review,
	}
}

// Query 执行相似检索
// 每次调用的结果全量替换匹配缓存,同时重建分析摘要。
// 归一化保证每条原始记录产出一条匹配,缺失字段填充占位值。
func (s *matchService) Query(ctx context.Context, token string, query *MatchQuery) ([]model.SimilarityMatch, error) {
	// 前置验证,不通过时不发起网络请求
	if len(query.Item) == 0 || query.SrcField == "" || query.DatasetName == "" {
		return nil, ErrMissingMatchFields
	}

	resp, err := s.api.Match(ctx, token, &client.MatchRequest{
		Item:             query.Item,
		SrcField:         query.SrcField,
		DatasetName:      query.DatasetName,
		DatasetType:      query.DatasetType,
		DstField:         query.DstField,
		DescriptionField: query.DescriptionField,
	})
	if err != nil {
		metrics.RecordSimilarityQuery(false)
		return nil, err
	}
	metrics.RecordSimilarityQuery(true)

	matches := NormalizeMatches(resp.SimilarMatches)

	if s.review != nil {
		s.review.ReplaceMatches(matches)
		s.review.SetAnalysis(BuildAnalysis(matches))
	}

	return matches, nil
}

// NormalizeMatches 把后端返回的异构结果归一化为统一的匹配记录
// 确定且全量: 相同输入得到相同输出,每条记录都保留,缺失字段用占位值
func NormalizeMatches(raw []client.RawMatch) []model.SimilarityMatch {
	matches := make([]model.SimilarityMatch, 0, len(raw))
	for i, item := range raw {
		metadata := item.Dataset.Metadata

		id := item.Dataset.ID
		if id == "" {
			id = fmt.Sprintf("match-%d", i)
		}

		approvalStatus := metaString(metadata, "Q12a_T4")
		decision := model.StatusRejected
		if approvalStatus == "Y" {
			decision = model.StatusApproved
		}

		matches = append(matches, model.SimilarityMatch{
			ID:             id,
			Name:           firstMetaString(metadata, []string{"Prod_Name", "Company"}, "Unknown"),
			Category:       firstMetaString(metadata, []string{"RefL_Cat", "PA_Cat"}, ""),
			Description:    firstMetaString(metadata, []string{"Justify", "RefL_Des"}, ""),
			Similarity:     item.Score,
			Decision:       decision,
			ApprovalStatus: approvalStatus,
			ModelCode:      metaString(metadata, "Model_Code"),
			Metadata:       metadata,
		})
	}
	return matches
}

// BuildAnalysis 根据匹配结果构建相似案例分析摘要
func BuildAnalysis(matches []model.SimilarityMatch) model.SimilarCaseAnalysis {
	approved := 0
	for _, m := range matches {
		if m.Decision == model.StatusApproved {
			approved++
		}
	}

	total := len(matches)
	denominator := total
	if denominator < 1 {
		denominator = 1
	}

	analysis := model.SimilarCaseAnalysis{
		TotalCases:    total,
		ApprovalRate:  int(math.Round(float64(approved) / float64(denominator) * 100)),
		RejectionRate: int(math.Round(float64(total-approved) / float64(denominator) * 100)),
		CommonApprovalFactors: []string{
			"Similar product categories found",
			"Matching dataset records identified",
			"Reference data available",
		},
		CommonRejectionFactors: []string{},
		Cases:                  matches,
	}
	return analysis
}

// metaString 从元数据中读取字符串字段
func metaString(metadata map[string]interface{}, key string) string {
	if metadata == nil {
		return ""
	}
	if v, ok := metadata[key].(string); ok {
		return v
	}
	return ""
}

// firstMetaString 按顺序取第一个非空的元数据字段,全部缺失时返回占位值
func firstMetaString(metadata map[string]interface{}, keys []string, fallback string) string {
	for _, key := range keys {
		if v := metaString(metadata, key); v != "" {
			return v
		}
	}
	return fallback
}
