package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nikita2423/approval-bff/internal/client"
	"github.com/nikita2423/approval-bff/internal/metrics"
	"github.com/nikita2423/approval-bff/internal/model"
	"github.com/nikita2423/approval-bff/internal/store"
)

// 相似检索的固定数据集配置
const (
	matchSrcField         = "PA_Cat"
	matchDatasetName      = "Justification Creation"
	matchDatasetType      = "justification-testing"
	matchDstField         = "RefL_Cat"
	matchDescriptionField = "desc"

	// 只有相似度高于该阈值的匹配才进入理由生成上下文
	similarityThreshold = 0.5
)

// SuggestAPI 理由生成后端接口
type SuggestAPI interface {
	Suggest(ctx context.Context, req *client.SuggestRequest) (*client.SuggestResponse, error)
}

// JustificationService 理由编排服务接口
// 对选中的案件按选择顺序逐个检索相似案例并生成审批理由
type JustificationService interface {
	GenerateBatch(ctx context.Context, token string, decision model.StatusType, caseIDs []string) (*BatchResult, error)
}

// BatchResult 批量理由生成结果
// @Description 批量生成的汇总,Justification 为展示给用户的可编辑文本
type BatchResult struct {
	Justification  string           `json:"justification"`  // 展示文本(首个案件的结果)
	Justifications []string         `json:"justifications"` // 按选择顺序累积的全部结果
	FallbackCount  int              `json:"fallback_count"` // 使用本地模板回退的案件数
	CaseIDs        []string         `json:"case_ids"`       // 目标案件 ID
	Decision       model.StatusType `json:"decision"`       // 选定的决定
}

// 编排验证错误
var (
	ErrEmptySelection  = errors.New("at least one case must be selected")
	ErrInvalidDecision = errors.New("decision must be approved or rejected")
)

// justificationService 理由编排服务实现
type justificationService struct {
	matcher MatchService
	suggest SuggestAPI
	cases   *store.CaseStore
	review  *store.ReviewState
	logger  *logrus.Logger
}

// NewJustificationService 创建理由编排服务
func NewJustificationService(matcher MatchService, suggest SuggestAPI, cases *store.CaseStore, review *store.ReviewState, logger *logrus.Logger) JustificationService {
	return &justificationService{
		matcher: matcher,
		suggest: suggest,
		cases:   cases,
		review:  review,
		logger:  logger,
	}
}

// GenerateBatch 为选中的案件批量生成审批理由
// 逐案件顺序执行: 先相似检索再理由生成,下一个案件在上一个完成后才开始。
// 相似检索失败只记日志,该案件带空匹配继续;理由生成失败回退为本地模板。
// 整批永不中断,展示文本固定取首个案件的结果。
// 完成后把 {decision, justification, caseIDs} 写入待确认决定。
func (s *justificationService) GenerateBatch(ctx context.Context, token string, decision model.StatusType, caseIDs []string) (*BatchResult, error) {
	if len(caseIDs) == 0 {
		return nil, ErrEmptySelection
	}
	if !decision.IsTerminal() {
		return nil, ErrInvalidDecision
	}

	justifications := make([]string, 0, len(caseIDs))
	fallbacks := 0

	for _, caseID := range caseIDs {
		c, ok := s.cases.Get(caseID)
		if !ok {
			s.logger.WithField("case_id", caseID).Warn("case not found in cache, using fallback justification")
			justifications = append(justifications, FallbackJustification(decision, caseID))
			fallbacks++
			metrics.RecordJustification("fallback")
			continue
		}

		matches := s.retrieveSimilar(ctx, token, &c)
		contexts := FilterMatchContexts(matches, similarityThreshold)

		text, err := s.generateOne(ctx, &c, contexts)
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"case_id":     caseID,
				"case_number": c.CaseNumber,
			}).WithError(err).Warn("justification generation failed, using fallback template")
			text = FallbackJustification(decision, caseProductName(&c))
			fallbacks++
			metrics.RecordJustification("fallback")
		} else {
			metrics.RecordJustification("generated")
		}
		justifications = append(justifications, text)
	}

	result := &BatchResult{
		Justification:  justifications[0],
		Justifications: justifications,
		FallbackCount:  fallbacks,
		CaseIDs:        caseIDs,
		Decision:       decision,
	}

	s.review.SetPending(model.PendingDecision{
		Decision:      decision,
		Justification: result.Justification,
		CaseIDs:       caseIDs,
	})

	return result, nil
}

// retrieveSimilar 为单个案件检索相似案例
// 检索失败不致命,返回空匹配集让流水线继续
func (s *justificationService) retrieveSimilar(ctx context.Context, token string, c *model.Case) []model.SimilarityMatch {
	category := payloadString(c.ApplicationData, "PA_Cat")
	if category == "" {
		category = c.CategoryID
	}
	description := catalogueDescription(c.CatalogueData)

	matches, err := s.matcher.Query(ctx, token, &MatchQuery{
		Item: map[string]interface{}{
			"PA_Cat": category,
			"desc":   description,
		},
		SrcField:         matchSrcField,
		DatasetName:      matchDatasetName,
		DatasetType:      matchDatasetType,
		DstField:         matchDstField,
		DescriptionField: matchDescriptionField,
	})
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"case_id":     c.ID,
			"case_number": c.CaseNumber,
		}).WithError(err).Warn("similarity query failed, continuing with empty matches")
		return nil
	}

	return matches
}

// generateOne 为单个案件请求生成理由
// current_case 携带案件的完整产品数组,与推理后端的接口约定一致
func (s *justificationService) generateOne(ctx context.Context, c *model.Case, contexts []model.MatchContext) (string, error) {
	resp, err := s.suggest.Suggest(ctx, &client.SuggestRequest{
		SimilarMatches:  contexts,
		CurrentCase:     catalogueProducts(c.CatalogueData),
		ApplicationData: c.ApplicationData,
	})
	if err != nil {
		return "", err
	}
	if resp.Data.Justification == "" {
		return "", fmt.Errorf("justification service returned empty text")
	}
	return resp.Data.Justification, nil
}

// FilterMatchContexts 过滤高相似度匹配并映射为理由生成上下文
func FilterMatchContexts(matches []model.SimilarityMatch, threshold float64) []model.MatchContext {
	contexts := make([]model.MatchContext, 0, len(matches))
	for _, m := range matches {
		if m.Similarity <= threshold {
			continue
		}
		contexts = append(contexts, model.MatchContext{
			Justify:   metaString(m.Metadata, "Justify"),
			ProdName:  metaString(m.Metadata, "Prod_Name"),
			Status:    metaString(m.Metadata, "Status"),
			ModelCode: metaString(m.Metadata, "Model_Code"),
			Desc:      metaString(m.Metadata, "Desc"),
		})
	}
	return contexts
}

// FallbackJustification 生成本地模板理由
// 确定性文本,仅由决定和产品名参数化
func FallbackJustification(decision model.StatusType, name string) string {
	if name == "" {
		name = "the product"
	}
	if decision == model.StatusApproved {
		return fmt.Sprintf("Based on the review of %s, the submission meets the required criteria and is approved.", name)
	}
	return fmt.Sprintf("Based on the review of %s, the submission does not meet the required criteria and is rejected.", name)
}

// payloadString 从负载映射中读取字符串字段
func payloadString(payload map[string]interface{}, key string) string {
	if payload == nil {
		return ""
	}
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}

// catalogueProducts 返回目录数据中的产品数组
func catalogueProducts(catalogue map[string]interface{}) []interface{} {
	if catalogue == nil {
		return []interface{}{}
	}
	if products, ok := catalogue["products"].([]interface{}); ok {
		return products
	}
	return []interface{}{}
}

// catalogueProduct 返回目录数据中的首个产品
func catalogueProduct(catalogue map[string]interface{}) map[string]interface{} {
	products := catalogueProducts(catalogue)
	if len(products) == 0 {
		return map[string]interface{}{}
	}
	if product, ok := products[0].(map[string]interface{}); ok {
		return product
	}
	return map[string]interface{}{}
}

// catalogueDescription 提取产品描述,产品级缺失时回退到目录级描述
func catalogueDescription(catalogue map[string]interface{}) string {
	product := catalogueProduct(catalogue)
	if desc := payloadString(product, "description"); desc != "" {
		return desc
	}
	return payloadString(catalogue, "description")
}

// caseProductName 提取案件的产品名,缺失时回退到案件编号
// 目录抽取结果的字段名为 product_name,兼容旧负载的 name 字段
func caseProductName(c *model.Case) string {
	product := catalogueProduct(c.CatalogueData)
	if name := payloadString(product, "product_name"); name != "" {
		return name
	}
	if name := payloadString(product, "name"); name != "" {
		return name
	}
	return c.CaseNumber
}
