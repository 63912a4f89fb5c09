package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikita2423/approval-bff/internal/client"
	"github.com/nikita2423/approval-bff/internal/model"
	"github.com/nikita2423/approval-bff/internal/service"
	"github.com/nikita2423/approval-bff/internal/store"
)

// fakeCaseLister 可控的案件列表后端
type fakeCaseLister struct {
	cases []model.Case
	err   error
	calls int
}

func (f *fakeCaseLister) List(ctx context.Context, filters model.CaseFilters) ([]model.Case, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.cases, nil
}

// fakeMatcher 可控的相似检索服务,按案件类别返回预设匹配
type fakeMatcher struct {
	results map[string][]model.SimilarityMatch
	err     error
	queries []*service.MatchQuery
}

func (f *fakeMatcher) Query(ctx context.Context, token string, query *service.MatchQuery) ([]model.SimilarityMatch, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	category, _ := query.Item["PA_Cat"].(string)
	return f.results[category], nil
}

// fakeSuggester 可控的理由生成后端,记录收到的请求顺序
type fakeSuggester struct {
	texts    map[string]string
	err      error
	requests []*client.SuggestRequest
}

func (f *fakeSuggester) Suggest(ctx context.Context, req *client.SuggestRequest) (*client.SuggestResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	name := ""
	if products, ok := req.CurrentCase.([]interface{}); ok && len(products) > 0 {
		if product, ok := products[0].(map[string]interface{}); ok {
			name, _ = product["product_name"].(string)
		}
	}
	var resp client.SuggestResponse
	resp.Data.Justification = f.texts[name]
	return &resp, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func testCase(id, number, category, productName string) model.Case {
	return model.Case{
		ID:         id,
		CaseNumber: number,
		Status:     model.StatusPending,
		ApplicationData: map[string]interface{}{
			"PA_Cat": category,
		},
		CatalogueData: map[string]interface{}{
			"products": []interface{}{
				map[string]interface{}{"product_name": productName, "description": "desc of " + productName},
			},
		},
	}
}

func loadedCaseStore(t *testing.T, cases ...model.Case) *store.CaseStore {
	t.Helper()
	cs := store.NewCaseStore(&fakeCaseLister{cases: cases})
	_, err := cs.Fetch(context.Background(), model.CaseFilters{})
	require.NoError(t, err)
	return cs
}

// TestGenerateBatch_Validation 空选择和非终态决定直接拒绝
func TestGenerateBatch_Validation(t *testing.T) {
	svc := service.NewJustificationService(&fakeMatcher{}, &fakeSuggester{}, loadedCaseStore(t), store.NewReviewState(), testLogger())

	_, err := svc.GenerateBatch(context.Background(), "token", model.StatusApproved, nil)
	assert.ErrorIs(t, err, service.ErrEmptySelection)

	_, err = svc.GenerateBatch(context.Background(), "token", model.StatusPending, []string{"case-1"})
	assert.ErrorIs(t, err, service.ErrInvalidDecision)
}

// TestGenerateBatch_SingleCase 单案件走完检索和生成,低相似度匹配被过滤
func TestGenerateBatch_SingleCase(t *testing.T) {
	matcher := &fakeMatcher{results: map[string][]model.SimilarityMatch{
		"toys": {
			{ID: "m1", Similarity: 0.9, Metadata: map[string]interface{}{"Justify": "prior approval", "Prod_Name": "Old Toy"}},
			{ID: "m2", Similarity: 0.3, Metadata: map[string]interface{}{"Justify": "should be dropped"}},
		},
	}}
	suggester := &fakeSuggester{texts: map[string]string{"Toy Car": "Approved: complete documentation."}}
	review := store.NewReviewState()
	cases := loadedCaseStore(t, testCase("case-1", "EG100R1", "toys", "Toy Car"))

	svc := service.NewJustificationService(matcher, suggester, cases, review, testLogger())

	result, err := svc.GenerateBatch(context.Background(), "token", model.StatusApproved, []string{"case-1"})
	require.NoError(t, err)

	assert.Equal(t, "Approved: complete documentation.", result.Justification)
	assert.Equal(t, []string{"Approved: complete documentation."}, result.Justifications)
	assert.Equal(t, 0, result.FallbackCount)

	// 只有高于阈值的匹配进入生成上下文
	require.Len(t, suggester.requests, 1)
	require.Len(t, suggester.requests[0].SimilarMatches, 1)
	assert.Equal(t, "prior approval", suggester.requests[0].SimilarMatches[0].Justify)
	assert.Equal(t, "Old Toy", suggester.requests[0].SimilarMatches[0].ProdName)

	// 待确认决定写入复核状态
	pending, ok := review.Pending()
	require.True(t, ok)
	assert.Equal(t, model.StatusApproved, pending.Decision)
	assert.Equal(t, "Approved: complete documentation.", pending.Justification)
	assert.Equal(t, []string{"case-1"}, pending.CaseIDs)
}

// TestGenerateBatch_SequentialOrder 案件按选择顺序逐个处理,展示文本取首个结果
func TestGenerateBatch_SequentialOrder(t *testing.T) {
	matcher := &fakeMatcher{results: map[string][]model.SimilarityMatch{}}
	suggester := &fakeSuggester{texts: map[string]string{
		"Toy Car":  "first justification",
		"Toy Boat": "second justification",
	}}
	cases := loadedCaseStore(t,
		testCase("case-1", "EG100R1", "toys", "Toy Car"),
		testCase("case-2", "EG200R1", "toys", "Toy Boat"),
	)

	svc := service.NewJustificationService(matcher, suggester, cases, store.NewReviewState(), testLogger())

	result, err := svc.GenerateBatch(context.Background(), "token", model.StatusApproved, []string{"case-1", "case-2"})
	require.NoError(t, err)

	// 每个案件先检索后生成
	require.Len(t, matcher.queries, 2)
	require.Len(t, suggester.requests, 2)

	assert.Equal(t, []string{"first justification", "second justification"}, result.Justifications)
	assert.Equal(t, "first justification", result.Justification)
}

// TestGenerateBatch_PayloadCarriesAllProducts 生成请求的 current_case 携带完整产品数组
func TestGenerateBatch_PayloadCarriesAllProducts(t *testing.T) {
	suggester := &fakeSuggester{texts: map[string]string{"Toy Car": "multi product justification"}}
	multi := testCase("case-1", "EG100R1", "toys", "Toy Car")
	multi.CatalogueData["products"] = append(
		multi.CatalogueData["products"].([]interface{}),
		map[string]interface{}{"product_name": "Toy Boat", "description": "a boat"},
	)
	cases := loadedCaseStore(t, multi)

	svc := service.NewJustificationService(&fakeMatcher{}, suggester, cases, store.NewReviewState(), testLogger())

	result, err := svc.GenerateBatch(context.Background(), "token", model.StatusApproved, []string{"case-1"})
	require.NoError(t, err)
	assert.Equal(t, "multi product justification", result.Justification)

	require.Len(t, suggester.requests, 1)
	products, ok := suggester.requests[0].CurrentCase.([]interface{})
	require.True(t, ok)
	require.Len(t, products, 2)
	assert.Equal(t, "Toy Boat", products[1].(map[string]interface{})["product_name"])
}

// TestGenerateBatch_MatchFailureContinues 相似检索失败不中断批次,该案件带空上下文继续
func TestGenerateBatch_MatchFailureContinues(t *testing.T) {
	matcher := &fakeMatcher{err: errors.New("inference backend unavailable")}
	suggester := &fakeSuggester{texts: map[string]string{"Toy Car": "generated without matches"}}
	cases := loadedCaseStore(t, testCase("case-1", "EG100R1", "toys", "Toy Car"))

	svc := service.NewJustificationService(matcher, suggester, cases, store.NewReviewState(), testLogger())

	result, err := svc.GenerateBatch(context.Background(), "token", model.StatusApproved, []string{"case-1"})
	require.NoError(t, err)

	require.Len(t, suggester.requests, 1)
	assert.Empty(t, suggester.requests[0].SimilarMatches)
	assert.Equal(t, "generated without matches", result.Justification)
	assert.Equal(t, 0, result.FallbackCount)
}

// TestGenerateBatch_GenerationFailureFallsBack 理由生成失败时回退到本地模板
func TestGenerateBatch_GenerationFailureFallsBack(t *testing.T) {
	matcher := &fakeMatcher{}
	suggester := &fakeSuggester{err: errors.New("timeout")}
	cases := loadedCaseStore(t, testCase("case-1", "EG100R1", "toys", "Toy Car"))

	svc := service.NewJustificationService(matcher, suggester, cases, store.NewReviewState(), testLogger())

	result, err := svc.GenerateBatch(context.Background(), "token", model.StatusRejected, []string{"case-1"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.FallbackCount)
	assert.Equal(t, "Based on the review of Toy Car, the submission does not meet the required criteria and is rejected.", result.Justification)
}

// TestGenerateBatch_FallbackNameLegacyKey 旧目录负载只有 name 字段时回退模板仍取产品名
func TestGenerateBatch_FallbackNameLegacyKey(t *testing.T) {
	suggester := &fakeSuggester{err: errors.New("timeout")}
	legacy := testCase("case-1", "EG100R1", "toys", "")
	legacy.CatalogueData = map[string]interface{}{
		"products": []interface{}{map[string]interface{}{"name": "Old Toy"}},
	}
	cases := loadedCaseStore(t, legacy)

	svc := service.NewJustificationService(&fakeMatcher{}, suggester, cases, store.NewReviewState(), testLogger())

	result, err := svc.GenerateBatch(context.Background(), "token", model.StatusApproved, []string{"case-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.FallbackCount)
	assert.Contains(t, result.Justification, "Old Toy")
}

// TestGenerateBatch_EmptyGenerationFallsBack 空文本视作生成失败
func TestGenerateBatch_EmptyGenerationFallsBack(t *testing.T) {
	suggester := &fakeSuggester{texts: map[string]string{}}
	cases := loadedCaseStore(t, testCase("case-1", "EG100R1", "toys", "Toy Car"))

	svc := service.NewJustificationService(&fakeMatcher{}, suggester, cases, store.NewReviewState(), testLogger())

	result, err := svc.GenerateBatch(context.Background(), "token", model.StatusApproved, []string{"case-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.FallbackCount)
	assert.Contains(t, result.Justification, "Toy Car")
}

// TestGenerateBatch_MissingCaseFallsBack 缓存中不存在的案件不发起检索,直接回退
func TestGenerateBatch_MissingCaseFallsBack(t *testing.T) {
	matcher := &fakeMatcher{}
	suggester := &fakeSuggester{texts: map[string]string{"Toy Car": "real justification"}}
	cases := loadedCaseStore(t, testCase("case-1", "EG100R1", "toys", "Toy Car"))

	svc := service.NewJustificationService(matcher, suggester, cases, store.NewReviewState(), testLogger())

	result, err := svc.GenerateBatch(context.Background(), "token", model.StatusApproved, []string{"missing", "case-1"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.FallbackCount)
	require.Len(t, result.Justifications, 2)
	assert.Contains(t, result.Justifications[0], "missing")
	assert.Equal(t, "real justification", result.Justifications[1])

	// 缺失案件没有触发检索
	require.Len(t, matcher.queries, 1)
}

// TestGenerateBatch_MixedFailuresNeverAbort 各环节失败混合出现时整批仍然完成
func TestGenerateBatch_MixedFailuresNeverAbort(t *testing.T) {
	matcher := &fakeMatcher{err: errors.New("retrieval down")}
	suggester := &fakeSuggester{err: errors.New("generation down")}
	cases := loadedCaseStore(t,
		testCase("case-1", "EG100R1", "toys", "Toy Car"),
		testCase("case-2", "EG200R1", "games", "Board Game"),
	)

	svc := service.NewJustificationService(matcher, suggester, cases, store.NewReviewState(), testLogger())

	result, err := svc.GenerateBatch(context.Background(), "token", model.StatusApproved, []string{"case-1", "case-2", "missing"})
	require.NoError(t, err)

	assert.Len(t, result.Justifications, 3)
	assert.Equal(t, 3, result.FallbackCount)
	for _, text := range result.Justifications {
		assert.NotEmpty(t, text)
	}
}

// TestFilterMatchContexts 阈值过滤与上下文映射
func TestFilterMatchContexts(t *testing.T) {
	matches := []model.SimilarityMatch{
		{ID: "m1", Similarity: 0.9, Metadata: map[string]interface{}{"Justify": "keep", "Status": "Closed"}},
		{ID: "m2", Similarity: 0.5, Metadata: map[string]interface{}{"Justify": "boundary"}},
		{ID: "m3", Similarity: 0.1, Metadata: map[string]interface{}{"Justify": "drop"}},
	}

	contexts := service.FilterMatchContexts(matches, 0.5)
	require.Len(t, contexts, 1)
	assert.Equal(t, "keep", contexts[0].Justify)
	assert.Equal(t, "Closed", contexts[0].Status)
}

// TestFallbackJustification 本地模板由决定和产品名确定
func TestFallbackJustification(t *testing.T) {
	approved := service.FallbackJustification(model.StatusApproved, "Toy Car")
	assert.Equal(t, "Based on the review of Toy Car, the submission meets the required criteria and is approved.", approved)

	rejected := service.FallbackJustification(model.StatusRejected, "Toy Car")
	assert.Equal(t, "Based on the review of Toy Car, the submission does not meet the required criteria and is rejected.", rejected)

	// 产品名缺失时带占位名
	unnamed := service.FallbackJustification(model.StatusApproved, "")
	assert.Equal(t, fmt.Sprintf("Based on the review of %s, the submission meets the required criteria and is approved.", "the product"), unnamed)
}
