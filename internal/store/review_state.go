package store

import (
	"sync"

	"github.com/nikita2423/approval-bff/internal/model"
)

// ReviewState 审批阶段的编排状态
// 保存待确认决定、最近一次相似检索结果和分析摘要。
// 决定提交或选择变更时整体清除。
type ReviewState struct {
	mu       sync.RWMutex
	pending  *model.PendingDecision
	matches  []model.SimilarityMatch
	analysis *model.SimilarCaseAnalysis
}

// NewReviewState 创建审批编排状态
func NewReviewState() *ReviewState {
	return &ReviewState{}
}

// SetPending 设置待确认决定
func (s *ReviewState) SetPending(p model.PendingDecision) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &p
}

// Pending 返回待确认决定
func (s *ReviewState) Pending() (model.PendingDecision, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pending == nil {
		return model.PendingDecision{}, false
	}
	return *s.pending, true
}

// SetJustification 更新待确认决定的理由文本(用户手工编辑)
func (s *ReviewState) SetJustification(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return false
	}
	s.pending.Justification = text
	return true
}

// ReplaceMatches 整体替换相似匹配缓存
// 每次检索结果全量覆盖,不跨调用累积
func (s *ReviewState) ReplaceMatches(matches []model.SimilarityMatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches = make([]model.SimilarityMatch, len(matches))
	copy(s.matches, matches)
}

// Matches 返回相似匹配缓存
func (s *ReviewState) Matches() []model.SimilarityMatch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.SimilarityMatch, len(s.matches))
	copy(result, s.matches)
	return result
}

// SetAnalysis 设置相似案例分析摘要
func (s *ReviewState) SetAnalysis(a model.SimilarCaseAnalysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analysis = &a
}

// Analysis 返回相似案例分析摘要
func (s *ReviewState) Analysis() (model.SimilarCaseAnalysis, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.analysis == nil {
		return model.SimilarCaseAnalysis{}, false
	}
	return *s.analysis, true
}

// Clear 清空编排状态
func (s *ReviewState) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	s.matches = nil
	s.analysis = nil
}
