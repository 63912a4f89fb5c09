package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikita2423/approval-bff/internal/model"
	"github.com/nikita2423/approval-bff/internal/store"
)

// TestReviewState_Pending 测试待确认决定的读写
func TestReviewState_Pending(t *testing.T) {
	s := store.NewReviewState()

	_, ok := s.Pending()
	assert.False(t, ok)

	s.SetPending(model.PendingDecision{
		Decision:      model.StatusApproved,
		Justification: "generated text",
		CaseIDs:       []string{"case-1", "case-2"},
	})

	pending, ok := s.Pending()
	require.True(t, ok)
	assert.Equal(t, model.StatusApproved, pending.Decision)
	assert.Equal(t, []string{"case-1", "case-2"}, pending.CaseIDs)
}

// TestReviewState_SetJustification 编辑理由只在有待确认决定时生效
func TestReviewState_SetJustification(t *testing.T) {
	s := store.NewReviewState()
	assert.False(t, s.SetJustification("edited"))

	s.SetPending(model.PendingDecision{Decision: model.StatusRejected, CaseIDs: []string{"case-1"}})
	assert.True(t, s.SetJustification("edited"))

	pending, _ := s.Pending()
	assert.Equal(t, "edited", pending.Justification)
}

// TestReviewState_ReplaceMatches 每次检索结果全量覆盖
func TestReviewState_ReplaceMatches(t *testing.T) {
	s := store.NewReviewState()

	s.ReplaceMatches([]model.SimilarityMatch{{ID: "m1"}, {ID: "m2"}})
	assert.Len(t, s.Matches(), 2)

	s.ReplaceMatches([]model.SimilarityMatch{{ID: "m3"}})
	matches := s.Matches()
	require.Len(t, matches, 1)
	assert.Equal(t, "m3", matches[0].ID)
}

// TestReviewState_Clear 清空后全部状态消失
func TestReviewState_Clear(t *testing.T) {
	s := store.NewReviewState()
	s.SetPending(model.PendingDecision{Decision: model.StatusApproved, CaseIDs: []string{"c"}})
	s.ReplaceMatches([]model.SimilarityMatch{{ID: "m1"}})
	s.SetAnalysis(model.SimilarCaseAnalysis{TotalCases: 1})

	s.Clear()

	_, ok := s.Pending()
	assert.False(t, ok)
	assert.Empty(t, s.Matches())
	_, ok = s.Analysis()
	assert.False(t, ok)
}
