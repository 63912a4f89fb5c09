package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikita2423/approval-bff/internal/model"
	"github.com/nikita2423/approval-bff/internal/store"
)

// TestDraftStore_Add 新增草稿自动生成 ID 和默认状态
func TestDraftStore_Add(t *testing.T) {
	s := store.NewDraftStore()

	draft := s.Add(model.ProductDraft{Name: "Product A"})
	assert.NotEmpty(t, draft.ID)
	assert.Equal(t, model.DraftNew, draft.Status)
	assert.False(t, draft.CreatedAt.IsZero())

	assert.Len(t, s.List(), 1)
}

// TestDraftStore_UpdateAndRemove 测试更新和删除
func TestDraftStore_UpdateAndRemove(t *testing.T) {
	s := store.NewDraftStore()
	draft := s.Add(model.ProductDraft{Name: "Product A"})

	ok := s.Update(draft.ID, func(d *model.ProductDraft) {
		d.Season = "SS26"
	})
	assert.True(t, ok)

	updated, found := s.Get(draft.ID)
	require.True(t, found)
	assert.Equal(t, "SS26", updated.Season)

	assert.True(t, s.Remove(draft.ID))
	assert.False(t, s.Remove(draft.ID))
	assert.Empty(t, s.List())
}

// TestDraftStore_SelectionOrder 选择集保持选择顺序
func TestDraftStore_SelectionOrder(t *testing.T) {
	s := store.NewDraftStore()
	a := s.Add(model.ProductDraft{Name: "A"})
	b := s.Add(model.ProductDraft{Name: "B"})
	c := s.Add(model.ProductDraft{Name: "C"})

	s.ToggleSelection(b.ID)
	s.ToggleSelection(a.ID)
	s.ToggleSelection(c.ID)
	assert.Equal(t, []string{b.ID, a.ID, c.ID}, s.Selection())

	// 再次切换移出选择集,其余顺序不变
	s.ToggleSelection(a.ID)
	assert.Equal(t, []string{b.ID, c.ID}, s.Selection())
}

// TestDraftStore_RemoveAlsoDeselects 删除草稿同时移出选择集
func TestDraftStore_RemoveAlsoDeselects(t *testing.T) {
	s := store.NewDraftStore()
	a := s.Add(model.ProductDraft{Name: "A"})
	s.ToggleSelection(a.ID)
	require.Len(t, s.Selection(), 1)

	s.Remove(a.ID)
	assert.Empty(t, s.Selection())
}

// TestDraftStore_SelectAllPending 只选中待审核状态的草稿
func TestDraftStore_SelectAllPending(t *testing.T) {
	s := store.NewDraftStore()
	s.Add(model.ProductDraft{Name: "A"})
	b := s.Add(model.ProductDraft{Name: "B", Status: model.DraftPendingReview})
	c := s.Add(model.ProductDraft{Name: "C", Status: model.DraftPendingReview})

	s.SelectAllPending()
	assert.Equal(t, []string{b.ID, c.ID}, s.Selection())

	s.ClearSelection()
	assert.Empty(t, s.Selection())
}

// TestDraftStore_CommonSeasonAndTranche 通用季节和批次套用到全部草稿
func TestDraftStore_CommonSeasonAndTranche(t *testing.T) {
	s := store.NewDraftStore()
	a := s.Add(model.ProductDraft{Name: "A", Season: "old"})
	b := s.Add(model.ProductDraft{Name: "B"})

	s.SetCommonSeason("SS26")
	s.SetCommonTranche("T2")
	s.ApplyCommonSeasonAndTranche()

	for _, id := range []string{a.ID, b.ID} {
		d, ok := s.Get(id)
		require.True(t, ok)
		assert.Equal(t, "SS26", d.Season)
		assert.Equal(t, "T2", d.Tranche)
	}
}

// TestDraftStore_Reset 重置清空全部状态
func TestDraftStore_Reset(t *testing.T) {
	s := store.NewDraftStore()
	a := s.Add(model.ProductDraft{Name: "A"})
	s.ToggleSelection(a.ID)
	s.SetCommonSeason("SS26")

	s.Reset()
	assert.Empty(t, s.List())
	assert.Empty(t, s.Selection())
}
