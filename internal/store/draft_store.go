package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikita2423/approval-bff/internal/model"
)

// DraftStore 产品草稿存储
// 保存创建案件前的在途产品和当前选择集,选择顺序保持插入序
type DraftStore struct {
	mu            sync.RWMutex
	drafts        []model.ProductDraft
	selected      []string
	commonSeason  string
	commonTranche string
}

// NewDraftStore 创建草稿存储
func NewDraftStore() *DraftStore {
	return &DraftStore{}
}

// Add 新增草稿
// ID 为空时自动生成,状态默认为 draft
func (s *DraftStore) Add(draft model.ProductDraft) model.ProductDraft {
	s.mu.Lock()
	defer s.mu.Unlock()

	if draft.ID == "" {
		draft.ID = uuid.New().String()
	}
	if draft.Status == "" {
		draft.Status = model.DraftNew
	}
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = time.Now()
	}
	s.drafts = append(s.drafts, draft)
	return draft
}

// Update 更新草稿
// 在持锁状态下调用 fn 修改草稿,返回是否命中
func (s *DraftStore) Update(id string, fn func(*model.ProductDraft)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.drafts {
		if s.drafts[i].ID == id {
			fn(&s.drafts[i])
			return true
		}
	}
	return false
}

// Remove 删除草稿,同时从选择集中移除
func (s *DraftStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.drafts {
		if s.drafts[i].ID == id {
			s.drafts = append(s.drafts[:i], s.drafts[i+1:]...)
			s.removeSelectionLocked(id)
			return true
		}
	}
	return false
}

// Get 按 ID 返回草稿
func (s *DraftStore) Get(id string) (model.ProductDraft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.drafts {
		if s.drafts[i].ID == id {
			return s.drafts[i], true
		}
	}
	return model.ProductDraft{}, false
}

// List 返回全部草稿
func (s *DraftStore) List() []model.ProductDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.ProductDraft, len(s.drafts))
	copy(result, s.drafts)
	return result
}

// ToggleSelection 切换草稿选中状态
func (s *DraftStore) ToggleSelection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sid := range s.selected {
		if sid == id {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return
		}
	}
	s.selected = append(s.selected, id)
}

// SelectAllPending 选中所有待审核状态的草稿
func (s *DraftStore) SelectAllPending() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = s.selected[:0]
	for i := range s.drafts {
		if s.drafts[i].Status == model.DraftPendingReview {
			s.selected = append(s.selected, s.drafts[i].ID)
		}
	}
}

// Selection 返回当前选择集(保持选择顺序)
func (s *DraftStore) Selection() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]string, len(s.selected))
	copy(result, s.selected)
	return result
}

// ClearSelection 清空选择集
func (s *DraftStore) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = s.selected[:0]
}

// SetCommonSeason 设置通用季节
func (s *DraftStore) SetCommonSeason(season string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commonSeason = season
}

// SetCommonTranche 设置通用批次
func (s *DraftStore) SetCommonTranche(tranche string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commonTranche = tranche
}

// ApplyCommonSeasonAndTranche 把通用季节和批次套用到全部草稿
func (s *DraftStore) ApplyCommonSeasonAndTranche() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.drafts {
		s.drafts[i].Season = s.commonSeason
		s.drafts[i].Tranche = s.commonTranche
	}
}

// Reset 清空草稿存储
func (s *DraftStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts = nil
	s.selected = nil
	s.commonSeason = ""
	s.commonTranche = ""
}

// removeSelectionLocked 在持锁状态下从选择集移除 ID
func (s *DraftStore) removeSelectionLocked(id string) {
	for i, sid := range s.selected {
		if sid == id {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return
		}
	}
}
