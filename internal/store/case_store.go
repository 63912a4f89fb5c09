package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/nikita2423/approval-bff/internal/model"
)

// CaseLister 案件列表查询接口
type CaseLister interface {
	List(ctx context.Context, filters model.CaseFilters) ([]model.Case, error)
}

// CaseStore 案件缓存
// 双层结构: 服务端快照为权威数据,本地补丁集记录服务端写入失败后的乐观更新。
// 读取时把补丁套用在快照之上,重新拉取成功后补丁整体丢弃。
type CaseStore struct {
	mu       sync.RWMutex
	api      CaseLister
	snapshot []model.Case
	patches  map[string]model.CasePatch
}

// NewCaseStore 创建案件缓存
func NewCaseStore(api CaseLister) *CaseStore {
	return &CaseStore{
		api:     api,
		patches: make(map[string]model.CasePatch),
	}
}

// Fetch 从案件管理后端拉取案件列表
// 拉取失败时缓存清空为零条记录,不保留过期数据;拉取成功后本地补丁全部废弃
func (s *CaseStore) Fetch(ctx context.Context, filters model.CaseFilters) ([]model.Case, error) {
	cases, err := s.api.List(ctx, filters)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot = nil
		s.patches = make(map[string]model.CasePatch)
		return nil, fmt.Errorf("failed to fetch cases: %w", err)
	}

	s.snapshot = make([]model.Case, len(cases))
	copy(s.snapshot, cases)
	s.patches = make(map[string]model.CasePatch)

	return s.casesLocked(), nil
}

// Cases 返回套用本地补丁后的案件视图
func (s *CaseStore) Cases() []model.Case {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.casesLocked()
}

// casesLocked 在持有锁的情况下合成案件视图
func (s *CaseStore) casesLocked() []model.Case {
	result := make([]model.Case, len(s.snapshot))
	copy(result, s.snapshot)
	for i := range result {
		if patch, ok := s.patches[result[i].ID]; ok {
			result[i].Status = patch.Status
			result[i].Justification = patch.Justification
		}
	}
	return result
}

// Get 按 ID 返回单个案件(套用本地补丁)
func (s *CaseStore) Get(id string) (model.Case, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.snapshot {
		if s.snapshot[i].ID == id {
			c := s.snapshot[i]
			if patch, ok := s.patches[id]; ok {
				c.Status = patch.Status
				c.Justification = patch.Justification
			}
			return c, true
		}
	}
	return model.Case{}, false
}

// ApplyLocalPatch 对匹配的案件同步套用本地补丁
// 不访问服务端,用于服务端写入部分失败后的一致性回退
func (s *CaseStore) ApplyLocalPatch(caseIDs []string, patch model.CasePatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range caseIDs {
		s.patches[id] = patch
	}
}

// PendingPatchCount 返回未与服务端对账的补丁数量
func (s *CaseStore) PendingPatchCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.patches)
}

// Reset 清空缓存
// 会话结束时调用
func (s *CaseStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
	s.patches = make(map[string]model.CasePatch)
}
