package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nikita2423/approval-bff/internal/client"
	"github.com/nikita2423/approval-bff/internal/metrics"
	"github.com/nikita2423/approval-bff/internal/model"
	"github.com/nikita2423/approval-bff/internal/store"
)

// CaseUpdater 案件状态写入接口
type CaseUpdater interface {
	UpdateStatusJustification(ctx context.Context, caseID string, req *client.UpdateStatusJustificationRequest) (*model.Case, error)
}

// DecisionNotifier 决定事件通知接口
// 提交完成后向订阅方推送决定事件
type DecisionNotifier interface {
	NotifyDecision(event DecisionEvent)
}

// DecisionEvent 决定提交事件
type DecisionEvent struct {
	UserID        string           `json:"userId"`
	CaseIDs       []string         `json:"caseIds"`
	Decision      model.StatusType `json:"decision"`
	Justification string           `json:"justification"`
	Failed        int              `json:"failed"`
	LocalFallback bool             `json:"localFallback"`
}

// DecisionService 决定提交服务接口
type DecisionService interface {
	Commit(ctx context.Context, userID string, caseIDs []string, decision model.StatusType, justification string) (*model.CommitResult, error)
}

// decisionService 决定提交服务实现
type decisionService struct {
	updater  CaseUpdater
	cases    *store.CaseStore
	drafts   *store.DraftStore
	review   *store.ReviewState
	audit    AuditService
	notifier DecisionNotifier
	logger   *logrus.Logger
}

// NewDecisionService 创建决定提交服务
func NewDecisionService(updater CaseUpdater, cases *store.CaseStore, drafts *store.DraftStore, review *store.ReviewState, audit AuditService, notifier DecisionNotifier, logger *logrus.Logger) DecisionService {
	return &decisionService{
		updater:  updater,
		cases:    cases,
		drafts:   drafts,
		review:   review,
		audit:    audit,
		notifier: notifier,
		logger:   logger,
	}
}

// Commit 提交审批决定
// 对每个目标案件并发发起状态写入(写入相互独立,无需排队)。
// 任一写入失败时,对全部目标案件统一套用本地补丁作为一致性回退,
// 避免只有部分案件落到服务端的脑裂状态;全部成功时从服务端重新拉取,
// 以服务端状态覆盖乐观本地状态。无论成败都清空选择、待确认决定和匹配缓存。
func (s *decisionService) Commit(ctx context.Context, userID string, caseIDs []string, decision model.StatusType, justification string) (*model.CommitResult, error) {
	// 前置条件不满足时直接返回,不视为错误
	if len(caseIDs) == 0 || justification == "" {
		return &model.CommitResult{}, nil
	}
	patch := model.CasePatch{Status: decision, Justification: justification}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	// 已处于终态的案件不允许再变更,缓存中不存在的案件交给服务端判断
	for _, caseID := range caseIDs {
		if c, ok := s.cases.Get(caseID); ok && !model.CanTransition(c.Status, decision) {
			return nil, fmt.Errorf("case %s cannot transition from %s to %s", caseID, c.Status, decision)
		}
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0

	for _, caseID := range caseIDs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := s.updater.UpdateStatusJustification(ctx, id, &client.UpdateStatusJustificationRequest{
				Status:        decision,
				Justification: justification,
			})
			if err != nil {
				s.logger.WithField("case_id", id).WithError(err).Warn("case status update failed")
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}(caseID)
	}
	wg.Wait()

	result := &model.CommitResult{Total: len(caseIDs), Failed: failed}

	if failed > 0 {
		// 哪些案件成功并不重要: 为保证视图一致,全部目标案件统一打本地补丁
		s.cases.ApplyLocalPatch(caseIDs, patch)
		result.LocalFallback = true
		metrics.RecordDecisionCommit(true)
	} else {
		if _, err := s.cases.Fetch(ctx, model.CaseFilters{}); err != nil {
			s.logger.WithError(err).Warn("refetch after commit failed, cache cleared")
		} else {
			result.Refetched = true
		}
		metrics.RecordDecisionCommit(false)
	}

	s.recordAudit(userID, caseIDs, decision, justification, result.LocalFallback)

	// 提交后清空编排状态,无论成败
	s.review.Clear()
	s.drafts.ClearSelection()
	metrics.UpdatePendingLocalPatches(s.cases.PendingPatchCount())

	if s.notifier != nil {
		s.notifier.NotifyDecision(DecisionEvent{
			UserID:        userID,
			CaseIDs:       caseIDs,
			Decision:      decision,
			Justification: justification,
			Failed:        failed,
			LocalFallback: result.LocalFallback,
		})
	}

	return result, nil
}

// recordAudit 为每个目标案件写一条审计日志
// 审计失败只记日志,不影响提交结果
func (s *decisionService) recordAudit(userID string, caseIDs []string, decision model.StatusType, justification string, localFallback bool) {
	if s.audit == nil {
		return
	}
	for _, caseID := range caseIDs {
		caseNumber := ""
		if c, ok := s.cases.Get(caseID); ok {
			caseNumber = c.CaseNumber
		}
		if err := s.audit.RecordDecision(userID, caseID, caseNumber, decision, justification, localFallback); err != nil {
			s.logger.WithField("case_id", caseID).WithError(err).Warn("failed to record decision audit")
		}
	}
}
