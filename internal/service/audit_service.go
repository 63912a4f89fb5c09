package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nikita2423/approval-bff/internal/model"
	"github.com/nikita2423/approval-bff/internal/repository"
)

// AuditService 审批决定审计服务接口
type AuditService interface {
	RecordDecision(userID, caseID, caseNumber string, decision model.StatusType, justification string, localFallback bool) error
	ListByUser(userID string) ([]*model.DecisionAuditModel, error)
	ListByCase(caseID string) ([]*model.DecisionAuditModel, error)
	ListRecent(limit int) ([]*model.DecisionAuditModel, error)
}

// auditService 审计服务实现
type auditService struct {
	repo repository.DecisionAuditRepository
}

// NewAuditService 创建审计服务
func NewAuditService(repo repository.DecisionAuditRepository) AuditService {
	return &auditService{repo: repo}
}

// RecordDecision 记录一条决定审计日志
func (s *auditService) RecordDecision(userID, caseID, caseNumber string, decision model.StatusType, justification string, localFallback bool) error {
	record := &model.DecisionAuditModel{
		ID:            uuid.New().String(),
		UserID:        userID,
		CaseID:        caseID,
		CaseNumber:    caseNumber,
		Decision:      string(decision),
		Justification: justification,
		LocalFallback: localFallback,
		CreatedAt:     time.Now(),
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid audit record: %w", err)
	}
	if err := s.repo.Save(record); err != nil {
		return fmt.Errorf("failed to save audit record: %w", err)
	}
	return nil
}

// ListByUser 按操作人查询审计日志
func (s *auditService) ListByUser(userID string) ([]*model.DecisionAuditModel, error) {
	return s.repo.FindByUserID(userID)
}

// ListByCase 按案件查询审计日志
func (s *auditService) ListByCase(caseID string) ([]*model.DecisionAuditModel, error) {
	return s.repo.FindByCaseID(caseID)
}

// ListRecent 查询最近的审计日志
func (s *auditService) ListRecent(limit int) ([]*model.DecisionAuditModel, error) {
	return s.repo.FindRecent(limit)
}
