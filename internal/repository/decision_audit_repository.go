package repository

import (
	"github.com/nikita2423/approval-bff/internal/model"
	"gorm.io/gorm"
)

// DecisionAuditRepository 审批决定审计日志仓储接口
type DecisionAuditRepository interface {
	Save(record *model.DecisionAuditModel) error
	FindByUserID(userID string) ([]*model.DecisionAuditModel, error)
	FindByCaseID(caseID string) ([]*model.DecisionAuditModel, error)
	FindRecent(limit int) ([]*model.DecisionAuditModel, error)
}

// decisionAuditRepository 审批决定审计日志仓储实现
type decisionAuditRepository struct {
	db *gorm.DB
}

// NewDecisionAuditRepository 创建审计日志仓储
func NewDecisionAuditRepository(db *gorm.DB) DecisionAuditRepository {
	return &decisionAuditRepository{db: db}
}

// Save 保存审计日志
func (r *decisionAuditRepository) Save(record *model.DecisionAuditModel) error {
	return r.db.Save(record).Error
}

// FindByUserID 根据操作人 ID 查找审计日志
func (r *decisionAuditRepository) FindByUserID(userID string) ([]*model.DecisionAuditModel, error) {
	var records []*model.DecisionAuditModel
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&records).Error
	return records, err
}

// FindByCaseID 根据案件 ID 查找审计日志
func (r *decisionAuditRepository) FindByCaseID(caseID string) ([]*model.DecisionAuditModel, error) {
	var records []*model.DecisionAuditModel
	err := r.db.Where("case_id = ?", caseID).Order("created_at DESC").Find(&records).Error
	return records, err
}

// FindRecent 返回最近的审计日志
func (r *decisionAuditRepository) FindRecent(limit int) ([]*model.DecisionAuditModel, error) {
	if limit <= 0 {
		limit = 50
	}
	var records []*model.DecisionAuditModel
	err := r.db.Order("created_at DESC").Limit(limit).Find(&records).Error
	return records, err
}
