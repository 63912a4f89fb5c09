package model

import (
	"errors"
	"time"
)

// DecisionAuditModel 审批决定审计日志数据模型
// 每次决定提交为每个目标案件记录一条,包含是否回退为本地补丁
type DecisionAuditModel struct {
	ID            string    `gorm:"primaryKey;type:varchar(64)"`
	UserID        string    `gorm:"type:varchar(64);index"`         // 操作人 ID
	CaseID        string    `gorm:"type:varchar(64);not null;index"` // 案件 ID
	CaseNumber    string    `gorm:"type:varchar(128);index"`        // 案件编号
	Decision      string    `gorm:"type:varchar(32);not null"`      // approved / rejected
	Justification string    `gorm:"type:text"`                      // 提交的审批理由
	LocalFallback bool      `gorm:"not null"`                       // 是否回退为本地补丁
	CreatedAt     time.Time `gorm:"not null;index"`
}

// TableName 指定表名
func (DecisionAuditModel) TableName() string {
	return "decision_audits"
}

// Validate 验证审计日志模型
func (m *DecisionAuditModel) Validate() error {
	if m.ID == "" {
		return errors.New("audit ID is required")
	}
	if m.CaseID == "" {
		return errors.New("case ID is required")
	}
	if m.Decision == "" {
		return errors.New("decision is required")
	}
	return nil
}
