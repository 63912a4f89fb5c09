package model

import (
	"errors"
)

// StatusType 案件状态
type StatusType string

const (
	StatusPending     StatusType = "pending"
	StatusApproved    StatusType = "approved"
	StatusRejected    StatusType = "rejected"
	StatusUnderReview StatusType = "under_review"
)

// IsTerminal 判断是否为终态
func (s StatusType) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Valid 判断状态值是否合法
func (s StatusType) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusUnderReview:
		return true
	}
	return false
}

// Case 案件
// 一条案件对应一次产品提交的审批工作,由案件管理后端持久化
type Case struct {
	ID              string                 `json:"id"`
	CaseNumber      string                 `json:"caseNumber"`
	UserID          string                 `json:"userId"`
	Status          StatusType             `json:"status"`
	Justification   string                 `json:"justification,omitempty"`
	RecdEG          bool                   `json:"recdEG,omitempty"`
	CatalogueData   map[string]interface{} `json:"catalogueData,omitempty"`
	EGData          map[string]interface{} `json:"egData,omitempty"`
	ApplicationData map[string]interface{} `json:"applicationData,omitempty"`
	CategoryID      string                 `json:"categoryId,omitempty"`
	CreatedAt       string                 `json:"createdAt,omitempty"`
	UpdatedAt       string                 `json:"updatedAt,omitempty"`
}

// CaseFilters 案件列表查询过滤器
type CaseFilters struct {
	Status     *StatusType
	CaseNumber *string
	RecdEG     *bool
	CategoryID *string
	UserID     *string
}

// CasePatch 案件本地补丁
// 服务端写入失败时直接套用到本地缓存
type CasePatch struct {
	Status        StatusType
	Justification string
}

// Validate 验证补丁
// 状态只能迁移到终态,且理由必须随终态一起设置
func (p *CasePatch) Validate() error {
	if !p.Status.IsTerminal() {
		return errors.New("case status can only be patched to approved or rejected")
	}
	if p.Justification == "" {
		return errors.New("justification is required with a terminal status")
	}
	return nil
}

// CanTransition 判断案件状态迁移是否合法
// 只允许 pending/under_review → approved/rejected,终态不可再变更
func CanTransition(from, to StatusType) bool {
	if !to.IsTerminal() {
		return false
	}
	return from == StatusPending || from == StatusUnderReview
}

// CreateCaseRequest 创建案件请求
// @Description 创建案件的请求参数,与案件管理后端的创建接口一致
type CreateCaseRequest struct {
	CaseNumber      string                 `json:"caseNumber" binding:"required"` // 案件编号
	UserID          string                 `json:"userId"`                        // 归属用户 ID
	Status          StatusType             `json:"status,omitempty"`              // 初始状态
	Justification   string                 `json:"justification,omitempty"`       // 审批理由
	RecdEG          bool                   `json:"recdEG,omitempty"`              // 是否已收到 EG 表单
	CatalogueData   map[string]interface{} `json:"catalogueData,omitempty"`       // 产品目录数据
	EGData          map[string]interface{} `json:"egData,omitempty"`              // EG 表单数据
	ApplicationData map[string]interface{} `json:"applicationData,omitempty"`     // 申请表数据
	CategoryID      string                 `json:"categoryId,omitempty"`          // 品类 ID
}

// Validate 验证创建案件请求
func (r *CreateCaseRequest) Validate() error {
	if r.CaseNumber == "" {
		return errors.New("case number is required")
	}
	if r.CatalogueData == nil && r.EGData == nil && r.ApplicationData == nil {
		return errors.New("at least one of catalogueData, egData, or applicationData must be provided")
	}
	return nil
}
