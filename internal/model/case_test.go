package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nikita2423/approval-bff/internal/model"
)

// TestStatusType_IsTerminal 测试终态判断
func TestStatusType_IsTerminal(t *testing.T) {
	assert.True(t, model.StatusApproved.IsTerminal())
	assert.True(t, model.StatusRejected.IsTerminal())
	assert.False(t, model.StatusPending.IsTerminal())
	assert.False(t, model.StatusUnderReview.IsTerminal())
}

// TestStatusType_Valid 测试状态合法性
func TestStatusType_Valid(t *testing.T) {
	assert.True(t, model.StatusPending.Valid())
	assert.True(t, model.StatusUnderReview.Valid())
	assert.False(t, model.StatusType("unknown").Valid())
	assert.False(t, model.StatusType("").Valid())
}

// TestCanTransition 测试状态迁移规则
func TestCanTransition(t *testing.T) {
	// 只允许 pending/under_review → approved/rejected
	assert.True(t, model.CanTransition(model.StatusPending, model.StatusApproved))
	assert.True(t, model.CanTransition(model.StatusPending, model.StatusRejected))
	assert.True(t, model.CanTransition(model.StatusUnderReview, model.StatusApproved))
	assert.True(t, model.CanTransition(model.StatusUnderReview, model.StatusRejected))

	// 终态不可再变更
	assert.False(t, model.CanTransition(model.StatusApproved, model.StatusRejected))
	assert.False(t, model.CanTransition(model.StatusRejected, model.StatusApproved))

	// 不能迁移到非终态
	assert.False(t, model.CanTransition(model.StatusPending, model.StatusUnderReview))
	assert.False(t, model.CanTransition(model.StatusUnderReview, model.StatusPending))
}

// TestCasePatch_Validate 测试补丁验证
func TestCasePatch_Validate(t *testing.T) {
	valid := model.CasePatch{Status: model.StatusApproved, Justification: "meets criteria"}
	assert.NoError(t, valid.Validate())

	// 非终态不允许
	nonTerminal := model.CasePatch{Status: model.StatusPending, Justification: "text"}
	assert.Error(t, nonTerminal.Validate())

	// 理由必须随终态一起设置
	noJustification := model.CasePatch{Status: model.StatusRejected}
	assert.Error(t, noJustification.Validate())
}

// TestCreateCaseRequest_Validate 测试创建案件请求验证
func TestCreateCaseRequest_Validate(t *testing.T) {
	valid := model.CreateCaseRequest{
		CaseNumber: "EG-2025-001",
		EGData:     map[string]interface{}{"NO": "EG-2025-", "NO_R": "001"},
	}
	assert.NoError(t, valid.Validate())

	noNumber := model.CreateCaseRequest{
		EGData: map[string]interface{}{"NO": "EG-2025-"},
	}
	assert.Error(t, noNumber.Validate())

	noPayload := model.CreateCaseRequest{CaseNumber: "EG-2025-001"}
	assert.Error(t, noPayload.Validate())
}
