package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nikita2423/approval-bff/internal/model"
)

// draftWithFiles 构造带指定附件的草稿
func draftWithFiles(files ...model.ProductFile) model.ProductDraft {
	return model.ProductDraft{
		ID:    "draft-001",
		Name:  "Test Product",
		Files: files,
	}
}

func attachedFile(t model.FileType) model.ProductFile {
	return model.ProductFile{
		ID:     "file-" + string(t),
		Name:   string(t) + ".pdf",
		Type:   t,
		Ref:    "upload/" + string(t),
		Status: model.UploadDone,
	}
}

// TestProductDraft_CanCreateCase 测试草稿转案件的门槛
// 申请表、EG 表单、产品目录三类附件齐全才允许创建
func TestProductDraft_CanCreateCase(t *testing.T) {
	full := draftWithFiles(
		attachedFile(model.FileApplication),
		attachedFile(model.FileEG),
		attachedFile(model.FileCatalogue),
	)
	assert.True(t, full.CanCreateCase())

	// 缺任何一类都不允许
	missingEG := draftWithFiles(
		attachedFile(model.FileApplication),
		attachedFile(model.FileCatalogue),
	)
	assert.False(t, missingEG.CanCreateCase())

	// 附件存在但未上传(Ref 为空)不算附加
	pending := draftWithFiles(
		attachedFile(model.FileApplication),
		model.ProductFile{ID: "f1", Name: "eg.pdf", Type: model.FileEG, Status: model.UploadPending},
		attachedFile(model.FileCatalogue),
	)
	assert.False(t, pending.CanCreateCase())

	empty := draftWithFiles()
	assert.False(t, empty.CanCreateCase())
}

// TestProductDraft_CanCreateCase_QuotationIgnored 报价单不参与门槛判定
func TestProductDraft_CanCreateCase_QuotationIgnored(t *testing.T) {
	withQuotation := draftWithFiles(
		attachedFile(model.FileApplication),
		attachedFile(model.FileEG),
		attachedFile(model.FileCatalogue),
		attachedFile(model.FileQuotation),
	)
	assert.True(t, withQuotation.CanCreateCase())

	withoutQuotation := draftWithFiles(
		attachedFile(model.FileApplication),
		attachedFile(model.FileEG),
		attachedFile(model.FileCatalogue),
	)
	assert.True(t, withoutQuotation.CanCreateCase())

	// 只有报价单齐全不满足门槛
	onlyQuotation := draftWithFiles(attachedFile(model.FileQuotation))
	assert.False(t, onlyQuotation.CanCreateCase())
}

// TestProductDraft_FileOfType 测试按类型取附件
func TestProductDraft_FileOfType(t *testing.T) {
	draft := draftWithFiles(attachedFile(model.FileEG))

	f := draft.FileOfType(model.FileEG)
	assert.NotNil(t, f)
	assert.Equal(t, model.FileEG, f.Type)

	assert.Nil(t, draft.FileOfType(model.FileCatalogue))
}

// TestProductDraft_Validate 测试草稿验证
func TestProductDraft_Validate(t *testing.T) {
	valid := model.ProductDraft{ID: "d1", Name: "Product"}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&model.ProductDraft{Name: "Product"}).Validate())
	assert.Error(t, (&model.ProductDraft{ID: "d1"}).Validate())
}

// TestPendingDecision_Validate 测试待确认决定验证
func TestPendingDecision_Validate(t *testing.T) {
	valid := model.PendingDecision{
		Decision:      model.StatusApproved,
		Justification: "ok",
		CaseIDs:       []string{"case-1"},
	}
	assert.NoError(t, valid.Validate())

	noCases := model.PendingDecision{Decision: model.StatusApproved}
	assert.Error(t, noCases.Validate())

	nonTerminal := model.PendingDecision{Decision: model.StatusPending, CaseIDs: []string{"case-1"}}
	assert.Error(t, nonTerminal.Validate())
}
