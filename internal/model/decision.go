package model

import "errors"

// PendingDecision 待确认的审批决定
// 批量生成理由后、提交前的临时编排状态,提交或选择变更时清除
type PendingDecision struct {
	Decision      StatusType `json:"decision"`
	Justification string     `json:"justification"`
	CaseIDs       []string   `json:"caseIds"`
}

// Validate 验证待确认决定
func (p *PendingDecision) Validate() error {
	if !p.Decision.IsTerminal() {
		return errors.New("decision must be approved or rejected")
	}
	if len(p.CaseIDs) == 0 {
		return errors.New("at least one case must be selected")
	}
	return nil
}

// CommitResult 决定提交结果
// @Description 决定提交的汇总结果,包含失败数量和回退方式
type CommitResult struct {
	Total         int  `json:"total"`          // 目标案件数
	Failed        int  `json:"failed"`         // 服务端写入失败数
	LocalFallback bool `json:"local_fallback"` // 是否已回退为本地补丁
	Refetched     bool `json:"refetched"`      // 是否已从服务端重新拉取
}
