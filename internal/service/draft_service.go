package service

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nikita2423/approval-bff/internal/client"
	"github.com/nikita2423/approval-bff/internal/metrics"
	"github.com/nikita2423/approval-bff/internal/model"
	"github.com/nikita2423/approval-bff/internal/store"
)

// CaseCreator 案件创建接口
type CaseCreator interface {
	Create(ctx context.Context, req *model.CreateCaseRequest) (*client.CreateCaseResult, error)
}

// DraftService 产品草稿服务接口
// 管理创建案件前的在途产品,并在确认后批量转换为案件
type DraftService interface {
	Add(draft model.ProductDraft) (model.ProductDraft, error)
	Update(id string, fn func(*model.ProductDraft)) error
	Remove(id string) error
	Get(id string) (model.ProductDraft, error)
	List() []model.ProductDraft
	AttachFile(draftID string, file model.ProductFile) error
	SetExtractedData(draftID string, fileType model.FileType, payload map[string]interface{}) error
	CreateCases(ctx context.Context, userID string, draftIDs []string) (*CreateCasesResult, error)
}

// CreatedCase 成功转换的草稿
type CreatedCase struct {
	DraftID    string `json:"draftId"`
	CaseID     string `json:"caseId"`
	CaseNumber string `json:"caseNumber"`
}

// FailedDraft 转换失败的草稿
type FailedDraft struct {
	DraftID string `json:"draftId"`
	Reason  string `json:"reason"`
}

// CreateCasesResult 批量创建案件结果
// @Description 草稿转换为案件的汇总结果,失败的草稿保留原状态
type CreateCasesResult struct {
	Created []CreatedCase `json:"created"`
	Failed  []FailedDraft `json:"failed"`
}

// 草稿服务错误
var (
	ErrDraftNotFound      = errors.New("draft not found")
	ErrMissingAttachments = errors.New("application, eg, and catalogue files must all be attached")
	ErrMissingCaseNumber  = errors.New("eg data is missing the NO / NO_R fields required for a case number")
)

// draftService 草稿服务实现
type draftService struct {
	drafts  *store.DraftStore
	cases   *store.CaseStore
	creator CaseCreator
	logger  *logrus.Logger
}

// NewDraftService 创建草稿服务
func NewDraftService(drafts *store.DraftStore, cases *store.CaseStore, creator CaseCreator, logger *logrus.Logger) DraftService {
	return &draftService{
		drafts:  drafts,
		cases:   cases,
		creator: creator,
		logger:  logger,
	}
}

// Add 新增草稿
func (s *draftService) Add(draft model.ProductDraft) (model.ProductDraft, error) {
	if draft.Name == "" {
		return model.ProductDraft{}, errors.New("draft name is required")
	}
	return s.drafts.Add(draft), nil
}

// Update 更新草稿
func (s *draftService) Update(id string, fn func(*model.ProductDraft)) error {
	if !s.drafts.Update(id, fn) {
		return ErrDraftNotFound
	}
	return nil
}

// Remove 删除草稿
func (s *draftService) Remove(id string) error {
	if !s.drafts.Remove(id) {
		return ErrDraftNotFound
	}
	return nil
}

// Get 按 ID 返回草稿
func (s *draftService) Get(id string) (model.ProductDraft, error) {
	draft, ok := s.drafts.Get(id)
	if !ok {
		return model.ProductDraft{}, ErrDraftNotFound
	}
	return draft, nil
}

// List 返回全部草稿
func (s *draftService) List() []model.ProductDraft {
	return s.drafts.List()
}

// AttachFile 为草稿附加文件引用
// 同类型文件覆盖旧引用
func (s *draftService) AttachFile(draftID string, file model.ProductFile) error {
	return s.Update(draftID, func(d *model.ProductDraft) {
		for i := range d.Files {
			if d.Files[i].Type == file.Type {
				d.Files[i] = file
				return
			}
		}
		d.Files = append(d.Files, file)
	})
}

// SetExtractedData 写入抽取服务返回的结构化数据
func (s *draftService) SetExtractedData(draftID string, fileType model.FileType, payload map[string]interface{}) error {
	return s.Update(draftID, func(d *model.ProductDraft) {
		switch fileType {
		case model.FileApplication:
			d.ApplicationData = payload
		case model.FileEG:
			d.EGData = payload
		case model.FileCatalogue:
			d.CatalogueData = payload
		}
	})
}

// createOutcome 单个草稿的转换结果
type createOutcome struct {
	created CreatedCase
	reason  string
	ok      bool
}

// CreateCases 把草稿批量转换为案件
// 对全部目标草稿并发发起创建(各草稿的创建互相独立),
// 单个草稿失败不影响其余草稿。
// 三类必需文件未齐全或案件编号字段缺失的草稿直接记为失败。
// 成功的草稿状态置为 pending_review,有任何成功时重新拉取案件缓存。
func (s *draftService) CreateCases(ctx context.Context, userID string, draftIDs []string) (*CreateCasesResult, error) {
	if len(draftIDs) == 0 {
		draftIDs = s.drafts.Selection()
	}
	if len(draftIDs) == 0 {
		return nil, errors.New("at least one draft must be selected")
	}

	outcomes := make([]createOutcome, len(draftIDs))

	var wg sync.WaitGroup
	for i, draftID := range draftIDs {
		wg.Add(1)
		go func(i int, draftID string) {
			defer wg.Done()
			outcomes[i] = s.createOne(ctx, userID, draftID)
		}(i, draftID)
	}
	wg.Wait()

	result := &CreateCasesResult{
		Created: []CreatedCase{},
		Failed:  []FailedDraft{},
	}

	// 结果按请求顺序汇总
	for i, draftID := range draftIDs {
		if !outcomes[i].ok {
			result.Failed = append(result.Failed, FailedDraft{DraftID: draftID, Reason: outcomes[i].reason})
			continue
		}
		s.drafts.Update(draftID, func(d *model.ProductDraft) {
			d.Status = model.DraftPendingReview
		})
		result.Created = append(result.Created, outcomes[i].created)
	}

	if len(result.Created) > 0 {
		if _, err := s.cases.Fetch(ctx, model.CaseFilters{}); err != nil {
			s.logger.WithError(err).Warn("refetch after case creation failed")
		}
	}

	return result, nil
}

// createOne 把单个草稿转换为案件
func (s *draftService) createOne(ctx context.Context, userID, draftID string) createOutcome {
	draft, ok := s.drafts.Get(draftID)
	if !ok {
		return createOutcome{reason: ErrDraftNotFound.Error()}
	}
	if !draft.CanCreateCase() {
		return createOutcome{reason: ErrMissingAttachments.Error()}
	}

	caseNumber := caseNumberFromEG(draft.EGData)
	if caseNumber == "" {
		return createOutcome{reason: ErrMissingCaseNumber.Error()}
	}

	req := &model.CreateCaseRequest{
		CaseNumber:      caseNumber,
		UserID:          userID,
		Status:          model.StatusPending,
		RecdEG:          draft.EGData != nil,
		CatalogueData:   draft.CatalogueData,
		EGData:          draft.EGData,
		ApplicationData: draft.ApplicationData,
		CategoryID:      payloadString(draft.ApplicationData, "PA_Cat"),
	}
	created, err := s.creator.Create(ctx, req)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"draft_id":    draftID,
			"case_number": caseNumber,
		}).WithError(err).Warn("case creation failed")
		metrics.RecordCaseCreated(false)
		return createOutcome{reason: err.Error()}
	}
	metrics.RecordCaseCreated(true)

	return createOutcome{
		ok: true,
		created: CreatedCase{
			DraftID:    draftID,
			CaseID:     created.CreatedCaseID(),
			CaseNumber: caseNumber,
		},
	}
}

// caseNumberFromEG 从 EG 表单数据拼接案件编号
// 编号由 NO 和 NO_R 两个字段连接而成
func caseNumberFromEG(egData map[string]interface{}) string {
	no := payloadString(egData, "NO")
	noR := payloadString(egData, "NO_R")
	if no == "" && noR == "" {
		return ""
	}
	return no + noR
}
