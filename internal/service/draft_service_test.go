package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikita2423/approval-bff/internal/client"
	"github.com/nikita2423/approval-bff/internal/model"
	"github.com/nikita2423/approval-bff/internal/service"
	"github.com/nikita2423/approval-bff/internal/store"
)

// fakeCaseCreator 可控的案件创建后端,按案件编号预设失败
// barrier 不为空时每次调用都等到全部调用同时在途才返回
type fakeCaseCreator struct {
	mu       sync.Mutex
	failFor  map[string]bool
	requests []*model.CreateCaseRequest
	barrier  *sync.WaitGroup
}

func (f *fakeCaseCreator) Create(ctx context.Context, req *model.CreateCaseRequest) (*client.CreateCaseResult, error) {
	if f.barrier != nil {
		f.barrier.Done()
		f.barrier.Wait()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.failFor[req.CaseNumber] {
		return nil, errors.New("status 500")
	}
	return &client.CreateCaseResult{ID: req.CaseNumber + "-id"}, nil
}

type draftFixture struct {
	lister  *fakeCaseLister
	creator *fakeCaseCreator
	drafts  *store.DraftStore
	svc     service.DraftService
}

func newDraftFixture(t *testing.T) *draftFixture {
	t.Helper()
	lister := &fakeCaseLister{}
	cases := store.NewCaseStore(lister)
	creator := &fakeCaseCreator{}
	drafts := store.NewDraftStore()
	return &draftFixture{
		lister:  lister,
		creator: creator,
		drafts:  drafts,
		svc:     service.NewDraftService(drafts, cases, creator, testLogger()),
	}
}

func attachedDraft(name, no, noR string) model.ProductDraft {
	return model.ProductDraft{
		Name: name,
		Files: []model.ProductFile{
			{ID: "f1", Type: model.FileApplication, Ref: "ref-app", Status: model.UploadDone},
			{ID: "f2", Type: model.FileEG, Ref: "ref-eg", Status: model.UploadDone},
			{ID: "f3", Type: model.FileCatalogue, Ref: "ref-cat", Status: model.UploadDone},
		},
		ApplicationData: map[string]interface{}{"PA_Cat": "toys"},
		EGData:          map[string]interface{}{"NO": no, "NO_R": noR},
		CatalogueData:   map[string]interface{}{"products": []interface{}{map[string]interface{}{"name": name}}},
	}
}

// TestDraftService_Add 名称为空的草稿拒绝入库
func TestDraftService_Add(t *testing.T) {
	f := newDraftFixture(t)

	_, err := f.svc.Add(model.ProductDraft{})
	assert.Error(t, err)

	draft, err := f.svc.Add(model.ProductDraft{Name: "Toy Car"})
	require.NoError(t, err)
	assert.NotEmpty(t, draft.ID)
	assert.Equal(t, model.DraftNew, draft.Status)
}

// TestDraftService_AttachFile 同类型附件覆盖旧引用
func TestDraftService_AttachFile(t *testing.T) {
	f := newDraftFixture(t)
	draft, err := f.svc.Add(model.ProductDraft{Name: "Toy Car"})
	require.NoError(t, err)

	require.NoError(t, f.svc.AttachFile(draft.ID, model.ProductFile{ID: "f1", Type: model.FileEG, Ref: "old", Status: model.UploadDone}))
	require.NoError(t, f.svc.AttachFile(draft.ID, model.ProductFile{ID: "f2", Type: model.FileEG, Ref: "new", Status: model.UploadDone}))

	got, err := f.svc.Get(draft.ID)
	require.NoError(t, err)
	require.Len(t, got.Files, 1)
	assert.Equal(t, "new", got.Files[0].Ref)

	assert.ErrorIs(t, f.svc.AttachFile("missing", model.ProductFile{Type: model.FileEG}), service.ErrDraftNotFound)
}

// TestDraftService_SetExtractedData 抽取结果按文件类型落到对应字段
func TestDraftService_SetExtractedData(t *testing.T) {
	f := newDraftFixture(t)
	draft, err := f.svc.Add(model.ProductDraft{Name: "Toy Car"})
	require.NoError(t, err)

	require.NoError(t, f.svc.SetExtractedData(draft.ID, model.FileApplication, map[string]interface{}{"PA_Cat": "toys"}))
	require.NoError(t, f.svc.SetExtractedData(draft.ID, model.FileEG, map[string]interface{}{"NO": "EG100"}))
	require.NoError(t, f.svc.SetExtractedData(draft.ID, model.FileCatalogue, map[string]interface{}{"description": "a toy"}))

	got, err := f.svc.Get(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "toys", got.ApplicationData["PA_Cat"])
	assert.Equal(t, "EG100", got.EGData["NO"])
	assert.Equal(t, "a toy", got.CatalogueData["description"])
}

// TestCreateCases_Success 齐备的草稿创建成功并置为待复核
func TestCreateCases_Success(t *testing.T) {
	f := newDraftFixture(t)
	draft, err := f.svc.Add(attachedDraft("Toy Car", "EG100", "R1"))
	require.NoError(t, err)

	result, err := f.svc.CreateCases(context.Background(), "user-1", []string{draft.ID})
	require.NoError(t, err)

	require.Len(t, result.Created, 1)
	assert.Empty(t, result.Failed)
	assert.Equal(t, "EG100R1", result.Created[0].CaseNumber)
	assert.Equal(t, "EG100R1-id", result.Created[0].CaseID)

	// 创建请求携带状态、EG 标记和类别
	require.Len(t, f.creator.requests, 1)
	req := f.creator.requests[0]
	assert.Equal(t, model.StatusPending, req.Status)
	assert.True(t, req.RecdEG)
	assert.Equal(t, "toys", req.CategoryID)
	assert.Equal(t, "user-1", req.UserID)

	// 成功后草稿状态翻转,案件缓存重新拉取
	got, err := f.svc.Get(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DraftPendingReview, got.Status)
	assert.Equal(t, 1, f.lister.calls)
}

// TestCreateCases_MissingAttachments 必需附件不齐的草稿记为失败
func TestCreateCases_MissingAttachments(t *testing.T) {
	f := newDraftFixture(t)
	draft := attachedDraft("Toy Car", "EG100", "R1")
	draft.Files = draft.Files[:2] // 缺目录文件
	added, err := f.svc.Add(draft)
	require.NoError(t, err)

	result, err := f.svc.CreateCases(context.Background(), "user-1", []string{added.ID})
	require.NoError(t, err)

	assert.Empty(t, result.Created)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, service.ErrMissingAttachments.Error(), result.Failed[0].Reason)
	assert.Empty(t, f.creator.requests)
	assert.Equal(t, 0, f.lister.calls)
}

// TestCreateCases_MissingCaseNumber EG 数据缺少编号字段的草稿记为失败
func TestCreateCases_MissingCaseNumber(t *testing.T) {
	f := newDraftFixture(t)
	draft := attachedDraft("Toy Car", "", "")
	added, err := f.svc.Add(draft)
	require.NoError(t, err)

	result, err := f.svc.CreateCases(context.Background(), "user-1", []string{added.ID})
	require.NoError(t, err)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, service.ErrMissingCaseNumber.Error(), result.Failed[0].Reason)
}

// TestCreateCases_PartialCaseNumber NO 与 NO_R 只有其一时仍可拼出编号
func TestCreateCases_PartialCaseNumber(t *testing.T) {
	f := newDraftFixture(t)
	added, err := f.svc.Add(attachedDraft("Toy Car", "EG100", ""))
	require.NoError(t, err)

	result, err := f.svc.CreateCases(context.Background(), "user-1", []string{added.ID})
	require.NoError(t, err)
	require.Len(t, result.Created, 1)
	assert.Equal(t, "EG100", result.Created[0].CaseNumber)
}

// TestCreateCases_ConcurrentFanOut 多个草稿的创建请求并发发出
// 创建后端设置同步屏障,只有三个请求同时在途才能全部返回
func TestCreateCases_ConcurrentFanOut(t *testing.T) {
	f := newDraftFixture(t)
	var barrier sync.WaitGroup
	barrier.Add(3)
	f.creator.barrier = &barrier

	first, err := f.svc.Add(attachedDraft("Toy Car", "EG100", "R1"))
	require.NoError(t, err)
	second, err := f.svc.Add(attachedDraft("Toy Boat", "EG200", "R1"))
	require.NoError(t, err)
	third, err := f.svc.Add(attachedDraft("Board Game", "EG300", "R1"))
	require.NoError(t, err)

	result, err := f.svc.CreateCases(context.Background(), "user-1", []string{first.ID, second.ID, third.ID})
	require.NoError(t, err)

	require.Len(t, result.Created, 3)
	assert.Empty(t, result.Failed)

	// 结果顺序跟随请求顺序,不受并发调度影响
	assert.Equal(t, first.ID, result.Created[0].DraftID)
	assert.Equal(t, second.ID, result.Created[1].DraftID)
	assert.Equal(t, third.ID, result.Created[2].DraftID)
}

// TestCreateCases_FailureIsolation 单个草稿失败不影响其余草稿
func TestCreateCases_FailureIsolation(t *testing.T) {
	f := newDraftFixture(t)
	f.creator.failFor = map[string]bool{"EG200R1": true}

	first, err := f.svc.Add(attachedDraft("Toy Car", "EG100", "R1"))
	require.NoError(t, err)
	second, err := f.svc.Add(attachedDraft("Toy Boat", "EG200", "R1"))
	require.NoError(t, err)
	third, err := f.svc.Add(attachedDraft("Board Game", "EG300", "R1"))
	require.NoError(t, err)

	result, err := f.svc.CreateCases(context.Background(), "user-1", []string{first.ID, second.ID, third.ID})
	require.NoError(t, err)

	require.Len(t, result.Created, 2)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, second.ID, result.Failed[0].DraftID)

	// 失败的草稿保留原状态
	got, err := f.svc.Get(second.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DraftNew, got.Status)
}

// TestCreateCases_DefaultsToSelection 未指定草稿时使用当前选择
func TestCreateCases_DefaultsToSelection(t *testing.T) {
	f := newDraftFixture(t)
	added, err := f.svc.Add(attachedDraft("Toy Car", "EG100", "R1"))
	require.NoError(t, err)
	f.drafts.ToggleSelection(added.ID)

	result, err := f.svc.CreateCases(context.Background(), "user-1", nil)
	require.NoError(t, err)
	require.Len(t, result.Created, 1)
	assert.Equal(t, added.ID, result.Created[0].DraftID)

	// 选择也为空时直接报错
	empty := newDraftFixture(t)
	_, err = empty.svc.CreateCases(context.Background(), "user-1", nil)
	assert.Error(t, err)
}

// TestCreateCases_UnknownDraft 不存在的草稿记为失败
func TestCreateCases_UnknownDraft(t *testing.T) {
	f := newDraftFixture(t)

	result, err := f.svc.CreateCases(context.Background(), "user-1", []string{"missing"})
	require.NoError(t, err)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, service.ErrDraftNotFound.Error(), result.Failed[0].Reason)
}
