package model

import (
	"errors"
	"time"
)

// FileType 草稿附件类型
type FileType string

const (
	FileApplication FileType = "application"
	FileEG          FileType = "eg"
	FileCatalogue   FileType = "catalogue"
	FileQuotation   FileType = "quotation"
)

// UploadStatus 附件上传状态
type UploadStatus string

const (
	UploadPending  UploadStatus = "pending"
	UploadDone     UploadStatus = "uploaded"
	UploadError    UploadStatus = "error"
)

// DraftStatus 草稿状态
// 草稿状态在本地跟踪,与案件状态相互独立
type DraftStatus string

const (
	DraftNew           DraftStatus = "draft"
	DraftPendingReview DraftStatus = "pending_review"
	DraftApproved      DraftStatus = "approved"
	DraftRejected      DraftStatus = "rejected"
)

// ProductFile 草稿附件
// Ref 为上传后的文件引用,为空表示尚未附加
type ProductFile struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Type   FileType     `json:"type"`
	Ref    string       `json:"ref,omitempty"`
	Status UploadStatus `json:"status"`
}

// Attached 判断附件是否已附加
func (f *ProductFile) Attached() bool {
	return f.Ref != ""
}

// ProductDraft 产品草稿
// 创建案件前的在途产品记录,只存在于内存中
type ProductDraft struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	SKU             string                 `json:"sku"`
	Category        string                 `json:"category"`
	Season          string                 `json:"season"`
	Tranche         string                 `json:"tranche"`
	Supplier        string                 `json:"supplier"`
	Description     string                 `json:"description"`
	Status          DraftStatus            `json:"status"`
	CreatedAt       time.Time              `json:"createdAt"`
	Files           []ProductFile          `json:"files"`
	EGData          map[string]interface{} `json:"egData,omitempty"`
	ApplicationData map[string]interface{} `json:"applicationData,omitempty"`
	CatalogueData   map[string]interface{} `json:"catalogueData,omitempty"`
}

// FileOfType 返回指定类型的附件
func (d *ProductDraft) FileOfType(t FileType) *ProductFile {
	for i := range d.Files {
		if d.Files[i].Type == t {
			return &d.Files[i]
		}
	}
	return nil
}

// CanCreateCase 判断草稿是否满足创建案件的条件
// 申请表、EG 表单和产品目录三类附件都已附加才允许创建,报价单不参与门槛判定
func (d *ProductDraft) CanCreateCase() bool {
	for _, t := range []FileType{FileApplication, FileEG, FileCatalogue} {
		f := d.FileOfType(t)
		if f == nil || !f.Attached() {
			return false
		}
	}
	return true
}

// Validate 验证草稿
func (d *ProductDraft) Validate() error {
	if d.ID == "" {
		return errors.New("draft ID is required")
	}
	if d.Name == "" {
		return errors.New("draft name is required")
	}
	return nil
}
