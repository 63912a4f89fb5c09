package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
)

// ExtractClient 文档抽取服务客户端
// 申请表和 EG 表单由推理后端抽取,产品目录由独立的目录抽取服务处理
type ExtractClient struct {
	inference *httpClient
	catalogue *httpClient
}

// NewExtractClient 创建文档抽取客户端
func NewExtractClient(inferenceURL, catalogueURL string) *ExtractClient {
	return &ExtractClient{
		inference: newHTTPClient(inferenceURL),
		catalogue: newHTTPClient(catalogueURL),
	}
}

// ExtractResult 抽取结果
// data 为结构化字段映射
type ExtractResult struct {
	Data map[string]interface{} `json:"data"`
}

// ExtractApplication 抽取申请表字段
func (c *ExtractClient) ExtractApplication(ctx context.Context, filename string, file io.Reader) (*ExtractResult, error) {
	body, contentType, err := buildFileForm(filename, file, nil)
	if err != nil {
		return nil, err
	}

	var result ExtractResult
	if err := c.inference.postMultipart(ctx, "/extract/application", contentType, body, &result); err != nil {
		return nil, fmt.Errorf("failed to extract application data: %w", err)
	}
	return &result, nil
}

// ExtractEG 抽取 EG 表单字段
// tranche 随表单一起上送,并在结果中回填,与前端展示保持一致
func (c *ExtractClient) ExtractEG(ctx context.Context, filename string, file io.Reader, tranche string) (*ExtractResult, error) {
	body, contentType, err := buildFileForm(filename, file, map[string]string{"tranche": tranche})
	if err != nil {
		return nil, err
	}

	var result ExtractResult
	if err := c.inference.postMultipart(ctx, "/extract/eg", contentType, body, &result); err != nil {
		return nil, fmt.Errorf("failed to extract EG form data: %w", err)
	}

	// 回填 tranche 字段
	if result.Data != nil {
		result.Data["Tranche"] = tranche
	}
	return &result, nil
}

// ExtractCatalogue 抽取产品目录数据
func (c *ExtractClient) ExtractCatalogue(ctx context.Context, filename string, file io.Reader, productName string) (*ExtractResult, error) {
	body, contentType, err := buildFileForm(filename, file, map[string]string{"productName": productName})
	if err != nil {
		return nil, err
	}

	var result ExtractResult
	if err := c.catalogue.postMultipart(ctx, "/extract/catalogue", contentType, body, &result); err != nil {
		return nil, fmt.Errorf("failed to extract catalogue data: %w", err)
	}
	return &result, nil
}

// buildFileForm 构建带文件的 multipart 表单
func buildFileForm(filename string, file io.Reader, fields map[string]string) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("failed to copy file content: %w", err)
	}

	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", k, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close form writer: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}
