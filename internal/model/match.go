package model

// SimilarityMatch 相似案例匹配结果
// 每次相似检索产生的归一化记录,不做持久化
type SimilarityMatch struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Category       string                 `json:"category"`
	Description    string                 `json:"description"`
	Similarity     float64                `json:"similarity"`
	Decision       StatusType             `json:"decision"`
	ApprovalStatus string                 `json:"approvalStatus,omitempty"`
	ModelCode      string                 `json:"modelCode,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// MatchContext 理由生成上下文
// 相似匹配过滤后传给理由生成服务的精简记录,字段名与推理后端约定一致
type MatchContext struct {
	Justify   string `json:"Justify"`
	ProdName  string `json:"Prod_Name"`
	Status    string `json:"Status"`
	ModelCode string `json:"Model_Code"`
	Desc      string `json:"Desc"`
}

// SimilarCaseAnalysis 相似案例分析摘要
type SimilarCaseAnalysis struct {
	TotalCases             int               `json:"totalCases"`
	ApprovalRate           int               `json:"approvalRate"`
	RejectionRate          int               `json:"rejectionRate"`
	CommonApprovalFactors  []string          `json:"commonApprovalFactors"`
	CommonRejectionFactors []string          `json:"commonRejectionFactors"`
	Cases                  []SimilarityMatch `json:"cases"`
}
