package dto

// ── 校园卡模块 DTO ──

// GenerateCardRequest 制卡请求
// ReplaceActive 为 true 时原 ACTIVE 卡原子转为 REPLACED，否则冲突报错
type GenerateCardRequest struct {
	HolderID      string `json:"holder_id"   binding:"required,uuid"`
	HolderType    string `json:"holder_type" binding:"required,oneof=STUDENT TEACHER"`
	ReplaceActive bool   `json:"replace_active"`
}

// ReportLostRequest 挂失请求
type ReportLostRequest struct {
	Reason string `json:"reason" binding:"required,max=255"`
}

// CancelCardRequest 注销卡片请求
type CancelCardRequest struct {
	Reason string `json:"reason" binding:"required,max=255"`
}

// IDCardResponse 校园卡响应
type IDCardResponse struct {
	ID               string `json:"id"`
	HolderID         string `json:"holder_id"`
	HolderType       string `json:"holder_type"`
	HolderName       string `json:"holder_name,omitempty"`
	CardNumber       string `json:"card_number"`
	IssueDate        string `json:"issue_date"`
	ExpiryDate       string `json:"expiry_date"`
	Status           string `json:"status"`
	ReplacedByCardID string `json:"replaced_by_card_id,omitempty"`
	LostReason       string `json:"lost_reason,omitempty"`
	CancelReason     string `json:"cancel_reason,omitempty"`
}

// ReissueResponse 补办结果：旧卡、新卡与工本费账单
type ReissueResponse struct {
	OldCard        IDCardResponse `json:"old_card"`
	NewCard        IDCardResponse `json:"new_card"`
	ReplacementFee *FeeResponse   `json:"replacement_fee,omitempty"`
}
