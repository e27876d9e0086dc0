package dto

// ── 清结核查 DTO ──

// 阻塞项标识（机器可读，前端据此提示具体办理入口）
const (
	BlockerFeeOutstanding   = "FEE_OUTSTANDING"
	BlockerLibraryUnreturned = "LIBRARY_UNRETURNED"
	BlockerDisciplinaryHold  = "DISCIPLINARY_HOLD"
)

// ClearanceResponse 离校资格核查结果
// 费用、图书、纪律三项独立核查，任一未通过即不具备签发资格
type ClearanceResponse struct {
	StudentID string   `json:"student_id"`
	Eligible  bool     `json:"eligible"`
	Blockers  []string `json:"blockers"`
}
