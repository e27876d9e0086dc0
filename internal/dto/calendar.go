package dto

// ── 校历模块 DTO ──

// CreateEventRequest 创建校历事件请求
type CreateEventRequest struct {
	Title       string `json:"title"       binding:"required,max=200"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Category    string `json:"category"    binding:"omitempty,oneof=GENERAL EXAM HOLIDAY EVENT"`
	StartsAt    string `json:"starts_at"   binding:"required"` // YYYY-MM-DD 或 RFC3339
	EndsAt      string `json:"ends_at"     binding:"required"`
}

// EventResponse 校历事件响应
type EventResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	StartsAt    string `json:"starts_at"`
	EndsAt      string `json:"ends_at"`
}
