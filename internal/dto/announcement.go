package dto

// ── 公告模块 DTO ──

// CreateAnnouncementRequest 发布公告请求
// SchoolClassID 为空表示全校公告
type CreateAnnouncementRequest struct {
	Title         string `json:"title"           binding:"required,max=200"`
	Body          string `json:"body"            binding:"required"`
	SchoolClassID string `json:"school_class_id" binding:"omitempty,uuid"`
}

// AnnouncementResponse 公告响应
type AnnouncementResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Body          string `json:"body"`
	SchoolClassID string `json:"school_class_id,omitempty"`
	PublishedAt   string `json:"published_at,omitempty"`
}
