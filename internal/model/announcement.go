package model

import "time"

// Announcement 公告表 — 对应 announcements
// SchoolClassID 为空表示全校公告
type Announcement struct {
	AnnouncementID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"announcement_id"`
	Title          string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Body           string     `gorm:"type:text;not null"                             json:"body"`
	SchoolClassID  *string    `gorm:"type:uuid;index"                                json:"school_class_id,omitempty"`
	PublishedAt    *time.Time `gorm:"index"                                          json:"published_at,omitempty"`
	SoftDeleteModel
}

// TableName 指定表名
func (Announcement) TableName() string { return "announcements" }
