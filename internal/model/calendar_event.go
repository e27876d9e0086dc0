package model

import "time"

// CalendarEvent 校历事件表 — 对应 calendar_events
type CalendarEvent struct {
	EventID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	Title       string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string    `gorm:"type:varchar(500)"                              json:"description,omitempty"`
	Category    string    `gorm:"type:varchar(30);not null;default:'GENERAL'"    json:"category"` // GENERAL | EXAM | HOLIDAY | EVENT
	StartsAt    time.Time `gorm:"not null;index"                                 json:"starts_at"`
	EndsAt      time.Time `gorm:"not null"                                       json:"ends_at"`
	SoftDeleteModel
}

// TableName 指定表名
func (CalendarEvent) TableName() string { return "calendar_events" }
