package model

import "time"

// ── 出勤状态 ──

const (
	AttendancePresent = "PRESENT"
	AttendanceAbsent  = "ABSENT"
	AttendanceLate    = "LATE"
	AttendanceExcused = "EXCUSED"
)

// Attendance 考勤表 — 对应 attendances
type Attendance struct {
	AttendanceID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"    json:"attendance_id"`
	StudentID    string    `gorm:"type:uuid;not null;index:idx_attendance_student"   json:"student_id"`
	Date         time.Time `gorm:"type:date;not null;index:idx_attendance_student"   json:"date"`
	Status       string    `gorm:"type:varchar(10);not null;default:'PRESENT'"       json:"status"`
	Remark       string    `gorm:"type:varchar(255)"                                 json:"remark,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Attendance) TableName() string { return "attendances" }
