package model

import "time"

// Grade 成绩表 — 对应 grades
// 未发布的成绩不参与 GPA / 平均分等家长可见统计
type Grade struct {
	GradeID     string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"grade_id"`
	StudentID   string     `gorm:"type:uuid;not null;index"                       json:"student_id"`
	SubjectID   string     `gorm:"type:uuid;not null;index"                       json:"subject_id"`
	Semester    string     `gorm:"type:varchar(30);not null"                      json:"semester"`
	Score       float64    `gorm:"type:numeric(5,2);not null"                     json:"score"`
	GradeDate   time.Time  `gorm:"type:date;not null"                             json:"grade_date"`
	Published   bool       `gorm:"not null;default:false"                         json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	SoftDeleteModel

	// 关联
	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
}

// TableName 指定表名
func (Grade) TableName() string { return "grades" }
