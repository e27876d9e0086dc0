package model

// SchoolClass 班级表 — 对应 school_classes
type SchoolClass struct {
	SchoolClassID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"school_class_id"`
	Name              string  `gorm:"type:varchar(50);not null"                      json:"name"`
	GradeLevel        int     `gorm:"not null"                                       json:"grade_level"`
	Section           string  `gorm:"type:varchar(10)"                               json:"section"`
	HomeroomTeacherID *string `gorm:"type:uuid"                                      json:"homeroom_teacher_id,omitempty"`
	Capacity          int     `gorm:"not null;default:40"                            json:"capacity"`
	SoftDeleteModel

	// 关联
	HomeroomTeacher *Teacher `gorm:"foreignKey:HomeroomTeacherID;references:TeacherID" json:"homeroom_teacher,omitempty"`
}

// TableName 指定表名
func (SchoolClass) TableName() string { return "school_classes" }
