package model

// Teacher 教师表 — 对应 teachers
type Teacher struct {
	TeacherID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"teacher_id"`
	StaffNo   string `gorm:"type:varchar(30);not null;uniqueIndex"          json:"staff_no"`
	Name      string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email     string `gorm:"type:varchar(255)"                              json:"email"`
	Phone     string `gorm:"type:varchar(30)"                               json:"phone"`
	SoftDeleteModel
}

// TableName 指定表名
func (Teacher) TableName() string { return "teachers" }
