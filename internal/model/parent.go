package model

// Parent 家长表 — 对应 parents
type Parent struct {
	ParentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"parent_id"`
	Name     string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email    string `gorm:"type:varchar(255)"                              json:"email"`
	Phone    string `gorm:"type:varchar(30)"                               json:"phone"`
	SoftDeleteModel
}

// TableName 指定表名
func (Parent) TableName() string { return "parents" }

// ParentStudent 家长-学生关联表 — 对应 parent_students
// 家长访问孩子数据的唯一授权依据
type ParentStudent struct {
	ParentID  string `gorm:"type:uuid;primaryKey" json:"parent_id"`
	StudentID string `gorm:"type:uuid;primaryKey" json:"student_id"`
	Relation  string `gorm:"type:varchar(20)"     json:"relation"` // father | mother | guardian
	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
}

// TableName 指定表名
func (ParentStudent) TableName() string { return "parent_students" }
