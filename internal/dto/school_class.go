package dto

// ── 班级模块 DTO ──

// CreateSchoolClassRequest 创建班级请求
type CreateSchoolClassRequest struct {
	Name              string `json:"name"                binding:"required,max=50"`
	GradeLevel        int    `json:"grade_level"         binding:"required,min=1,max=12"`
	Section           string `json:"section"             binding:"omitempty,max=10"`
	HomeroomTeacherID string `json:"homeroom_teacher_id" binding:"omitempty,uuid"`
	Capacity          int    `json:"capacity"            binding:"omitempty,min=1,max=100"`
}

// UpdateSchoolClassRequest 更新班级请求（nil 字段不修改）
type UpdateSchoolClassRequest struct {
	Name              *string `json:"name"                binding:"omitempty,max=50"`
	HomeroomTeacherID *string `json:"homeroom_teacher_id" binding:"omitempty,uuid"`
	Capacity          *int    `json:"capacity"            binding:"omitempty,min=1,max=100"`
}

// SchoolClassResponse 班级响应
type SchoolClassResponse struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	GradeLevel          int    `json:"grade_level"`
	Section             string `json:"section,omitempty"`
	HomeroomTeacherID   string `json:"homeroom_teacher_id,omitempty"`
	HomeroomTeacherName string `json:"homeroom_teacher_name,omitempty"`
	Capacity            int    `json:"capacity"`
	StudentCount        int64  `json:"student_count"`
}
