package dto

// ── 学生模块 DTO ──

// CreateStudentRequest 建立学籍请求
type CreateStudentRequest struct {
	AdmissionNo   string `json:"admission_no"    binding:"required,max=30"`
	Name          string `json:"name"            binding:"required,min=2,max=100"`
	Gender        string `json:"gender"          binding:"omitempty,oneof=male female"`
	DateOfBirth   string `json:"date_of_birth"   binding:"omitempty"` // YYYY-MM-DD
	SchoolClassID string `json:"school_class_id" binding:"omitempty,uuid"`
}

// UpdateStudentRequest 更新学籍请求（nil 字段不修改）
type UpdateStudentRequest struct {
	Name          *string `json:"name"            binding:"omitempty,min=2,max=100"`
	Gender        *string `json:"gender"          binding:"omitempty,oneof=male female"`
	SchoolClassID *string `json:"school_class_id" binding:"omitempty,uuid"`
	Status        *string `json:"status"          binding:"omitempty,oneof=ACTIVE TRANSFERRED GRADUATED SUSPENDED"`
}

// StudentResponse 学生响应
type StudentResponse struct {
	ID          string `json:"id"`
	AdmissionNo string `json:"admission_no"`
	Name        string `json:"name"`
	Gender      string `json:"gender,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	ClassName   string `json:"class_name,omitempty"`
	Status      string `json:"status"`
}

// ── 考勤 DTO ──

// RecordAttendanceRequest 录入考勤请求
type RecordAttendanceRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	Date      string `json:"date"       binding:"required"` // YYYY-MM-DD
	Status    string `json:"status"     binding:"required,oneof=PRESENT ABSENT LATE EXCUSED"`
	Remark    string `json:"remark"     binding:"omitempty,max=255"`
}

// AttendanceSummaryResponse 出勤率统计
// 无考勤记录时 percentage 为 0 且 recorded_days 为 0
type AttendanceSummaryResponse struct {
	StudentID    string  `json:"student_id"`
	Percentage   float64 `json:"percentage"`
	RecordedDays int     `json:"recorded_days"`
}
