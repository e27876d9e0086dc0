package model

import "time"

// ── 转学证明状态 ──

const (
	TCStatusDraft           = "DRAFT"
	TCStatusPendingApproval = "PENDING_APPROVAL"
	TCStatusApproved        = "APPROVED"
	TCStatusIssued          = "ISSUED"
	TCStatusCancelled       = "CANCELLED"
)

// TransferCertificate 转学证明表 — 对应 transfer_certificates
// 学业快照字段在生成时刻冻结，后续考勤/费用变动不回溯已签发证明
type TransferCertificate struct {
	TCID               string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"tc_id"`
	StudentID          string     `gorm:"type:uuid;not null;index"                       json:"student_id"`
	TCNumber           string     `gorm:"type:varchar(30);not null;uniqueIndex"          json:"tc_number"`
	Status             string     `gorm:"type:varchar(20);not null;default:'DRAFT'"      json:"status"`
	Reason             string     `gorm:"type:varchar(255)"                              json:"reason,omitempty"`
	SnapshotAttendance float64    `gorm:"type:numeric(5,2);not null;default:0"           json:"snapshot_attendance"`
	SnapshotGPA        float64    `gorm:"type:numeric(4,2);not null;default:0"           json:"snapshot_gpa"`
	FeeCleared         bool       `gorm:"not null;default:false"                         json:"fee_cleared"`
	LibraryCleared     bool       `gorm:"not null;default:false"                         json:"library_cleared"`
	ApprovedBy         *string    `gorm:"type:uuid"                                      json:"approved_by,omitempty"`
	ApprovedAt         *time.Time `json:"approved_at,omitempty"`
	IssuedAt           *time.Time `json:"issued_at,omitempty"`
	CancelReason       string     `gorm:"type:varchar(255)"                              json:"cancel_reason,omitempty"`
	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
}

// TableName 指定表名
func (TransferCertificate) TableName() string { return "transfer_certificates" }

// IsTerminal ISSUED 与 CANCELLED 为终态
func (tc *TransferCertificate) IsTerminal() bool {
	return tc.Status == TCStatusIssued || tc.Status == TCStatusCancelled
}

// [自证通过] internal/model/transfer_certificate.go
