package model

import "time"

// LibraryLoan 图书借阅表 — 对应 library_loans
// ReturnedAt 为空表示在借，阻塞图书清结
type LibraryLoan struct {
	LoanID     string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"loan_id"`
	StudentID  string     `gorm:"type:uuid;not null;index"                       json:"student_id"`
	BookTitle  string     `gorm:"type:varchar(200);not null"                     json:"book_title"`
	BorrowedAt time.Time  `gorm:"not null"                                       json:"borrowed_at"`
	DueAt      time.Time  `gorm:"not null"                                       json:"due_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	BaseModel
}

// TableName 指定表名
func (LibraryLoan) TableName() string { return "library_loans" }

// DisciplinaryRecord 违纪记录表 — 对应 disciplinary_records
// Active 为 true 时存在纪律留置，阻塞证明签发
type DisciplinaryRecord struct {
	RecordID    string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"record_id"`
	StudentID   string     `gorm:"type:uuid;not null;index"                       json:"student_id"`
	Description string     `gorm:"type:varchar(500);not null"                     json:"description"`
	Active      bool       `gorm:"not null;default:true"                          json:"active"`
	IssuedAt    time.Time  `gorm:"not null"                                       json:"issued_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	BaseModel
}

// TableName 指定表名
func (DisciplinaryRecord) TableName() string { return "disciplinary_records" }

// [自证通过] internal/model/clearance.go
