package model

// ── 证件类型 ──

const (
	DocTypeStudentCard = "STU"
	DocTypeTeacherCard = "TCH"
	DocTypeTransferCert = "TC"
)

// DocumentSequence 证件编号序列表 — 对应 document_sequences
// 按 (doc_type, year) 维护自增序号，发号时行锁串行化
type DocumentSequence struct {
	DocType   string `gorm:"type:varchar(10);primaryKey" json:"doc_type"`
	Year      int    `gorm:"primaryKey"                  json:"year"`
	NextValue int    `gorm:"not null;default:1"          json:"next_value"`
}

// TableName 指定表名
func (DocumentSequence) TableName() string { return "document_sequences" }
