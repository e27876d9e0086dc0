package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/model"
)

// TransferCertificateRepository 转学证明数据访问接口
type TransferCertificateRepository interface {
	Create(ctx context.Context, tc *model.TransferCertificate) error
	GetByID(ctx context.Context, id string) (*model.TransferCertificate, error)
	List(ctx context.Context, studentID string, offset, limit int) ([]model.TransferCertificate, int64, error)
	Update(ctx context.Context, tc *model.TransferCertificate) error
	// IssueWithStudentTransfer 事务内签发：证明置 ISSUED，学籍同步置 TRANSFERRED
	IssueWithStudentTransfer(ctx context.Context, tc *model.TransferCertificate) error
}

type transferCertRepo struct {
	db *gorm.DB
}

// NewTransferCertRepo 创建 TransferCertificateRepository 实例
func NewTransferCertRepo(db *gorm.DB) TransferCertificateRepository {
	return &transferCertRepo{db: db}
}

func (r *transferCertRepo) Create(ctx context.Context, tc *model.TransferCertificate) error {
	return r.db.WithContext(ctx).Create(tc).Error
}

func (r *transferCertRepo) GetByID(ctx context.Context, id string) (*model.TransferCertificate, error) {
	var tc model.TransferCertificate
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("tc_id = ?", id).
		First(&tc).Error
	if err != nil {
		return nil, err
	}
	return &tc, nil
}

func (r *transferCertRepo) List(ctx context.Context, studentID string, offset, limit int) ([]model.TransferCertificate, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.TransferCertificate{})
	if studentID != "" {
		q = q.Where("student_id = ?", studentID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.TransferCertificate
	err := q.Preload("Student").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, total, err
}

func (r *transferCertRepo) Update(ctx context.Context, tc *model.TransferCertificate) error {
	return r.db.WithContext(ctx).Save(tc).Error
}

func (r *transferCertRepo) IssueWithStudentTransfer(ctx context.Context, tc *model.TransferCertificate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(tc).Error; err != nil {
			return err
		}
		return tx.Model(&model.Student{}).
			Where("student_id = ?", tc.StudentID).
			Update("status", model.StudentStatusTransferred).Error
	})
}
