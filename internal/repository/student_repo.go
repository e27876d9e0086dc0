package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/model"
)

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id string) (*model.Student, error)
	List(ctx context.Context, schoolClassID string, offset, limit int) ([]model.Student, int64, error)
	Update(ctx context.Context, student *model.Student) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Preload("SchoolClass").
		Where("student_id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) List(ctx context.Context, schoolClassID string, offset, limit int) ([]model.Student, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Student{})
	if schoolClassID != "" {
		q = q.Where("school_class_id = ?", schoolClassID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var students []model.Student
	err := q.Preload("SchoolClass").
		Order("admission_no ASC").
		Offset(offset).Limit(limit).
		Find(&students).Error
	return students, total, err
}

func (r *studentRepo) Update(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("student_id = ?", id).
		Update("status", status).Error
}

func (r *studentRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("student_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
