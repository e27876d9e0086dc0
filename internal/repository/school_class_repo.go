package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/model"
)

// SchoolClassRepository 班级数据访问接口
type SchoolClassRepository interface {
	Create(ctx context.Context, class *model.SchoolClass) error
	GetByID(ctx context.Context, id string) (*model.SchoolClass, error)
	List(ctx context.Context) ([]model.SchoolClass, error)
	Update(ctx context.Context, class *model.SchoolClass) error
	Delete(ctx context.Context, id string, deletedBy string) error
	CountStudents(ctx context.Context, classID string) (int64, error)
}

type schoolClassRepo struct {
	db *gorm.DB
}

// NewSchoolClassRepo 创建 SchoolClassRepository 实例
func NewSchoolClassRepo(db *gorm.DB) SchoolClassRepository {
	return &schoolClassRepo{db: db}
}

func (r *schoolClassRepo) Create(ctx context.Context, class *model.SchoolClass) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *schoolClassRepo) GetByID(ctx context.Context, id string) (*model.SchoolClass, error) {
	var class model.SchoolClass
	err := r.db.WithContext(ctx).
		Preload("HomeroomTeacher").
		Where("school_class_id = ?", id).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *schoolClassRepo) List(ctx context.Context) ([]model.SchoolClass, error) {
	var classes []model.SchoolClass
	err := r.db.WithContext(ctx).
		Preload("HomeroomTeacher").
		Order("grade_level ASC, section ASC").
		Find(&classes).Error
	return classes, err
}

func (r *schoolClassRepo) Update(ctx context.Context, class *model.SchoolClass) error {
	return r.db.WithContext(ctx).Save(class).Error
}

func (r *schoolClassRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.SchoolClass{}).
		Where("school_class_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *schoolClassRepo) CountStudents(ctx context.Context, classID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("school_class_id = ? AND status = ?", classID, model.StudentStatusActive).
		Count(&count).Error
	return count, err
}
