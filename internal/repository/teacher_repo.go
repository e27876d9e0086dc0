package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/model"
)

// TeacherRepository 教师数据访问接口
type TeacherRepository interface {
	Create(ctx context.Context, teacher *model.Teacher) error
	GetByID(ctx context.Context, id string) (*model.Teacher, error)
	List(ctx context.Context) ([]model.Teacher, error)
}

type teacherRepo struct {
	db *gorm.DB
}

// NewTeacherRepo 创建 TeacherRepository 实例
func NewTeacherRepo(db *gorm.DB) TeacherRepository {
	return &teacherRepo{db: db}
}

func (r *teacherRepo) Create(ctx context.Context, teacher *model.Teacher) error {
	return r.db.WithContext(ctx).Create(teacher).Error
}

func (r *teacherRepo) GetByID(ctx context.Context, id string) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", id).
		First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepo) List(ctx context.Context) ([]model.Teacher, error) {
	var teachers []model.Teacher
	err := r.db.WithContext(ctx).
		Order("staff_no ASC").
		Find(&teachers).Error
	return teachers, err
}
