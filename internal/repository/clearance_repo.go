package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/model"
)

// LibraryRepository 图书清结查询接口（只读访问器）
type LibraryRepository interface {
	CountUnreturned(ctx context.Context, studentID string) (int64, error)
}

type libraryRepo struct {
	db *gorm.DB
}

// NewLibraryRepo 创建 LibraryRepository 实例
func NewLibraryRepo(db *gorm.DB) LibraryRepository {
	return &libraryRepo{db: db}
}

func (r *libraryRepo) CountUnreturned(ctx context.Context, studentID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.LibraryLoan{}).
		Where("student_id = ? AND returned_at IS NULL", studentID).
		Count(&count).Error
	return count, err
}

// DisciplinaryRepository 纪律留置查询接口（只读访问器）
type DisciplinaryRepository interface {
	CountActiveHolds(ctx context.Context, studentID string) (int64, error)
}

type disciplinaryRepo struct {
	db *gorm.DB
}

// NewDisciplinaryRepo 创建 DisciplinaryRepository 实例
func NewDisciplinaryRepo(db *gorm.DB) DisciplinaryRepository {
	return &disciplinaryRepo{db: db}
}

func (r *disciplinaryRepo) CountActiveHolds(ctx context.Context, studentID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.DisciplinaryRecord{}).
		Where("student_id = ? AND active = ?", studentID, true).
		Count(&count).Error
	return count, err
}
