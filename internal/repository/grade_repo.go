package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/model"
)

// GradeRepository 成绩数据访问接口
type GradeRepository interface {
	Create(ctx context.Context, grade *model.Grade) error
	GetByID(ctx context.Context, id string) (*model.Grade, error)
	Update(ctx context.Context, grade *model.Grade) error
	Delete(ctx context.Context, id string, deletedBy string) error
	ListByStudent(ctx context.Context, studentID, semester string, publishedOnly bool) ([]model.Grade, error)
	ListBySubject(ctx context.Context, studentID, subjectID string, publishedOnly bool) ([]model.Grade, error)
	ListRecentPublished(ctx context.Context, studentID string, limit int) ([]model.Grade, error)
	ListFailing(ctx context.Context, studentID string, passingScore float64) ([]model.Grade, error)
}

type gradeRepo struct {
	db *gorm.DB
}

// NewGradeRepo 创建 GradeRepository 实例
func NewGradeRepo(db *gorm.DB) GradeRepository {
	return &gradeRepo{db: db}
}

func (r *gradeRepo) Create(ctx context.Context, grade *model.Grade) error {
	return r.db.WithContext(ctx).Create(grade).Error
}

func (r *gradeRepo) GetByID(ctx context.Context, id string) (*model.Grade, error) {
	var grade model.Grade
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("grade_id = ?", id).
		First(&grade).Error
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

func (r *gradeRepo) Update(ctx context.Context, grade *model.Grade) error {
	return r.db.WithContext(ctx).Save(grade).Error
}

func (r *gradeRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Grade{}).
		Where("grade_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *gradeRepo) ListByStudent(ctx context.Context, studentID, semester string, publishedOnly bool) ([]model.Grade, error) {
	q := r.db.WithContext(ctx).Where("student_id = ?", studentID)
	if semester != "" {
		q = q.Where("semester = ?", semester)
	}
	if publishedOnly {
		q = q.Where("published = ?", true)
	}

	var grades []model.Grade
	err := q.Preload("Subject").
		Order("grade_date DESC").
		Find(&grades).Error
	return grades, err
}

func (r *gradeRepo) ListBySubject(ctx context.Context, studentID, subjectID string, publishedOnly bool) ([]model.Grade, error) {
	q := r.db.WithContext(ctx).
		Where("student_id = ? AND subject_id = ?", studentID, subjectID)
	if publishedOnly {
		q = q.Where("published = ?", true)
	}

	var grades []model.Grade
	err := q.Order("grade_date DESC").Find(&grades).Error
	return grades, err
}

func (r *gradeRepo) ListRecentPublished(ctx context.Context, studentID string, limit int) ([]model.Grade, error) {
	var grades []model.Grade
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("student_id = ? AND published = ?", studentID, true).
		Order("grade_date DESC").
		Limit(limit).
		Find(&grades).Error
	return grades, err
}

// ListFailing 已发布成绩中低于及格线的记录
func (r *gradeRepo) ListFailing(ctx context.Context, studentID string, passingScore float64) ([]model.Grade, error) {
	var grades []model.Grade
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("student_id = ? AND published = ? AND score < ?", studentID, true, passingScore).
		Order("score ASC").
		Find(&grades).Error
	return grades, err
}
