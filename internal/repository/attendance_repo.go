package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/model"
)

// AttendanceRepository 考勤数据访问接口
type AttendanceRepository interface {
	Create(ctx context.Context, attendance *model.Attendance) error
	// CountByStudent 返回 (出勤次数, 总记录数)，出勤含 PRESENT 与 LATE
	CountByStudent(ctx context.Context, studentID string) (present int64, total int64, err error)
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, attendance *model.Attendance) error {
	return r.db.WithContext(ctx).Create(attendance).Error
}

func (r *attendanceRepo) CountByStudent(ctx context.Context, studentID string) (int64, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.Attendance{}).
		Where("student_id = ?", studentID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}

	var present int64
	err := r.db.WithContext(ctx).
		Model(&model.Attendance{}).
		Where("student_id = ? AND status IN ?", studentID,
			[]string{model.AttendancePresent, model.AttendanceLate}).
		Count(&present).Error
	return present, total, err
}
