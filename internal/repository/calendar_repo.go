package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/model"
)

// CalendarRepository 校历事件数据访问接口
type CalendarRepository interface {
	Create(ctx context.Context, event *model.CalendarEvent) error
	GetByID(ctx context.Context, id string) (*model.CalendarEvent, error)
	List(ctx context.Context, from, to *time.Time) ([]model.CalendarEvent, error)
	Delete(ctx context.Context, id string, deletedBy string) error
}

type calendarRepo struct {
	db *gorm.DB
}

// NewCalendarRepo 创建 CalendarRepository 实例
func NewCalendarRepo(db *gorm.DB) CalendarRepository {
	return &calendarRepo{db: db}
}

func (r *calendarRepo) Create(ctx context.Context, event *model.CalendarEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *calendarRepo) GetByID(ctx context.Context, id string) (*model.CalendarEvent, error) {
	var event model.CalendarEvent
	err := r.db.WithContext(ctx).
		Where("event_id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *calendarRepo) List(ctx context.Context, from, to *time.Time) ([]model.CalendarEvent, error) {
	q := r.db.WithContext(ctx).Model(&model.CalendarEvent{})
	if from != nil {
		q = q.Where("starts_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("starts_at < ?", *to)
	}

	var events []model.CalendarEvent
	err := q.Order("starts_at ASC").Find(&events).Error
	return events, err
}

func (r *calendarRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.CalendarEvent{}).
		Where("event_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
