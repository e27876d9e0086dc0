package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/model"
)

// AnnouncementRepository 公告数据访问接口
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *model.Announcement) error
	List(ctx context.Context, offset, limit int) ([]model.Announcement, int64, error)
	// ListRecentForClass 返回全校公告与指定班级公告中最近发布的若干条
	ListRecentForClass(ctx context.Context, schoolClassID *string, limit int) ([]model.Announcement, error)
	Delete(ctx context.Context, id string, deletedBy string) error
}

type announcementRepo struct {
	db *gorm.DB
}

// NewAnnouncementRepo 创建 AnnouncementRepository 实例
func NewAnnouncementRepo(db *gorm.DB) AnnouncementRepository {
	return &announcementRepo{db: db}
}

func (r *announcementRepo) Create(ctx context.Context, announcement *model.Announcement) error {
	return r.db.WithContext(ctx).Create(announcement).Error
}

func (r *announcementRepo) List(ctx context.Context, offset, limit int) ([]model.Announcement, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.Announcement{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.Announcement
	err := r.db.WithContext(ctx).
		Order("published_at DESC NULLS LAST").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, total, err
}

func (r *announcementRepo) ListRecentForClass(ctx context.Context, schoolClassID *string, limit int) ([]model.Announcement, error) {
	q := r.db.WithContext(ctx).Where("published_at IS NOT NULL")
	if schoolClassID != nil {
		q = q.Where("school_class_id IS NULL OR school_class_id = ?", *schoolClassID)
	} else {
		q = q.Where("school_class_id IS NULL")
	}

	var list []model.Announcement
	err := q.Order("published_at DESC").Limit(limit).Find(&list).Error
	return list, err
}

func (r *announcementRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Announcement{}).
		Where("announcement_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
