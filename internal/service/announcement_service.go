package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/dto"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/model"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/repository"
)

// AnnouncementService 公告业务接口
type AnnouncementService interface {
	Publish(ctx context.Context, req *dto.CreateAnnouncementRequest, callerID string) (*dto.AnnouncementResponse, error)
	List(ctx context.Context, page *dto.PaginationRequest) ([]dto.AnnouncementResponse, int64, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type announcementService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAnnouncementService 创建 AnnouncementService 实例
func NewAnnouncementService(repo *repository.Repository, logger *zap.Logger) AnnouncementService {
	return &announcementService{repo: repo, logger: logger}
}

// Publish 发布公告，指定班级时仅该班级家长可见，为空表示全校公告
func (s *announcementService) Publish(ctx context.Context, req *dto.CreateAnnouncementRequest, callerID string) (*dto.AnnouncementResponse, error) {
	now := time.Now()
	announcement := &model.Announcement{
		Title:       req.Title,
		Body:        req.Body,
		PublishedAt: &now,
	}
	if req.SchoolClassID != "" {
		announcement.SchoolClassID = &req.SchoolClassID
	}
	announcement.CreatedBy = &callerID
	announcement.UpdatedBy = &callerID

	if err := s.repo.Announcement.Create(ctx, announcement); err != nil {
		s.logger.Error("发布公告失败", zap.Error(err))
		return nil, err
	}

	return toAnnouncementResponse(announcement), nil
}

func (s *announcementService) List(ctx context.Context, page *dto.PaginationRequest) ([]dto.AnnouncementResponse, int64, error) {
	list, total, err := s.repo.Announcement.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("查询公告列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.AnnouncementResponse, 0, len(list))
	for i := range list {
		result = append(result, *toAnnouncementResponse(&list[i]))
	}
	return result, total, nil
}

func (s *announcementService) Delete(ctx context.Context, id string, callerID string) error {
	return s.repo.Announcement.Delete(ctx, id, callerID)
}
