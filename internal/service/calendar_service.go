package service

import (
	"context"
	"errors"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/dto"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/model"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/repository"
)

// ── 校历模块业务错误 ──

var (
	ErrEventNotFound    = errors.New("校历事件不存在")
	ErrEventTimeInvalid = errors.New("事件时间无效")
)

// CalendarService 校历业务接口
type CalendarService interface {
	Create(ctx context.Context, req *dto.CreateEventRequest, callerID string) (*dto.EventResponse, error)
	List(ctx context.Context, from, to *time.Time) ([]dto.EventResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	// ExportICS 将区间内校历导出为 iCalendar 文本，供家长订阅
	ExportICS(ctx context.Context, from, to *time.Time) (string, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger}
}

func (s *calendarService) Create(ctx context.Context, req *dto.CreateEventRequest, callerID string) (*dto.EventResponse, error) {
	startsAt, err := parseEventTime(req.StartsAt)
	if err != nil {
		return nil, ErrEventTimeInvalid
	}
	endsAt, err := parseEventTime(req.EndsAt)
	if err != nil {
		return nil, ErrEventTimeInvalid
	}
	if endsAt.Before(startsAt) {
		return nil, ErrEventTimeInvalid
	}

	event := &model.CalendarEvent{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
	}
	if event.Category == "" {
		event.Category = "GENERAL"
	}
	event.CreatedBy = &callerID
	event.UpdatedBy = &callerID

	if err := s.repo.Calendar.Create(ctx, event); err != nil {
		s.logger.Error("创建校历事件失败", zap.Error(err))
		return nil, err
	}

	return toEventResponse(event), nil
}

func (s *calendarService) List(ctx context.Context, from, to *time.Time) ([]dto.EventResponse, error) {
	events, err := s.repo.Calendar.List(ctx, from, to)
	if err != nil {
		s.logger.Error("查询校历失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		result = append(result, *toEventResponse(&events[i]))
	}
	return result, nil
}

func (s *calendarService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Calendar.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	return s.repo.Calendar.Delete(ctx, id, callerID)
}

// ExportICS 生成 iCalendar 文本
// UID 使用事件主键，日历客户端重复订阅时按 UID 去重
func (s *calendarService) ExportICS(ctx context.Context, from, to *time.Time) (string, error) {
	events, err := s.repo.Calendar.List(ctx, from, to)
	if err != nil {
		s.logger.Error("导出校历失败", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//school-mgmt//calendar//CN")

	for i := range events {
		e := &events[i]
		vevent := cal.AddEvent(e.EventID)
		vevent.SetSummary(e.Title)
		vevent.SetStartAt(e.StartsAt)
		vevent.SetEndAt(e.EndsAt)
		vevent.SetDtStampTime(e.UpdatedAt)
		if e.Description != "" {
			vevent.SetDescription(e.Description)
		}
	}

	return cal.Serialize(), nil
}

// parseEventTime 兼容日期与 RFC3339 两种输入
func parseEventTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func toEventResponse(event *model.CalendarEvent) *dto.EventResponse {
	return &dto.EventResponse{
		ID:          event.EventID,
		Title:       event.Title,
		Description: event.Description,
		Category:    event.Category,
		StartsAt:    event.StartsAt.Format(time.RFC3339),
		EndsAt:      event.EndsAt.Format(time.RFC3339),
	}
}
