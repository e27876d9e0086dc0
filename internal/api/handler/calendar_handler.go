package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/dto"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/service"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/pkg/response"
)

// CalendarHandler 校历 HTTP 处理器
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// CreateEvent 创建校历事件
// POST /api/v1/calendar/events
func (h *CalendarHandler) CreateEvent(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	event, err := h.calendarSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.Created(c, event)
}

// ListEvents 区间内校历事件
// GET /api/v1/calendar/events?from=&to=
func (h *CalendarHandler) ListEvents(c *gin.Context) {
	from, to, ok := h.parseRange(c)
	if !ok {
		return
	}

	events, err := h.calendarSvc.List(c.Request.Context(), from, to)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.OK(c, events)
}

// DeleteEvent 删除校历事件
// DELETE /api/v1/calendar/events/:id
func (h *CalendarHandler) DeleteEvent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "事件ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.calendarSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.OK(c, nil)
}

// ExportICS 导出 iCalendar 订阅文件
// GET /api/v1/calendar/export.ics?from=&to=
func (h *CalendarHandler) ExportICS(c *gin.Context) {
	from, to, ok := h.parseRange(c)
	if !ok {
		return
	}

	body, err := h.calendarSvc.ExportICS(c.Request.Context(), from, to)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="school_calendar.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

// parseRange 解析 from/to 查询参数（YYYY-MM-DD，可缺省）
func (h *CalendarHandler) parseRange(c *gin.Context) (from, to *time.Time, ok bool) {
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, 10001, "from 日期格式无效")
			return nil, nil, false
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, 10001, "to 日期格式无效")
			return nil, nil, false
		}
		to = &t
	}
	return from, to, true
}

// handleCalendarError 统一处理校历模块业务错误
func (h *CalendarHandler) handleCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 19101, "校历事件不存在")
	case errors.Is(err, service.ErrEventTimeInvalid):
		response.BadRequest(c, 19102, "事件时间无效")
	default:
		response.InternalError(c)
	}
}
