package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/dto"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/service"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/pkg/response"
)

// AnnouncementHandler 公告 HTTP 处理器
type AnnouncementHandler struct {
	announcementSvc service.AnnouncementService
}

// NewAnnouncementHandler 创建 AnnouncementHandler
func NewAnnouncementHandler(announcementSvc service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementSvc: announcementSvc}
}

// PublishAnnouncement 发布公告（班级ID为空表示全校）
// POST /api/v1/announcements
func (h *AnnouncementHandler) PublishAnnouncement(c *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	ann, err := h.announcementSvc.Publish(c.Request.Context(), &req, callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, ann)
}

// ListAnnouncements 公告列表（按发布时间倒序）
// GET /api/v1/announcements?page=&page_size=
func (h *AnnouncementHandler) ListAnnouncements(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	anns, total, err := h.announcementSvc.List(c.Request.Context(), &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, anns, total, page.GetPage(), page.GetPageSize())
}

// DeleteAnnouncement 删除公告
// DELETE /api/v1/announcements/:id
func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "公告ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.announcementSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
