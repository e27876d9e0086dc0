package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/dto"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/model"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/service"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/pkg/response"
)

// ParentHandler 家长看板 HTTP 处理器
type ParentHandler struct {
	parentSvc service.ParentService
}

// NewParentHandler 创建 ParentHandler
func NewParentHandler(parentSvc service.ParentService) *ParentHandler {
	return &ParentHandler{parentSvc: parentSvc}
}

// resolveParentID 家长只能查自己（以令牌中的 person_id 为准），管理员可查任意家长
func (h *ParentHandler) resolveParentID(c *gin.Context) (string, bool) {
	role, ok := MustGetRole(c)
	if !ok {
		return "", false
	}

	if role == model.RoleParent {
		personID, ok := MustGetPersonID(c)
		if !ok {
			return "", false
		}
		if personID == "" {
			response.Forbidden(c, 16002, "当前账号未关联家长档案")
			return "", false
		}
		requested := c.Param("id")
		if requested != "" && requested != personID {
			response.Forbidden(c, 16002, "无权访问其他家长的数据")
			return "", false
		}
		return personID, true
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "家长ID不能为空")
		return "", false
	}
	return id, true
}

// GetDashboard 家长看板：全部孩子的聚合统计与关注提醒
// GET /api/v1/parents/:id/dashboard
func (h *ParentHandler) GetDashboard(c *gin.Context) {
	parentID, ok := h.resolveParentID(c)
	if !ok {
		return
	}

	board, err := h.parentSvc.Dashboard(c.Request.Context(), parentID)
	if err != nil {
		h.handleParentError(c, err)
		return
	}

	response.OK(c, board)
}

// GetChildOverview 单个孩子的出勤、成绩、费用、公告概览
// GET /api/v1/parents/:id/children/:student_id
func (h *ParentHandler) GetChildOverview(c *gin.Context) {
	parentID, ok := h.resolveParentID(c)
	if !ok {
		return
	}

	studentID := c.Param("student_id")
	if studentID == "" {
		response.BadRequest(c, 10001, "学生ID不能为空")
		return
	}

	overview, err := h.parentSvc.ChildOverview(c.Request.Context(), parentID, studentID)
	if err != nil {
		h.handleParentError(c, err)
		return
	}

	response.OK(c, overview)
}

// LinkStudent 绑定家长-学生关系（仅管理员）
// POST /api/v1/parents/:id/children
func (h *ParentHandler) LinkStudent(c *gin.Context) {
	parentID := c.Param("id")
	if parentID == "" {
		response.BadRequest(c, 10001, "家长ID不能为空")
		return
	}

	var req dto.LinkStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.parentSvc.LinkStudent(c.Request.Context(), parentID, &req, callerID); err != nil {
		h.handleParentError(c, err)
		return
	}

	response.Created(c, nil)
}

// UnlinkStudent 解绑家长-学生关系（仅管理员）
// DELETE /api/v1/parents/:id/children/:student_id
func (h *ParentHandler) UnlinkStudent(c *gin.Context) {
	parentID := c.Param("id")
	studentID := c.Param("student_id")
	if parentID == "" || studentID == "" {
		response.BadRequest(c, 10001, "家长ID与学生ID不能为空")
		return
	}

	if err := h.parentSvc.UnlinkStudent(c.Request.Context(), parentID, studentID); err != nil {
		h.handleParentError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleParentError 统一处理家长模块业务错误
func (h *ParentHandler) handleParentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrParentNotFound):
		response.NotFound(c, 16001, "家长不存在")
	case errors.Is(err, service.ErrParentAccessDenied):
		response.Forbidden(c, 16002, "该学生不在当前家长名下")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 11001, "学生不存在")
	default:
		response.InternalError(c)
	}
}
