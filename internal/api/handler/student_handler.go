package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/dto"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/service"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/pkg/response"
)

// StudentHandler 学生模块 HTTP 处理器
type StudentHandler struct {
	studentSvc service.StudentService
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(studentSvc service.StudentService) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc}
}

// CreateStudent 建立学籍
// POST /api/v1/students
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	student, err := h.studentSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.Created(c, student)
}

// GetStudent 获取学生详情
// GET /api/v1/students/:id
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学生ID不能为空")
		return
	}

	student, err := h.studentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OK(c, student)
}

// ListStudents 学生列表（可按班级过滤）
// GET /api/v1/students?school_class_id=&page=&page_size=
func (h *StudentHandler) ListStudents(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	students, total, err := h.studentSvc.List(c.Request.Context(), c.Query("school_class_id"), &page)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OKPage(c, students, total, page.GetPage(), page.GetPageSize())
}

// UpdateStudent 更新学籍
// PUT /api/v1/students/:id
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学生ID不能为空")
		return
	}

	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	student, err := h.studentSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OK(c, student)
}

// DeleteStudent 删除学籍（软删除）
// DELETE /api/v1/students/:id
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学生ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.studentSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OK(c, nil)
}

// RecordAttendance 录入考勤
// POST /api/v1/attendance
func (h *StudentHandler) RecordAttendance(c *gin.Context) {
	var req dto.RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.studentSvc.RecordAttendance(c.Request.Context(), &req, callerID); err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.Created(c, nil)
}

// GetAttendanceSummary 出勤率统计
// GET /api/v1/students/:id/attendance
func (h *StudentHandler) GetAttendanceSummary(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学生ID不能为空")
		return
	}

	summary, err := h.studentSvc.AttendanceSummary(c.Request.Context(), id)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OK(c, summary)
}

// handleStudentError 统一处理学生模块业务错误
func (h *StudentHandler) handleStudentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 11001, "学生不存在")
	case errors.Is(err, service.ErrStudentDateInvalid):
		response.BadRequest(c, 11002, "日期格式无效")
	case errors.Is(err, service.ErrAttendanceDuplicate):
		response.Conflict(c, 11003, "该日考勤已录入")
	default:
		response.InternalError(c)
	}
}
