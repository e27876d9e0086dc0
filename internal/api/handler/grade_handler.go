package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/dto"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/service"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/pkg/response"
)

// GradeHandler 成绩模块 HTTP 处理器
type GradeHandler struct {
	gradeSvc service.GradeService
}

// NewGradeHandler 创建 GradeHandler
func NewGradeHandler(gradeSvc service.GradeService) *GradeHandler {
	return &GradeHandler{gradeSvc: gradeSvc}
}

// CreateGrade 录入成绩（默认未发布）
// POST /api/v1/grades
func (h *GradeHandler) CreateGrade(c *gin.Context) {
	var req dto.CreateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	grade, err := h.gradeSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.Created(c, grade)
}

// PublishGrade 发布成绩，发布后对家长可见并计入 GPA
// PATCH /api/v1/grades/:id/publish
func (h *GradeHandler) PublishGrade(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "成绩ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	grade, err := h.gradeSvc.Publish(c.Request.Context(), id, callerID)
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.OK(c, grade)
}

// ListStudentGrades 学生成绩列表
// GET /api/v1/students/:id/grades?semester=&published_only=
func (h *GradeHandler) ListStudentGrades(c *gin.Context) {
	studentID := c.Param("id")
	if studentID == "" {
		response.BadRequest(c, 10001, "学生ID不能为空")
		return
	}

	publishedOnly := c.Query("published_only") == "true"
	grades, err := h.gradeSvc.ListByStudent(c.Request.Context(), studentID, c.Query("semester"), publishedOnly)
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.OK(c, grades)
}

// GetStudentGPA 计算学生 GPA（仅已发布成绩）
// GET /api/v1/students/:id/gpa
func (h *GradeHandler) GetStudentGPA(c *gin.Context) {
	studentID := c.Param("id")
	if studentID == "" {
		response.BadRequest(c, 10001, "学生ID不能为空")
		return
	}

	gpa, err := h.gradeSvc.CalculateGPA(c.Request.Context(), studentID)
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.OK(c, gpa)
}

// GetSubjectAverage 学生单科平均分
// GET /api/v1/students/:id/subjects/:subject_id/average
func (h *GradeHandler) GetSubjectAverage(c *gin.Context) {
	studentID := c.Param("id")
	subjectID := c.Param("subject_id")
	if studentID == "" || subjectID == "" {
		response.BadRequest(c, 10001, "学生ID与科目ID不能为空")
		return
	}

	avg, err := h.gradeSvc.SubjectAverage(c.Request.Context(), studentID, subjectID)
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.OK(c, avg)
}

// ListFailingGrades 不及格科目清单
// GET /api/v1/students/:id/grades/failing
func (h *GradeHandler) ListFailingGrades(c *gin.Context) {
	studentID := c.Param("id")
	if studentID == "" {
		response.BadRequest(c, 10001, "学生ID不能为空")
		return
	}

	grades, err := h.gradeSvc.ListFailing(c.Request.Context(), studentID)
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.OK(c, grades)
}

// handleGradeError 统一处理成绩模块业务错误
func (h *GradeHandler) handleGradeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGradeNotFound):
		response.NotFound(c, 13001, "成绩记录不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 11001, "学生不存在")
	case errors.Is(err, service.ErrGradeDateInvalid):
		response.BadRequest(c, 13002, "日期格式无效")
	case errors.Is(err, service.ErrGradePublished):
		response.Conflict(c, 13003, "成绩已发布，不可重复发布")
	default:
		response.InternalError(c)
	}
}
