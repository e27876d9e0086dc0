package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/dto"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/service"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/pkg/response"
)

// IDCardHandler 校园卡 HTTP 处理器
type IDCardHandler struct {
	cardSvc service.IDCardService
}

// NewIDCardHandler 创建 IDCardHandler
func NewIDCardHandler(cardSvc service.IDCardService) *IDCardHandler {
	return &IDCardHandler{cardSvc: cardSvc}
}

// GenerateCard 为学生或教师签发校园卡
// POST /api/v1/id-cards
func (h *IDCardHandler) GenerateCard(c *gin.Context) {
	var req dto.GenerateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	card, err := h.cardSvc.Generate(c.Request.Context(), req.HolderID, req.HolderType, &req, callerID)
	if err != nil {
		h.handleCardError(c, err)
		return
	}

	response.Created(c, card)
}

// GetCard 校园卡详情
// GET /api/v1/id-cards/:id
func (h *IDCardHandler) GetCard(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "卡片ID不能为空")
		return
	}

	card, err := h.cardSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleCardError(c, err)
		return
	}

	response.OK(c, card)
}

// ListHolderCards 持有人的全部卡片（含历史卡）
// GET /api/v1/id-cards?holder_id=
func (h *IDCardHandler) ListHolderCards(c *gin.Context) {
	holderID := c.Query("holder_id")
	if holderID == "" {
		response.BadRequest(c, 10001, "持有人ID不能为空")
		return
	}

	cards, err := h.cardSvc.ListByHolder(c.Request.Context(), holderID)
	if err != nil {
		h.handleCardError(c, err)
		return
	}

	response.OK(c, cards)
}

// ReportLost 挂失
// PATCH /api/v1/id-cards/:id/report-lost
func (h *IDCardHandler) ReportLost(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "卡片ID不能为空")
		return
	}

	var req dto.ReportLostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	card, err := h.cardSvc.ReportLost(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleCardError(c, err)
		return
	}

	response.OK(c, card)
}

// ReissueCard 补办：旧卡置为 REPLACED，签发新卡并生成工本费
// POST /api/v1/id-cards/:id/reissue
func (h *IDCardHandler) ReissueCard(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "卡片ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.cardSvc.Reissue(c.Request.Context(), id, callerID)
	if err != nil {
		h.handleCardError(c, err)
		return
	}

	response.Created(c, result)
}

// CancelCard 注销卡片
// POST /api/v1/id-cards/:id/cancel
func (h *IDCardHandler) CancelCard(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "卡片ID不能为空")
		return
	}

	var req dto.CancelCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	card, err := h.cardSvc.Cancel(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleCardError(c, err)
		return
	}

	response.OK(c, card)
}

// handleCardError 统一处理校园卡模块业务错误
func (h *IDCardHandler) handleCardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCardNotFound):
		response.NotFound(c, 14001, "卡片不存在")
	case errors.Is(err, service.ErrHolderNotFound):
		response.NotFound(c, 14002, "持有人不存在")
	case errors.Is(err, service.ErrCardConflict):
		response.Conflict(c, 14003, "持有人已有生效中的卡片")
	case errors.Is(err, service.ErrCardStateInvalid):
		response.Conflict(c, 14004, "当前卡片状态不允许该操作")
	default:
		response.InternalError(c)
	}
}
