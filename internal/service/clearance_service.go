package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/dto"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/repository"
)

// ClearanceService 离校资格核查接口
// 转学证明签发前置校验：欠费、图书未还、纪律处分三项独立核查
type ClearanceService interface {
	CheckEligibility(ctx context.Context, studentID string) (*dto.ClearanceResponse, error)
}

type clearanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClearanceService 创建 ClearanceService 实例
func NewClearanceService(repo *repository.Repository, logger *zap.Logger) ClearanceService {
	return &clearanceService{repo: repo, logger: logger}
}

// CheckEligibility 核查学生是否具备离校签发资格
// 三项全部核查完毕后统一返回，便于家长一次看到全部阻塞项
func (s *clearanceService) CheckEligibility(ctx context.Context, studentID string) (*dto.ClearanceResponse, error) {
	if _, err := s.repo.Student.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	blockers := make([]string, 0, 3)

	outstanding, err := s.repo.Fee.CountOutstanding(ctx, studentID)
	if err != nil {
		s.logger.Error("核查欠费失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}
	if outstanding > 0 {
		blockers = append(blockers, dto.BlockerFeeOutstanding)
	}

	unreturned, err := s.repo.Library.CountUnreturned(ctx, studentID)
	if err != nil {
		s.logger.Error("核查图书归还失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}
	if unreturned > 0 {
		blockers = append(blockers, dto.BlockerLibraryUnreturned)
	}

	holds, err := s.repo.Disciplinary.CountActiveHolds(ctx, studentID)
	if err != nil {
		s.logger.Error("核查纪律处分失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}
	if holds > 0 {
		blockers = append(blockers, dto.BlockerDisciplinaryHold)
	}

	return &dto.ClearanceResponse{
		StudentID: studentID,
		Eligible:  len(blockers) == 0,
		Blockers:  blockers,
	}, nil
}
