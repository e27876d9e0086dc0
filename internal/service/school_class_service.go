package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/dto"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/model"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/repository"
)

// ── 班级模块业务错误 ──

var ErrClassNotFound = errors.New("班级不存在")

// SchoolClassService 班级业务接口
type SchoolClassService interface {
	Create(ctx context.Context, req *dto.CreateSchoolClassRequest, callerID string) (*dto.SchoolClassResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SchoolClassResponse, error)
	List(ctx context.Context) ([]dto.SchoolClassResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSchoolClassRequest, callerID string) (*dto.SchoolClassResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	Roster(ctx context.Context, id string, page *dto.PaginationRequest) ([]dto.StudentResponse, int64, error)
}

type schoolClassService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSchoolClassService 创建 SchoolClassService 实例
func NewSchoolClassService(repo *repository.Repository, logger *zap.Logger) SchoolClassService {
	return &schoolClassService{repo: repo, logger: logger}
}

func (s *schoolClassService) Create(ctx context.Context, req *dto.CreateSchoolClassRequest, callerID string) (*dto.SchoolClassResponse, error) {
	class := &model.SchoolClass{
		Name:       req.Name,
		GradeLevel: req.GradeLevel,
		Section:    req.Section,
	}
	if req.HomeroomTeacherID != "" {
		class.HomeroomTeacherID = &req.HomeroomTeacherID
	}
	if req.Capacity > 0 {
		class.Capacity = req.Capacity
	} else {
		class.Capacity = 40
	}
	class.CreatedBy = &callerID
	class.UpdatedBy = &callerID

	if err := s.repo.SchoolClass.Create(ctx, class); err != nil {
		s.logger.Error("创建班级失败", zap.Error(err))
		return nil, err
	}

	return s.toClassResponse(ctx, class), nil
}

func (s *schoolClassService) GetByID(ctx context.Context, id string) (*dto.SchoolClassResponse, error) {
	class, err := s.repo.SchoolClass.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("查询班级失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toClassResponse(ctx, class), nil
}

func (s *schoolClassService) List(ctx context.Context) ([]dto.SchoolClassResponse, error) {
	classes, err := s.repo.SchoolClass.List(ctx)
	if err != nil {
		s.logger.Error("查询班级列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SchoolClassResponse, 0, len(classes))
	for i := range classes {
		result = append(result, *s.toClassResponse(ctx, &classes[i]))
	}
	return result, nil
}

func (s *schoolClassService) Update(ctx context.Context, id string, req *dto.UpdateSchoolClassRequest, callerID string) (*dto.SchoolClassResponse, error) {
	class, err := s.repo.SchoolClass.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		class.Name = *req.Name
	}
	if req.HomeroomTeacherID != nil {
		class.HomeroomTeacherID = req.HomeroomTeacherID
	}
	if req.Capacity != nil {
		class.Capacity = *req.Capacity
	}
	class.UpdatedBy = &callerID

	if err := s.repo.SchoolClass.Update(ctx, class); err != nil {
		s.logger.Error("更新班级失败", zap.Error(err))
		return nil, err
	}

	return s.toClassResponse(ctx, class), nil
}

func (s *schoolClassService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.SchoolClass.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		return err
	}
	return s.repo.SchoolClass.Delete(ctx, id, callerID)
}

// Roster 班级花名册
func (s *schoolClassService) Roster(ctx context.Context, id string, page *dto.PaginationRequest) ([]dto.StudentResponse, int64, error) {
	if _, err := s.repo.SchoolClass.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrClassNotFound
		}
		return nil, 0, err
	}

	students, total, err := s.repo.Student.List(ctx, id, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("查询班级花名册失败", zap.String("class_id", id), zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		result = append(result, *toStudentResponse(&students[i]))
	}
	return result, total, nil
}

func (s *schoolClassService) toClassResponse(ctx context.Context, class *model.SchoolClass) *dto.SchoolClassResponse {
	resp := &dto.SchoolClassResponse{
		ID:         class.SchoolClassID,
		Name:       class.Name,
		GradeLevel: class.GradeLevel,
		Section:    class.Section,
		Capacity:   class.Capacity,
	}
	if class.HomeroomTeacherID != nil {
		resp.HomeroomTeacherID = *class.HomeroomTeacherID
	}
	if class.HomeroomTeacher != nil {
		resp.HomeroomTeacherName = class.HomeroomTeacher.Name
	}

	// 人数统计失败不阻塞响应
	if count, err := s.repo.SchoolClass.CountStudents(ctx, class.SchoolClassID); err == nil {
		resp.StudentCount = count
	} else {
		s.logger.Warn("统计班级人数失败", zap.String("class_id", class.SchoolClassID), zap.Error(err))
	}
	return resp
}
