package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/dto"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/model"
)

// ── 测试辅助 ──

func setupTestGradeService() (GradeService, *testRepos) {
	repos := newTestRepos()
	svc := NewGradeService(testPolicyConfig(), repos.repo, zap.NewNop())
	return svc, repos
}

func seedGrade(repos *testRepos, id, studentID string, score float64, published bool) {
	grade := &model.Grade{
		GradeID:   id,
		StudentID: studentID,
		SubjectID: "sub-math",
		Semester:  "2026春",
		Score:     score,
		GradeDate: time.Now().AddDate(0, 0, -1),
		Published: published,
	}
	repos.grade.grades[id] = grade
}

// ── 绩点折算测试 ──

func TestGradePoint_Boundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  float64
	}{
		{95, 4.0}, {90, 4.0},
		{89.9, 3.5}, {80, 3.5},
		{79, 3.0}, {70, 3.0},
		{69, 2.5}, {60, 2.5},
		{59, 2.0}, {50, 2.0},
		{49, 1.0}, {40, 1.0},
		{39.9, 0.0}, {0, 0.0},
	}
	for _, c := range cases {
		if got := gradePoint(c.score); got != c.want {
			t.Errorf("分数=%.1f 期望绩点=%.1f，实际=%.1f", c.score, c.want, got)
		}
	}
}

// ── CalculateGPA 测试 ──

// 三科 [90, 80, 70] 对应绩点 4.0/3.5/3.0，GPA = 3.5
func TestGradeService_CalculateGPA_KnownScores(t *testing.T) {
	svc, repos := setupTestGradeService()
	seedStudent(repos, "stu-001", "张三")
	seedGrade(repos, "grd-001", "stu-001", 90, true)
	seedGrade(repos, "grd-002", "stu-001", 80, true)
	seedGrade(repos, "grd-003", "stu-001", 70, true)

	result, err := svc.CalculateGPA(context.Background(), "stu-001")
	if err != nil {
		t.Fatalf("CalculateGPA 应成功: %v", err)
	}
	if result.GradeCount != 3 {
		t.Errorf("期望GradeCount=3，实际=%d", result.GradeCount)
	}
	if result.GPA != 3.5 {
		t.Errorf("期望GPA=3.5，实际=%.2f", result.GPA)
	}

	// 同样输入再算一遍结果必须一致
	again, err := svc.CalculateGPA(context.Background(), "stu-001")
	if err != nil {
		t.Fatalf("重复计算应成功: %v", err)
	}
	if again.GPA != result.GPA {
		t.Errorf("相同成绩集合GPA应稳定，第一次=%.2f 第二次=%.2f", result.GPA, again.GPA)
	}
}

func TestGradeService_CalculateGPA_UnpublishedExcluded(t *testing.T) {
	svc, repos := setupTestGradeService()
	seedStudent(repos, "stu-001", "张三")
	seedGrade(repos, "grd-001", "stu-001", 90, true)
	seedGrade(repos, "grd-002", "stu-001", 30, false) // 未发布，不参与统计

	result, err := svc.CalculateGPA(context.Background(), "stu-001")
	if err != nil {
		t.Fatalf("CalculateGPA 应成功: %v", err)
	}
	if result.GradeCount != 1 {
		t.Errorf("期望仅统计已发布1条，实际=%d", result.GradeCount)
	}
	if result.GPA != 4.0 {
		t.Errorf("期望GPA=4.0，实际=%.2f", result.GPA)
	}
}

func TestGradeService_CalculateGPA_NoPublishedGrades(t *testing.T) {
	svc, repos := setupTestGradeService()
	seedStudent(repos, "stu-001", "张三")

	result, err := svc.CalculateGPA(context.Background(), "stu-001")
	if err != nil {
		t.Fatalf("无成绩不应报错: %v", err)
	}
	if result.GPA != 0.0 {
		t.Errorf("无成绩期望GPA=0.0，实际=%.2f", result.GPA)
	}
	if result.GradeCount != 0 {
		t.Errorf("无成绩期望GradeCount=0，实际=%d", result.GradeCount)
	}
}

func TestGradeService_CalculateGPA_StudentNotFound(t *testing.T) {
	svc, _ := setupTestGradeService()

	_, err := svc.CalculateGPA(context.Background(), "stu-missing")
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际=%v", err)
	}
}

// ── Publish 测试 ──

func TestGradeService_Publish_Success(t *testing.T) {
	svc, repos := setupTestGradeService()
	seedStudent(repos, "stu-001", "张三")
	seedGrade(repos, "grd-001", "stu-001", 85, false)

	result, err := svc.Publish(context.Background(), "grd-001", "teacher-001")
	if err != nil {
		t.Fatalf("Publish 应成功: %v", err)
	}
	if !result.Published {
		t.Error("发布后Published应为true")
	}
	if repos.grade.grades["grd-001"].PublishedAt == nil {
		t.Error("发布后应记录PublishedAt")
	}
}

func TestGradeService_Publish_AlreadyPublished(t *testing.T) {
	svc, repos := setupTestGradeService()
	seedStudent(repos, "stu-001", "张三")
	seedGrade(repos, "grd-001", "stu-001", 85, true)

	_, err := svc.Publish(context.Background(), "grd-001", "teacher-001")
	if !errors.Is(err, ErrGradePublished) {
		t.Errorf("期望 ErrGradePublished，实际=%v", err)
	}
}

// ── SubjectAverage 测试 ──

func TestGradeService_SubjectAverage(t *testing.T) {
	svc, repos := setupTestGradeService()
	seedStudent(repos, "stu-001", "张三")
	seedGrade(repos, "grd-001", "stu-001", 90, true)
	seedGrade(repos, "grd-002", "stu-001", 70, true)

	result, err := svc.SubjectAverage(context.Background(), "stu-001", "sub-math")
	if err != nil {
		t.Fatalf("SubjectAverage 应成功: %v", err)
	}
	if result.Average != 80 {
		t.Errorf("期望Average=80，实际=%.2f", result.Average)
	}
	if result.GradeCount != 2 {
		t.Errorf("期望GradeCount=2，实际=%d", result.GradeCount)
	}
}

// ── ListFailing 测试 ──

func TestGradeService_ListFailing_UsesPassingScore(t *testing.T) {
	svc, repos := setupTestGradeService()
	seedStudent(repos, "stu-001", "张三")
	seedGrade(repos, "grd-001", "stu-001", 35, true)
	seedGrade(repos, "grd-002", "stu-001", 45, true)

	result, err := svc.ListFailing(context.Background(), "stu-001")
	if err != nil {
		t.Fatalf("ListFailing 应成功: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("及格线40期望1条不及格，实际=%d", len(result))
	}
	if result[0].Score != 35 {
		t.Errorf("期望不及格分数=35，实际=%.1f", result[0].Score)
	}
}

// ── Create 测试 ──

func TestGradeService_Create_DefaultUnpublished(t *testing.T) {
	svc, repos := setupTestGradeService()
	seedStudent(repos, "stu-001", "张三")

	req := &dto.CreateGradeRequest{
		StudentID: "stu-001",
		SubjectID: "sub-math",
		Semester:  "2026春",
		Score:     88,
		GradeDate: "2026-06-20",
	}

	result, err := svc.Create(context.Background(), req, "teacher-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Published {
		t.Error("新录入成绩不应默认发布")
	}
	if result.GradePoint != 3.5 {
		t.Errorf("期望GradePoint=3.5，实际=%.1f", result.GradePoint)
	}
}
