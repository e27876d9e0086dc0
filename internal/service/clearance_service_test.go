package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/dto"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/model"
)

func setupTestClearanceService() (ClearanceService, *testRepos) {
	repos := newTestRepos()
	svc := NewClearanceService(repos.repo, zap.NewNop())
	return svc, repos
}

func TestClearanceService_AllClear(t *testing.T) {
	svc, repos := setupTestClearanceService()
	seedStudent(repos, "stu-001", "张三")

	result, err := svc.CheckEligibility(context.Background(), "stu-001")
	if err != nil {
		t.Fatalf("CheckEligibility 应成功: %v", err)
	}
	if !result.Eligible {
		t.Error("无阻塞项时应具备签发资格")
	}
	if len(result.Blockers) != 0 {
		t.Errorf("期望无阻塞项，实际=%v", result.Blockers)
	}
}

func TestClearanceService_FeeOutstanding(t *testing.T) {
	svc, repos := setupTestClearanceService()
	seedStudent(repos, "stu-001", "张三")
	seedFee(repos, "fee-001", "stu-001", 500, 100, time.Now(), model.FeeStatusPartial)

	result, err := svc.CheckEligibility(context.Background(), "stu-001")
	if err != nil {
		t.Fatalf("CheckEligibility 应成功: %v", err)
	}
	if result.Eligible {
		t.Error("欠费时不应具备签发资格")
	}
	if len(result.Blockers) != 1 || result.Blockers[0] != dto.BlockerFeeOutstanding {
		t.Errorf("期望阻塞项=[FEE_OUTSTANDING]，实际=%v", result.Blockers)
	}
}

// 三项同时不通过时应一次性返回全部阻塞项
func TestClearanceService_AllBlockers(t *testing.T) {
	svc, repos := setupTestClearanceService()
	seedStudent(repos, "stu-001", "张三")
	seedFee(repos, "fee-001", "stu-001", 500, 0, time.Now(), model.FeeStatusPending)
	repos.library.unreturned["stu-001"] = 2
	repos.disciplinary.holds["stu-001"] = 1

	result, err := svc.CheckEligibility(context.Background(), "stu-001")
	if err != nil {
		t.Fatalf("CheckEligibility 应成功: %v", err)
	}
	if result.Eligible {
		t.Error("三项阻塞时不应具备签发资格")
	}

	got := append([]string(nil), result.Blockers...)
	sort.Strings(got)
	want := []string{dto.BlockerDisciplinaryHold, dto.BlockerFeeOutstanding, dto.BlockerLibraryUnreturned}
	if len(got) != 3 {
		t.Fatalf("期望3个阻塞项，实际=%v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("阻塞项不匹配，期望=%v 实际=%v", want, got)
			break
		}
	}
}

func TestClearanceService_PaidFeesDoNotBlock(t *testing.T) {
	svc, repos := setupTestClearanceService()
	seedStudent(repos, "stu-001", "张三")
	seedFee(repos, "fee-001", "stu-001", 500, 500, time.Now(), model.FeeStatusPaid)

	result, err := svc.CheckEligibility(context.Background(), "stu-001")
	if err != nil {
		t.Fatalf("CheckEligibility 应成功: %v", err)
	}
	if !result.Eligible {
		t.Errorf("已结清费用不应阻塞，实际阻塞项=%v", result.Blockers)
	}
}

func TestClearanceService_StudentNotFound(t *testing.T) {
	svc, _ := setupTestClearanceService()

	_, err := svc.CheckEligibility(context.Background(), "stu-missing")
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际=%v", err)
	}
}
