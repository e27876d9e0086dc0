package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/dto"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/service"
	apperrors "github.com/RathodVijay9524/School-MGMTSaaS-sub004/pkg/errors"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult      *dto.TokenResponse
	loginErr         error
	refreshResult    *dto.TokenResponse
	refreshErr       error
	logoutErr        error
	getCurrentResult *dto.UserResponse
	getCurrentErr    error
	changePassErr    error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string, _ time.Time) error {
	return m.logoutErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.getCurrentResult, m.getCurrentErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── Mock FeeService ──

type mockFeeService struct {
	createResult  *dto.FeeResponse
	createErr     error
	getResult     *dto.FeeResponse
	getErr        error
	listResult    []dto.FeeResponse
	listTotal     int64
	listErr       error
	paymentResult *dto.FeeResponse
	paymentErr    error
	overdueResult []dto.FeeResponse
	overdueErr    error
	totalsResult  *dto.FeeTotalsResponse
	totalsErr     error
}

func (m *mockFeeService) Create(_ context.Context, _ *dto.CreateFeeRequest, _ string) (*dto.FeeResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockFeeService) GetByID(_ context.Context, _ string) (*dto.FeeResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockFeeService) List(_ context.Context, _ *dto.ListFeesRequest) ([]dto.FeeResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockFeeService) RecordPayment(_ context.Context, _ string, _ *dto.RecordPaymentRequest, _ string) (*dto.FeeResponse, error) {
	return m.paymentResult, m.paymentErr
}
func (m *mockFeeService) ListOverdue(_ context.Context) ([]dto.FeeResponse, error) {
	return m.overdueResult, m.overdueErr
}
func (m *mockFeeService) Totals(_ context.Context) (*dto.FeeTotalsResponse, error) {
	return m.totalsResult, m.totalsErr
}

// ── Mock GradeService ──

type mockGradeService struct {
	createResult  *dto.GradeResponse
	createErr     error
	publishResult *dto.GradeResponse
	publishErr    error
	listResult    []dto.GradeResponse
	listErr       error
	gpaResult     *dto.GPAResponse
	gpaErr        error
	avgResult     *dto.SubjectAverageResponse
	avgErr        error
	failingResult []dto.GradeResponse
	failingErr    error
}

func (m *mockGradeService) Create(_ context.Context, _ *dto.CreateGradeRequest, _ string) (*dto.GradeResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockGradeService) Publish(_ context.Context, _ string, _ string) (*dto.GradeResponse, error) {
	return m.publishResult, m.publishErr
}
func (m *mockGradeService) ListByStudent(_ context.Context, _, _ string, _ bool) ([]dto.GradeResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockGradeService) CalculateGPA(_ context.Context, _ string) (*dto.GPAResponse, error) {
	return m.gpaResult, m.gpaErr
}
func (m *mockGradeService) SubjectAverage(_ context.Context, _, _ string) (*dto.SubjectAverageResponse, error) {
	return m.avgResult, m.avgErr
}
func (m *mockGradeService) ListFailing(_ context.Context, _ string) ([]dto.GradeResponse, error) {
	return m.failingResult, m.failingErr
}

// ── Mock IDCardService ──

type mockIDCardService struct {
	generateResult *dto.IDCardResponse
	generateErr    error
	getResult      *dto.IDCardResponse
	getErr         error
	listResult     []dto.IDCardResponse
	listErr        error
	lostResult     *dto.IDCardResponse
	lostErr        error
	reissueResult  *dto.ReissueResponse
	reissueErr     error
	cancelResult   *dto.IDCardResponse
	cancelErr      error
}

func (m *mockIDCardService) Generate(_ context.Context, _, _ string, _ *dto.GenerateCardRequest, _ string) (*dto.IDCardResponse, error) {
	return m.generateResult, m.generateErr
}
func (m *mockIDCardService) GetByID(_ context.Context, _ string) (*dto.IDCardResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockIDCardService) ListByHolder(_ context.Context, _ string) ([]dto.IDCardResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockIDCardService) ReportLost(_ context.Context, _ string, _ *dto.ReportLostRequest, _ string) (*dto.IDCardResponse, error) {
	return m.lostResult, m.lostErr
}
func (m *mockIDCardService) Reissue(_ context.Context, _ string, _ string) (*dto.ReissueResponse, error) {
	return m.reissueResult, m.reissueErr
}
func (m *mockIDCardService) Cancel(_ context.Context, _ string, _ *dto.CancelCardRequest, _ string) (*dto.IDCardResponse, error) {
	return m.cancelResult, m.cancelErr
}

// ── Mock TransferCertService ──

type mockTCService struct {
	generateResult *dto.TCResponse
	generateErr    error
	submitResult   *dto.TCResponse
	submitErr      error
	approveResult  *dto.TCResponse
	approveErr     error
	issueResult    *dto.TCResponse
	issueErr       error
	cancelResult   *dto.TCResponse
	cancelErr      error
	getResult      *dto.TCResponse
	getErr         error
	listResult     []dto.TCResponse
	listTotal      int64
	listErr        error
}

func (m *mockTCService) Generate(_ context.Context, _ *dto.GenerateTCRequest, _ string) (*dto.TCResponse, error) {
	return m.generateResult, m.generateErr
}
func (m *mockTCService) Submit(_ context.Context, _ string, _ string) (*dto.TCResponse, error) {
	return m.submitResult, m.submitErr
}
func (m *mockTCService) Approve(_ context.Context, _ string, _ string) (*dto.TCResponse, error) {
	return m.approveResult, m.approveErr
}
func (m *mockTCService) Issue(_ context.Context, _ string, _ string) (*dto.TCResponse, error) {
	return m.issueResult, m.issueErr
}
func (m *mockTCService) Cancel(_ context.Context, _ string, _ *dto.CancelTCRequest, _ string) (*dto.TCResponse, error) {
	return m.cancelResult, m.cancelErr
}
func (m *mockTCService) GetByID(_ context.Context, _ string) (*dto.TCResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockTCService) List(_ context.Context, _ string, _ *dto.PaginationRequest) ([]dto.TCResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}

// ── Mock ClearanceService ──

type mockClearanceService struct {
	result *dto.ClearanceResponse
	err    error
}

func (m *mockClearanceService) CheckEligibility(_ context.Context, _ string) (*dto.ClearanceResponse, error) {
	return m.result, m.err
}

// ── Mock ParentService ──

type mockParentService struct {
	verifyErr       error
	overviewResult  *dto.ChildOverviewResponse
	overviewErr     error
	dashboardResult *dto.ParentDashboardResponse
	dashboardErr    error
	linkErr         error
	unlinkErr       error
}

func (m *mockParentService) VerifyAccess(_ context.Context, _, _ string) error {
	return m.verifyErr
}
func (m *mockParentService) ChildOverview(_ context.Context, _, _ string) (*dto.ChildOverviewResponse, error) {
	return m.overviewResult, m.overviewErr
}
func (m *mockParentService) Dashboard(_ context.Context, _ string) (*dto.ParentDashboardResponse, error) {
	return m.dashboardResult, m.dashboardErr
}
func (m *mockParentService) LinkStudent(_ context.Context, _ string, _ *dto.LinkStudentRequest, _ string) error {
	return m.linkErr
}
func (m *mockParentService) UnlinkStudent(_ context.Context, _, _ string) error {
	return m.unlinkErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportFeeLedger(_ context.Context) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("role", "admin")
	c.Set("person_id", "")
	c.Set("jti", "test-jti")
	c.Set("token_exp", time.Now().Add(15*time.Minute))
}

func setParentAuth(c *gin.Context, parentID string) {
	c.Set("user_id", "test-parent-user")
	c.Set("role", "parent")
	c.Set("person_id", parentID)
	c.Set("jti", "test-jti")
	c.Set("token_exp", time.Now().Add(15*time.Minute))
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "admin",
		Password: "Test1234",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "admin",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10002 {
		t.Errorf("expected error code 10002, got %d", resp.Code)
	}
}

func TestAuthHandler_GetCurrentUser_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", h.GetCurrentUser)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// FeeHandler Tests
// ═══════════════════════════════════════════════════════════

func TestFeeHandler_RecordPayment_Success(t *testing.T) {
	mock := &mockFeeService{
		paymentResult: &dto.FeeResponse{
			ID: "fee-001", AmountDue: 500, AmountPaid: 300, Remaining: 200, Status: "PARTIAL",
		},
	}
	h := NewFeeHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/fees/fee-001/payment", jsonBody(dto.RecordPaymentRequest{
		Amount: 300, Method: "CASH",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/fees/:id/payment", func(c *gin.Context) {
		setAuth(c)
		h.RecordPayment(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestFeeHandler_RecordPayment_ExceedsRemaining(t *testing.T) {
	h := NewFeeHandler(&mockFeeService{paymentErr: service.ErrFeeAmountExceeds})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/fees/fee-001/payment", jsonBody(dto.RecordPaymentRequest{
		Amount: 300, Method: "CASH",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/fees/:id/payment", func(c *gin.Context) {
		setAuth(c)
		h.RecordPayment(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12003 {
		t.Errorf("expected error code 12003, got %d", resp.Code)
	}
}

func TestFeeHandler_RecordPayment_OptimisticLockConflict(t *testing.T) {
	h := NewFeeHandler(&mockFeeService{paymentErr: apperrors.ErrOptimisticLock})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/fees/fee-001/payment", jsonBody(dto.RecordPaymentRequest{
		Amount: 100, Method: "ONLINE",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/fees/:id/payment", func(c *gin.Context) {
		setAuth(c)
		h.RecordPayment(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestFeeHandler_GetFee_NotFound(t *testing.T) {
	h := NewFeeHandler(&mockFeeService{getErr: service.ErrFeeNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/fees/fee-missing", nil)

	r := gin.New()
	r.GET("/fees/:id", h.GetFee)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12001 {
		t.Errorf("expected error code 12001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// GradeHandler Tests
// ═══════════════════════════════════════════════════════════

func TestGradeHandler_GetStudentGPA_Success(t *testing.T) {
	mock := &mockGradeService{
		gpaResult: &dto.GPAResponse{StudentID: "stu-001", GPA: 3.5, GradeCount: 3},
	}
	h := NewGradeHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/students/stu-001/gpa", nil)

	r := gin.New()
	r.GET("/students/:id/gpa", h.GetStudentGPA)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestGradeHandler_PublishGrade_AlreadyPublished(t *testing.T) {
	h := NewGradeHandler(&mockGradeService{publishErr: service.ErrGradePublished})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/grades/g-001/publish", nil)

	r := gin.New()
	r.PATCH("/grades/:id/publish", func(c *gin.Context) {
		setAuth(c)
		h.PublishGrade(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// IDCardHandler Tests
// ═══════════════════════════════════════════════════════════

func TestIDCardHandler_GenerateCard_Conflict(t *testing.T) {
	h := NewIDCardHandler(&mockIDCardService{generateErr: service.ErrCardConflict})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/id-cards", jsonBody(dto.GenerateCardRequest{
		HolderID:   "11111111-1111-1111-1111-111111111111",
		HolderType: "STUDENT",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/id-cards", func(c *gin.Context) {
		setAuth(c)
		h.GenerateCard(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14003 {
		t.Errorf("expected error code 14003, got %d", resp.Code)
	}
}

func TestIDCardHandler_ReissueCard_Success(t *testing.T) {
	mock := &mockIDCardService{
		reissueResult: &dto.ReissueResponse{
			OldCard: dto.IDCardResponse{ID: "card-old", Status: "REPLACED"},
			NewCard: dto.IDCardResponse{ID: "card-new", Status: "ACTIVE"},
		},
	}
	h := NewIDCardHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/id-cards/card-old/reissue", nil)

	r := gin.New()
	r.POST("/id-cards/:id/reissue", func(c *gin.Context) {
		setAuth(c)
		h.ReissueCard(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// TransferCertHandler Tests
// ═══════════════════════════════════════════════════════════

func TestTCHandler_IssueTC_WrongState(t *testing.T) {
	h := NewTransferCertHandler(&mockTCService{issueErr: service.ErrTCStateInvalid}, &mockClearanceService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/transfer-certificates/tc-001/issue", nil)

	r := gin.New()
	r.PATCH("/transfer-certificates/:id/issue", func(c *gin.Context) {
		setAuth(c)
		h.IssueTC(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 15003 {
		t.Errorf("expected error code 15003, got %d", resp.Code)
	}
}

func TestTCHandler_GenerateTC_Blocked(t *testing.T) {
	h := NewTransferCertHandler(&mockTCService{generateErr: service.ErrTCNotEligible}, &mockClearanceService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/transfer-certificates", jsonBody(dto.GenerateTCRequest{
		StudentID: "11111111-1111-1111-1111-111111111111",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/transfer-certificates", func(c *gin.Context) {
		setAuth(c)
		h.GenerateTC(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestTCHandler_CheckClearance_Success(t *testing.T) {
	mock := &mockClearanceService{
		result: &dto.ClearanceResponse{StudentID: "stu-001", Eligible: true},
	}
	h := NewTransferCertHandler(&mockTCService{}, mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/students/stu-001/clearance", nil)

	r := gin.New()
	r.GET("/students/:id/clearance", h.CheckClearance)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ParentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestParentHandler_GetDashboard_SelfAccess(t *testing.T) {
	mock := &mockParentService{
		dashboardResult: &dto.ParentDashboardResponse{ParentID: "par-001", ChildCount: 2},
	}
	h := NewParentHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/parents/par-001/dashboard", nil)

	r := gin.New()
	r.GET("/parents/:id/dashboard", func(c *gin.Context) {
		setParentAuth(c, "par-001")
		h.GetDashboard(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestParentHandler_GetDashboard_CrossParentForbidden(t *testing.T) {
	h := NewParentHandler(&mockParentService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/parents/par-other/dashboard", nil)

	r := gin.New()
	r.GET("/parents/:id/dashboard", func(c *gin.Context) {
		setParentAuth(c, "par-001")
		h.GetDashboard(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestParentHandler_GetChildOverview_AccessDenied(t *testing.T) {
	h := NewParentHandler(&mockParentService{overviewErr: service.ErrParentAccessDenied})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/parents/par-001/children/stu-002", nil)

	r := gin.New()
	r.GET("/parents/:id/children/:student_id", func(c *gin.Context) {
		setParentAuth(c, "par-001")
		h.GetChildOverview(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestParentHandler_GetDashboard_AdminAnyParent(t *testing.T) {
	mock := &mockParentService{
		dashboardResult: &dto.ParentDashboardResponse{ParentID: "par-002"},
	}
	h := NewParentHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/parents/par-002/dashboard", nil)

	r := gin.New()
	r.GET("/parents/:id/dashboard", func(c *gin.Context) {
		setAuth(c)
		h.GetDashboard(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportFeeLedger_Success(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("fake-xlsx-bytes"),
		filename: "费用台账_20260829.xlsx",
	}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/fees", nil)

	r := gin.New()
	r.GET("/export/fees", func(c *gin.Context) {
		setAuth(c)
		h.ExportFeeLedger(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected Content-Type: %s", ct)
	}
	if w.Header().Get("Content-Disposition") == "" {
		t.Error("expected Content-Disposition header to be set")
	}
}

func TestExportHandler_ExportFeeLedger_Empty(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportNoFees})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/fees", nil)

	r := gin.New()
	r.GET("/export/fees", func(c *gin.Context) {
		setAuth(c)
		h.ExportFeeLedger(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// StudentHandler Tests
// ═══════════════════════════════════════════════════════════

type mockStudentService struct {
	createResult  *dto.StudentResponse
	createErr     error
	getResult     *dto.StudentResponse
	getErr        error
	listResult    []dto.StudentResponse
	listTotal     int64
	listErr       error
	updateResult  *dto.StudentResponse
	updateErr     error
	deleteErr     error
	attendanceErr error
	summaryResult *dto.AttendanceSummaryResponse
	summaryErr    error
}

func (m *mockStudentService) Create(_ context.Context, _ *dto.CreateStudentRequest, _ string) (*dto.StudentResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockStudentService) GetByID(_ context.Context, _ string) (*dto.StudentResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockStudentService) List(_ context.Context, _ string, _ *dto.PaginationRequest) ([]dto.StudentResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockStudentService) Update(_ context.Context, _ string, _ *dto.UpdateStudentRequest, _ string) (*dto.StudentResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockStudentService) Delete(_ context.Context, _ string, _ string) error {
	return m.deleteErr
}
func (m *mockStudentService) RecordAttendance(_ context.Context, _ *dto.RecordAttendanceRequest, _ string) error {
	return m.attendanceErr
}
func (m *mockStudentService) AttendanceSummary(_ context.Context, _ string) (*dto.AttendanceSummaryResponse, error) {
	return m.summaryResult, m.summaryErr
}

func TestStudentHandler_GetStudent_NotFound(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{getErr: service.ErrStudentNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/students/stu-missing", nil)

	r := gin.New()
	r.GET("/students/:id", h.GetStudent)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestStudentHandler_CreateStudent_Unauthenticated(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/students", jsonBody(dto.CreateStudentRequest{
		AdmissionNo: "2026001",
		Name:        "张三",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/students", h.CreateStudent)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestStudentHandler_RecordAttendance_Duplicate(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{attendanceErr: service.ErrAttendanceDuplicate})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance", jsonBody(dto.RecordAttendanceRequest{
		StudentID: "11111111-1111-1111-1111-111111111111",
		Date:      "2026-03-02",
		Status:    "PRESENT",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/attendance", func(c *gin.Context) {
		setAuth(c)
		h.RecordAttendance(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

// [自证通过] internal/api/handler/handler_test.go
