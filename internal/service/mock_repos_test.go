package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/config"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/model"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/repository"
	apperrors "github.com/RathodVijay9524/School-MGMTSaaS-sub004/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	if u, ok := m.users[id]; ok {
		u.PasswordHash = passwordHash
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
	seq      int
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if student.StudentID == "" {
		m.seq++
		student.StudentID = fmt.Sprintf("stu-%03d", m.seq)
	}
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context, schoolClassID string, offset, limit int) ([]model.Student, int64, error) {
	var all []model.Student
	for _, s := range m.students {
		if schoolClassID != "" && (s.SchoolClassID == nil || *s.SchoolClassID != schoolClassID) {
			continue
		}
		all = append(all, *s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].AdmissionNo < all[j].AdmissionNo })

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) UpdateStatus(_ context.Context, id, status string) error {
	if s, ok := m.students[id]; ok {
		s.Status = status
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.students, id)
	return nil
}

// ── Mock TeacherRepository ──

type mockTeacherRepo struct {
	teachers map[string]*model.Teacher
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{teachers: make(map[string]*model.Teacher)}
}

func (m *mockTeacherRepo) Create(_ context.Context, teacher *model.Teacher) error {
	if teacher.TeacherID == "" {
		teacher.TeacherID = "tch-" + teacher.StaffNo
	}
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id string) (*model.Teacher, error) {
	if t, ok := m.teachers[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) List(_ context.Context) ([]model.Teacher, error) {
	var result []model.Teacher
	for _, t := range m.teachers {
		result = append(result, *t)
	}
	return result, nil
}

// ── Mock ParentRepository ──

type mockParentRepo struct {
	parents  map[string]*model.Parent
	links    map[string]*model.ParentStudent // key: parentID+"/"+studentID
	students *mockStudentRepo                // 共享学生数据，ListChildren 据此返回
}

func newMockParentRepo(students *mockStudentRepo) *mockParentRepo {
	return &mockParentRepo{
		parents:  make(map[string]*model.Parent),
		links:    make(map[string]*model.ParentStudent),
		students: students,
	}
}

func (m *mockParentRepo) Create(_ context.Context, parent *model.Parent) error {
	if parent.ParentID == "" {
		parent.ParentID = "par-" + parent.Name
	}
	m.parents[parent.ParentID] = parent
	return nil
}

func (m *mockParentRepo) GetByID(_ context.Context, id string) (*model.Parent, error) {
	if p, ok := m.parents[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockParentRepo) LinkStudent(_ context.Context, link *model.ParentStudent) error {
	m.links[link.ParentID+"/"+link.StudentID] = link
	return nil
}

func (m *mockParentRepo) UnlinkStudent(_ context.Context, parentID, studentID string) error {
	delete(m.links, parentID+"/"+studentID)
	return nil
}

func (m *mockParentRepo) HasRelation(_ context.Context, parentID, studentID string) (bool, error) {
	_, ok := m.links[parentID+"/"+studentID]
	return ok, nil
}

func (m *mockParentRepo) ListChildren(_ context.Context, parentID string) ([]model.Student, error) {
	var result []model.Student
	for _, link := range m.links {
		if link.ParentID != parentID {
			continue
		}
		if s, ok := m.students.students[link.StudentID]; ok {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StudentID < result[j].StudentID })
	return result, nil
}

// ── Mock SchoolClassRepository ──

type mockSchoolClassRepo struct {
	classes  map[string]*model.SchoolClass
	students *mockStudentRepo
}

func newMockSchoolClassRepo(students *mockStudentRepo) *mockSchoolClassRepo {
	return &mockSchoolClassRepo{classes: make(map[string]*model.SchoolClass), students: students}
}

func (m *mockSchoolClassRepo) Create(_ context.Context, class *model.SchoolClass) error {
	if class.SchoolClassID == "" {
		class.SchoolClassID = "cls-" + class.Name
	}
	m.classes[class.SchoolClassID] = class
	return nil
}

func (m *mockSchoolClassRepo) GetByID(_ context.Context, id string) (*model.SchoolClass, error) {
	if c, ok := m.classes[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSchoolClassRepo) List(_ context.Context) ([]model.SchoolClass, error) {
	var result []model.SchoolClass
	for _, c := range m.classes {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockSchoolClassRepo) Update(_ context.Context, class *model.SchoolClass) error {
	m.classes[class.SchoolClassID] = class
	return nil
}

func (m *mockSchoolClassRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.classes, id)
	return nil
}

func (m *mockSchoolClassRepo) CountStudents(_ context.Context, classID string) (int64, error) {
	var count int64
	for _, s := range m.students.students {
		if s.SchoolClassID != nil && *s.SchoolClassID == classID && s.Status == model.StudentStatusActive {
			count++
		}
	}
	return count, nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[string]*model.Subject
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[string]*model.Subject)}
}

func (m *mockSubjectRepo) Create(_ context.Context, subject *model.Subject) error {
	if subject.SubjectID == "" {
		subject.SubjectID = "sub-" + subject.Code
	}
	m.subjects[subject.SubjectID] = subject
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) List(_ context.Context) ([]model.Subject, error) {
	var result []model.Subject
	for _, s := range m.subjects {
		result = append(result, *s)
	}
	return result, nil
}

// ── Mock FeeRepository ──

type mockFeeRepo struct {
	fees map[string]*model.Fee
	seq  int

	// conflictOnce 模拟一次乐观锁冲突
	conflictOnce bool
}

func newMockFeeRepo() *mockFeeRepo {
	return &mockFeeRepo{fees: make(map[string]*model.Fee)}
}

func (m *mockFeeRepo) Create(_ context.Context, fee *model.Fee) error {
	if fee.FeeID == "" {
		m.seq++
		fee.FeeID = fmt.Sprintf("fee-%03d", m.seq)
	}
	if fee.Version == 0 {
		fee.Version = 1
	}
	m.fees[fee.FeeID] = fee
	return nil
}

func (m *mockFeeRepo) GetByID(_ context.Context, id string) (*model.Fee, error) {
	if f, ok := m.fees[id]; ok {
		copied := *f
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFeeRepo) List(_ context.Context, studentID, status string, offset, limit int) ([]model.Fee, int64, error) {
	var all []model.Fee
	for _, f := range m.fees {
		if studentID != "" && f.StudentID != studentID {
			continue
		}
		if status != "" && f.Status != status {
			continue
		}
		all = append(all, *f)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].DueDate.Before(all[j].DueDate) })

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockFeeRepo) ListAll(_ context.Context) ([]model.Fee, error) {
	var all []model.Fee
	for _, f := range m.fees {
		all = append(all, *f)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].DueDate.Before(all[j].DueDate) })
	return all, nil
}

func (m *mockFeeRepo) ListOverdue(_ context.Context, now time.Time) ([]model.Fee, error) {
	var result []model.Fee
	for _, f := range m.fees {
		if f.Status != model.FeeStatusPaid && f.DueDate.Before(now) {
			result = append(result, *f)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DueDate.Before(result[j].DueDate) })
	return result, nil
}

func (m *mockFeeRepo) ListOutstandingByStudent(_ context.Context, studentID string) ([]model.Fee, error) {
	var result []model.Fee
	for _, f := range m.fees {
		if f.StudentID == studentID && f.Status != model.FeeStatusPaid {
			result = append(result, *f)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DueDate.Before(result[j].DueDate) })
	return result, nil
}

func (m *mockFeeRepo) UpdateWithVersion(_ context.Context, fee *model.Fee) error {
	if m.conflictOnce {
		m.conflictOnce = false
		return apperrors.ErrOptimisticLock
	}
	stored, ok := m.fees[fee.FeeID]
	if !ok || stored.Version != fee.Version {
		return apperrors.ErrOptimisticLock
	}
	fee.Version++
	copied := *fee
	m.fees[fee.FeeID] = &copied
	return nil
}

func (m *mockFeeRepo) SumCollected(_ context.Context) (float64, error) {
	var total float64
	for _, f := range m.fees {
		total += f.AmountPaid
	}
	return total, nil
}

func (m *mockFeeRepo) SumPending(_ context.Context) (float64, error) {
	var total float64
	for _, f := range m.fees {
		total += f.AmountDue - f.AmountPaid
	}
	return total, nil
}

func (m *mockFeeRepo) CountOutstanding(_ context.Context, studentID string) (int64, error) {
	var count int64
	for _, f := range m.fees {
		if f.StudentID == studentID && f.Status != model.FeeStatusPaid {
			count++
		}
	}
	return count, nil
}

// ── Mock GradeRepository ──

type mockGradeRepo struct {
	grades map[string]*model.Grade
	seq    int

	failListByStudent bool // 模拟查询失败，用于部分降级场景
}

func newMockGradeRepo() *mockGradeRepo {
	return &mockGradeRepo{grades: make(map[string]*model.Grade)}
}

func (m *mockGradeRepo) Create(_ context.Context, grade *model.Grade) error {
	if grade.GradeID == "" {
		m.seq++
		grade.GradeID = fmt.Sprintf("grd-%03d", m.seq)
	}
	m.grades[grade.GradeID] = grade
	return nil
}

func (m *mockGradeRepo) GetByID(_ context.Context, id string) (*model.Grade, error) {
	if g, ok := m.grades[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGradeRepo) Update(_ context.Context, grade *model.Grade) error {
	m.grades[grade.GradeID] = grade
	return nil
}

func (m *mockGradeRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.grades, id)
	return nil
}

func (m *mockGradeRepo) ListByStudent(_ context.Context, studentID, semester string, publishedOnly bool) ([]model.Grade, error) {
	if m.failListByStudent {
		return nil, fmt.Errorf("数据库连接中断")
	}
	var result []model.Grade
	for _, g := range m.grades {
		if g.StudentID != studentID {
			continue
		}
		if semester != "" && g.Semester != semester {
			continue
		}
		if publishedOnly && !g.Published {
			continue
		}
		result = append(result, *g)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].GradeDate.After(result[j].GradeDate) })
	return result, nil
}

func (m *mockGradeRepo) ListBySubject(_ context.Context, studentID, subjectID string, publishedOnly bool) ([]model.Grade, error) {
	var result []model.Grade
	for _, g := range m.grades {
		if g.StudentID != studentID || g.SubjectID != subjectID {
			continue
		}
		if publishedOnly && !g.Published {
			continue
		}
		result = append(result, *g)
	}
	return result, nil
}

func (m *mockGradeRepo) ListRecentPublished(_ context.Context, studentID string, limit int) ([]model.Grade, error) {
	var result []model.Grade
	for _, g := range m.grades {
		if g.StudentID == studentID && g.Published {
			result = append(result, *g)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].GradeDate.After(result[j].GradeDate) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockGradeRepo) ListFailing(_ context.Context, studentID string, passingScore float64) ([]model.Grade, error) {
	var result []model.Grade
	for _, g := range m.grades {
		if g.StudentID == studentID && g.Published && g.Score < passingScore {
			result = append(result, *g)
		}
	}
	return result, nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records []*model.Attendance
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{}
}

func (m *mockAttendanceRepo) Create(_ context.Context, attendance *model.Attendance) error {
	if attendance.AttendanceID == "" {
		attendance.AttendanceID = fmt.Sprintf("att-%03d", len(m.records)+1)
	}
	m.records = append(m.records, attendance)
	return nil
}

func (m *mockAttendanceRepo) CountByStudent(_ context.Context, studentID string) (int64, int64, error) {
	var present, total int64
	for _, r := range m.records {
		if r.StudentID != studentID {
			continue
		}
		total++
		if r.Status == model.AttendancePresent || r.Status == model.AttendanceLate {
			present++
		}
	}
	return present, total, nil
}

// ── Mock AnnouncementRepository ──

type mockAnnouncementRepo struct {
	announcements map[string]*model.Announcement
	seq           int
}

func newMockAnnouncementRepo() *mockAnnouncementRepo {
	return &mockAnnouncementRepo{announcements: make(map[string]*model.Announcement)}
}

func (m *mockAnnouncementRepo) Create(_ context.Context, announcement *model.Announcement) error {
	if announcement.AnnouncementID == "" {
		m.seq++
		announcement.AnnouncementID = fmt.Sprintf("ann-%03d", m.seq)
	}
	m.announcements[announcement.AnnouncementID] = announcement
	return nil
}

func (m *mockAnnouncementRepo) List(_ context.Context, offset, limit int) ([]model.Announcement, int64, error) {
	var all []model.Announcement
	for _, a := range m.announcements {
		all = append(all, *a)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockAnnouncementRepo) ListRecentForClass(_ context.Context, schoolClassID *string, limit int) ([]model.Announcement, error) {
	var result []model.Announcement
	for _, a := range m.announcements {
		if a.PublishedAt == nil {
			continue
		}
		if a.SchoolClassID == nil {
			result = append(result, *a)
			continue
		}
		if schoolClassID != nil && *a.SchoolClassID == *schoolClassID {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PublishedAt.After(*result[j].PublishedAt) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockAnnouncementRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.announcements, id)
	return nil
}

// ── Mock IDCardRepository ──

type mockIDCardRepo struct {
	cards map[string]*model.IDCard
	seq   int
}

func newMockIDCardRepo() *mockIDCardRepo {
	return &mockIDCardRepo{cards: make(map[string]*model.IDCard)}
}

func (m *mockIDCardRepo) CreateWithReplacement(_ context.Context, card *model.IDCard, replaceActive bool) (*model.IDCard, error) {
	var existing *model.IDCard
	for _, c := range m.cards {
		if c.HolderID == card.HolderID && c.Status == model.CardStatusActive {
			existing = c
			break
		}
	}

	if existing != nil && !replaceActive {
		return nil, repository.ErrActiveCardExists
	}

	if card.CardID == "" {
		m.seq++
		card.CardID = fmt.Sprintf("card-%03d", m.seq)
	}
	m.cards[card.CardID] = card

	if existing != nil {
		existing.Status = model.CardStatusReplaced
		existing.ReplacedByCardID = &card.CardID
		return existing, nil
	}
	return nil, nil
}

func (m *mockIDCardRepo) GetByID(_ context.Context, id string) (*model.IDCard, error) {
	if c, ok := m.cards[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockIDCardRepo) GetActiveByHolder(_ context.Context, holderID string) (*model.IDCard, error) {
	for _, c := range m.cards {
		if c.HolderID == holderID && c.Status == model.CardStatusActive {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockIDCardRepo) ListByHolder(_ context.Context, holderID string) ([]model.IDCard, error) {
	var result []model.IDCard
	for _, c := range m.cards {
		if c.HolderID == holderID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockIDCardRepo) Update(_ context.Context, card *model.IDCard) error {
	m.cards[card.CardID] = card
	return nil
}

// activeCount 统计持卡人 ACTIVE 卡数，测试断言不变量用
func (m *mockIDCardRepo) activeCount(holderID string) int {
	count := 0
	for _, c := range m.cards {
		if c.HolderID == holderID && c.Status == model.CardStatusActive {
			count++
		}
	}
	return count
}

// ── Mock TransferCertificateRepository ──

type mockTransferCertRepo struct {
	certs    map[string]*model.TransferCertificate
	students *mockStudentRepo
	seq      int
}

func newMockTransferCertRepo(students *mockStudentRepo) *mockTransferCertRepo {
	return &mockTransferCertRepo{certs: make(map[string]*model.TransferCertificate), students: students}
}

func (m *mockTransferCertRepo) Create(_ context.Context, tc *model.TransferCertificate) error {
	if tc.TCID == "" {
		m.seq++
		tc.TCID = fmt.Sprintf("tc-%03d", m.seq)
	}
	m.certs[tc.TCID] = tc
	return nil
}

func (m *mockTransferCertRepo) GetByID(_ context.Context, id string) (*model.TransferCertificate, error) {
	if tc, ok := m.certs[id]; ok {
		copied := *tc
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTransferCertRepo) List(_ context.Context, studentID string, offset, limit int) ([]model.TransferCertificate, int64, error) {
	var all []model.TransferCertificate
	for _, tc := range m.certs {
		if studentID != "" && tc.StudentID != studentID {
			continue
		}
		all = append(all, *tc)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockTransferCertRepo) Update(_ context.Context, tc *model.TransferCertificate) error {
	copied := *tc
	m.certs[tc.TCID] = &copied
	return nil
}

func (m *mockTransferCertRepo) IssueWithStudentTransfer(_ context.Context, tc *model.TransferCertificate) error {
	copied := *tc
	m.certs[tc.TCID] = &copied
	if s, ok := m.students.students[tc.StudentID]; ok {
		s.Status = model.StudentStatusTransferred
	}
	return nil
}

// ── Mock LibraryRepository / DisciplinaryRepository ──

type mockLibraryRepo struct {
	unreturned map[string]int64
}

func newMockLibraryRepo() *mockLibraryRepo {
	return &mockLibraryRepo{unreturned: make(map[string]int64)}
}

func (m *mockLibraryRepo) CountUnreturned(_ context.Context, studentID string) (int64, error) {
	return m.unreturned[studentID], nil
}

type mockDisciplinaryRepo struct {
	holds map[string]int64
}

func newMockDisciplinaryRepo() *mockDisciplinaryRepo {
	return &mockDisciplinaryRepo{holds: make(map[string]int64)}
}

func (m *mockDisciplinaryRepo) CountActiveHolds(_ context.Context, studentID string) (int64, error) {
	return m.holds[studentID], nil
}

// ── Mock CalendarRepository ──

type mockCalendarRepo struct {
	events map[string]*model.CalendarEvent
	seq    int
}

func newMockCalendarRepo() *mockCalendarRepo {
	return &mockCalendarRepo{events: make(map[string]*model.CalendarEvent)}
}

func (m *mockCalendarRepo) Create(_ context.Context, event *model.CalendarEvent) error {
	if event.EventID == "" {
		m.seq++
		event.EventID = fmt.Sprintf("evt-%03d", m.seq)
	}
	m.events[event.EventID] = event
	return nil
}

func (m *mockCalendarRepo) GetByID(_ context.Context, id string) (*model.CalendarEvent, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCalendarRepo) List(_ context.Context, from, to *time.Time) ([]model.CalendarEvent, error) {
	var result []model.CalendarEvent
	for _, e := range m.events {
		if from != nil && e.EndsAt.Before(*from) {
			continue
		}
		if to != nil && e.StartsAt.After(*to) {
			continue
		}
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartsAt.Before(result[j].StartsAt) })
	return result, nil
}

func (m *mockCalendarRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.events, id)
	return nil
}

// ── Mock SequenceRepository ──

type mockSequenceRepo struct {
	next map[string]int
}

func newMockSequenceRepo() *mockSequenceRepo {
	return &mockSequenceRepo{next: make(map[string]int)}
}

func (m *mockSequenceRepo) Next(_ context.Context, docType string, year int) (int, error) {
	key := fmt.Sprintf("%s:%d", docType, year)
	m.next[key]++
	return m.next[key], nil
}

// ── 测试用聚合 ──

type testRepos struct {
	repo         *repository.Repository
	user         *mockUserRepo
	student      *mockStudentRepo
	teacher      *mockTeacherRepo
	parent       *mockParentRepo
	schoolClass  *mockSchoolClassRepo
	subject      *mockSubjectRepo
	fee          *mockFeeRepo
	grade        *mockGradeRepo
	attendance   *mockAttendanceRepo
	announcement *mockAnnouncementRepo
	idCard       *mockIDCardRepo
	transferCert *mockTransferCertRepo
	library      *mockLibraryRepo
	disciplinary *mockDisciplinaryRepo
	calendar     *mockCalendarRepo
	sequence     *mockSequenceRepo
}

func newTestRepos() *testRepos {
	students := newMockStudentRepo()
	t := &testRepos{
		user:         newMockUserRepo(),
		student:      students,
		teacher:      newMockTeacherRepo(),
		parent:       newMockParentRepo(students),
		schoolClass:  newMockSchoolClassRepo(students),
		subject:      newMockSubjectRepo(),
		fee:          newMockFeeRepo(),
		grade:        newMockGradeRepo(),
		attendance:   newMockAttendanceRepo(),
		announcement: newMockAnnouncementRepo(),
		idCard:       newMockIDCardRepo(),
		transferCert: newMockTransferCertRepo(students),
		library:      newMockLibraryRepo(),
		disciplinary: newMockDisciplinaryRepo(),
		calendar:     newMockCalendarRepo(),
		sequence:     newMockSequenceRepo(),
	}
	t.repo = &repository.Repository{
		User:         t.user,
		Student:      t.student,
		Teacher:      t.teacher,
		Parent:       t.parent,
		SchoolClass:  t.schoolClass,
		Subject:      t.subject,
		Fee:          t.fee,
		Grade:        t.grade,
		Attendance:   t.attendance,
		Announcement: t.announcement,
		IDCard:       t.idCard,
		TransferCert: t.transferCert,
		Library:      t.library,
		Disciplinary: t.disciplinary,
		Calendar:     t.calendar,
		Sequence:     t.sequence,
	}
	return t
}

// testPolicyConfig 测试用默认策略配置
func testPolicyConfig() *config.Config {
	return &config.Config{
		Policy: config.PolicyConfig{
			PassingScore:        40.0,
			GPAWarnThreshold:    2.0,
			AttendanceWarnRate:  75.0,
			CardReplacementFee:  50.0,
			CardValidityYears:   4,
			DashboardCacheTTL:   time.Minute,
			RecentGradesLimit:   5,
			RecentAnnounceLimit: 5,
		},
	}
}

// [自证通过] internal/service/mock_repos_test.go
