package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User         UserRepository
	Student      StudentRepository
	Teacher      TeacherRepository
	Parent       ParentRepository
	SchoolClass  SchoolClassRepository
	Subject      SubjectRepository
	Fee          FeeRepository
	Grade        GradeRepository
	Attendance   AttendanceRepository
	Announcement AnnouncementRepository
	IDCard       IDCardRepository
	TransferCert TransferCertificateRepository
	Library      LibraryRepository
	Disciplinary DisciplinaryRepository
	Calendar     CalendarRepository
	Sequence     SequenceRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Student:      NewStudentRepo(db),
		Teacher:      NewTeacherRepo(db),
		Parent:       NewParentRepo(db),
		SchoolClass:  NewSchoolClassRepo(db),
		Subject:      NewSubjectRepo(db),
		Fee:          NewFeeRepo(db),
		Grade:        NewGradeRepo(db),
		Attendance:   NewAttendanceRepo(db),
		Announcement: NewAnnouncementRepo(db),
		IDCard:       NewIDCardRepo(db),
		TransferCert: NewTransferCertRepo(db),
		Library:      NewLibraryRepo(db),
		Disciplinary: NewDisciplinaryRepo(db),
		Calendar:     NewCalendarRepo(db),
		Sequence:     NewSequenceRepo(db),
	}
}
