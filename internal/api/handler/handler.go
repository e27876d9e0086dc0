package handler

import "github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	Student      *StudentHandler
	SchoolClass  *SchoolClassHandler
	Fee          *FeeHandler
	Grade        *GradeHandler
	IDCard       *IDCardHandler
	TransferCert *TransferCertHandler
	Parent       *ParentHandler
	Announcement *AnnouncementHandler
	Calendar     *CalendarHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Student:      NewStudentHandler(svc.Student),
		SchoolClass:  NewSchoolClassHandler(svc.SchoolClass),
		Fee:          NewFeeHandler(svc.Fee),
		Grade:        NewGradeHandler(svc.Grade),
		IDCard:       NewIDCardHandler(svc.IDCard),
		TransferCert: NewTransferCertHandler(svc.TransferCert, svc.Clearance),
		Parent:       NewParentHandler(svc.Parent),
		Announcement: NewAnnouncementHandler(svc.Announcement),
		Calendar:     NewCalendarHandler(svc.Calendar),
		Export:       NewExportHandler(svc.Export),
	}
}
