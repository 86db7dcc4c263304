package handler

import "digital-supervision/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	SchoolClass *SchoolClassHandler
	Subject     *SubjectHandler
	Assignment  *AssignmentHandler
	Evaluation  *EvaluationHandler
	Criteria    *CriteriaHandler
	Dashboard   *DashboardHandler
	Report      *ReportHandler
	Export      *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		User:        NewUserHandler(svc.User),
		SchoolClass: NewSchoolClassHandler(svc.SchoolClass),
		Subject:     NewSubjectHandler(svc.Subject),
		Assignment:  NewAssignmentHandler(svc.Assignment, svc.Evaluation),
		Evaluation:  NewEvaluationHandler(svc.Evaluation, svc.Report),
		Criteria:    NewCriteriaHandler(svc.Criteria),
		Dashboard:   NewDashboardHandler(svc.Dashboard),
		Report:      NewReportHandler(svc.Report),
		Export:      NewExportHandler(svc.Export),
	}
}
