package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"digital-supervision/backend/internal/service"
	"digital-supervision/backend/pkg/response"
)

// ── 看板 ──

// DashboardHandler 角色看板 HTTP 处理器
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Get 按当前角色返回看板
// GET /api/v1/dashboard
func (h *DashboardHandler) Get(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	board, err := h.dashboardSvc.Get(c.Request.Context(), caller)
	if err != nil {
		handleCommonError(c, err)
		return
	}
	response.OK(c, board)
}

// ── 报表 ──

// ReportHandler 报表 HTTP 处理器
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// SubjectAverages 各科目平均分
// GET /api/v1/reports/subjects
func (h *ReportHandler) SubjectAverages(c *gin.Context) {
	list, err := h.reportSvc.SubjectAverages(c.Request.Context())
	if err != nil {
		handleCommonError(c, err)
		return
	}
	response.OKList(c, list, len(list))
}

// ── 导出 ──

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportEvaluations 导出评估结果 Excel
// GET /api/v1/export/evaluations
func (h *ExportHandler) ExportEvaluations(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportEvaluations(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	response.Attachment(c, filename, contentTypeXLSX, buf.Bytes())
}

// ExportCalendar 导出督导日历
// GET /api/v1/export/calendar
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportCalendar(c.Request.Context(), caller)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.Attachment(c, filename, contentTypeICS, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, 18001, service.ErrExportGenerateFail.Error())
	default:
		handleCommonError(c, err)
	}
}
