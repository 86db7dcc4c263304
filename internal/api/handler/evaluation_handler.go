package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"digital-supervision/backend/internal/service"
	"digital-supervision/backend/pkg/response"
)

// EvaluationHandler 评估结果 HTTP 处理器
type EvaluationHandler struct {
	evaluationSvc service.EvaluationService
	reportSvc     service.ReportService
}

// NewEvaluationHandler 创建 EvaluationHandler
func NewEvaluationHandler(evaluationSvc service.EvaluationService, reportSvc service.ReportService) *EvaluationHandler {
	return &EvaluationHandler{evaluationSvc: evaluationSvc, reportSvc: reportSvc}
}

// Mine 教师本人的评估记录
// GET /api/v1/evaluations/me
func (h *EvaluationHandler) Mine(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	list, err := h.evaluationSvc.ListForTeacher(c.Request.Context(), caller)
	if err != nil {
		handleEvaluationError(c, err)
		return
	}

	response.OKList(c, list, len(list))
}

// Detail 评估详情
// GET /api/v1/evaluations/:id
func (h *EvaluationHandler) Detail(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	detail, err := h.evaluationSvc.GetDetail(c.Request.Context(), c.Param("id"), caller)
	if err != nil {
		handleEvaluationError(c, err)
		return
	}

	response.OK(c, detail)
}

// Print 可打印的评估报告
// GET /api/v1/evaluations/:id/print
func (h *EvaluationHandler) Print(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	body, err := h.reportSvc.RenderEvaluation(c.Request.Context(), c.Param("id"), caller)
	if err != nil {
		handleEvaluationError(c, err)
		return
	}

	response.HTML(c, body)
}

func handleEvaluationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEvaluationNotFound):
		response.NotFound(c, 17001, service.ErrEvaluationNotFound.Error())
	default:
		handleCommonError(c, err)
	}
}
