package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"digital-supervision/backend/internal/dto"
	"digital-supervision/backend/internal/service"
	"digital-supervision/backend/pkg/response"
)

// AssignmentHandler 督导任务模块 HTTP 处理器
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
	evaluationSvc service.EvaluationService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService, evaluationSvc service.EvaluationService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc, evaluationSvc: evaluationSvc}
}

// List 督导任务列表，督导只能看到自己的任务
// GET /api/v1/assignments?status=&supervisor_id=&teacher_id=&subject_id=&keyword=
func (h *AssignmentHandler) List(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.AssignmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "ข้อมูลไม่ถูกต้อง")
		return
	}

	list, err := h.assignmentSvc.List(c.Request.Context(), &req, caller)
	if err != nil {
		handleAssignmentError(c, err)
		return
	}

	response.OKList(c, list, len(list))
}

// Get 督导任务详情
// GET /api/v1/assignments/:id
func (h *AssignmentHandler) Get(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	a, err := h.assignmentSvc.GetByID(c.Request.Context(), c.Param("id"), caller)
	if err != nil {
		handleAssignmentError(c, err)
		return
	}

	response.OK(c, a)
}

// CreateCart 按所选科目批量创建督导任务
// POST /api/v1/assignments/cart
func (h *AssignmentHandler) CreateCart(c *gin.Context) {
	var req dto.CreateAssignmentCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "ข้อมูลไม่ถูกต้อง")
		return
	}

	list, err := h.assignmentSvc.CreateCart(c.Request.Context(), &req)
	if err != nil {
		handleAssignmentError(c, err)
		return
	}

	response.Created(c, list)
}

// Delete 删除未完成的督导任务
// DELETE /api/v1/assignments/:id
func (h *AssignmentHandler) Delete(c *gin.Context) {
	if err := h.assignmentSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleAssignmentError(c, err)
		return
	}
	response.OK(c, nil)
}

// SubmitEvaluation 督导提交评估
// POST /api/v1/assignments/:id/evaluation
func (h *AssignmentHandler) SubmitEvaluation(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.SubmitEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "ข้อมูลไม่ถูกต้อง")
		return
	}

	result, err := h.evaluationSvc.Submit(c.Request.Context(), c.Param("id"), &req, caller)
	if err != nil {
		handleAssignmentError(c, err)
		return
	}

	response.Created(c, result)
}

func handleAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 15001, service.ErrAssignmentNotFound.Error())
	case errors.Is(err, service.ErrAssignmentCompleted):
		response.Conflict(c, 15002, service.ErrAssignmentCompleted.Error())
	case errors.Is(err, service.ErrInvalidSupervisor):
		response.BadRequest(c, 15003, service.ErrInvalidSupervisor.Error())
	case errors.Is(err, service.ErrInvalidTeacher):
		response.BadRequest(c, 15004, service.ErrInvalidTeacher.Error())
	case errors.Is(err, service.ErrDuplicateSubject):
		response.BadRequest(c, 15005, service.ErrDuplicateSubject.Error())
	case errors.Is(err, service.ErrClassNotFound):
		response.BadRequest(c, 15006, service.ErrClassNotFound.Error())
	case errors.Is(err, service.ErrSubjectNotFound):
		response.BadRequest(c, 15007, service.ErrSubjectNotFound.Error())
	default:
		handleCommonError(c, err)
	}
}
