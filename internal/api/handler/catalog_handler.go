package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"digital-supervision/backend/internal/dto"
	"digital-supervision/backend/internal/service"
	"digital-supervision/backend/pkg/response"
)

// ── 班级 ──

// SchoolClassHandler 班级模块 HTTP 处理器
type SchoolClassHandler struct {
	classSvc service.SchoolClassService
}

// NewSchoolClassHandler 创建 SchoolClassHandler
func NewSchoolClassHandler(classSvc service.SchoolClassService) *SchoolClassHandler {
	return &SchoolClassHandler{classSvc: classSvc}
}

// List GET /api/v1/classes
func (h *SchoolClassHandler) List(c *gin.Context) {
	classes, err := h.classSvc.List(c.Request.Context())
	if err != nil {
		h.handleClassError(c, err)
		return
	}
	response.OKList(c, classes, len(classes))
}

// Create POST /api/v1/classes
func (h *SchoolClassHandler) Create(c *gin.Context) {
	var req dto.SchoolClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "ข้อมูลไม่ถูกต้อง")
		return
	}

	class, err := h.classSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleClassError(c, err)
		return
	}
	response.Created(c, class)
}

// Update PUT /api/v1/classes/:id
func (h *SchoolClassHandler) Update(c *gin.Context) {
	var req dto.SchoolClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "ข้อมูลไม่ถูกต้อง")
		return
	}

	class, err := h.classSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleClassError(c, err)
		return
	}
	response.OK(c, class)
}

// Delete DELETE /api/v1/classes/:id
func (h *SchoolClassHandler) Delete(c *gin.Context) {
	if err := h.classSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleClassError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *SchoolClassHandler) handleClassError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 13001, service.ErrClassNotFound.Error())
	default:
		handleCommonError(c, err)
	}
}

// ── 科目 ──

// SubjectHandler 科目模块 HTTP 处理器
type SubjectHandler struct {
	subjectSvc service.SubjectService
}

// NewSubjectHandler 创建 SubjectHandler
func NewSubjectHandler(subjectSvc service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectSvc: subjectSvc}
}

// List GET /api/v1/subjects?type=&keyword=
func (h *SubjectHandler) List(c *gin.Context) {
	var req dto.SubjectListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "ข้อมูลไม่ถูกต้อง")
		return
	}

	subjects, err := h.subjectSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}
	response.OKList(c, subjects, len(subjects))
}

// Create POST /api/v1/subjects
func (h *SubjectHandler) Create(c *gin.Context) {
	var req dto.SubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "ข้อมูลไม่ถูกต้อง")
		return
	}

	subject, err := h.subjectSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}
	response.Created(c, subject)
}

// Update PUT /api/v1/subjects/:id
func (h *SubjectHandler) Update(c *gin.Context) {
	var req dto.SubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "ข้อมูลไม่ถูกต้อง")
		return
	}

	subject, err := h.subjectSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}
	response.OK(c, subject)
}

// Delete DELETE /api/v1/subjects/:id
func (h *SubjectHandler) Delete(c *gin.Context) {
	if err := h.subjectSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleSubjectError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *SubjectHandler) handleSubjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 14001, service.ErrSubjectNotFound.Error())
	case errors.Is(err, service.ErrSubjectCodeExists):
		response.Conflict(c, 14002, service.ErrSubjectCodeExists.Error())
	default:
		handleCommonError(c, err)
	}
}
