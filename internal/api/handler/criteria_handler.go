package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"digital-supervision/backend/internal/dto"
	"digital-supervision/backend/internal/service"
	"digital-supervision/backend/pkg/response"
)

// CriteriaHandler 评分表与评分尺度 HTTP 处理器
type CriteriaHandler struct {
	criteriaSvc service.CriteriaService
}

// NewCriteriaHandler 创建 CriteriaHandler
func NewCriteriaHandler(criteriaSvc service.CriteriaService) *CriteriaHandler {
	return &CriteriaHandler{criteriaSvc: criteriaSvc}
}

// ────────────────────── 评分表 ──────────────────────

// GetRubric GET /api/v1/criteria
func (h *CriteriaHandler) GetRubric(c *gin.Context) {
	sections, err := h.criteriaSvc.GetRubric(c.Request.Context())
	if err != nil {
		h.handleCriteriaError(c, err)
		return
	}
	response.OK(c, sections)
}

// AddSection POST /api/v1/criteria/sections
func (h *CriteriaHandler) AddSection(c *gin.Context) {
	var req dto.CreateSectionRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.BadRequest(c, 10001, "ข้อมูลไม่ถูกต้อง")
		return
	}

	section, err := h.criteriaSvc.AddSection(c.Request.Context(), &req)
	if err != nil {
		h.handleCriteriaError(c, err)
		return
	}
	response.Created(c, section)
}

// UpdateSection PUT /api/v1/criteria/sections/:id
func (h *CriteriaHandler) UpdateSection(c *gin.Context) {
	var req dto.UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "ข้อมูลไม่ถูกต้อง")
		return
	}

	section, err := h.criteriaSvc.UpdateSection(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleCriteriaError(c, err)
		return
	}
	response.OK(c, section)
}

// DeleteSection DELETE /api/v1/criteria/sections/:id
func (h *CriteriaHandler) DeleteSection(c *gin.Context) {
	if err := h.criteriaSvc.DeleteSection(c.Request.Context(), c.Param("id")); err != nil {
		h.handleCriteriaError(c, err)
		return
	}
	response.OK(c, nil)
}

// AddItem POST /api/v1/criteria/sections/:id/items
func (h *CriteriaHandler) AddItem(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.BadRequest(c, 10001, "ข้อมูลไม่ถูกต้อง")
		return
	}

	item, err := h.criteriaSvc.AddItem(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleCriteriaError(c, err)
		return
	}
	response.Created(c, item)
}

// UpdateItem PUT /api/v1/criteria/sections/:id/items/:itemId
func (h *CriteriaHandler) UpdateItem(c *gin.Context) {
	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "ข้อมูลไม่ถูกต้อง")
		return
	}

	item, err := h.criteriaSvc.UpdateItem(c.Request.Context(), c.Param("id"), c.Param("itemId"), &req)
	if err != nil {
		h.handleCriteriaError(c, err)
		return
	}
	response.OK(c, item)
}

// DeleteItem DELETE /api/v1/criteria/sections/:id/items/:itemId
func (h *CriteriaHandler) DeleteItem(c *gin.Context) {
	if err := h.criteriaSvc.DeleteItem(c.Request.Context(), c.Param("id"), c.Param("itemId")); err != nil {
		h.handleCriteriaError(c, err)
		return
	}
	response.OK(c, nil)
}

// ────────────────────── 评分尺度 ──────────────────────

// GetSettings GET /api/v1/criteria/settings
func (h *CriteriaHandler) GetSettings(c *gin.Context) {
	settings, err := h.criteriaSvc.GetSettings(c.Request.Context())
	if err != nil {
		h.handleCriteriaError(c, err)
		return
	}
	response.OK(c, settings)
}

// UpdateSettings PUT /api/v1/criteria/settings
func (h *CriteriaHandler) UpdateSettings(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "ข้อมูลไม่ถูกต้อง")
		return
	}

	settings, err := h.criteriaSvc.UpdateSettings(c.Request.Context(), &req)
	if err != nil {
		h.handleCriteriaError(c, err)
		return
	}
	response.OK(c, settings)
}

func (h *CriteriaHandler) handleCriteriaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSectionNotFound):
		response.NotFound(c, 16001, service.ErrSectionNotFound.Error())
	case errors.Is(err, service.ErrItemNotFound):
		response.NotFound(c, 16002, service.ErrItemNotFound.Error())
	case errors.Is(err, service.ErrInvalidScale):
		response.BadRequest(c, 16003, service.ErrInvalidScale.Error())
	case errors.Is(err, service.ErrInvalidLevel):
		response.BadRequest(c, 16004, service.ErrInvalidLevel.Error())
	default:
		handleCommonError(c, err)
	}
}

// bindOptionalJSON 请求体为空时保留零值，新建分组/评分项允许不传参数
func bindOptionalJSON(c *gin.Context, obj interface{}) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(obj)
}
