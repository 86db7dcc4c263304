package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	pkgerrors "digital-supervision/backend/pkg/errors"
	"digital-supervision/backend/pkg/response"
)

// handleCommonError 各模块未单独处理的通用错误
func handleCommonError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pkgerrors.ErrValidation):
		response.BadRequest(c, 10001, pkgerrors.Message(err, "ข้อมูลไม่ถูกต้อง"))
	case errors.Is(err, pkgerrors.ErrNoPermission):
		response.Forbidden(c, 10003, pkgerrors.ErrNoPermission.Error())
	case errors.Is(err, pkgerrors.ErrStorageUnavailable):
		response.ServiceUnavailable(c, pkgerrors.ErrStorageUnavailable.Error())
	default:
		response.InternalError(c)
	}
}
