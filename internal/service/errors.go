package service

import (
	"errors"

	pkgerrors "digital-supervision/backend/pkg/errors"
)

// businessErrors 可直接返回给调用方的业务错误，不记录错误日志
var businessErrors = []error{
	pkgerrors.ErrValidation,
	ErrNoPermission,
	ErrInvalidCredentials,
	ErrInvalidTeacherID,
	ErrUserNotFound,
	ErrUsernameExists,
	ErrTeacherIDExists,
	ErrCannotDeleteSelf,
	ErrClassNotFound,
	ErrSubjectNotFound,
	ErrSubjectCodeExists,
	ErrAssignmentNotFound,
	ErrAssignmentCompleted,
	ErrInvalidSupervisor,
	ErrInvalidTeacher,
	ErrDuplicateSubject,
	ErrEvaluationNotFound,
	ErrSectionNotFound,
	ErrItemNotFound,
	ErrInvalidScale,
	ErrInvalidLevel,
}

func isBusinessError(err error) bool {
	for _, target := range businessErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func validationError(msg string) error {
	return pkgerrors.NewValidation(msg)
}
