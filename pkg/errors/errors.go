package errors

import "errors"

// ── 通用错误分类 ──

var (
	// ErrValidation 输入校验失败（缺项、越界、必填字段为空等）
	ErrValidation = errors.New("ข้อมูลไม่ถูกต้อง")
	// ErrStorageUnavailable 记录存储不可用或持久化失败
	ErrStorageUnavailable = errors.New("ไม่สามารถบันทึกข้อมูลได้")
	// ErrNoPermission 调用者无权访问该资源
	ErrNoPermission = errors.New("ไม่มีสิทธิ์เข้าถึงข้อมูลนี้")
)

// ValidationError 携带面向用户的提示信息，errors.Is(err, ErrValidation) 为 true
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidation 创建校验错误
func NewValidation(msg string) error {
	return &ValidationError{Message: msg}
}

// Message 返回错误中面向用户的提示；非校验错误返回 fallback
func Message(err error, fallback string) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return fallback
}
