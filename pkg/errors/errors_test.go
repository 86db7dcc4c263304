package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_IsErrValidation(t *testing.T) {
	err := fmt.Errorf("wrap: %w", NewValidation("กรุณาระบุชื่อ"))
	if !errors.Is(err, ErrValidation) {
		t.Error("期望包装后的校验错误仍匹配 ErrValidation")
	}
	if got := Message(err, "x"); got != "กรุณาระบุชื่อ" {
		t.Errorf("期望提示=กรุณาระบุชื่อ，实际=%s", got)
	}
}

func TestMessage_Fallback(t *testing.T) {
	if got := Message(errors.New("boom"), "fallback"); got != "fallback" {
		t.Errorf("期望 fallback，实际=%s", got)
	}
}
