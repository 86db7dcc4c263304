// Package validate 封装共享的 validator 实例。
// 表单结构体可通过 msg 标签指定面向用户的提示，未指定时使用英文翻译。
package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	pkgerrors "digital-supervision/backend/pkg/errors"
)

var (
	v          *validator.Validate
	translator ut.Translator
)

func init() {
	v = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, translator)

	// 错误中使用 JSON 字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("hexcolor_or_empty", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		return v.Var(s, "hexcolor") == nil
	})
}

// Engine 返回底层 validator，供 gin binding 复用
func Engine() *validator.Validate {
	return v
}

// Struct 校验结构体，失败时返回 *errors.ValidationError（只报告第一个字段）
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return pkgerrors.NewValidation(err.Error())
	}

	fe := fieldErrs[0]
	if msg := customMessage(s, fe); msg != "" {
		return pkgerrors.NewValidation(msg)
	}
	return pkgerrors.NewValidation(fe.Translate(translator))
}

// customMessage 沿 StructNamespace 查找出错字段的 msg 标签，支持嵌套结构与切片
func customMessage(s interface{}, fe validator.FieldError) string {
	t := reflect.TypeOf(s)
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) < 2 {
		return ""
	}

	var field reflect.StructField
	for _, part := range parts[1:] {
		for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice || t.Kind() == reflect.Array || t.Kind() == reflect.Map {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			return ""
		}
		if i := strings.IndexByte(part, '['); i >= 0 {
			part = part[:i]
		}
		f, ok := t.FieldByName(part)
		if !ok {
			return ""
		}
		field = f
		t = f.Type
	}
	return field.Tag.Get("msg")
}
