package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "digital-supervision/backend/pkg/errors"
)

type staffForm struct {
	Name     string `json:"name" validate:"required" msg:"กรุณาระบุชื่อ"`
	Role     string `json:"role" validate:"required,oneof=ADMIN SUPERVISOR TEACHER"`
	Username string `json:"username" validate:"required_unless=Role TEACHER"`
	Color    string `json:"color" validate:"hexcolor_or_empty"`
}

func TestStruct_CustomMessage(t *testing.T) {
	err := Struct(staffForm{Role: "ADMIN", Username: "a"})
	assert.True(t, errors.Is(err, pkgerrors.ErrValidation))
	assert.Equal(t, "กรุณาระบุชื่อ", err.Error())
}

func TestStruct_TranslatedMessageUsesJSONName(t *testing.T) {
	err := Struct(&staffForm{Name: "x", Role: "ADMIN"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "username")
}

func TestStruct_RoleConditional(t *testing.T) {
	assert.NoError(t, Struct(staffForm{Name: "x", Role: "TEACHER"}))
}

func TestStruct_HexColor(t *testing.T) {
	assert.NoError(t, Struct(staffForm{Name: "x", Role: "TEACHER", Color: "#26A69A"}))
	assert.Error(t, Struct(staffForm{Name: "x", Role: "TEACHER", Color: "teal"}))
}

type levelForm struct {
	Label string `json:"label" validate:"required" msg:"กรุณาระบุชื่อระดับคะแนน"`
}

type settingsForm struct {
	IDs    []string    `json:"ids" validate:"omitempty,dive,required" msg:"กรุณาเลือกวิชา"`
	Levels []levelForm `json:"levels" validate:"omitempty,dive"`
}

func TestStruct_NestedMessages(t *testing.T) {
	err := Struct(settingsForm{Levels: []levelForm{{Label: "x"}, {}}})
	assert.Equal(t, "กรุณาระบุชื่อระดับคะแนน", err.Error())

	err = Struct(&settingsForm{IDs: []string{"a", ""}})
	assert.Equal(t, "กรุณาเลือกวิชา", err.Error())
}
