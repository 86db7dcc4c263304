package dto

// ── 评分表模块 DTO ──

// CreateSectionRequest 新建分组，缺省使用默认标题与颜色
type CreateSectionRequest struct {
	Title *string `json:"title" validate:"omitempty,min=1,max=200" msg:"กรุณาระบุชื่อหัวข้อ"`
	Color *string `json:"color" validate:"omitempty,hexcolor_or_empty" msg:"รหัสสีไม่ถูกต้อง"`
}

// UpdateSectionRequest 更新分组标题/颜色
type UpdateSectionRequest struct {
	Title *string `json:"title" validate:"omitempty,min=1,max=200" msg:"กรุณาระบุชื่อหัวข้อ"`
	Color *string `json:"color" validate:"omitempty,hexcolor_or_empty" msg:"รหัสสีไม่ถูกต้อง"`
}

// CreateItemRequest 新建评分项，缺省使用默认名称
type CreateItemRequest struct {
	Label *string `json:"label" validate:"omitempty,min=1,max=300" msg:"กรุณาระบุข้อประเมิน"`
}

// UpdateItemRequest 更新评分项名称
type UpdateItemRequest struct {
	Label string `json:"label" validate:"required,max=300" msg:"กรุณาระบุข้อประเมิน"`
}

// RatingLevelRequest 等级名称修改
type RatingLevelRequest struct {
	Value int    `json:"value" validate:"min=1"`
	Label string `json:"label" validate:"required,max=100" msg:"กรุณาระบุชื่อระดับคะแนน"`
}

// UpdateSettingsRequest 更新评分尺度：先按 MaxScaleValue 重建等级，再应用名称修改
type UpdateSettingsRequest struct {
	MaxScaleValue *int                 `json:"max_scale_value"`
	RatingLevels  []RatingLevelRequest `json:"rating_levels" validate:"omitempty,dive"`
}
