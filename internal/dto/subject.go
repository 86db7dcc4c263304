package dto

// ── 科目模块 DTO ──

// SubjectListRequest 科目列表查询参数
type SubjectListRequest struct {
	Type    string `form:"type"    binding:"omitempty,oneof=Fundamental Additional"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// SubjectRequest 创建/更新科目请求
type SubjectRequest struct {
	Code   string  `json:"code"   validate:"required,max=20" msg:"กรุณาระบุรหัสวิชาและชื่อวิชา"`
	Name   string  `json:"name"   validate:"required,max=100" msg:"กรุณาระบุรหัสวิชาและชื่อวิชา"`
	Credit float64 `json:"credit" validate:"gt=0,lte=20" msg:"หน่วยกิตต้องมากกว่า 0"`
	Type   string  `json:"type"   validate:"required,oneof=Fundamental Additional" msg:"ประเภทวิชาไม่ถูกต้อง"`
}
