package dto

// SchoolClassRequest 创建/更新班级请求
type SchoolClassRequest struct {
	Name string `json:"name" validate:"required,max=50" msg:"กรุณาระบุชื่อชั้นเรียน"`
}
