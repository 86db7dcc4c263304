package dto

// ── 督导任务模块 DTO ──

// AssignmentListRequest 督导任务列表查询参数
type AssignmentListRequest struct {
	Status       string `form:"status"        binding:"omitempty,oneof=PENDING COMPLETED"`
	SupervisorID string `form:"supervisor_id" binding:"omitempty,max=64"`
	TeacherID    string `form:"teacher_id"    binding:"omitempty,max=64"`
	SubjectID    string `form:"subject_id"    binding:"omitempty,max=64"`
	Keyword      string `form:"keyword"       binding:"omitempty,max=50"`
}

// CreateAssignmentCartRequest 按科目批量创建督导任务
type CreateAssignmentCartRequest struct {
	SupervisorID string   `json:"supervisor_id" validate:"required" msg:"กรุณาระบุ ผู้นิเทศ ครู ห้องเรียน และเลือกวิชา"`
	TeacherID    string   `json:"teacher_id"    validate:"required" msg:"กรุณาระบุ ผู้นิเทศ ครู ห้องเรียน และเลือกวิชา"`
	ClassID      string   `json:"class_id"      validate:"required" msg:"กรุณาระบุ ผู้นิเทศ ครู ห้องเรียน และเลือกวิชา"`
	SubjectIDs   []string `json:"subject_ids"   validate:"required,min=1,dive,required" msg:"กรุณาระบุ ผู้นิเทศ ครู ห้องเรียน และเลือกวิชา"`
	Year         string   `json:"year"          validate:"required,numeric,len=4" msg:"ปีการศึกษาไม่ถูกต้อง"`
	Semester     string   `json:"semester"      validate:"required,oneof=1 2 3" msg:"ภาคเรียนไม่ถูกต้อง"`
}
