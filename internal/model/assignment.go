package model

// AssignmentStatus 督导任务状态，只允许 PENDING → COMPLETED
type AssignmentStatus string

const (
	AssignmentPending   AssignmentStatus = "PENDING"
	AssignmentCompleted AssignmentStatus = "COMPLETED"
)

// Assignment 督导任务：一名督导、一名教师、一个班级、一门科目、一个学期
type Assignment struct {
	ID           string           `json:"id"`
	SupervisorID string           `json:"supervisor_id"`
	TeacherID    string           `json:"teacher_id"`
	ClassID      string           `json:"class_id"`
	SubjectID    string           `json:"subject_id"`
	Status       AssignmentStatus `json:"status"`
	Year         string           `json:"year"`
	Semester     string           `json:"semester"`
	BaseModel
}

// IsCompleted 是否已完成
func (a *Assignment) IsCompleted() bool {
	return a.Status == AssignmentCompleted
}
