package model

// SchoolClass 班级（无层级）
type SchoolClass struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	BaseModel
}
