package model

// SubjectType 科目类型
type SubjectType string

const (
	SubjectFundamental SubjectType = "Fundamental"
	SubjectAdditional  SubjectType = "Additional"
)

// Subject 科目，Code 全局唯一
type Subject struct {
	ID     string      `json:"id"`
	Code   string      `json:"code"`
	Name   string      `json:"name"`
	Credit float64     `json:"credit"`
	Type   SubjectType `json:"type"`
	BaseModel
}
