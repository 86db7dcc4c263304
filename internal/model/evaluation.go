package model

import "time"

// Grade 五级评定
type Grade string

const (
	GradeExcellent Grade = "ดีมาก"
	GradeGood      Grade = "ดี"
	GradeFair      Grade = "พอใช้"
	GradeImprove   Grade = "ควรปรับปรุง"
	GradeFail      Grade = "ไม่ผ่าน"
)

// Grades 由高到低
var Grades = []Grade{GradeExcellent, GradeGood, GradeFair, GradeImprove, GradeFail}

// gradeColors 教师看板中各等级的颜色
var gradeColors = map[Grade]string{
	GradeExcellent: "#26A69A",
	GradeGood:      "#AED581",
	GradeFair:      "#FFCA28",
	GradeImprove:   "#FF8A65",
	GradeFail:      "#EF5350",
}

// Color 等级颜色
func (g Grade) Color() string {
	if c, ok := gradeColors[g]; ok {
		return c
	}
	return "#9E9E9E"
}

// Rank 等级序号，越小越好；未知等级排在最后
func (g Grade) Rank() int {
	for i, v := range Grades {
		if v == g {
			return i
		}
	}
	return len(Grades)
}

// Evaluation 督导评估结果，创建后不可修改
// Scores 保存评分项 ID → 等级的原始快照
type Evaluation struct {
	ID           string         `json:"id"`
	AssignmentID string         `json:"assignment_id"`
	Date         time.Time      `json:"date"`
	Scores       map[string]int `json:"scores"`
	TotalScore   int            `json:"total_score"`
	Percentage   int            `json:"percentage"`
	Grade        Grade          `json:"grade"`
	Strengths    string         `json:"strengths"`
	Improvements string         `json:"improvements"`
	Suggestions  string         `json:"suggestions"`
	Photos       []string       `json:"photos"`
}
