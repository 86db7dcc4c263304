package dto

// SubmitEvaluationRequest 提交评估
type SubmitEvaluationRequest struct {
	Scores       map[string]int `json:"scores"`
	Strengths    string         `json:"strengths"    binding:"max=5000"`
	Improvements string         `json:"improvements" binding:"max=5000"`
	Suggestions  string         `json:"suggestions"  binding:"max=5000"`
	Photos       []string       `json:"photos"`
}
