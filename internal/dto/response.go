package dto

import "time"

// ── 认证模块响应 ──

// TokenResponse 登录成功响应
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int          `json:"expires_in"` // Access Token 有效期（秒）
	User        UserResponse `json:"user"`
}

// ── 用户模块响应 ──

// UserResponse 用户信息响应（不含密码）
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	TeacherID string    `json:"teacher_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ── 班级 / 科目响应 ──

// SchoolClassResponse 班级响应
type SchoolClassResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SubjectResponse 科目响应
type SubjectResponse struct {
	ID     string  `json:"id"`
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Credit float64 `json:"credit"`
	Type   string  `json:"type"`
}

// ── 督导任务响应 ──

// AssignmentResponse 督导任务（含关联名称，关联缺失时为空）
type AssignmentResponse struct {
	ID             string    `json:"id"`
	SupervisorID   string    `json:"supervisor_id"`
	SupervisorName string    `json:"supervisor_name"`
	TeacherID      string    `json:"teacher_id"`
	TeacherName    string    `json:"teacher_name"`
	ClassID        string    `json:"class_id"`
	ClassName      string    `json:"class_name"`
	SubjectID      string    `json:"subject_id"`
	SubjectCode    string    `json:"subject_code"`
	SubjectName    string    `json:"subject_name"`
	Status         string    `json:"status"`
	Year           string    `json:"year"`
	Semester       string    `json:"semester"`
	EvaluationID   string    `json:"evaluation_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ── 评估响应 ──

// EvaluationResponse 评估结果
type EvaluationResponse struct {
	ID           string         `json:"id"`
	AssignmentID string         `json:"assignment_id"`
	Date         time.Time      `json:"date"`
	Scores       map[string]int `json:"scores"`
	TotalScore   int            `json:"total_score"`
	Percentage   int            `json:"percentage"`
	Grade        string         `json:"grade"`
	GradeColor   string         `json:"grade_color"`
	Strengths    string         `json:"strengths"`
	Improvements string         `json:"improvements"`
	Suggestions  string         `json:"suggestions"`
	Photos       []string       `json:"photos"`
}

// EvaluationDetailResponse 评估详情（含任务与关联名称）
type EvaluationDetailResponse struct {
	Evaluation EvaluationResponse `json:"evaluation"`
	Assignment AssignmentResponse `json:"assignment"`
}

// ── 评分表响应 ──

// CriteriaItemResponse 评分项
type CriteriaItemResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// CriteriaSectionResponse 评分分组
type CriteriaSectionResponse struct {
	ID    string                 `json:"id"`
	Title string                 `json:"title"`
	Color string                 `json:"color"`
	Items []CriteriaItemResponse `json:"items"`
}

// RatingLevelResponse 评分等级
type RatingLevelResponse struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// SettingsResponse 评分尺度
type SettingsResponse struct {
	MaxScaleValue      int                   `json:"max_scale_value"`
	RatingLevels       []RatingLevelResponse `json:"rating_levels"`
	AllowedScaleValues []int                 `json:"allowed_scale_values"`
}

// ── 报表响应 ──

// SubjectAverageResponse 科目平均分
type SubjectAverageResponse struct {
	SubjectID   string  `json:"subject_id"`
	SubjectCode string  `json:"subject_code"`
	SubjectName string  `json:"subject_name"`
	Evaluations int     `json:"evaluations"`
	Average     float64 `json:"average"`
}

// GradeCountResponse 等级分布
type GradeCountResponse struct {
	Grade string `json:"grade"`
	Color string `json:"color"`
	Count int    `json:"count"`
}
