package dto

// ── 看板响应 ──

// DashboardResponse 按角色返回对应看板，其余字段为空
type DashboardResponse struct {
	Role       string                       `json:"role"`
	Admin      *AdminDashboardResponse      `json:"admin,omitempty"`
	Supervisor *SupervisorDashboardResponse `json:"supervisor,omitempty"`
	Teacher    *TeacherDashboardResponse    `json:"teacher,omitempty"`
}

// AdminDashboardResponse 管理员看板
type AdminDashboardResponse struct {
	TotalAssignments     int                      `json:"total_assignments"`
	CompletedAssignments int                      `json:"completed_assignments"`
	AveragePercentage    float64                  `json:"average_percentage"`
	SubjectAverages      []SubjectAverageResponse `json:"subject_averages"`
}

// SupervisorDashboardResponse 督导看板
type SupervisorDashboardResponse struct {
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

// TeacherDashboardResponse 教师看板
type TeacherDashboardResponse struct {
	Evaluations       int                        `json:"evaluations"`
	AveragePercentage float64                    `json:"average_percentage"`
	LatestTerm        string                     `json:"latest_term"` // semester/year，无评估时为 "-"
	GradeCounts       []GradeCountResponse       `json:"grade_counts"`
	Recent            []EvaluationDetailResponse `json:"recent"`
}
