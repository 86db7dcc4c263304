package service

import (
	"context"
	"sort"

	"digital-supervision/backend/internal/dto"
	"digital-supervision/backend/internal/model"
	"digital-supervision/backend/internal/repository"
)

// lookup 展示用的关联数据索引；关联实体缺失时对应字段留空
type lookup struct {
	users            map[string]*model.User
	classes          map[string]*model.SchoolClass
	subjects         map[string]*model.Subject
	evalByAssignment map[string]*model.Evaluation
	evals            []model.Evaluation
}

func loadLookup(ctx context.Context, repo *repository.Repository) (*lookup, error) {
	users, err := repo.User.List(ctx, repository.UserListFilters{})
	if err != nil {
		return nil, err
	}
	classes, err := repo.SchoolClass.List(ctx)
	if err != nil {
		return nil, err
	}
	subjects, err := repo.Subject.List(ctx, repository.SubjectListFilters{})
	if err != nil {
		return nil, err
	}
	evals, err := repo.Evaluation.List(ctx)
	if err != nil {
		return nil, err
	}

	l := &lookup{
		users:            make(map[string]*model.User, len(users)),
		classes:          make(map[string]*model.SchoolClass, len(classes)),
		subjects:         make(map[string]*model.Subject, len(subjects)),
		evalByAssignment: make(map[string]*model.Evaluation, len(evals)),
		evals:            evals,
	}
	for i := range users {
		l.users[users[i].ID] = &users[i]
	}
	for i := range classes {
		l.classes[classes[i].ID] = &classes[i]
	}
	for i := range subjects {
		l.subjects[subjects[i].ID] = &subjects[i]
	}
	for i := range evals {
		// 同一任务只保留最早的评估
		if _, ok := l.evalByAssignment[evals[i].AssignmentID]; !ok {
			l.evalByAssignment[evals[i].AssignmentID] = &evals[i]
		}
	}
	return l, nil
}

func (l *lookup) userName(id string) string {
	if u, ok := l.users[id]; ok {
		return u.Name
	}
	return ""
}

func (l *lookup) toAssignmentResponse(a *model.Assignment) dto.AssignmentResponse {
	resp := dto.AssignmentResponse{
		ID:             a.ID,
		SupervisorID:   a.SupervisorID,
		SupervisorName: l.userName(a.SupervisorID),
		TeacherID:      a.TeacherID,
		TeacherName:    l.userName(a.TeacherID),
		ClassID:        a.ClassID,
		SubjectID:      a.SubjectID,
		Status:         string(a.Status),
		Year:           a.Year,
		Semester:       a.Semester,
		CreatedAt:      a.CreatedAt,
	}
	if c, ok := l.classes[a.ClassID]; ok {
		resp.ClassName = c.Name
	}
	if s, ok := l.subjects[a.SubjectID]; ok {
		resp.SubjectCode = s.Code
		resp.SubjectName = s.Name
	}
	if e, ok := l.evalByAssignment[a.ID]; ok {
		resp.EvaluationID = e.ID
	}
	return resp
}

func toEvaluationResponse(e *model.Evaluation) dto.EvaluationResponse {
	photos := e.Photos
	if photos == nil {
		photos = []string{}
	}
	return dto.EvaluationResponse{
		ID:           e.ID,
		AssignmentID: e.AssignmentID,
		Date:         e.Date,
		Scores:       e.Scores,
		TotalScore:   e.TotalScore,
		Percentage:   e.Percentage,
		Grade:        string(e.Grade),
		GradeColor:   e.Grade.Color(),
		Strengths:    e.Strengths,
		Improvements: e.Improvements,
		Suggestions:  e.Suggestions,
		Photos:       photos,
	}
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      string(u.Role),
		TeacherID: u.TeacherID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// canView 管理员可查看全部；督导与教师只能查看与自己相关的任务
func canView(caller Caller, a *model.Assignment) bool {
	switch caller.Role {
	case model.RoleAdmin:
		return true
	case model.RoleSupervisor:
		return a.SupervisorID == caller.UserID
	case model.RoleTeacher:
		return a.TeacherID == caller.UserID
	}
	return false
}

// sortByDateDesc 按评估日期倒序
func sortByDateDesc(list []dto.EvaluationDetailResponse) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Evaluation.Date.After(list[j].Evaluation.Date)
	})
}
