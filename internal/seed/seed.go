// Package seed 在首次启动时写入默认数据集。
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"digital-supervision/backend/internal/model"
	"digital-supervision/backend/pkg/store"
)

// Dataset 七个命名空间的完整初始数据
type Dataset struct {
	Users       []model.User
	Classes     []model.SchoolClass
	Subjects    []model.Subject
	Assignments []model.Assignment
	Evaluations []model.Evaluation
	Criteria    model.Rubric
	Settings    model.SystemSettings
}

// 默认账号密码
const (
	AdminPassword      = "0000"
	SupervisorPassword = "password"
)

// Default 构建默认数据集，now 用于审计字段与示例评估日期
func Default(now time.Time) (*Dataset, error) {
	adminHash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %w", err)
	}
	supHash, err := bcrypt.GenerateFromPassword([]byte(SupervisorPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %w", err)
	}

	base := model.BaseModel{CreatedAt: now, UpdatedAt: now}

	return &Dataset{
		Users: []model.User{
			{ID: "1", Username: "admin", PasswordHash: string(adminHash), Name: "ผู้ดูแลระบบ", Role: model.RoleAdmin, BaseModel: base},
			{ID: "2", Username: "sup1", PasswordHash: string(supHash), Name: "ครูสมชาย (ผู้นิเทศ)", Role: model.RoleSupervisor, BaseModel: base},
			{ID: "3", Username: "sup2", PasswordHash: string(supHash), Name: "ครูสมหญิง (ผู้นิเทศ)", Role: model.RoleSupervisor, BaseModel: base},
			{ID: "4", Username: "tea1", Name: "ครูวิชัย", Role: model.RoleTeacher, TeacherID: "T001", BaseModel: base},
			{ID: "5", Username: "tea2", Name: "ครูวิมล", Role: model.RoleTeacher, TeacherID: "T002", BaseModel: base},
		},
		Classes: []model.SchoolClass{
			{ID: "c1", Name: "ม.1/1", BaseModel: base},
			{ID: "c2", Name: "ม.4/2", BaseModel: base},
			{ID: "c3", Name: "ม.6/1", BaseModel: base},
		},
		Subjects: []model.Subject{
			{ID: "s1", Code: "ค21101", Name: "คณิตศาสตร์พื้นฐาน", Credit: 1.5, Type: model.SubjectFundamental, BaseModel: base},
			{ID: "s2", Code: "ว21101", Name: "วิทยาศาสตร์", Credit: 1.5, Type: model.SubjectFundamental, BaseModel: base},
			{ID: "s3", Code: "พ21101", Name: "สุขศึกษา", Credit: 0.5, Type: model.SubjectFundamental, BaseModel: base},
			{ID: "s4", Code: "ท31101", Name: "ภาษาไทย", Credit: 1.0, Type: model.SubjectFundamental, BaseModel: base},
			{ID: "s5", Code: "อ33201", Name: "ภาษาอังกฤษเพื่อการสื่อสาร", Credit: 1.0, Type: model.SubjectAdditional, BaseModel: base},
		},
		Criteria: defaultCriteria(),
		Settings: model.SystemSettings{
			MaxScaleValue: 5,
			RatingLevels: []model.RatingScaleLevel{
				{Value: 1, Label: "ไม่ผ่าน"},
				{Value: 2, Label: "ควรปรับปรุง"},
				{Value: 3, Label: "พอใช้"},
				{Value: 4, Label: "ดี"},
				{Value: 5, Label: "ดีมาก"},
			},
		},
		Assignments: []model.Assignment{{
			ID:           "a1",
			SupervisorID: "2",
			TeacherID:    "4",
			ClassID:      "c1",
			SubjectID:    "s1",
			Status:       model.AssignmentCompleted,
			Year:         "2568",
			Semester:     "1",
			BaseModel:    base,
		}},
		Evaluations: []model.Evaluation{{
			ID:           "e1",
			AssignmentID: "a1",
			Date:         now,
			Scores: map[string]int{
				"p1_1": 5, "p1_2": 4, "p1_3": 5, "p1_4": 4,
				"p2_1": 5, "p2_2": 5, "p2_3": 4, "p2_4": 4,
				"p3_1": 5, "p3_2": 4, "p3_3": 5, "p3_4": 5, "p3_5": 4, "p3_6": 5, "p3_7": 4,
				"p4_1": 4, "p4_2": 5, "p4_3": 4,
				"p5_1": 5, "p5_2": 5,
			},
			TotalScore:   91,
			Percentage:   91,
			Grade:        model.GradeExcellent,
			Strengths:    "เตรียมการสอนมาอย่างดี นักเรียนมีส่วนร่วมสูง",
			Improvements: "เพิ่มการใช้เทคโนโลยีในบางช่วง",
			Suggestions:  "ควรนำ AI มาช่วยในการตรวจทานงานนักเรียน",
			Photos:       []string{"https://picsum.photos/400/300"},
		}},
	}, nil
}

func defaultCriteria() model.Rubric {
	return model.Rubric{
		{ID: "sec1", Title: "1. การจัดบรรยากาศและบริหารชั้นเรียน", Color: "#26A69A", Items: []model.CriteriaItem{
			{ID: "p1_1", Label: "1.1 การตรงต่อเวลา"},
			{ID: "p1_2", Label: "1.2 การควบคุมความเป็นระเบียบในชั้นเรียน"},
			{ID: "p1_3", Label: "1.3 การให้คำปรึกษาแก่ผู้เรียนในชั้นเรียน"},
			{ID: "p1_4", Label: "1.4 การรักษาความสะอาดในชั้นเรียน"},
		}},
		{ID: "sec2", Title: "2. บุคลิกภาพ", Color: "#AED581", Items: []model.CriteriaItem{
			{ID: "p2_1", Label: "2.1 การแต่งกายสุภาพ เหมาะสม"},
			{ID: "p2_2", Label: "2.2 การใช้น้ำเสียง มีความชัดเจน"},
			{ID: "p2_3", Label: "2.3 ความเชื่อมั่นใจตนเอง"},
			{ID: "p2_4", Label: "2.4 การใช้ภาษาสื่อสารและสร้างบรรยากาศการเรียนรู้"},
		}},
		{ID: "sec3", Title: "3. การดำเนินการสอน", Color: "#FFCA28", Items: []model.CriteriaItem{
			{ID: "p3_1", Label: "3.1 วางแผนการจัดการเรียนรู้สอดคล้องกับมาตรฐาน/ตัวชี้วัด"},
			{ID: "p3_2", Label: "3.2 เนื้อหาสอดคล้องกับจุดประสงค์การเรียนรู้"},
			{ID: "p3_3", Label: "3.3 การสอดแทรกความรู้ทั่วไปและคุณธรรม จริยธรรม"},
			{ID: "p3_4", Label: "3.4 การใช้วิธีการสอนที่เหมาะสมน่าสนใจ (บรรยาย, สาธิต, กลุ่ม, ฯลฯ)"},
			{ID: "p3_5", Label: "3.5 การเปิดโอกาสให้ผู้เรียนซักถามหรือแสดงความคิดเห็น"},
			{ID: "p3_6", Label: "3.6 มีการตั้งคำถามที่กระตุ้นผู้เรียนใช้กระบวนการคิด"},
			{ID: "p3_7", Label: "3.7 การสรุปเนื้อหา ได้ตรงตามจุดประสงค์"},
		}},
		{ID: "sec4", Title: "4. การใช้สื่อและนวัตกรรมการเรียนรู้", Color: "#FF8A65", Items: []model.CriteriaItem{
			{ID: "p4_1", Label: "4.1 ใช้สื่อการสอนที่สอดคล้องตามตัวชี้วัด"},
			{ID: "p4_2", Label: "4.2 ใช้สื่อที่มีความถูกต้อง ทันสมัย"},
			{ID: "p4_3", Label: "4.3 ใช้สื่อหรือตัวอย่างที่หลากหลายในการจัดการเรียนรู้"},
		}},
		{ID: "sec5", Title: "5. การวัดและประเมินผล", Color: "#EF5350", Items: []model.CriteriaItem{
			{ID: "p5_1", Label: "5.1 สอดคล้องและครอบคลุมจุดประสงค์"},
			{ID: "p5_2", Label: "5.2 การประเมินผลตามสภาพจริง (สอบ, รายงาน, มอบหมายงาน, สังเกต)"},
		}},
	}
}

// Needed users 命名空间不存在或为空时需要初始化
func Needed(ctx context.Context, st store.Store) (bool, error) {
	raw, err := st.Get(ctx, store.NamespaceUsers)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return true, nil
		}
		return false, err
	}
	var users []json.RawMessage
	if err := json.Unmarshal(raw, &users); err != nil {
		return false, fmt.Errorf("解析 users 失败: %w", err)
	}
	return len(users) == 0, nil
}

// Apply 一次性覆盖全部七个命名空间，users 最后写入
// 中途失败时 users 仍为空，下次启动会重新初始化
func Apply(ctx context.Context, st store.Store, ds *Dataset) error {
	docs := []struct {
		ns string
		v  interface{}
	}{
		{store.NamespaceClasses, ds.Classes},
		{store.NamespaceSubjects, ds.Subjects},
		{store.NamespaceAssignments, ds.Assignments},
		{store.NamespaceEvaluations, ds.Evaluations},
		{store.NamespaceCriteria, ds.Criteria},
		{store.NamespaceSettings, ds.Settings},
		{store.NamespaceUsers, ds.Users},
	}

	for _, d := range docs {
		raw, err := json.Marshal(d.v)
		if err != nil {
			return fmt.Errorf("序列化 %s 失败: %w", d.ns, err)
		}
		if err := st.Set(ctx, d.ns, raw); err != nil {
			return fmt.Errorf("写入 %s 失败: %w", d.ns, err)
		}
	}
	return nil
}

// EnsureSeeded 按需初始化，返回是否执行了初始化
func EnsureSeeded(ctx context.Context, st store.Store, now time.Time) (bool, error) {
	need, err := Needed(ctx, st)
	if err != nil || !need {
		return false, err
	}
	ds, err := Default(now)
	if err != nil {
		return false, err
	}
	if err := Apply(ctx, st, ds); err != nil {
		return false, err
	}
	return true, nil
}
