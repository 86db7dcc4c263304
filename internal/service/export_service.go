package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"digital-supervision/backend/internal/dto"
	"digital-supervision/backend/internal/model"
	"digital-supervision/backend/internal/report"
	"digital-supervision/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("ไม่สามารถสร้างไฟล์ส่งออกได้")

// 日历中每次督导的时长
const visitDuration = time.Hour

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置响应头后写入 Response
type ExportService interface {
	// ExportEvaluations 导出全部评估结果与科目平均分为 Excel
	ExportEvaluations(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportCalendar 导出调用者可见的已完成督导为 iCalendar
	ExportCalendar(ctx context.Context, caller Caller) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// visit 一次已完成的督导
type visit struct {
	assignment dto.AssignmentResponse
	evaluation *model.Evaluation
}

// visits 调用者可见的已完成督导，按评估日期升序
func (s *exportService) visits(ctx context.Context, caller Caller) ([]visit, *lookup, error) {
	filters := repository.AssignmentListFilters{Status: model.AssignmentCompleted}
	switch caller.Role {
	case model.RoleAdmin:
	case model.RoleSupervisor:
		filters.SupervisorID = caller.UserID
	case model.RoleTeacher:
		filters.TeacherID = caller.UserID
	default:
		return nil, nil, ErrNoPermission
	}

	assignments, err := s.repo.Assignment.List(ctx, filters)
	if err != nil {
		return nil, nil, err
	}
	l, err := loadLookup(ctx, s.repo)
	if err != nil {
		return nil, nil, err
	}

	out := make([]visit, 0, len(assignments))
	for i := range assignments {
		e, ok := l.evalByAssignment[assignments[i].ID]
		if !ok {
			continue
		}
		out = append(out, visit{assignment: l.toAssignmentResponse(&assignments[i]), evaluation: e})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].evaluation.Date.Before(out[j].evaluation.Date)
	})
	return out, l, nil
}

// ═══════════════════════════════════════════════════════════
// ExportEvaluations 导出评估结果为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "ผลการนิเทศ"：每次督导一行
//   - Sheet "สรุปรายวิชา"：各科目平均百分比

func (s *exportService) ExportEvaluations(ctx context.Context) (*bytes.Buffer, string, error) {
	visits, l, err := s.visits(ctx, Caller{Role: model.RoleAdmin})
	if err != nil {
		s.logger.Error("查询评估结果失败", zap.Error(err))
		return nil, "", err
	}
	assignments, err := s.repo.Assignment.List(ctx, repository.AssignmentListFilters{})
	if err != nil {
		s.logger.Error("列出督导任务失败", zap.Error(err))
		return nil, "", err
	}
	averages := subjectAverages(l, assignments)

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#26A69A"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// ── Sheet 1：评估结果 ──
	resultSheet := "ผลการนิเทศ"
	idx, _ := f.NewSheet(resultSheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"วันที่นิเทศ", "ครูผู้รับการนิเทศ", "ผู้นิเทศ", "รหัสวิชา", "ชื่อวิชา", "ชั้นเรียน", "ภาคเรียน/ปีการศึกษา", "คะแนนรวม", "ร้อยละ", "ผลการประเมิน"}
	widths := []float64{14, 24, 24, 12, 28, 12, 18, 10, 10, 14}
	for i, h := range headers {
		col := colName(i)
		f.SetColWidth(resultSheet, col, col, widths[i])
		f.SetCellValue(resultSheet, cell(col, 1), h)
	}
	f.SetCellStyle(resultSheet, "A1", cell(colName(len(headers)-1), 1), headerStyle)

	row := 2
	for _, v := range visits {
		a, e := v.assignment, v.evaluation
		values := []interface{}{
			report.ThaiDate(e.Date),
			orDash(a.TeacherName),
			orDash(a.SupervisorName),
			orDash(a.SubjectCode),
			orDash(a.SubjectName),
			orDash(a.ClassName),
			fmt.Sprintf("%s/%s", a.Semester, a.Year),
			e.TotalScore,
			e.Percentage,
			string(e.Grade),
		}
		for i, val := range values {
			f.SetCellValue(resultSheet, cell(colName(i), row), val)
		}
		row++
	}

	// ── Sheet 2：科目平均分 ──
	summarySheet := "สรุปรายวิชา"
	f.NewSheet(summarySheet)
	f.SetColWidth(summarySheet, "A", "A", 12)
	f.SetColWidth(summarySheet, "B", "B", 30)
	f.SetColWidth(summarySheet, "C", "D", 16)
	f.SetCellValue(summarySheet, "A1", "รหัสวิชา")
	f.SetCellValue(summarySheet, "B1", "ชื่อวิชา")
	f.SetCellValue(summarySheet, "C1", "จำนวนครั้งที่นิเทศ")
	f.SetCellValue(summarySheet, "D1", "คะแนนเฉลี่ย (%)")
	f.SetCellStyle(summarySheet, "A1", "D1", headerStyle)

	row = 2
	for _, avg := range averages {
		f.SetCellValue(summarySheet, cell("A", row), orDash(avg.SubjectCode))
		f.SetCellValue(summarySheet, cell("B", row), orDash(avg.SubjectName))
		f.SetCellValue(summarySheet, cell("C", row), avg.Evaluations)
		f.SetCellValue(summarySheet, cell("D", row), avg.Average)
		row++
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, "supervision-results.xlsx", nil
}

// ═══════════════════════════════════════════════════════════
// ExportCalendar 导出督导日历
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportCalendar(ctx context.Context, caller Caller) (*bytes.Buffer, string, error) {
	visits, _, err := s.visits(ctx, caller)
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("查询督导记录失败", zap.Error(err))
		}
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//digital-supervision//supervision calendar//TH")

	for _, v := range visits {
		a, e := v.assignment, v.evaluation
		event := cal.AddEvent(e.ID + "@digital-supervision")
		event.SetDtStampTime(e.Date)
		event.SetStartAt(e.Date)
		event.SetEndAt(e.Date.Add(visitDuration))
		event.SetSummary(fmt.Sprintf("นิเทศ %s %s (%s)", orDash(a.SubjectCode), orDash(a.SubjectName), orDash(a.TeacherName)))
		event.SetLocation(orDash(a.ClassName))
		event.SetDescription(fmt.Sprintf("ผู้นิเทศ: %s\nผลการประเมิน: %d%% (%s)", orDash(a.SupervisorName), e.Percentage, e.Grade))
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, "supervision.ics", nil
}

// ── 辅助函数 ──

func orDash(s string) string {
	if s == "" {
		return report.Missing
	}
	return s
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
