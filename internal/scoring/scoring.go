// Package scoring 根据当前评分表与评分尺度计算总分、百分比与等级。
package scoring

import (
	"fmt"
	"sort"
	"strings"

	"digital-supervision/backend/internal/model"
	pkgerrors "digital-supervision/backend/pkg/errors"
)

// 等级阈值，由高到低依次判断
var thresholds = []struct {
	min   int
	grade model.Grade
}{
	{91, model.GradeExcellent},
	{81, model.GradeGood},
	{71, model.GradeFair},
	{61, model.GradeImprove},
}

// Result 评分结果
type Result struct {
	Scores     map[string]int
	TotalScore int
	Percentage int
	Grade      model.Grade
}

// MissingScoresError 有评分项未打分
type MissingScoresError struct {
	Missing int
	Total   int
}

func (e *MissingScoresError) Error() string {
	return fmt.Sprintf("กรุณาประเมินให้ครบทุกข้อ (ยังไม่ได้ประเมิน %d จาก %d ข้อ)", e.Missing, e.Total)
}

func (e *MissingScoresError) Unwrap() error { return pkgerrors.ErrValidation }

// Score 校验评分并计算结果，不产生副作用
func Score(rubric model.Rubric, maxScale int, scores map[string]int) (*Result, error) {
	n := rubric.ItemCount()
	if n == 0 {
		return nil, pkgerrors.NewValidation("ยังไม่มีหัวข้อการประเมิน")
	}
	if maxScale <= 0 {
		return nil, pkgerrors.NewValidation("ระดับคะแนนไม่ถูกต้อง")
	}

	known := make(map[string]struct{}, n)
	missing := 0
	for _, id := range rubric.ItemIDs() {
		known[id] = struct{}{}
		if _, ok := scores[id]; !ok {
			missing++
		}
	}
	if missing > 0 {
		return nil, &MissingScoresError{Missing: missing, Total: n}
	}

	var unknown []string
	for id := range scores {
		if _, ok := known[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, pkgerrors.NewValidation("หัวข้อการประเมินไม่ถูกต้อง: " + strings.Join(unknown, ", "))
	}

	total := 0
	snapshot := make(map[string]int, n)
	for id, v := range scores {
		if v < 1 || v > maxScale {
			return nil, pkgerrors.NewValidation(fmt.Sprintf("คะแนนต้องอยู่ระหว่าง 1 ถึง %d", maxScale))
		}
		total += v
		snapshot[id] = v
	}

	pct := Percentage(total, n, maxScale)
	return &Result{
		Scores:     snapshot,
		TotalScore: total,
		Percentage: pct,
		Grade:      GradeFor(pct),
	}, nil
}

// Percentage round(total / (n·m) · 100)，整数半入
func Percentage(total, n, m int) int {
	d := n * m
	if d <= 0 {
		return 0
	}
	return (200*total + d) / (2 * d)
}

// GradeFor 百分比对应的等级
func GradeFor(percentage int) model.Grade {
	for _, t := range thresholds {
		if percentage >= t.min {
			return t.grade
		}
	}
	return model.GradeFail
}
