// Package report 将已完成的评估渲染为可打印的 HTML 文档。
package report

import (
	"fmt"
	"strings"
	"time"

	"digital-supervision/backend/internal/model"
)

const (
	// Placeholder 文本字段为空时的占位
	Placeholder = "ไม่ระบุ"
	// Missing 关联实体不存在时的占位
	Missing = "-"
)

// ictZone 泰国时区（UTC+7）
var ictZone = time.FixedZone("ICT", 7*60*60)

// Document 渲染所需的全部数据（评估 + 关联实体），由调用方组装
type Document struct {
	EvaluationID   string
	TeacherName    string
	SupervisorName string
	SubjectCode    string
	SubjectName    string
	ClassName      string
	Year           string
	Semester       string
	Date           time.Time
	Percentage     int
	TotalScore     int
	Grade          model.Grade
	Strengths      string
	Improvements   string
	Suggestions    string
	Photos         []string
	Sections       []SectionScore
}

// SectionScore 分组得分明细
type SectionScore struct {
	Title string
	Color string
	Items []ItemScore
}

// ItemScore 单项得分
type ItemScore struct {
	Label      string
	Score      int
	LevelLabel string
}

// Subtotal 分组小计
func (s SectionScore) Subtotal() int {
	total := 0
	for _, it := range s.Items {
		total += it.Score
	}
	return total
}

// Breakdown 按当前评分表组织评估快照；当前评分表中已删除的项不显示
func Breakdown(rubric model.Rubric, settings model.SystemSettings, scores map[string]int) []SectionScore {
	labels := make(map[int]string, len(settings.RatingLevels))
	for _, l := range settings.RatingLevels {
		labels[l.Value] = l.Label
	}

	out := make([]SectionScore, 0, len(rubric))
	for _, sec := range rubric {
		ss := SectionScore{Title: sec.Title, Color: sec.Color}
		for _, it := range sec.Items {
			v, ok := scores[it.ID]
			if !ok {
				continue
			}
			ss.Items = append(ss.Items, ItemScore{Label: it.Label, Score: v, LevelLabel: labels[v]})
		}
		if len(ss.Items) > 0 {
			out = append(out, ss)
		}
	}
	return out
}

// ThaiDate 佛历日期，格式 d/m/yyyy（公历年 + 543）
func ThaiDate(t time.Time) string {
	if t.IsZero() {
		return Missing
	}
	t = t.In(ictZone)
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year()+543)
}

// orPlaceholder 空文本替换为占位
func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

// orMissing 缺失的关联字段替换为 "-"
func orMissing(s string) string {
	if strings.TrimSpace(s) == "" {
		return Missing
	}
	return s
}

// safeImageSrc 仅允许内嵌图片、http(s) 链接与站内路径
func safeImageSrc(s string) bool {
	return strings.HasPrefix(s, "data:image/") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "http://") ||
		(strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//"))
}
