package report

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital-supervision/backend/internal/model"
)

func sampleDoc() Document {
	return Document{
		TeacherName:    "ครูวิชัย",
		SupervisorName: "ครูสมชาย (ผู้นิเทศ)",
		SubjectCode:    "ค21101",
		SubjectName:    "คณิตศาสตร์พื้นฐาน",
		ClassName:      "ม.1/1",
		Year:           "2568",
		Semester:       "1",
		Date:           time.Date(2025, 1, 2, 3, 0, 0, 0, time.UTC),
		Percentage:     91,
		Grade:          model.GradeExcellent,
		Strengths:      "เตรียมการสอนมาอย่างดี",
		Photos:         []string{"https://picsum.photos/400/300", "javascript:alert(1)"},
	}
}

func TestRender_Content(t *testing.T) {
	out, err := Render(context.Background(), sampleDoc())
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, Title)
	assert.Contains(t, html, "91%")
	assert.Contains(t, html, "ดีมาก")
	assert.Contains(t, html, "ค21101 คณิตศาสตร์พื้นฐาน")
	assert.Contains(t, html, "2568 / 1")
	assert.Contains(t, html, "2/1/2568")
	assert.Contains(t, html, "เตรียมการสอนมาอย่างดี")
	assert.Contains(t, html, "(ครูสมชาย (ผู้นิเทศ))")
	// 改进与建议为空时使用占位
	assert.Equal(t, 2, strings.Count(html, Placeholder))
	assert.Contains(t, html, "https://picsum.photos/400/300")
	assert.NotContains(t, html, "javascript:")
}

func TestRender_MissingJoinsUseDash(t *testing.T) {
	doc := sampleDoc()
	doc.TeacherName = ""
	doc.SubjectCode = ""
	doc.SubjectName = ""

	out, err := Render(context.Background(), doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "ชื่อผู้รับการนิเทศ:</strong> -")
	assert.Contains(t, string(out), "- -")
}

func TestRender_EscapesUserText(t *testing.T) {
	doc := sampleDoc()
	doc.Suggestions = `<script>alert("x")</script>`

	out, err := Render(context.Background(), doc)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
	assert.Contains(t, string(out), "&lt;script&gt;")
}

func TestThaiDate(t *testing.T) {
	// 17:30 UTC 在泰国已是次日
	assert.Equal(t, "1/1/2568", ThaiDate(time.Date(2024, 12, 31, 17, 30, 0, 0, time.UTC)))
	assert.Equal(t, Missing, ThaiDate(time.Time{}))
}

func TestBreakdown(t *testing.T) {
	rubric := model.Rubric{
		{ID: "s1", Title: "A", Items: []model.CriteriaItem{{ID: "i1", Label: "one"}, {ID: "i2", Label: "two"}}},
		{ID: "s2", Title: "B", Items: []model.CriteriaItem{{ID: "i3", Label: "new"}}},
	}
	settings := model.SystemSettings{MaxScaleValue: 5}.WithMaxScale(5)

	got := Breakdown(rubric, settings, map[string]int{"i1": 5, "i2": 3, "old": 4})
	require.Len(t, got, 1, "无得分的分组不显示")
	assert.Equal(t, 8, got[0].Subtotal())
	assert.Equal(t, "ระดับ 5", got[0].Items[0].LevelLabel)
}
