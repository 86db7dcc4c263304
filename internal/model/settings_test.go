package model

import "testing"

func defaultSettings() SystemSettings {
	return SystemSettings{
		MaxScaleValue: 5,
		RatingLevels: []RatingScaleLevel{
			{1, "ไม่ผ่าน"}, {2, "ควรปรับปรุง"}, {3, "พอใช้"}, {4, "ดี"}, {5, "ดีมาก"},
		},
	}
}

func TestWithMaxScale_Shrink(t *testing.T) {
	got := defaultSettings().WithMaxScale(3)

	if got.MaxScaleValue != 3 {
		t.Fatalf("期望 MaxScaleValue=3，实际=%d", got.MaxScaleValue)
	}
	if len(got.RatingLevels) != 3 {
		t.Fatalf("期望 3 个等级，实际=%d", len(got.RatingLevels))
	}
	want := []string{"ไม่ผ่าน", "ควรปรับปรุง", "พอใช้"}
	for i, l := range got.RatingLevels {
		if l.Value != i+1 || l.Label != want[i] {
			t.Errorf("等级 %d 期望 {%d %s}，实际 {%d %s}", i, i+1, want[i], l.Value, l.Label)
		}
	}
}

func TestWithMaxScale_Grow(t *testing.T) {
	got := defaultSettings().WithMaxScale(10)

	if len(got.RatingLevels) != 10 {
		t.Fatalf("期望 10 个等级，实际=%d", len(got.RatingLevels))
	}
	if got.RatingLevels[4].Label != "ดีมาก" {
		t.Errorf("期望保留等级 5 名称，实际=%s", got.RatingLevels[4].Label)
	}
	if got.RatingLevels[9].Label != "ระดับ 10" {
		t.Errorf("期望新等级默认名称，实际=%s", got.RatingLevels[9].Label)
	}
}

func TestWithMaxScale_DoesNotMutateReceiver(t *testing.T) {
	s := defaultSettings()
	_ = s.WithMaxScale(3)
	if len(s.RatingLevels) != 5 {
		t.Error("原设置不应被修改")
	}
}

func TestRubric_ItemIDs(t *testing.T) {
	r := Rubric{
		{ID: "a", Items: []CriteriaItem{{ID: "a1"}, {ID: "a2"}}},
		{ID: "b", Items: []CriteriaItem{{ID: "b1"}}},
	}
	if r.ItemCount() != 3 {
		t.Errorf("期望 3 项，实际=%d", r.ItemCount())
	}
	ids := r.ItemIDs()
	if len(ids) != 3 || ids[0] != "a1" || ids[2] != "b1" {
		t.Errorf("评分项顺序不正确: %v", ids)
	}
	if r.FindSection("b") != 1 || r.FindSection("x") != -1 {
		t.Error("FindSection 结果不正确")
	}
}

func TestGrade_RankAndColor(t *testing.T) {
	if GradeExcellent.Rank() >= GradeFail.Rank() {
		t.Error("ดีมาก 应优于 ไม่ผ่าน")
	}
	if GradeFair.Color() != "#FFCA28" {
		t.Errorf("พอใช้ 颜色不正确: %s", GradeFair.Color())
	}
}
