package model

import "fmt"

// AllowedScaleValues 可选的评分等级数
var AllowedScaleValues = []int{3, 4, 5, 10}

// IsAllowedScale 是否为可选等级数
func IsAllowedScale(m int) bool {
	for _, v := range AllowedScaleValues {
		if v == m {
			return true
		}
	}
	return false
}

// RatingScaleLevel 评分等级及其名称
type RatingScaleLevel struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// SystemSettings 全局评分尺度，系统内唯一一条
type SystemSettings struct {
	MaxScaleValue int                `json:"max_scale_value"`
	RatingLevels  []RatingScaleLevel `json:"rating_levels"`
}

// DefaultLevelLabel 新等级的默认名称
func DefaultLevelLabel(value int) string {
	return fmt.Sprintf("ระดับ %d", value)
}

// WithMaxScale 返回等级数为 m 的新设置：
// 等级恰好覆盖 1..m，保留仍存在的等级名称，新等级使用默认名称
func (s SystemSettings) WithMaxScale(m int) SystemSettings {
	labels := make(map[int]string, len(s.RatingLevels))
	for _, l := range s.RatingLevels {
		labels[l.Value] = l.Label
	}

	levels := make([]RatingScaleLevel, 0, m)
	for v := 1; v <= m; v++ {
		label, ok := labels[v]
		if !ok {
			label = DefaultLevelLabel(v)
		}
		levels = append(levels, RatingScaleLevel{Value: v, Label: label})
	}
	return SystemSettings{MaxScaleValue: m, RatingLevels: levels}
}
