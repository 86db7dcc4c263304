package scoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital-supervision/backend/internal/model"
	pkgerrors "digital-supervision/backend/pkg/errors"
)

func twoByTwo() model.Rubric {
	return model.Rubric{
		{ID: "s1", Items: []model.CriteriaItem{{ID: "1"}, {ID: "2"}}},
		{ID: "s2", Items: []model.CriteriaItem{{ID: "3"}, {ID: "4"}}},
	}
}

func TestScore_Excellent(t *testing.T) {
	res, err := Score(twoByTwo(), 5, map[string]int{"1": 5, "2": 5, "3": 5, "4": 4})
	require.NoError(t, err)
	assert.Equal(t, 19, res.TotalScore)
	assert.Equal(t, 95, res.Percentage)
	assert.Equal(t, model.GradeExcellent, res.Grade)
}

func TestScore_Fail(t *testing.T) {
	res, err := Score(twoByTwo(), 5, map[string]int{"1": 3, "2": 3, "3": 3, "4": 3})
	require.NoError(t, err)
	assert.Equal(t, 12, res.TotalScore)
	assert.Equal(t, 60, res.Percentage)
	assert.Equal(t, model.GradeFail, res.Grade)
}

func TestScore_AllMaxIsHundred(t *testing.T) {
	for _, m := range model.AllowedScaleValues {
		scores := map[string]int{"1": m, "2": m, "3": m, "4": m}
		res, err := Score(twoByTwo(), m, scores)
		require.NoError(t, err)
		assert.Equal(t, 100, res.Percentage, "m=%d", m)
	}
}

func TestScore_AllMinimal(t *testing.T) {
	res, err := Score(twoByTwo(), 3, map[string]int{"1": 1, "2": 1, "3": 1, "4": 1})
	require.NoError(t, err)
	assert.Equal(t, 33, res.Percentage)
}

func TestScore_MissingItems(t *testing.T) {
	_, err := Score(twoByTwo(), 5, map[string]int{"1": 5, "2": 5})
	require.Error(t, err)

	var missing *MissingScoresError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, 2, missing.Missing)
	assert.Equal(t, 4, missing.Total)
	assert.True(t, errors.Is(err, pkgerrors.ErrValidation))
}

func TestScore_RejectsOutOfRangeAndUnknown(t *testing.T) {
	_, err := Score(twoByTwo(), 5, map[string]int{"1": 6, "2": 5, "3": 5, "4": 5})
	assert.True(t, errors.Is(err, pkgerrors.ErrValidation))

	_, err = Score(twoByTwo(), 5, map[string]int{"1": 0, "2": 5, "3": 5, "4": 5})
	assert.True(t, errors.Is(err, pkgerrors.ErrValidation))

	_, err = Score(twoByTwo(), 5, map[string]int{"1": 5, "2": 5, "3": 5, "4": 5, "gone": 3})
	assert.True(t, errors.Is(err, pkgerrors.ErrValidation))
}

func TestScore_EmptyRubric(t *testing.T) {
	_, err := Score(nil, 5, map[string]int{})
	assert.True(t, errors.Is(err, pkgerrors.ErrValidation))
}

func TestScore_SnapshotIsCopy(t *testing.T) {
	in := map[string]int{"1": 5, "2": 5, "3": 5, "4": 5}
	res, err := Score(twoByTwo(), 5, in)
	require.NoError(t, err)
	in["1"] = 1
	assert.Equal(t, 5, res.Scores["1"])
}

func TestPercentage_RoundsHalfUp(t *testing.T) {
	// 1/8 = 12.5% → 13
	assert.Equal(t, 13, Percentage(1, 8, 1))
	// 91/100
	assert.Equal(t, 91, Percentage(91, 20, 5))
	// 2/3 = 66.67 → 67
	assert.Equal(t, 67, Percentage(2, 3, 1))
	assert.Equal(t, 0, Percentage(5, 0, 5))
}

func TestGradeFor_Thresholds(t *testing.T) {
	cases := map[int]model.Grade{
		100: model.GradeExcellent,
		91:  model.GradeExcellent,
		90:  model.GradeGood,
		81:  model.GradeGood,
		80:  model.GradeFair,
		71:  model.GradeFair,
		70:  model.GradeImprove,
		61:  model.GradeImprove,
		60:  model.GradeFail,
		0:   model.GradeFail,
	}
	for p, want := range cases {
		assert.Equal(t, want, GradeFor(p), "p=%d", p)
	}
}

func TestGradeFor_Monotonic(t *testing.T) {
	for p := 0; p < 100; p++ {
		assert.GreaterOrEqual(t, GradeFor(p).Rank(), GradeFor(p+1).Rank(), "p=%d", p)
	}
}
