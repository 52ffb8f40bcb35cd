package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cs101Counts() CategoryCounts {
	return CategoryCounts{
		CategoryMCQ:        10,
		CategoryTwoMarks:   5,
		CategoryFourMarks:  3,
		CategorySixMarks:   2,
		CategoryEightMarks: 1,
	}
}

func TestCategoryCounts_Totals(t *testing.T) {
	c := cs101Counts()
	assert.Equal(t, 21, c.Questions())
	assert.Equal(t, 62, c.TotalMarks())
	assert.Equal(t, 0, CategoryCounts{}.TotalMarks())
}

func TestGenerationRequest_Validate(t *testing.T) {
	base := func() *GenerationRequest {
		return &GenerationRequest{SubjectID: "cs101", ExamDurationMinutes: 180, Counts: cs101Counts()}
	}

	assert.Empty(t, base().Validate())

	declared := base()
	declared.TotalMarks = 62
	assert.Empty(t, declared.Validate())

	mismatch := base()
	mismatch.TotalMarks = 60
	errs := mismatch.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "total_marks", errs[0].Field)
	assert.Contains(t, errs[0].Message, "60")
	assert.Contains(t, errs[0].Message, "62")

	zero := base()
	zero.Counts = CategoryCounts{CategoryMCQ: 0}
	zero.ExamDurationMinutes = 0
	errs = zero.Validate()
	require.Len(t, errs, 2)
	assert.Equal(t, "exam_duration", errs[0].Field)
	assert.Equal(t, "counts", errs[1].Field)

	negative := base()
	negative.Counts[CategorySixMarks] = -1
	assert.NotEmpty(t, negative.Validate())
}

func TestNormalizeVariantLabel(t *testing.T) {
	l, ok := NormalizeVariantLabel(" c ")
	assert.True(t, ok)
	assert.Equal(t, "C", l)
	_, ok = NormalizeVariantLabel("F")
	assert.False(t, ok)
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, VariantLabels())
}

func TestParseVariantPolicy(t *testing.T) {
	p, err := ParseVariantPolicy("")
	require.NoError(t, err)
	assert.Equal(t, VariantPolicyPermute, p)
	p, err = ParseVariantPolicy("Resample")
	require.NoError(t, err)
	assert.Equal(t, VariantPolicyResample, p)
	_, err = ParseVariantPolicy("mixed")
	assert.Error(t, err)
}

func TestInsufficientQuestionsError(t *testing.T) {
	err := NewInsufficientQuestionsError("cs101", []Shortfall{
		{Category: CategoryMCQ, Requested: 5, Available: 3},
		{Category: CategoryEightMarks, Requested: 2, Available: 0},
	})
	assert.Equal(t, CodeInsufficientQuestions, err.Code)
	assert.Contains(t, err.Error(), "mcqOneMark requested 5, available 3")
	assert.Contains(t, err.Error(), "_8Marks requested 2, available 0")

	shortfalls, ok := ShortfallsOf(err)
	require.True(t, ok)
	assert.Len(t, shortfalls, 2)

	_, ok = ShortfallsOf(errors.New("boom"))
	assert.False(t, ok)
}
