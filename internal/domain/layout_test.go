package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func layoutFixture() (*GeneratedPaper, map[int64]*Question) {
	lookup := map[int64]*Question{
		1: {ID: 1, Category: CategoryMCQ, Options: []string{"a", "b"}, CorrectAnswer: "a"},
		2: {ID: 2, Category: CategoryMCQ, Options: []string{"a", "b"}, CorrectAnswer: "b"},
		3: {ID: 3, Category: CategoryFourMarks},
		4: {ID: 4, Category: CategoryEightMarks},
		5: {ID: 5, Category: CategoryFourMarks},
	}
	paper := &GeneratedPaper{
		ID:           "paper-1",
		SubjectID:    "cs101",
		SubjectName:  "Computer Science",
		ExamDuration: 90,
		TotalMarks:   18,
		Questions:    []int64{1, 2, 3, 5, 4},
		SetVariants: []PaperVariant{
			{Variant: "A", Questions: []int64{4, 2, 5, 1, 3}},
			{Variant: "B", Questions: []int64{3, 1, 4, 5, 2}},
		},
	}
	return paper, lookup
}

func TestResolveVariant_Sections(t *testing.T) {
	paper, lookup := layoutFixture()

	resolved, err := ResolveVariant(paper, "a", lookup)
	require.NoError(t, err)
	assert.Equal(t, "A", resolved.Variant)
	assert.Equal(t, 5, resolved.QuestionCount)
	require.Len(t, resolved.Sections, 3)

	mcq := resolved.Sections[0]
	assert.Equal(t, "A", mcq.Letter)
	assert.Equal(t, CategoryMCQ, mcq.Category)
	assert.Equal(t, 1, mcq.StartNumber)
	assert.Equal(t, 2, mcq.Subtotal)
	assert.Equal(t, int64(2), mcq.Questions[0].ID)
	assert.Equal(t, int64(1), mcq.Questions[1].ID)

	four := resolved.Sections[1]
	assert.Equal(t, "B", four.Letter)
	assert.Equal(t, CategoryFourMarks, four.Category)
	assert.Equal(t, 3, four.StartNumber)
	assert.Equal(t, 8, four.Subtotal)
	assert.Equal(t, int64(5), four.Questions[0].ID)
	assert.Equal(t, int64(3), four.Questions[1].ID)

	eight := resolved.Sections[2]
	assert.Equal(t, "C", eight.Letter)
	assert.Equal(t, 5, eight.StartNumber)
	assert.Equal(t, 8, eight.Subtotal)
}

func TestResolveVariant_Idempotent(t *testing.T) {
	paper, lookup := layoutFixture()
	first, err := ResolveVariant(paper, "B", lookup)
	require.NoError(t, err)
	second, err := ResolveVariant(paper, "B", lookup)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveVariant_DropsMissingQuestions(t *testing.T) {
	paper, lookup := layoutFixture()
	delete(lookup, 5)

	resolved, err := ResolveVariant(paper, "A", lookup)
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, resolved.MissingQuestionIDs)
	assert.Equal(t, 4, resolved.QuestionCount)
	require.Len(t, resolved.Sections, 3)
	assert.Len(t, resolved.Sections[1].Questions, 1)
	assert.Equal(t, 4, resolved.Sections[1].Subtotal)
	assert.Equal(t, 4, resolved.Sections[2].StartNumber)
}

func TestResolveVariant_UnknownVariant(t *testing.T) {
	paper, lookup := layoutFixture()
	_, err := ResolveVariant(paper, "E", lookup)
	require.Error(t, err)
	domainErr, ok := err.(*DomainError)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, domainErr.Code)
}

func TestResolvedVariant_Fingerprint(t *testing.T) {
	paper, lookup := layoutFixture()
	base, err := ResolveVariant(paper, "A", lookup)
	require.NoError(t, err)
	again, err := ResolveVariant(paper, "A", lookup)
	require.NoError(t, err)
	assert.Equal(t, base.Fingerprint(), again.Fingerprint())
	assert.Len(t, base.Fingerprint(), 16)

	other, err := ResolveVariant(paper, "B", lookup)
	require.NoError(t, err)
	assert.NotEqual(t, base.Fingerprint(), other.Fingerprint())

	edited := map[int64]*Question{}
	for id, q := range lookup {
		cp := *q
		edited[id] = &cp
	}
	edited[3].QuestionText = "rewritten"
	afterEdit, err := ResolveVariant(paper, "A", edited)
	require.NoError(t, err)
	assert.NotEqual(t, base.Fingerprint(), afterEdit.Fingerprint())

	delete(edited, 3)
	afterDelete, err := ResolveVariant(paper, "A", edited)
	require.NoError(t, err)
	assert.NotEqual(t, afterEdit.Fingerprint(), afterDelete.Fingerprint())
}
