package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuestionCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    QuestionCategory
		wantErr bool
	}{
		{"mcqOneMark", CategoryMCQ, false},
		{"MCQ", CategoryMCQ, false},
		{" 1 ", CategoryMCQ, false},
		{"_2Marks", CategoryTwoMarks, false},
		{"2marks", CategoryTwoMarks, false},
		{"4", CategoryFourMarks, false},
		{"_6MARKS", CategorySixMarks, false},
		{"8marks", CategoryEightMarks, false},
		{"3marks", "", true},
		{"essay", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseQuestionCategory(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoryMarksTable(t *testing.T) {
	want := []int{1, 2, 4, 6, 8}
	cats := AllCategories()
	require.Len(t, cats, 5)
	for i, c := range cats {
		assert.Equal(t, want[i], c.Marks(), c)
		assert.Equal(t, i, c.Index())
	}
	assert.Equal(t, 0, QuestionCategory("bogus").Marks())
	assert.Equal(t, -1, QuestionCategory("bogus").Index())

	// Mutating the returned slice must not reorder the shared table.
	cats[0] = CategoryEightMarks
	assert.Equal(t, CategoryMCQ, AllCategories()[0])
}

func TestQuestion_Validate(t *testing.T) {
	mcq := func() *Question {
		return &Question{
			SubjectID:       "cs101",
			Category:        CategoryMCQ,
			QuestionText:    "2^3 = ?",
			Options:         []string{"2", "4", "8", "16"},
			CorrectAnswer:   "8",
			DifficultyLevel: DifficultyEasy,
		}
	}

	tests := []struct {
		name       string
		mutate     func(q *Question)
		wantFields []string
	}{
		{"valid mcq", func(q *Question) {}, nil},
		{"valid long answer", func(q *Question) {
			q.Category = CategoryEightMarks
			q.Options = nil
			q.CorrectAnswer = ""
		}, nil},
		{"missing text", func(q *Question) { q.QuestionText = "  " }, []string{"question_text"}},
		{"one option", func(q *Question) { q.Options = []string{"8"} }, []string{"options"}},
		{"answer not in options", func(q *Question) { q.CorrectAnswer = "9" }, []string{"correct_answer"}},
		{"missing answer", func(q *Question) { q.CorrectAnswer = "" }, []string{"correct_answer"}},
		{"bad difficulty", func(q *Question) { q.DifficultyLevel = "trivial" }, []string{"difficulty_level"}},
		{"non mcq with options", func(q *Question) { q.Category = CategoryTwoMarks }, []string{"options"}},
		{"bad category and subject", func(q *Question) {
			q.Category = "essay"
			q.SubjectID = ""
		}, []string{"subject_id", "category"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := mcq()
			tt.mutate(q)
			errs := q.Validate()
			var fields []string
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestQuestion_Normalize(t *testing.T) {
	q := &Question{
		SubjectID:     " cs101 ",
		Category:      CategoryFourMarks,
		QuestionText:  "  Explain paging. ",
		Options:       []string{"a", "b"},
		CorrectAnswer: "a",
	}
	q.Normalize()
	assert.Equal(t, "cs101", q.SubjectID)
	assert.Equal(t, "Explain paging.", q.QuestionText)
	assert.Nil(t, q.Options)
	assert.Empty(t, q.CorrectAnswer)

	m := &Question{Category: CategoryMCQ, Options: []string{" x ", "", "y"}, CorrectAnswer: " y "}
	m.Normalize()
	assert.Equal(t, []string{"x", "y"}, m.Options)
	assert.Equal(t, "y", m.CorrectAnswer)
}

func TestSubject_Normalize(t *testing.T) {
	s := &Subject{Name: " Data Structures ", Code: "cs 101"}
	s.Normalize()
	assert.Equal(t, "cs-101", s.ID)
	assert.Equal(t, "CS 101", s.Code)
	assert.Equal(t, "Data Structures", s.Name)
	assert.Empty(t, s.Validate())

	explicit := &Subject{ID: "algo", Name: "Algorithms", Code: "CS201"}
	explicit.Normalize()
	assert.Equal(t, "algo", explicit.ID)

	empty := &Subject{}
	empty.Normalize()
	assert.Len(t, empty.Validate(), 3)
}
