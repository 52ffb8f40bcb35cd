package domain

import (
	"fmt"
	"strings"
	"time"
)

// QuestionCategory is the mark bucket a question belongs to.
type QuestionCategory string

const (
	CategoryMCQ        QuestionCategory = "mcqOneMark"
	CategoryTwoMarks   QuestionCategory = "_2Marks"
	CategoryFourMarks  QuestionCategory = "_4Marks"
	CategorySixMarks   QuestionCategory = "_6Marks"
	CategoryEightMarks QuestionCategory = "_8Marks"
)

var categoryOrder = [...]QuestionCategory{
	CategoryMCQ,
	CategoryTwoMarks,
	CategoryFourMarks,
	CategorySixMarks,
	CategoryEightMarks,
}

var categoryMarks = map[QuestionCategory]int{
	CategoryMCQ:        1,
	CategoryTwoMarks:   2,
	CategoryFourMarks:  4,
	CategorySixMarks:   6,
	CategoryEightMarks: 8,
}

var categoryAliases = map[string]QuestionCategory{
	"mcqonemark": CategoryMCQ,
	"mcq":        CategoryMCQ,
	"1":          CategoryMCQ,
	"1mark":      CategoryMCQ,
	"_2marks":    CategoryTwoMarks,
	"2marks":     CategoryTwoMarks,
	"2mark":      CategoryTwoMarks,
	"2":          CategoryTwoMarks,
	"_4marks":    CategoryFourMarks,
	"4marks":     CategoryFourMarks,
	"4mark":      CategoryFourMarks,
	"4":          CategoryFourMarks,
	"_6marks":    CategorySixMarks,
	"6marks":     CategorySixMarks,
	"6mark":      CategorySixMarks,
	"6":          CategorySixMarks,
	"_8marks":    CategoryEightMarks,
	"8marks":     CategoryEightMarks,
	"8mark":      CategoryEightMarks,
	"8":          CategoryEightMarks,
}

// AllCategories returns the five categories in paper order.
func AllCategories() []QuestionCategory {
	order := categoryOrder
	return order[:]
}

// ParseQuestionCategory accepts the canonical names and common aliases, case-insensitively.
func ParseQuestionCategory(s string) (QuestionCategory, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if c, ok := categoryAliases[key]; ok {
		return c, nil
	}
	return "", fmt.Errorf("invalid category %q", s)
}

func (c QuestionCategory) IsValid() bool {
	_, ok := categoryMarks[c]
	return ok
}

// Marks is the fixed mark value of one question in the category.
func (c QuestionCategory) Marks() int {
	return categoryMarks[c]
}

// Index is the position of the category in paper order, or -1.
func (c QuestionCategory) Index() int {
	for i, cat := range categoryOrder {
		if cat == c {
			return i
		}
	}
	return -1
}

func (c QuestionCategory) IsMCQ() bool {
	return c == CategoryMCQ
}

// DifficultyLevel of a question
type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

func ParseDifficultyLevel(s string) (DifficultyLevel, error) {
	d := DifficultyLevel(strings.ToLower(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", fmt.Errorf("invalid difficulty level %q", s)
	}
	return d, nil
}

func (d DifficultyLevel) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Question represents a question bank entry
type Question struct {
	ID              int64
	SubjectID       string
	Category        QuestionCategory
	QuestionText    string
	Options         []string
	CorrectAnswer   string
	DifficultyLevel DifficultyLevel
	CreatedAt       time.Time
}

// Normalize trims text fields and strips the answer key from non-MCQ questions.
func (q *Question) Normalize() {
	q.SubjectID = strings.TrimSpace(q.SubjectID)
	q.QuestionText = strings.TrimSpace(q.QuestionText)
	q.CorrectAnswer = strings.TrimSpace(q.CorrectAnswer)
	if !q.Category.IsMCQ() {
		q.Options = nil
		q.CorrectAnswer = ""
		return
	}
	options := make([]string, 0, len(q.Options))
	for _, opt := range q.Options {
		if opt = strings.TrimSpace(opt); opt != "" {
			options = append(options, opt)
		}
	}
	q.Options = options
}

// Validate checks the question invariants and returns every failing field.
func (q *Question) Validate() ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(q.SubjectID) == "" {
		errs = append(errs, NewMissingFieldError("subject_id"))
	}
	if !q.Category.IsValid() {
		errs = append(errs, NewInvalidFormatError("category", string(q.Category),
			"one of mcqOneMark, _2Marks, _4Marks, _6Marks, _8Marks"))
	}
	if strings.TrimSpace(q.QuestionText) == "" {
		errs = append(errs, NewMissingFieldError("question_text"))
	}
	if !q.DifficultyLevel.IsValid() {
		errs = append(errs, NewInvalidFormatError("difficulty_level", string(q.DifficultyLevel), "one of easy, medium, hard"))
	}

	if q.Category.IsMCQ() {
		if len(q.Options) < 2 {
			errs.Add("options", "MCQ questions need at least 2 options", len(q.Options))
		}
		if q.CorrectAnswer == "" {
			errs = append(errs, NewMissingFieldError("correct_answer"))
		} else if !q.HasOption(q.CorrectAnswer) {
			errs.Add("correct_answer", "must match one of the options", q.CorrectAnswer)
		}
	} else if q.Category.IsValid() && (len(q.Options) > 0 || q.CorrectAnswer != "") {
		errs.Add("options", "only MCQ questions carry options and a correct answer", string(q.Category))
	}
	return errs
}

func (q *Question) HasOption(answer string) bool {
	for _, opt := range q.Options {
		if opt == answer {
			return true
		}
	}
	return false
}

// Marks of this question, derived from its category
func (q *Question) Marks() int {
	return q.Category.Marks()
}

// QuestionFilter narrows question bank listings. Zero values match everything.
type QuestionFilter struct {
	SubjectID  string
	Category   QuestionCategory
	Difficulty DifficultyLevel
	Search     string
}

// CategoryAvailability is the number of stored questions per category for a subject.
type CategoryAvailability map[QuestionCategory]int
