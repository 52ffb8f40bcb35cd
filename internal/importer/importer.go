// Package importer reads bulk question files. Every row is checked on its own
// so one bad row never hides the rest of the file.
package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"examcraft/internal/domain"
)

// Format of a bulk upload file.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON:
		return f, nil
	case "":
		return FormatCSV, nil
	}
	return "", domain.NewInvalidInputError(fmt.Sprintf("unsupported bulk format %q, use csv or json", s)).
		WithContext("format", s)
}

// RowError describes one rejected row. Row counts data rows from 1.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// Row is a parsed, validated question and the row it came from.
type Row struct {
	Number   int
	Question *domain.Question
}

// Result holds the accepted rows and the row errors of one file.
type Result struct {
	Rows   []Row
	Errors []RowError
}

// Questions returns the accepted questions in file order.
func (r *Result) Questions() []*domain.Question {
	out := make([]*domain.Question, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = row.Question
	}
	return out
}

// Parse reads a whole file. The error is a PARSE_ERROR when the file cannot be
// read at all; row level problems are reported in Result.Errors.
func Parse(format Format, r io.Reader) (*Result, error) {
	switch format {
	case FormatJSON:
		return ParseJSON(r)
	case FormatCSV:
		return ParseCSV(r)
	}
	return nil, domain.NewInvalidInputError(fmt.Sprintf("unsupported bulk format %q", format))
}

// rawQuestion is a row before validation, shared by both formats.
type rawQuestion struct {
	SubjectID     string
	Category      string
	QuestionText  string
	Options       []string
	CorrectAnswer string
	Difficulty    string
	Marks         string
}

func (raw rawQuestion) build(row int) (*domain.Question, *RowError) {
	subjectID := strings.TrimSpace(raw.SubjectID)
	if subjectID == "" {
		return nil, &RowError{Row: row, Field: "subjectId", Message: "missing required field subjectId"}
	}
	if strings.TrimSpace(raw.Category) == "" {
		return nil, &RowError{Row: row, Field: "category", Message: "missing required field category"}
	}
	if strings.TrimSpace(raw.QuestionText) == "" {
		return nil, &RowError{Row: row, Field: "questionText", Message: "missing required field questionText"}
	}
	if strings.TrimSpace(raw.Difficulty) == "" {
		return nil, &RowError{Row: row, Field: "difficultyLevel", Message: "missing required field difficultyLevel"}
	}

	category, err := domain.ParseQuestionCategory(raw.Category)
	if err != nil {
		return nil, &RowError{Row: row, Field: "category", Value: raw.Category,
			Message: fmt.Sprintf("invalid category %q, use mcq, 2marks, 4marks, 6marks or 8marks", raw.Category)}
	}
	difficulty, err := domain.ParseDifficultyLevel(raw.Difficulty)
	if err != nil {
		return nil, &RowError{Row: row, Field: "difficultyLevel", Value: raw.Difficulty,
			Message: fmt.Sprintf("invalid difficulty %q, use easy, medium or hard", raw.Difficulty)}
	}
	if marks := strings.TrimSpace(raw.Marks); marks != "" {
		n, err := strconv.Atoi(marks)
		if err != nil || n != category.Marks() {
			return nil, &RowError{Row: row, Field: "marks", Value: marks,
				Message: fmt.Sprintf("marks %q does not match category %s worth %d", marks, category, category.Marks())}
		}
	}

	q := &domain.Question{
		SubjectID:       subjectID,
		Category:        category,
		QuestionText:    raw.QuestionText,
		Options:         raw.Options,
		CorrectAnswer:   raw.CorrectAnswer,
		DifficultyLevel: difficulty,
	}
	q.Normalize()
	if errs := q.Validate(); len(errs) > 0 {
		rowErr := &RowError{Row: row, Field: errs[0].Field, Message: errs.Error()}
		if errs[0].Value != nil {
			rowErr.Value = fmt.Sprint(errs[0].Value)
		}
		return nil, rowErr
	}
	return q, nil
}
