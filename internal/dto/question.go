package dto

import (
	"time"

	"examcraft/internal/importer"
)

// QuestionRequest is the body of question create and update calls.
// @Description Question create/update payload
type QuestionRequest struct {
	SubjectID       string   `json:"subject_id" validate:"required,max=64"`
	Category        string   `json:"category" validate:"required"`
	QuestionText    string   `json:"question_text" validate:"required,max=4000"`
	Options         []string `json:"options,omitempty" validate:"omitempty,max=10,dive,max=1000"`
	CorrectAnswer   string   `json:"correct_answer,omitempty" validate:"max=1000"`
	DifficultyLevel string   `json:"difficulty_level" validate:"required,max=16"`
}

// QuestionResponse represents a question in the API response
// @Description Question information
type QuestionResponse struct {
	ID              int64     `json:"id"`
	SubjectID       string    `json:"subject_id"`
	Category        string    `json:"category"`
	Marks           int       `json:"marks"`
	QuestionText    string    `json:"question_text"`
	Options         []string  `json:"options,omitempty"`
	CorrectAnswer   string    `json:"correct_answer,omitempty"`
	DifficultyLevel string    `json:"difficulty_level"`
	CreatedAt       time.Time `json:"created_at"`
}

// QuestionListQuery holds the question bank filters.
type QuestionListQuery struct {
	SubjectID  string `query:"subject_id"`
	Category   string `query:"category"`
	Difficulty string `query:"difficulty"`
	Search     string `query:"search" validate:"max=200"`
}

// CreatedResponse carries the id of a new question.
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// CategoryAvailabilityItem is the stored question count of one category.
type CategoryAvailabilityItem struct {
	Category  string `json:"category"`
	Marks     int    `json:"marks"`
	Available int    `json:"available"`
}

// AvailabilityResponse lists per-category question counts for a subject.
// @Description Questions available per category
type AvailabilityResponse struct {
	SubjectID  string                     `json:"subject_id"`
	Categories []CategoryAvailabilityItem `json:"categories"`
}

// ImportReport is the outcome of a bulk upload. Valid rows are stored even
// when other rows fail.
// @Description Bulk upload result
type ImportReport struct {
	Inserted int                 `json:"inserted"`
	Errors   []importer.RowError `json:"errors"`
}
