package models

import "database/sql"

// Subject row
type Subject struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	Code string `db:"code"`
}

// Question row. created_at holds unix milliseconds.
type Question struct {
	ID              int64          `db:"id"`
	SubjectID       string         `db:"subject_id"`
	Category        string         `db:"category"`
	QuestionText    string         `db:"question_text"`
	Options         StringSlice    `db:"options"`
	CorrectAnswer   sql.NullString `db:"correct_answer"`
	DifficultyLevel string         `db:"difficulty_level"`
	CreatedAt       int64          `db:"created_at"`
}

// CategoryCount is one row of a GROUP BY category query.
type CategoryCount struct {
	Category string `db:"category"`
	Total    int    `db:"total"`
}
