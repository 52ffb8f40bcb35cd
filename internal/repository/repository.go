package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// DBTX is an interface abstracting *sqlx.DB and *sqlx.Tx for repository use.
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Rebind(query string) string
}

var (
	_ DBTX = (*sqlx.DB)(nil)
	_ DBTX = (*sqlx.Tx)(nil)
)

// questionColumns lists question columns with quoted lower-case aliases so
// Oracle's upper-case column names still map onto the db tags.
const questionColumns = `id "id", subject_id "subject_id", category "category", question_text "question_text",
	options "options", correct_answer "correct_answer", difficulty_level "difficulty_level", created_at "created_at"`

const subjectColumns = `id "id", name "name", code "code"`

const paperColumns = `id "id", subject_id "subject_id", subject_name "subject_name", teacher_id "teacher_id",
	exam_duration "exam_duration", total_marks "total_marks", questions "questions", created_at "created_at"`

const paperVariantColumns = `paper_id "paper_id", variant "variant", position "position", questions "questions"`

const userColumns = `id "id", email "email", name "name", google_id "google_id", password_hash "password_hash",
	designation "designation", department "department", role "role", created_at "created_at", updated_at "updated_at"`

// rowsAffected reports whether a write touched any row.
func rowsAffected(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
