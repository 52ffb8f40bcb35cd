package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"examcraft/internal/domain"
	"examcraft/internal/repository/models"
	"examcraft/internal/util"

	"github.com/jmoiron/sqlx"
)

// Oracle rejects IN lists longer than 1000 items.
const maxInListSize = 500

const insertQuestionQuery = `INSERT INTO questions (
		id, subject_id, category, question_text, options, correct_answer, difficulty_level, created_at
	) VALUES (
		:id, :subject_id, :category, :question_text, :options, :correct_answer, :difficulty_level, :created_at
	)`

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.DB
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
}

func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

// GetQuestions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestions(ctx context.Context, filter domain.QuestionFilter) ([]*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)

	var (
		conds []string
		args  []interface{}
	)
	if filter.SubjectID != "" {
		conds = append(conds, "subject_id = ?")
		args = append(args, filter.SubjectID)
	}
	if filter.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, string(filter.Category))
	}
	if filter.Difficulty != "" {
		conds = append(conds, "difficulty_level = ?")
		args = append(args, string(filter.Difficulty))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		conds = append(conds, "LOWER(question_text) LIKE ?")
		args = append(args, "%"+strings.ToLower(search)+"%")
	}

	query := `SELECT ` + questionColumns + ` FROM questions`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY id`

	var rows []models.Question
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	return toDomainQuestions(rows), nil
}

// GetQuestionByID returns nil, nil when the question does not exist.
func (a *QuestionDatabaseAdapter) GetQuestionByID(ctx context.Context, id int64) (*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)
	var row models.Question
	query := exec.Rebind(`SELECT ` + questionColumns + ` FROM questions WHERE id = ?`)
	if err := exec.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question %d: %w", id, err)
	}
	return toDomainQuestion(&row), nil
}

// GetQuestionsByIDs returns the questions that still exist, in no particular order.
func (a *QuestionDatabaseAdapter) GetQuestionsByIDs(ctx context.Context, ids []int64) ([]*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)
	questions := make([]*domain.Question, 0, len(ids))
	for start := 0; start < len(ids); start += maxInListSize {
		end := start + maxInListSize
		if end > len(ids) {
			end = len(ids)
		}
		query, args, err := sqlx.In(`SELECT `+questionColumns+` FROM questions WHERE id IN (?)`, ids[start:end])
		if err != nil {
			return nil, fmt.Errorf("failed to build question id query: %w", err)
		}
		var rows []models.Question
		if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), args...); err != nil {
			return nil, fmt.Errorf("failed to get questions by ids: %w", err)
		}
		questions = append(questions, toDomainQuestions(rows)...)
	}
	return questions, nil
}

func (a *QuestionDatabaseAdapter) GetQuestionIDsBySubjectAndCategory(ctx context.Context, subjectID string, category domain.QuestionCategory) ([]int64, error) {
	exec := GetExecutor(ctx, a.db)
	var ids []int64
	query := exec.Rebind(`SELECT id FROM questions WHERE subject_id = ? AND category = ? ORDER BY id`)
	if err := exec.SelectContext(ctx, &ids, query, subjectID, string(category)); err != nil {
		return nil, fmt.Errorf("failed to get question pool for %s/%s: %w", subjectID, category, err)
	}
	return ids, nil
}

// CountQuestionsByCategory counts questions per category; an empty subjectID counts the whole bank.
func (a *QuestionDatabaseAdapter) CountQuestionsByCategory(ctx context.Context, subjectID string) (domain.CategoryAvailability, error) {
	exec := GetExecutor(ctx, a.db)
	query := `SELECT category "category", COUNT(*) "total" FROM questions`
	var args []interface{}
	if subjectID != "" {
		query += ` WHERE subject_id = ?`
		args = append(args, subjectID)
	}
	query += ` GROUP BY category`

	var rows []models.CategoryCount
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}
	counts := make(domain.CategoryAvailability, len(domain.AllCategories()))
	for _, cat := range domain.AllCategories() {
		counts[cat] = 0
	}
	for _, row := range rows {
		cat := domain.QuestionCategory(row.Category)
		if cat.IsValid() {
			counts[cat] = row.Total
		}
	}
	return counts, nil
}

// AddQuestion assigns an id and creation time when missing and stores the question.
func (a *QuestionDatabaseAdapter) AddQuestion(ctx context.Context, question *domain.Question) error {
	exec := GetExecutor(ctx, a.db)
	return insertQuestion(ctx, exec, question)
}

// AddQuestionsInBulk inserts every question on the same executor; wrap it in a
// transaction to make the batch all-or-nothing. New ids start above the stored
// maximum so batches from the import and seed commands do not reuse ids
// another process already wrote.
func (a *QuestionDatabaseAdapter) AddQuestionsInBulk(ctx context.Context, questions []*domain.Question) (int, error) {
	exec := GetExecutor(ctx, a.db)
	var maxID int64
	if err := exec.GetContext(ctx, &maxID, `SELECT COALESCE(MAX(id), 0) FROM questions`); err != nil {
		return 0, fmt.Errorf("failed to read question id floor: %w", err)
	}
	util.ObserveQuestionID(maxID)
	for i, q := range questions {
		if err := insertQuestion(ctx, exec, q); err != nil {
			return i, err
		}
	}
	return len(questions), nil
}

func insertQuestion(ctx context.Context, exec DBTX, question *domain.Question) error {
	if question.ID == 0 {
		question.ID = util.NewQuestionID()
	}
	if question.CreatedAt.IsZero() {
		question.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	if _, err := exec.NamedExecContext(ctx, insertQuestionQuery, toModelQuestion(question)); err != nil {
		return fmt.Errorf("failed to add question: %w", err)
	}
	return nil
}

func (a *QuestionDatabaseAdapter) UpdateQuestion(ctx context.Context, question *domain.Question) (bool, error) {
	exec := GetExecutor(ctx, a.db)
	query := `UPDATE questions SET
		subject_id = :subject_id,
		category = :category,
		question_text = :question_text,
		options = :options,
		correct_answer = :correct_answer,
		difficulty_level = :difficulty_level
	WHERE id = :id`
	result, err := exec.NamedExecContext(ctx, query, toModelQuestion(question))
	if err != nil {
		return false, fmt.Errorf("failed to update question %d: %w", question.ID, err)
	}
	return rowsAffected(result)
}

func (a *QuestionDatabaseAdapter) DeleteQuestion(ctx context.Context, id int64) (bool, error) {
	exec := GetExecutor(ctx, a.db)
	result, err := exec.ExecContext(ctx, exec.Rebind(`DELETE FROM questions WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("failed to delete question %d: %w", id, err)
	}
	return rowsAffected(result)
}

func toDomainQuestions(rows []models.Question) []*domain.Question {
	questions := make([]*domain.Question, 0, len(rows))
	for i := range rows {
		questions = append(questions, toDomainQuestion(&rows[i]))
	}
	return questions
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	var options []string
	if len(m.Options) > 0 {
		options = append(options, m.Options...)
	}
	return &domain.Question{
		ID:              m.ID,
		SubjectID:       m.SubjectID,
		Category:        domain.QuestionCategory(m.Category),
		QuestionText:    m.QuestionText,
		Options:         options,
		CorrectAnswer:   util.NullStringToString(m.CorrectAnswer),
		DifficultyLevel: domain.DifficultyLevel(m.DifficultyLevel),
		CreatedAt:       util.UnixMilliToTime(m.CreatedAt),
	}
}

func toModelQuestion(q *domain.Question) *models.Question {
	return &models.Question{
		ID:              q.ID,
		SubjectID:       q.SubjectID,
		Category:        string(q.Category),
		QuestionText:    q.QuestionText,
		Options:         models.StringSlice(q.Options),
		CorrectAnswer:   util.StringToNullString(q.CorrectAnswer),
		DifficultyLevel: string(q.DifficultyLevel),
		CreatedAt:       util.TimeToUnixMilli(q.CreatedAt),
	}
}
