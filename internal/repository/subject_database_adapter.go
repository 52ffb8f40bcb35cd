package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"examcraft/internal/domain"
	"examcraft/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// SubjectDatabaseAdapter implements domain.SubjectRepository using sqlx.DB
type SubjectDatabaseAdapter struct {
	db *sqlx.DB
}

func NewSubjectDatabaseAdapter(db *sqlx.DB) domain.SubjectRepository {
	return &SubjectDatabaseAdapter{db: db}
}

func (a *SubjectDatabaseAdapter) GetSubjects(ctx context.Context) ([]*domain.Subject, error) {
	exec := GetExecutor(ctx, a.db)
	var rows []models.Subject
	query := `SELECT ` + subjectColumns + ` FROM subjects ORDER BY code, id`
	if err := exec.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to get subjects: %w", err)
	}
	subjects := make([]*domain.Subject, 0, len(rows))
	for i := range rows {
		subjects = append(subjects, toDomainSubject(&rows[i]))
	}
	return subjects, nil
}

func (a *SubjectDatabaseAdapter) GetSubjectByID(ctx context.Context, id string) (*domain.Subject, error) {
	exec := GetExecutor(ctx, a.db)
	var row models.Subject
	query := exec.Rebind(`SELECT ` + subjectColumns + ` FROM subjects WHERE id = ?`)
	if err := exec.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subject %s: %w", id, err)
	}
	return toDomainSubject(&row), nil
}

func (a *SubjectDatabaseAdapter) CreateSubject(ctx context.Context, subject *domain.Subject) error {
	exec := GetExecutor(ctx, a.db)
	query := `INSERT INTO subjects (id, name, code) VALUES (:id, :name, :code)`
	if _, err := exec.NamedExecContext(ctx, query, toModelSubject(subject)); err != nil {
		return fmt.Errorf("failed to create subject %s: %w", subject.ID, err)
	}
	return nil
}

func (a *SubjectDatabaseAdapter) UpdateSubject(ctx context.Context, subject *domain.Subject) (bool, error) {
	exec := GetExecutor(ctx, a.db)
	query := `UPDATE subjects SET name = :name, code = :code WHERE id = :id`
	result, err := exec.NamedExecContext(ctx, query, toModelSubject(subject))
	if err != nil {
		return false, fmt.Errorf("failed to update subject %s: %w", subject.ID, err)
	}
	return rowsAffected(result)
}

func (a *SubjectDatabaseAdapter) DeleteSubject(ctx context.Context, id string) (bool, error) {
	exec := GetExecutor(ctx, a.db)
	result, err := exec.ExecContext(ctx, exec.Rebind(`DELETE FROM subjects WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("failed to delete subject %s: %w", id, err)
	}
	return rowsAffected(result)
}

func (a *SubjectDatabaseAdapter) CountSubjects(ctx context.Context) (int, error) {
	exec := GetExecutor(ctx, a.db)
	var total int
	if err := exec.GetContext(ctx, &total, `SELECT COUNT(*) FROM subjects`); err != nil {
		return 0, fmt.Errorf("failed to count subjects: %w", err)
	}
	return total, nil
}

func toDomainSubject(m *models.Subject) *domain.Subject {
	if m == nil {
		return nil
	}
	return &domain.Subject{ID: m.ID, Name: m.Name, Code: m.Code}
}

func toModelSubject(s *domain.Subject) *models.Subject {
	return &models.Subject{ID: s.ID, Name: s.Name, Code: s.Code}
}
