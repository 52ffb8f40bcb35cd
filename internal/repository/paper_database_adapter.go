package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"examcraft/internal/domain"
	"examcraft/internal/repository/models"
	"examcraft/internal/util"

	"github.com/jmoiron/sqlx"
)

// PaperDatabaseAdapter implements domain.PaperRepository. Papers live in
// "papers"; their sets live in "paper_variants" keyed by (paper_id, variant).
type PaperDatabaseAdapter struct {
	db *sqlx.DB
}

func NewPaperDatabaseAdapter(db *sqlx.DB) domain.PaperRepository {
	return &PaperDatabaseAdapter{db: db}
}

// CreatePaper writes the paper and all of its variants. Callers run it inside
// a transaction so a failed variant insert leaves nothing behind.
func (a *PaperDatabaseAdapter) CreatePaper(ctx context.Context, paper *domain.GeneratedPaper) error {
	exec := GetExecutor(ctx, a.db)
	paperRow, variantRows := toModelPaper(paper)

	query := `INSERT INTO papers (
		id, subject_id, subject_name, teacher_id, exam_duration, total_marks, questions, created_at
	) VALUES (
		:id, :subject_id, :subject_name, :teacher_id, :exam_duration, :total_marks, :questions, :created_at
	)`
	if _, err := exec.NamedExecContext(ctx, query, paperRow); err != nil {
		return fmt.Errorf("failed to create paper %s: %w", paper.ID, err)
	}

	variantQuery := `INSERT INTO paper_variants (paper_id, variant, position, questions)
		VALUES (:paper_id, :variant, :position, :questions)`
	for i := range variantRows {
		if _, err := exec.NamedExecContext(ctx, variantQuery, &variantRows[i]); err != nil {
			return fmt.Errorf("failed to create variant %s of paper %s: %w", variantRows[i].Variant, paper.ID, err)
		}
	}
	return nil
}

// GetPaperByID returns nil, nil when the paper does not exist.
func (a *PaperDatabaseAdapter) GetPaperByID(ctx context.Context, id string) (*domain.GeneratedPaper, error) {
	exec := GetExecutor(ctx, a.db)
	var row models.Paper
	query := exec.Rebind(`SELECT ` + paperColumns + ` FROM papers WHERE id = ?`)
	if err := exec.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get paper %s: %w", id, err)
	}

	papers, err := a.attachVariants(ctx, exec, []models.Paper{row})
	if err != nil {
		return nil, err
	}
	return papers[0], nil
}

func (a *PaperDatabaseAdapter) GetPapers(ctx context.Context) ([]*domain.GeneratedPaper, error) {
	exec := GetExecutor(ctx, a.db)
	var rows []models.Paper
	query := `SELECT ` + paperColumns + ` FROM papers ORDER BY created_at DESC, id DESC`
	if err := exec.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to get papers: %w", err)
	}
	return a.attachVariants(ctx, exec, rows)
}

func (a *PaperDatabaseAdapter) GetPapersByTeacher(ctx context.Context, teacherID string) ([]*domain.GeneratedPaper, error) {
	exec := GetExecutor(ctx, a.db)
	var rows []models.Paper
	query := exec.Rebind(`SELECT ` + paperColumns + ` FROM papers WHERE teacher_id = ? ORDER BY created_at DESC, id DESC`)
	if err := exec.SelectContext(ctx, &rows, query, teacherID); err != nil {
		return nil, fmt.Errorf("failed to get papers for teacher %s: %w", teacherID, err)
	}
	return a.attachVariants(ctx, exec, rows)
}

// DeletePaper removes the variants and then the paper itself.
func (a *PaperDatabaseAdapter) DeletePaper(ctx context.Context, id string) (bool, error) {
	exec := GetExecutor(ctx, a.db)
	if _, err := exec.ExecContext(ctx, exec.Rebind(`DELETE FROM paper_variants WHERE paper_id = ?`), id); err != nil {
		return false, fmt.Errorf("failed to delete variants of paper %s: %w", id, err)
	}
	result, err := exec.ExecContext(ctx, exec.Rebind(`DELETE FROM papers WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("failed to delete paper %s: %w", id, err)
	}
	return rowsAffected(result)
}

func (a *PaperDatabaseAdapter) CountPapersByTeacher(ctx context.Context, teacherID string) (int, error) {
	exec := GetExecutor(ctx, a.db)
	var total int
	query := exec.Rebind(`SELECT COUNT(*) FROM papers WHERE teacher_id = ?`)
	if err := exec.GetContext(ctx, &total, query, teacherID); err != nil {
		return 0, fmt.Errorf("failed to count papers for teacher %s: %w", teacherID, err)
	}
	return total, nil
}

func (a *PaperDatabaseAdapter) attachVariants(ctx context.Context, exec DBTX, rows []models.Paper) ([]*domain.GeneratedPaper, error) {
	papers := make([]*domain.GeneratedPaper, 0, len(rows))
	if len(rows) == 0 {
		return papers, nil
	}

	ids := make([]string, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}

	byPaper := make(map[string][]models.PaperVariant, len(rows))
	for start := 0; start < len(ids); start += maxInListSize {
		end := start + maxInListSize
		if end > len(ids) {
			end = len(ids)
		}
		query, args, err := sqlx.In(`SELECT `+paperVariantColumns+` FROM paper_variants WHERE paper_id IN (?) ORDER BY paper_id, position`, ids[start:end])
		if err != nil {
			return nil, fmt.Errorf("failed to build variant query: %w", err)
		}
		var variants []models.PaperVariant
		if err := exec.SelectContext(ctx, &variants, exec.Rebind(query), args...); err != nil {
			return nil, fmt.Errorf("failed to get paper variants: %w", err)
		}
		for _, v := range variants {
			byPaper[v.PaperID] = append(byPaper[v.PaperID], v)
		}
	}

	for i := range rows {
		papers = append(papers, toDomainPaper(&rows[i], byPaper[rows[i].ID]))
	}
	return papers, nil
}

func toDomainPaper(m *models.Paper, variants []models.PaperVariant) *domain.GeneratedPaper {
	paper := &domain.GeneratedPaper{
		ID:           m.ID,
		SubjectID:    m.SubjectID,
		SubjectName:  m.SubjectName,
		TeacherID:    m.TeacherID,
		ExamDuration: m.ExamDuration,
		TotalMarks:   m.TotalMarks,
		CreatedAt:    util.UnixMilliToTime(m.CreatedAt),
		Questions:    []int64(m.Questions),
		SetVariants:  make([]domain.PaperVariant, 0, len(variants)),
	}
	for _, v := range variants {
		paper.SetVariants = append(paper.SetVariants, domain.PaperVariant{
			Variant:   v.Variant,
			Questions: []int64(v.Questions),
		})
	}
	return paper
}

func toModelPaper(p *domain.GeneratedPaper) (*models.Paper, []models.PaperVariant) {
	paper := &models.Paper{
		ID:           p.ID,
		SubjectID:    p.SubjectID,
		SubjectName:  p.SubjectName,
		TeacherID:    p.TeacherID,
		ExamDuration: p.ExamDuration,
		TotalMarks:   p.TotalMarks,
		Questions:    models.Int64Slice(p.Questions),
		CreatedAt:    util.TimeToUnixMilli(p.CreatedAt),
	}
	variants := make([]models.PaperVariant, len(p.SetVariants))
	for i, v := range p.SetVariants {
		variants[i] = models.PaperVariant{
			PaperID:   p.ID,
			Variant:   v.Variant,
			Position:  i,
			Questions: models.Int64Slice(v.Questions),
		}
	}
	return paper, variants
}
