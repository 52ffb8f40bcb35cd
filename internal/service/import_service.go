package service

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"

	"examcraft/internal/domain"
	"examcraft/internal/dto"
	"examcraft/internal/importer"
	"examcraft/internal/logger"

	"go.uber.org/zap"
)

// ImportService loads bulk question files into the bank.
type ImportService interface {
	Import(ctx context.Context, format importer.Format, r io.Reader) (*dto.ImportReport, error)
}

type importService struct {
	txManager    domain.TransactionManager
	questionRepo domain.QuestionRepository
	subjectRepo  domain.SubjectRepository
}

func NewImportService(txManager domain.TransactionManager, questionRepo domain.QuestionRepository, subjectRepo domain.SubjectRepository) ImportService {
	return &importService{
		txManager:    txManager,
		questionRepo: questionRepo,
		subjectRepo:  subjectRepo,
	}
}

// Import parses the whole file, drops rows that fail validation or name an
// unknown subject and inserts the rest in one transaction.
func (s *importService) Import(ctx context.Context, format importer.Format, r io.Reader) (*dto.ImportReport, error) {
	parsed, err := importer.Parse(format, r)
	if err != nil {
		return nil, err
	}

	report := &dto.ImportReport{Errors: append([]importer.RowError{}, parsed.Errors...)}
	subjects := make(map[string]*domain.Subject)
	var accepted []*domain.Question
	for _, row := range parsed.Rows {
		ref := row.Question.SubjectID
		subject, seen := subjects[ref]
		if !seen {
			subject, err = lookupSubject(ctx, s.subjectRepo, ref)
			if err != nil {
				return nil, err
			}
			subjects[ref] = subject
		}
		if subject == nil {
			report.Errors = append(report.Errors, importer.RowError{
				Row: row.Number, Field: "subjectId", Value: ref,
				Message: fmt.Sprintf("unknown subject %q", ref),
			})
			continue
		}
		row.Question.SubjectID = subject.ID
		accepted = append(accepted, row.Question)
	}
	slices.SortStableFunc(report.Errors, func(a, b importer.RowError) int {
		return cmp.Compare(a.Row, b.Row)
	})

	if len(accepted) > 0 {
		err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
			inserted, err := s.questionRepo.AddQuestionsInBulk(ctx, accepted)
			if err != nil {
				return storeError("Failed to insert questions", err)
			}
			report.Inserted = inserted
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	logger.Get().Info("Imported questions",
		zap.String("format", string(format)),
		zap.Int("inserted", report.Inserted),
		zap.Int("rejected", len(report.Errors)))
	return report, nil
}
