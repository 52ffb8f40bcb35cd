package service

import (
	"context"

	"examcraft/internal/domain"
	"examcraft/internal/logger"

	"go.uber.org/zap"
)

// SubjectService manages the subject registry.
type SubjectService interface {
	List(ctx context.Context) ([]*domain.Subject, error)
	Get(ctx context.Context, id string) (*domain.Subject, error)
	Create(ctx context.Context, subject *domain.Subject) (*domain.Subject, error)
	Update(ctx context.Context, id string, subject *domain.Subject) (*domain.Subject, error)
	Delete(ctx context.Context, id string) error
}

type subjectService struct {
	repo domain.SubjectRepository
}

func NewSubjectService(repo domain.SubjectRepository) SubjectService {
	return &subjectService{repo: repo}
}

func (s *subjectService) List(ctx context.Context) ([]*domain.Subject, error) {
	subjects, err := s.repo.GetSubjects(ctx)
	if err != nil {
		return nil, storeError("Failed to list subjects", err)
	}
	return subjects, nil
}

func (s *subjectService) Get(ctx context.Context, id string) (*domain.Subject, error) {
	subject, err := s.repo.GetSubjectByID(ctx, id)
	if err != nil {
		return nil, storeError("Failed to get subject", err)
	}
	if subject == nil {
		return nil, domain.NewSubjectNotFoundError(id)
	}
	return subject, nil
}

func (s *subjectService) Create(ctx context.Context, subject *domain.Subject) (*domain.Subject, error) {
	subject.Normalize()
	if errs := subject.Validate(); len(errs) > 0 {
		return nil, errs
	}

	existing, err := s.repo.GetSubjectByID(ctx, subject.ID)
	if err != nil {
		return nil, storeError("Failed to check subject", err)
	}
	if existing != nil {
		return nil, domain.NewConflictError("Subject already exists with ID: "+subject.ID).
			WithContext("subject_id", subject.ID)
	}

	if err := s.repo.CreateSubject(ctx, subject); err != nil {
		return nil, storeError("Failed to create subject", err)
	}
	logger.Get().Info("Created subject", zap.String("subjectID", subject.ID), zap.String("code", subject.Code))
	return subject, nil
}

// Update replaces name and code. The id in the path wins over the body.
func (s *subjectService) Update(ctx context.Context, id string, subject *domain.Subject) (*domain.Subject, error) {
	subject.ID = id
	subject.Normalize()
	if errs := subject.Validate(); len(errs) > 0 {
		return nil, errs
	}
	updated, err := s.repo.UpdateSubject(ctx, subject)
	if err != nil {
		return nil, storeError("Failed to update subject", err)
	}
	if !updated {
		return nil, domain.NewSubjectNotFoundError(id)
	}
	return subject, nil
}

// Delete removes the subject only. Its questions and papers stay.
func (s *subjectService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteSubject(ctx, id)
	if err != nil {
		return storeError("Failed to delete subject", err)
	}
	if !deleted {
		return domain.NewSubjectNotFoundError(id)
	}
	logger.Get().Info("Deleted subject", zap.String("subjectID", id))
	return nil
}
