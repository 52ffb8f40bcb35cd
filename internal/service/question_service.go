package service

import (
	"context"

	"examcraft/internal/domain"
)

// QuestionService manages the question bank.
type QuestionService interface {
	List(ctx context.Context, filter domain.QuestionFilter) ([]*domain.Question, error)
	ListBySubject(ctx context.Context, subjectID string, category domain.QuestionCategory) ([]*domain.Question, error)
	Get(ctx context.Context, id int64) (*domain.Question, error)
	Create(ctx context.Context, question *domain.Question) (*domain.Question, error)
	Update(ctx context.Context, id int64, question *domain.Question) (*domain.Question, error)
	Delete(ctx context.Context, id int64) error
	Availability(ctx context.Context, subjectID string) (domain.CategoryAvailability, error)
}

type questionService struct {
	questionRepo domain.QuestionRepository
	subjectRepo  domain.SubjectRepository
}

func NewQuestionService(questionRepo domain.QuestionRepository, subjectRepo domain.SubjectRepository) QuestionService {
	return &questionService{
		questionRepo: questionRepo,
		subjectRepo:  subjectRepo,
	}
}

func (s *questionService) List(ctx context.Context, filter domain.QuestionFilter) ([]*domain.Question, error) {
	questions, err := s.questionRepo.GetQuestions(ctx, filter)
	if err != nil {
		return nil, storeError("Failed to list questions", err)
	}
	return questions, nil
}

func (s *questionService) ListBySubject(ctx context.Context, subjectID string, category domain.QuestionCategory) ([]*domain.Question, error) {
	subject, err := s.requireSubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return s.List(ctx, domain.QuestionFilter{SubjectID: subject.ID, Category: category})
}

func (s *questionService) Get(ctx context.Context, id int64) (*domain.Question, error) {
	question, err := s.questionRepo.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, storeError("Failed to get question", err)
	}
	if question == nil {
		return nil, domain.NewQuestionNotFoundError(id)
	}
	return question, nil
}

func (s *questionService) Create(ctx context.Context, question *domain.Question) (*domain.Question, error) {
	question.Normalize()
	if errs := question.Validate(); len(errs) > 0 {
		return nil, errs
	}
	subject, err := s.requireSubject(ctx, question.SubjectID)
	if err != nil {
		return nil, err
	}
	question.SubjectID = subject.ID
	if err := s.questionRepo.AddQuestion(ctx, question); err != nil {
		return nil, storeError("Failed to add question", err)
	}
	return question, nil
}

func (s *questionService) Update(ctx context.Context, id int64, question *domain.Question) (*domain.Question, error) {
	question.ID = id
	question.Normalize()
	if errs := question.Validate(); len(errs) > 0 {
		return nil, errs
	}
	subject, err := s.requireSubject(ctx, question.SubjectID)
	if err != nil {
		return nil, err
	}
	question.SubjectID = subject.ID
	updated, err := s.questionRepo.UpdateQuestion(ctx, question)
	if err != nil {
		return nil, storeError("Failed to update question", err)
	}
	if !updated {
		return nil, domain.NewQuestionNotFoundError(id)
	}
	return s.Get(ctx, id)
}

// Delete removes a question. Papers that reference it keep the dangling id.
func (s *questionService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.questionRepo.DeleteQuestion(ctx, id)
	if err != nil {
		return storeError("Failed to delete question", err)
	}
	if !deleted {
		return domain.NewQuestionNotFoundError(id)
	}
	return nil
}

// Availability counts the stored questions of a subject per category. Every
// category is present in the result.
func (s *questionService) Availability(ctx context.Context, subjectID string) (domain.CategoryAvailability, error) {
	subject, err := s.requireSubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	counts, err := s.questionRepo.CountQuestionsByCategory(ctx, subject.ID)
	if err != nil {
		return nil, storeError("Failed to count questions", err)
	}
	out := make(domain.CategoryAvailability, len(domain.AllCategories()))
	for _, cat := range domain.AllCategories() {
		out[cat] = counts[cat]
	}
	return out, nil
}

func (s *questionService) requireSubject(ctx context.Context, ref string) (*domain.Subject, error) {
	subject, err := lookupSubject(ctx, s.subjectRepo, ref)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, domain.NewSubjectNotFoundError(ref)
	}
	return subject, nil
}

// lookupSubject accepts a subject id or a subject code such as "CS101".
func lookupSubject(ctx context.Context, repo domain.SubjectRepository, ref string) (*domain.Subject, error) {
	subject, err := repo.GetSubjectByID(ctx, ref)
	if err != nil {
		return nil, storeError("Failed to get subject", err)
	}
	if subject != nil {
		return subject, nil
	}
	if slug := domain.SubjectIDFromCode(ref); slug != ref {
		subject, err = repo.GetSubjectByID(ctx, slug)
		if err != nil {
			return nil, storeError("Failed to get subject", err)
		}
	}
	return subject, nil
}
