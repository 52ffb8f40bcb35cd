package service

import (
	"context"

	"examcraft/internal/cache"
	"examcraft/internal/domain"
	"examcraft/internal/logger"

	"go.uber.org/zap"
)

// PaperService reads and deletes generated papers on behalf of a teacher.
type PaperService interface {
	ListMine(ctx context.Context, principal domain.Principal) ([]*domain.GeneratedPaper, error)
	ListAll(ctx context.Context, principal domain.Principal) ([]*domain.GeneratedPaper, error)
	Get(ctx context.Context, principal domain.Principal, paperID string) (*domain.GeneratedPaper, error)
	Delete(ctx context.Context, principal domain.Principal, paperID string) error
	ResolveVariant(ctx context.Context, principal domain.Principal, paperID, variant string) (*domain.ResolvedVariant, error)
}

type paperService struct {
	paperRepo    domain.PaperRepository
	questionRepo domain.QuestionRepository
	cache        domain.Cache
}

// NewPaperService creates a paper service. cache may be nil.
func NewPaperService(paperRepo domain.PaperRepository, questionRepo domain.QuestionRepository, cache domain.Cache) PaperService {
	return &paperService{
		paperRepo:    paperRepo,
		questionRepo: questionRepo,
		cache:        cache,
	}
}

func (s *paperService) ListMine(ctx context.Context, principal domain.Principal) ([]*domain.GeneratedPaper, error) {
	papers, err := s.paperRepo.GetPapersByTeacher(ctx, principal.UserID)
	if err != nil {
		return nil, storeError("Failed to list papers", err)
	}
	return papers, nil
}

func (s *paperService) ListAll(ctx context.Context, principal domain.Principal) ([]*domain.GeneratedPaper, error) {
	if !principal.IsAdmin() {
		return nil, domain.NewForbiddenError("Only administrators can list every paper")
	}
	papers, err := s.paperRepo.GetPapers(ctx)
	if err != nil {
		return nil, storeError("Failed to list papers", err)
	}
	return papers, nil
}

// Get returns a paper owned by the caller. Other teachers' papers are
// reported as not found; administrators can read any paper.
func (s *paperService) Get(ctx context.Context, principal domain.Principal, paperID string) (*domain.GeneratedPaper, error) {
	paper, err := s.paperRepo.GetPaperByID(ctx, paperID)
	if err != nil {
		return nil, storeError("Failed to get paper", err)
	}
	if paper == nil || (!paper.OwnedBy(principal.UserID) && !principal.IsAdmin()) {
		return nil, domain.NewPaperNotFoundError(paperID)
	}
	return paper, nil
}

// Delete removes the paper and its sets. Cached exports need no cleanup:
// they are only served after the paper is found, and expire on their own.
func (s *paperService) Delete(ctx context.Context, principal domain.Principal, paperID string) error {
	paper, err := s.Get(ctx, principal, paperID)
	if err != nil {
		return err
	}
	deleted, err := s.paperRepo.DeletePaper(ctx, paperID)
	if err != nil {
		return storeError("Failed to delete paper", err)
	}
	if !deleted {
		return domain.NewPaperNotFoundError(paperID)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, cache.DashboardKey(paper.TeacherID)); err != nil {
			logger.Get().Warn("Failed to drop cached dashboard", zap.String("teacherID", paper.TeacherID), zap.Error(err))
		}
	}
	logger.Get().Info("Deleted paper", zap.String("paperID", paperID), zap.String("userID", principal.UserID))
	return nil
}

// ResolveVariant loads the paper and its questions and groups one set into sections.
func (s *paperService) ResolveVariant(ctx context.Context, principal domain.Principal, paperID, variant string) (*domain.ResolvedVariant, error) {
	paper, err := s.Get(ctx, principal, paperID)
	if err != nil {
		return nil, err
	}
	label, ok := domain.NormalizeVariantLabel(variant)
	if !ok {
		return nil, domain.NewNotFoundError("Variant "+variant+" not found on paper "+paperID).
			WithContext("variant", variant)
	}
	set, ok := paper.Variant(label)
	if !ok {
		return nil, domain.NewNotFoundError("Variant "+label+" not found on paper "+paperID).
			WithContext("variant", label)
	}

	questions, err := s.questionRepo.GetQuestionsByIDs(ctx, set.Questions)
	if err != nil {
		return nil, storeError("Failed to load paper questions", err)
	}
	lookup := make(map[int64]*domain.Question, len(questions))
	for _, q := range questions {
		lookup[q.ID] = q
	}

	resolved, err := domain.ResolveVariant(paper, label, lookup)
	if err != nil {
		return nil, err
	}
	if len(resolved.MissingQuestionIDs) > 0 {
		logger.Get().Warn("Paper references deleted questions",
			zap.String("paperID", paperID),
			zap.String("variant", label),
			zap.Int64s("missingQuestionIDs", resolved.MissingQuestionIDs))
	}
	return resolved, nil
}
