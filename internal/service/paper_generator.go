package service

import (
	"context"
	"slices"
	"time"

	"examcraft/internal/domain"
	"examcraft/internal/logger"
	"examcraft/internal/util"

	"go.uber.org/zap"
)

// PaperGenerator builds and stores multi-variant exam papers.
type PaperGenerator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GeneratedPaper, error)
}

type paperGenerator struct {
	txManager    domain.TransactionManager
	subjectRepo  domain.SubjectRepository
	questionRepo domain.QuestionRepository
	paperRepo    domain.PaperRepository
	rng          domain.Shuffler
	policy       domain.VariantPolicy
	now          func() time.Time
	newID        func() string
}

// NewPaperGenerator creates a generator. rng must be safe for concurrent use.
func NewPaperGenerator(
	txManager domain.TransactionManager,
	subjectRepo domain.SubjectRepository,
	questionRepo domain.QuestionRepository,
	paperRepo domain.PaperRepository,
	rng domain.Shuffler,
	policy domain.VariantPolicy,
) PaperGenerator {
	if policy == "" {
		policy = domain.VariantPolicyPermute
	}
	return &paperGenerator{
		txManager:    txManager,
		subjectRepo:  subjectRepo,
		questionRepo: questionRepo,
		paperRepo:    paperRepo,
		rng:          rng,
		policy:       policy,
		now:          time.Now,
		newID:        util.NewULID,
	}
}

// Generate checks availability for every requested category, draws the
// questions and stores the paper with its five sets. The pools are read and
// the paper written in one transaction; on any error nothing is stored.
func (g *paperGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GeneratedPaper, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, errs
	}

	var paper *domain.GeneratedPaper
	err := g.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		subject, err := lookupSubject(ctx, g.subjectRepo, req.SubjectID)
		if err != nil {
			return err
		}
		if subject == nil {
			return domain.NewSubjectNotFoundError(req.SubjectID)
		}

		pools, err := g.loadPools(ctx, subject.ID, req.Counts)
		if err != nil {
			return err
		}

		paper = g.assemble(subject, req, pools)
		if err := g.paperRepo.CreatePaper(ctx, paper); err != nil {
			return storeError("Failed to save generated paper", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Info("Generated paper",
		zap.String("paperID", paper.ID),
		zap.String("subjectID", paper.SubjectID),
		zap.String("teacherID", paper.TeacherID),
		zap.Int("questions", len(paper.Questions)),
		zap.Int("totalMarks", paper.TotalMarks),
		zap.String("policy", string(g.policy)))
	return paper, nil
}

// loadPools fetches the candidate ids of every requested category and reports
// all shortfalls together.
func (g *paperGenerator) loadPools(ctx context.Context, subjectID string, counts domain.CategoryCounts) (map[domain.QuestionCategory][]int64, error) {
	pools := make(map[domain.QuestionCategory][]int64, len(counts))
	var shortfalls []domain.Shortfall
	for _, cat := range domain.AllCategories() {
		requested := counts[cat]
		if requested == 0 {
			continue
		}
		ids, err := g.questionRepo.GetQuestionIDsBySubjectAndCategory(ctx, subjectID, cat)
		if err != nil {
			return nil, storeError("Failed to load question pool", err)
		}
		if len(ids) < requested {
			shortfalls = append(shortfalls, domain.Shortfall{Category: cat, Requested: requested, Available: len(ids)})
			continue
		}
		pools[cat] = ids
	}
	if len(shortfalls) > 0 {
		logger.Get().Info("Not enough questions to generate paper",
			zap.String("subjectID", subjectID),
			zap.Any("shortfalls", shortfalls))
		return nil, domain.NewInsufficientQuestionsError(subjectID, shortfalls)
	}
	return pools, nil
}

func (g *paperGenerator) assemble(subject *domain.Subject, req domain.GenerationRequest, pools map[domain.QuestionCategory][]int64) *domain.GeneratedPaper {
	totalMarks := req.TotalMarks
	if totalMarks == 0 {
		totalMarks = req.Counts.TotalMarks()
	}

	base := g.selectSet(req.Counts, pools)
	variants := make([]domain.PaperVariant, 0, domain.VariantCount)
	for i, label := range domain.VariantLabels() {
		var set []int64
		switch {
		case g.policy == domain.VariantPolicyResample && i > 0:
			set = g.selectSet(req.Counts, pools)
		default:
			set = slices.Clone(base)
		}
		g.shuffle(set)
		variants = append(variants, domain.PaperVariant{Variant: label, Questions: set})
	}

	return &domain.GeneratedPaper{
		ID:           g.newID(),
		SubjectID:    subject.ID,
		SubjectName:  subject.Name,
		TeacherID:    req.TeacherID,
		ExamDuration: req.ExamDurationMinutes,
		TotalMarks:   totalMarks,
		CreatedAt:    g.now().UTC().Truncate(time.Millisecond),
		Questions:    base,
		SetVariants:  variants,
	}
}

// selectSet draws the requested count from each pool without replacement.
// The result is in category order, then id order.
func (g *paperGenerator) selectSet(counts domain.CategoryCounts, pools map[domain.QuestionCategory][]int64) []int64 {
	set := make([]int64, 0, counts.Questions())
	for _, cat := range domain.AllCategories() {
		n := counts[cat]
		if n == 0 {
			continue
		}
		drawn := g.draw(pools[cat], n)
		slices.Sort(drawn)
		set = append(set, drawn...)
	}
	return set
}

// draw is a Fisher-Yates shuffle of a copy of pool followed by a prefix take.
func (g *paperGenerator) draw(pool []int64, n int) []int64 {
	candidates := slices.Clone(pool)
	g.shuffle(candidates)
	return candidates[:n:n]
}

func (g *paperGenerator) shuffle(ids []int64) {
	g.rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
}
