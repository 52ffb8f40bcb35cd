package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"examcraft/internal/cache"
	"examcraft/internal/domain"
	"examcraft/internal/dto"
	"examcraft/internal/logger"

	"go.uber.org/zap"
)

const dashboardCacheTTL = 30 * time.Second

// StatsService computes dashboard figures.
type StatsService interface {
	Dashboard(ctx context.Context, principal domain.Principal) (*dto.DashboardResponse, error)
}

type statsService struct {
	subjectRepo  domain.SubjectRepository
	questionRepo domain.QuestionRepository
	paperRepo    domain.PaperRepository
	cache        domain.Cache
}

// NewStatsService creates a stats service. cache may be nil.
func NewStatsService(subjectRepo domain.SubjectRepository, questionRepo domain.QuestionRepository, paperRepo domain.PaperRepository, cache domain.Cache) StatsService {
	return &statsService{
		subjectRepo:  subjectRepo,
		questionRepo: questionRepo,
		paperRepo:    paperRepo,
		cache:        cache,
	}
}

func (s *statsService) Dashboard(ctx context.Context, principal domain.Principal) (*dto.DashboardResponse, error) {
	key := cache.DashboardKey(principal.UserID)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err == nil {
			var cached dto.DashboardResponse
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Dashboard cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	subjects, err := s.subjectRepo.CountSubjects(ctx)
	if err != nil {
		return nil, storeError("Failed to count subjects", err)
	}
	counts, err := s.questionRepo.CountQuestionsByCategory(ctx, "")
	if err != nil {
		return nil, storeError("Failed to count questions", err)
	}
	papers, err := s.paperRepo.CountPapersByTeacher(ctx, principal.UserID)
	if err != nil {
		return nil, storeError("Failed to count papers", err)
	}

	resp := &dto.DashboardResponse{Subjects: subjects, MyPapers: papers}
	for _, cat := range domain.AllCategories() {
		resp.Questions += counts[cat]
	}
	for _, cat := range domain.AllCategories() {
		stat := dto.CategoryStat{Category: string(cat), Marks: cat.Marks(), Count: counts[cat]}
		if resp.Questions > 0 {
			stat.Percentage = math.Round(float64(counts[cat])*1000/float64(resp.Questions)) / 10
		}
		resp.Categories = append(resp.Categories, stat)
	}

	if s.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, key, string(raw), dashboardCacheTTL); err != nil {
				logger.Get().Warn("Dashboard cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return resp, nil
}
