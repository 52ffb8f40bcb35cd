package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"examcraft/cmd/seed_initial_data/internal/seedmodels"
	"examcraft/internal/config"
	"examcraft/internal/database"
	"examcraft/internal/domain"
	"examcraft/internal/logger"
	"examcraft/internal/repository"

	"go.uber.org/zap"
)

const (
	seedFilePath = "config/seed_data/initial_subjects.json"
)

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting initial data seeding process...")
	db, err := database.NewDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	path := seedFilePath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	log.Info("Loading seed data from file", zap.String("path", path))
	byteValue, err := os.ReadFile(path)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", path), zap.Error(err))
	}

	var subjects []seedmodels.SeedSubject
	if err := json.Unmarshal(byteValue, &subjects); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}
	log.Info("Successfully unmarshalled seed data", zap.Int("subjects_loaded", len(subjects)))

	s := &seeder{
		tx:        repository.NewTransactionManagerAdapter(db),
		subjects:  repository.NewSubjectDatabaseAdapter(db),
		questions: repository.NewQuestionDatabaseAdapter(db),
		log:       log,
	}
	for _, subject := range subjects {
		if err := s.seedSubject(ctx, subject); err != nil {
			log.Error("Error seeding subject, transaction rolled back", zap.String("code", subject.Code), zap.Error(err))
		}
	}
	log.Info("Initial data seeding process completed.")
}

type seeder struct {
	tx        domain.TransactionManager
	subjects  domain.SubjectRepository
	questions domain.QuestionRepository
	log       *zap.Logger
}

// seedSubject creates one subject with its questions. A subject that already
// exists is left untouched so the seeder can be re-run.
func (s *seeder) seedSubject(ctx context.Context, seed seedmodels.SeedSubject) error {
	subject := &domain.Subject{ID: seed.ID, Name: seed.Name, Code: seed.Code}
	subject.Normalize()
	if errs := subject.Validate(); len(errs) > 0 {
		return errs
	}

	questions := make([]*domain.Question, 0, len(seed.Questions))
	for i, sq := range seed.Questions {
		q, err := toQuestion(subject.ID, sq)
		if err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
		questions = append(questions, q)
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.subjects.GetSubjectByID(ctx, subject.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			s.log.Info("Subject already present, skipping", zap.String("subject_id", subject.ID))
			return nil
		}
		if err := s.subjects.CreateSubject(ctx, subject); err != nil {
			return err
		}
		n, err := s.questions.AddQuestionsInBulk(ctx, questions)
		if err != nil {
			return err
		}
		s.log.Info("Seeded subject", zap.String("subject_id", subject.ID), zap.Int("questions", n))
		return nil
	})
}

func toQuestion(subjectID string, sq seedmodels.SeedQuestion) (*domain.Question, error) {
	category, err := domain.ParseQuestionCategory(sq.Category)
	if err != nil {
		return nil, err
	}
	difficulty, err := domain.ParseDifficultyLevel(sq.Difficulty)
	if err != nil {
		return nil, err
	}
	q := &domain.Question{
		SubjectID:       subjectID,
		Category:        category,
		QuestionText:    sq.QuestionText,
		Options:         sq.Options,
		CorrectAnswer:   sq.CorrectAnswer,
		DifficultyLevel: difficulty,
	}
	q.Normalize()
	if errs := q.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return q, nil
}
