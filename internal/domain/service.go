package domain

import (
	"context"
)

// TransactionManager runs fn inside one store transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// SubjectRepository defines the interface for subject persistence.
// Lookups return nil, nil when the subject does not exist.
type SubjectRepository interface {
	GetSubjects(ctx context.Context) ([]*Subject, error)
	GetSubjectByID(ctx context.Context, id string) (*Subject, error)
	CreateSubject(ctx context.Context, subject *Subject) error
	// UpdateSubject reports false when no row matched.
	UpdateSubject(ctx context.Context, subject *Subject) (bool, error)
	DeleteSubject(ctx context.Context, id string) (bool, error)
	CountSubjects(ctx context.Context) (int, error)
}

// QuestionRepository defines the interface for question persistence
type QuestionRepository interface {
	GetQuestions(ctx context.Context, filter QuestionFilter) ([]*Question, error)
	GetQuestionByID(ctx context.Context, id int64) (*Question, error)
	GetQuestionsByIDs(ctx context.Context, ids []int64) ([]*Question, error)
	// GetQuestionIDsBySubjectAndCategory returns the candidate pool ordered by id.
	GetQuestionIDsBySubjectAndCategory(ctx context.Context, subjectID string, category QuestionCategory) ([]int64, error)
	CountQuestionsByCategory(ctx context.Context, subjectID string) (CategoryAvailability, error)
	AddQuestion(ctx context.Context, question *Question) error
	AddQuestionsInBulk(ctx context.Context, questions []*Question) (int, error)
	UpdateQuestion(ctx context.Context, question *Question) (bool, error)
	DeleteQuestion(ctx context.Context, id int64) (bool, error)
}

// PaperRepository defines the interface for generated paper persistence.
// A paper and its variants are written and deleted together.
type PaperRepository interface {
	CreatePaper(ctx context.Context, paper *GeneratedPaper) error
	GetPaperByID(ctx context.Context, id string) (*GeneratedPaper, error)
	GetPapers(ctx context.Context) ([]*GeneratedPaper, error)
	GetPapersByTeacher(ctx context.Context, teacherID string) ([]*GeneratedPaper, error)
	DeletePaper(ctx context.Context, id string) (bool, error)
	CountPapersByTeacher(ctx context.Context, teacherID string) (int, error)
}

// UserRepository defines the interface for teacher accounts
type UserRepository interface {
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (*User, error)
	CountUsers(ctx context.Context) (int, error)
	CreateUser(ctx context.Context, user *User) error
	UpdateUser(ctx context.Context, user *User) error
}

// PDFRenderer turns a printable HTML document into PDF bytes.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}
