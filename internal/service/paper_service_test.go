package service

import (
	"context"
	"testing"
	"time"

	"examcraft/internal/cache"
	"examcraft/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	owner    = domain.Principal{UserID: "teacher-1", Role: domain.RoleUser}
	stranger = domain.Principal{UserID: "teacher-2", Role: domain.RoleUser}
	admin    = domain.Principal{UserID: "admin-1", Role: domain.RoleAdmin}
)

func storedPaper() *domain.GeneratedPaper {
	return &domain.GeneratedPaper{
		ID:           "paper-1",
		SubjectID:    "cs101",
		SubjectName:  "Computer Fundamentals",
		TeacherID:    "teacher-1",
		ExamDuration: 60,
		TotalMarks:   9,
		CreatedAt:    time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Questions:    []int64{101, 102, 301, 201},
		SetVariants: []domain.PaperVariant{
			{Variant: "A", Questions: []int64{301, 101, 201, 102}},
			{Variant: "B", Questions: []int64{102, 201, 301, 101}},
			{Variant: "C", Questions: []int64{101, 102, 201, 301}},
			{Variant: "D", Questions: []int64{201, 301, 102, 101}},
			{Variant: "E", Questions: []int64{301, 201, 101, 102}},
		},
	}
}

func storedQuestions() []*domain.Question {
	return []*domain.Question{
		{ID: 101, SubjectID: "cs101", Category: domain.CategoryMCQ, QuestionText: "Q101", Options: []string{"a", "b"}, CorrectAnswer: "a", DifficultyLevel: domain.DifficultyEasy},
		{ID: 102, SubjectID: "cs101", Category: domain.CategoryMCQ, QuestionText: "Q102", Options: []string{"a", "b"}, CorrectAnswer: "b", DifficultyLevel: domain.DifficultyEasy},
		{ID: 201, SubjectID: "cs101", Category: domain.CategoryTwoMarks, QuestionText: "Q201", DifficultyLevel: domain.DifficultyMedium},
		{ID: 301, SubjectID: "cs101", Category: domain.CategoryFourMarks, QuestionText: "Q301", DifficultyLevel: domain.DifficultyHard},
	}
}

func TestPaperService_Get_Ownership(t *testing.T) {
	papers := new(MockPaperRepository)
	papers.On("GetPaperByID", mock.Anything, "paper-1").Return(storedPaper(), nil)
	papers.On("GetPaperByID", mock.Anything, "missing").Return(nil, nil)
	svc := NewPaperService(papers, new(MockQuestionRepository), nil)
	ctx := context.Background()

	p, err := svc.Get(ctx, owner, "paper-1")
	require.NoError(t, err)
	assert.Equal(t, "paper-1", p.ID)

	_, err = svc.Get(ctx, admin, "paper-1")
	assert.NoError(t, err)

	for _, tc := range []struct {
		principal domain.Principal
		id        string
	}{{stranger, "paper-1"}, {owner, "missing"}} {
		_, err = svc.Get(ctx, tc.principal, tc.id)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodePaperNotFound, domainErr.Code)
	}
}

func TestPaperService_ListAll_RequiresAdmin(t *testing.T) {
	papers := new(MockPaperRepository)
	papers.On("GetPapers", mock.Anything).Return([]*domain.GeneratedPaper{storedPaper()}, nil)
	papers.On("GetPapersByTeacher", mock.Anything, "teacher-2").Return([]*domain.GeneratedPaper{}, nil)
	svc := NewPaperService(papers, new(MockQuestionRepository), nil)

	_, err := svc.ListAll(context.Background(), stranger)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeForbidden, domainErr.Code)

	all, err := svc.ListAll(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	mine, err := svc.ListMine(context.Background(), stranger)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestPaperService_Delete_DropsOwnerDashboard(t *testing.T) {
	papers := new(MockPaperRepository)
	papers.On("GetPaperByID", mock.Anything, "paper-1").Return(storedPaper(), nil)
	papers.On("DeletePaper", mock.Anything, "paper-1").Return(true, nil)
	c := new(MockCache)
	c.On("Delete", mock.Anything, cache.DashboardKey("teacher-1")).Return(nil)

	svc := NewPaperService(papers, new(MockQuestionRepository), c)
	require.NoError(t, svc.Delete(context.Background(), owner, "paper-1"))
	c.AssertExpectations(t)
}

func TestPaperService_Delete_NotOwner(t *testing.T) {
	papers := new(MockPaperRepository)
	papers.On("GetPaperByID", mock.Anything, "paper-1").Return(storedPaper(), nil)
	svc := NewPaperService(papers, new(MockQuestionRepository), nil)

	err := svc.Delete(context.Background(), stranger, "paper-1")
	assert.Error(t, err)
	papers.AssertNotCalled(t, "DeletePaper", mock.Anything, mock.Anything)
}

func TestPaperService_ResolveVariant(t *testing.T) {
	papers := new(MockPaperRepository)
	papers.On("GetPaperByID", mock.Anything, "paper-1").Return(storedPaper(), nil)
	questions := new(MockQuestionRepository)
	questions.On("GetQuestionsByIDs", mock.Anything, []int64{301, 101, 201, 102}).Return(storedQuestions(), nil)
	svc := NewPaperService(papers, questions, nil)

	resolved, err := svc.ResolveVariant(context.Background(), owner, "paper-1", "a")
	require.NoError(t, err)
	assert.Equal(t, "A", resolved.Variant)
	require.Len(t, resolved.Sections, 3)
	assert.Equal(t, []int64{101, 102}, []int64{resolved.Sections[0].Questions[0].ID, resolved.Sections[0].Questions[1].ID})
	assert.Equal(t, 3, resolved.Sections[1].StartNumber)
	assert.Equal(t, "C", resolved.Sections[2].Letter)
	assert.Equal(t, 4, resolved.Sections[2].Subtotal)
	assert.Empty(t, resolved.MissingQuestionIDs)

	again, err := svc.ResolveVariant(context.Background(), owner, "paper-1", "A")
	require.NoError(t, err)
	assert.Equal(t, resolved, again)
}

func TestPaperService_ResolveVariant_DeletedQuestion(t *testing.T) {
	papers := new(MockPaperRepository)
	papers.On("GetPaperByID", mock.Anything, "paper-1").Return(storedPaper(), nil)
	questions := new(MockQuestionRepository)
	questions.On("GetQuestionsByIDs", mock.Anything, mock.Anything).Return(storedQuestions()[:3], nil)
	svc := NewPaperService(papers, questions, nil)

	resolved, err := svc.ResolveVariant(context.Background(), owner, "paper-1", "B")
	require.NoError(t, err)
	assert.Equal(t, []int64{301}, resolved.MissingQuestionIDs)
	assert.Equal(t, 3, resolved.QuestionCount)
}

func TestPaperService_ResolveVariant_UnknownLabel(t *testing.T) {
	papers := new(MockPaperRepository)
	papers.On("GetPaperByID", mock.Anything, "paper-1").Return(storedPaper(), nil)
	svc := NewPaperService(papers, new(MockQuestionRepository), nil)

	_, err := svc.ResolveVariant(context.Background(), owner, "paper-1", "F")
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
}
