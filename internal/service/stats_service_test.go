package service

import (
	"context"
	"testing"

	"examcraft/internal/cache"
	"examcraft/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatsService_Dashboard(t *testing.T) {
	subjects := new(MockSubjectRepository)
	questions := new(MockQuestionRepository)
	papers := new(MockPaperRepository)
	c := new(MockCache)

	subjects.On("CountSubjects", mock.Anything).Return(3, nil)
	questions.On("CountQuestionsByCategory", mock.Anything, "").Return(domain.CategoryAvailability{
		domain.CategoryMCQ:      4,
		domain.CategoryTwoMarks: 1,
		domain.CategorySixMarks: 1,
	}, nil)
	papers.On("CountPapersByTeacher", mock.Anything, "teacher-1").Return(2, nil)
	c.On("Get", mock.Anything, cache.DashboardKey("teacher-1")).Return("", domain.ErrCacheMiss)
	c.On("Set", mock.Anything, cache.DashboardKey("teacher-1"), mock.AnythingOfType("string"), dashboardCacheTTL).Return(nil)

	svc := NewStatsService(subjects, questions, papers, c)
	resp, err := svc.Dashboard(context.Background(), owner)
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Subjects)
	assert.Equal(t, 6, resp.Questions)
	assert.Equal(t, 2, resp.MyPapers)
	require.Len(t, resp.Categories, 5)
	assert.Equal(t, "mcqOneMark", resp.Categories[0].Category)
	assert.Equal(t, 66.7, resp.Categories[0].Percentage)
	assert.Equal(t, 16.7, resp.Categories[1].Percentage)
	assert.Zero(t, resp.Categories[2].Percentage)
	assert.Equal(t, 8, resp.Categories[4].Marks)
	c.AssertExpectations(t)
}

func TestStatsService_Dashboard_Cached(t *testing.T) {
	c := new(MockCache)
	c.On("Get", mock.Anything, cache.DashboardKey("teacher-1")).
		Return(`{"subjects":1,"questions":9,"my_papers":4,"categories":[]}`, nil)
	subjects := new(MockSubjectRepository)

	svc := NewStatsService(subjects, new(MockQuestionRepository), new(MockPaperRepository), c)
	resp, err := svc.Dashboard(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, 9, resp.Questions)
	assert.Equal(t, 4, resp.MyPapers)
	subjects.AssertNotCalled(t, "CountSubjects", mock.Anything)
}

func TestStatsService_Dashboard_EmptyBank(t *testing.T) {
	subjects := new(MockSubjectRepository)
	questions := new(MockQuestionRepository)
	papers := new(MockPaperRepository)
	subjects.On("CountSubjects", mock.Anything).Return(0, nil)
	questions.On("CountQuestionsByCategory", mock.Anything, "").Return(domain.CategoryAvailability{}, nil)
	papers.On("CountPapersByTeacher", mock.Anything, "teacher-1").Return(0, nil)

	resp, err := NewStatsService(subjects, questions, papers, nil).Dashboard(context.Background(), owner)
	require.NoError(t, err)
	assert.Zero(t, resp.Questions)
	for _, stat := range resp.Categories {
		assert.Zero(t, stat.Percentage)
	}
}
