package service

import (
	"context"
	"database/sql/driver"
	"strings"
	"testing"

	"examcraft/internal/domain"
	"examcraft/internal/importer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const importCSV = `subjectId,category,questionText,options,correctAnswer,difficultyLevel
CS101,mcq,Which gate outputs 1 only when all inputs are 1?,AND|OR|XOR,AND,easy
cs101,2marks,Define a flip-flop.,,,easy
cs101,essay,Describe the history of computing.,,,medium
cs101,_4Marks,Compare RAM and ROM.,,,medium
cs101,8,Design a 4-bit ripple carry adder.,,,hard
`

func newImportFixture() (*importService, *MockTransactionManager, *MockSubjectRepository, *MockQuestionRepository) {
	tx := &MockTransactionManager{}
	subjects := new(MockSubjectRepository)
	questions := new(MockQuestionRepository)
	subjects.On("GetSubjectByID", mock.Anything, "cs101").Return(cs101, nil)
	subjects.On("GetSubjectByID", mock.Anything, mock.Anything).Return(nil, nil)
	svc := NewImportService(tx, questions, subjects).(*importService)
	return svc, tx, subjects, questions
}

func TestImportService_PartialSuccess(t *testing.T) {
	svc, tx, _, questions := newImportFixture()
	questions.On("AddQuestionsInBulk", mock.Anything, mock.MatchedBy(func(qs []*domain.Question) bool {
		if len(qs) != 4 {
			return false
		}
		for _, q := range qs {
			if q.SubjectID != "cs101" {
				return false
			}
		}
		return true
	})).Return(4, nil)

	report, err := svc.Import(context.Background(), importer.FormatCSV, strings.NewReader(importCSV))
	require.NoError(t, err)
	assert.Equal(t, 4, report.Inserted)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, 3, report.Errors[0].Row)
	assert.Equal(t, "category", report.Errors[0].Field)
	assert.Equal(t, 1, tx.Calls)
	questions.AssertExpectations(t)
}

func TestImportService_UnknownSubjectIsRowError(t *testing.T) {
	svc, _, subjects, questions := newImportFixture()
	questions.On("AddQuestionsInBulk", mock.Anything, mock.Anything).Return(1, nil)

	input := "subjectId,category,questionText,difficultyLevel\n" +
		"ghost,2marks,Define entropy.,easy\n" +
		"cs101,2marks,Define a register.,easy\n" +
		"ghost,4marks,Explain caching.,medium\n"
	report, err := svc.Import(context.Background(), importer.FormatCSV, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Inserted)
	require.Len(t, report.Errors, 2)
	assert.Equal(t, []int{1, 3}, []int{report.Errors[0].Row, report.Errors[1].Row})
	assert.Equal(t, "subjectId", report.Errors[0].Field)
	assert.Contains(t, report.Errors[0].Message, `unknown subject "ghost"`)

	// Lookups are memoized per reference.
	subjects.AssertNumberOfCalls(t, "GetSubjectByID", 2)
}

func TestImportService_NothingAccepted(t *testing.T) {
	svc, tx, _, questions := newImportFixture()

	input := "subjectId,category,questionText,difficultyLevel\ncs101,essay,Write.,easy\n"
	report, err := svc.Import(context.Background(), importer.FormatCSV, strings.NewReader(input))
	require.NoError(t, err)
	assert.Zero(t, report.Inserted)
	assert.Len(t, report.Errors, 1)
	assert.Zero(t, tx.Calls)
	questions.AssertNotCalled(t, "AddQuestionsInBulk", mock.Anything, mock.Anything)
}

func TestImportService_JSON(t *testing.T) {
	svc, _, _, questions := newImportFixture()
	questions.On("AddQuestionsInBulk", mock.Anything, mock.Anything).Return(2, nil)

	input := `[
		{"subjectId":"cs101","category":"mcq","questionText":"2+2?","options":["3","4"],"correctAnswer":"4","difficultyLevel":"easy"},
		{"subjectId":"cs101","category":"6marks","questionText":"Explain DMA.","difficultyLevel":"hard","marks":6}
	]`
	report, err := svc.Import(context.Background(), importer.FormatJSON, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Inserted)
	assert.Empty(t, report.Errors)
}

func TestImportService_FileErrorAbortsImport(t *testing.T) {
	svc, tx, _, _ := newImportFixture()

	_, err := svc.Import(context.Background(), importer.FormatCSV, strings.NewReader(""))
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeParse, domainErr.Code)
	assert.Zero(t, tx.Calls)
}

func TestImportService_StoreUnavailable(t *testing.T) {
	svc, _, _, questions := newImportFixture()
	questions.On("AddQuestionsInBulk", mock.Anything, mock.Anything).Return(0, driver.ErrBadConn)

	_, err := svc.Import(context.Background(), importer.FormatCSV, strings.NewReader(importCSV))
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeStoreUnavailable, domainErr.Code)
}
