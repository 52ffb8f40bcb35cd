package repository

import (
	"context"
	"testing"

	"examcraft/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectDatabaseAdapter_CRUD(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewSubjectDatabaseAdapter(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateSubject(ctx, &domain.Subject{ID: "cs101", Name: "Computer Science", Code: "CS101"}))
	require.NoError(t, repo.CreateSubject(ctx, &domain.Subject{ID: "ma101", Name: "Mathematics", Code: "MA101"}))
	assert.Error(t, repo.CreateSubject(ctx, &domain.Subject{ID: "cs101", Name: "Dup", Code: "CS101"}))

	subjects, err := repo.GetSubjects(ctx)
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "CS101", subjects[0].Code)

	ok, err := repo.UpdateSubject(ctx, &domain.Subject{ID: "cs101", Name: "Computing", Code: "CS101"})
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetSubjectByID(ctx, "cs101")
	require.NoError(t, err)
	assert.Equal(t, "Computing", got.Name)

	total, err := repo.CountSubjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	ok, err = repo.DeleteSubject(ctx, "ma101")
	require.NoError(t, err)
	assert.True(t, ok)

	missing, err := repo.GetSubjectByID(ctx, "ma101")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSubjectDatabaseAdapter_GetSubjectByID_Mock(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSubjectDatabaseAdapter(db)

	rows := sqlmock.NewRows([]string{"id", "name", "code"}).AddRow("cs101", "Computer Science", "CS101")
	mock.ExpectQuery(`SELECT id "id", name "name", code "code" FROM subjects WHERE id = \?`).
		WithArgs("cs101").
		WillReturnRows(rows)

	subject, err := repo.GetSubjectByID(context.Background(), "cs101")
	require.NoError(t, err)
	assert.Equal(t, &domain.Subject{ID: "cs101", Name: "Computer Science", Code: "CS101"}, subject)
	assert.NoError(t, mock.ExpectationsWereMet())
}
