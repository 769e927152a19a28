package services

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommentRejectsBlank(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCommentService(testLogger(), mock)

	_, err := svc.AddComment(context.Background(), "employee-1", "task-1", "  \n ")
	require.ErrorIs(t, err, ErrEmptyComment)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddCommentRequiresTaskAccess(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCommentService(testLogger(), mock)

	mock.ExpectQuery(sql("SELECT EXISTS")).
		WithArgs("task-1", "stranger").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := svc.AddComment(context.Background(), "stranger", "task-1", "hello")
	require.ErrorIs(t, err, ErrTaskNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddComment(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCommentService(testLogger(), mock)

	mock.ExpectQuery(sql("SELECT EXISTS")).
		WithArgs("task-1", "employee-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec(sql("INSERT INTO task_comments")).
		WithArgs(pgxmock.AnyArg(), "task-1", "employee-1", "Done, waiting on IT", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	comment, err := svc.AddComment(context.Background(), "employee-1", "task-1", " Done, waiting on IT ")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, "Done, waiting on IT", comment.Comment)
	assert.NotEmpty(t, comment.ID)
}
