package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.June, 23, 9, 0, 0, 0, time.UTC)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func sql(fragment string) string {
	return regexp.QuoteMeta(fragment)
}

func ptr[T any](v T) *T {
	return &v
}

var taskRowColumns = []string{
	"id", "title", "description", "estimated_hours", "assigned_to",
	"assigned_by", "task_template_id", "task_group_id", "status",
	"due_date", "completed_at", "notes", "created_at", "updated_at",
}

var templateRowColumns = []string{
	"id", "title", "description", "estimated_hours", "department",
	"created_by", "created_at", "updated_at",
}

func addTaskRow(rows *pgxmock.Rows, id, status string, completedAt *time.Time) *pgxmock.Rows {
	return rows.AddRow(
		id,
		"Set up laptop",
		(*string)(nil),
		ptr(2),
		"employee-1",
		"manager-1",
		(*string)(nil),
		(*string)(nil),
		status,
		ptr(testNow.AddDate(0, 0, 3)),
		completedAt,
		(*string)(nil),
		testNow,
		testNow,
	)
}
