package tasklist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/launchpad/internal/models"
)

var now = time.Date(2025, time.June, 23, 15, 30, 0, 0, time.UTC)

func day(offset int) *time.Time {
	d := time.Date(2025, time.June, 23+offset, 0, 0, 0, 0, time.UTC)
	return &d
}

func task(id, title, status string, due *time.Time) *models.Task {
	return &models.Task{ID: id, Title: title, Status: status, DueDate: due}
}

func ids(tasks []*models.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func sampleTasks() []*models.Task {
	return []*models.Task{
		task("security", "Security 101", models.StatusPending, day(1)),
		task("safety", "Safety 101", models.StatusPending, day(1)),
		task("teams", "Microsoft Teams Setup", models.StatusInProgress, day(3)),
		task("hr", "Complete HR Paperwork", models.StatusCompleted, day(5)),
		task("equipment", "IT Equipment Setup", models.StatusPending, day(2)),
		task("overdue", "Read handbook", models.StatusPending, day(-2)),
		task("later", "Quarterly goals", models.StatusPending, day(8)),
		task("undated", "Meet the team", models.StatusPending, nil),
		task("skipped", "Optional survey", models.StatusSkipped, day(7)),
	}
}

func TestApply_Completed(t *testing.T) {
	got, err := Apply(sampleTasks(), Filter{Key: FilterCompleted}, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"hr"}, ids(got))
}

func TestApply_Next7Days(t *testing.T) {
	got, err := Apply(sampleTasks(), Filter{Key: FilterNext7Days}, now)
	require.NoError(t, err)

	assert.Equal(t, []string{"security", "safety", "equipment", "teams", "skipped"}, ids(got))
	for _, task := range got {
		assert.NotEqual(t, models.StatusCompleted, task.Status)
	}
}

func TestApply_Next7Days_InclusiveBounds(t *testing.T) {
	tasks := []*models.Task{
		task("today", "a", models.StatusPending, day(0)),
		task("edge", "b", models.StatusPending, day(7)),
		task("past-edge", "c", models.StatusPending, day(8)),
		task("yesterday", "d", models.StatusPending, day(-1)),
	}

	got, err := Apply(tasks, Filter{Key: FilterNext7Days}, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"today", "edge"}, ids(got))
}

func TestApply_Next7Days_OtherTimezone(t *testing.T) {
	loc := time.FixedZone("UTC-7", -7*60*60)
	// Still June 23rd locally, while UTC has already moved on.
	localNow := time.Date(2025, time.June, 23, 20, 0, 0, 0, loc)
	tasks := []*models.Task{task("today", "a", models.StatusPending, day(0))}

	got, err := Apply(tasks, Filter{Key: FilterNext7Days}, localNow)
	require.NoError(t, err)
	assert.Equal(t, []string{"today"}, ids(got))
}

func TestApply_Priority(t *testing.T) {
	got, err := Apply(sampleTasks(), Filter{Key: FilterPriority}, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"overdue", "security", "safety", "equipment", "teams"}, ids(got))
}

func TestApply_GetStarted(t *testing.T) {
	got, err := Apply(sampleTasks(), Filter{Key: FilterStarted}, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"overdue", "security", "safety", "equipment", "later", "undated"}, ids(got))
}

func TestApply_Keyword(t *testing.T) {
	got, err := Apply(sampleTasks(), Filter{Key: FilterKeyword, Keyword: " MICROSOFT "}, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"teams"}, ids(got))
}

func TestApply_AllKeepsEverything(t *testing.T) {
	tasks := sampleTasks()

	got, err := Apply(tasks, Filter{Key: FilterAll}, now)
	require.NoError(t, err)
	assert.Len(t, got, len(tasks))
	assert.Equal(t, "undated", got[len(got)-1].ID)
	// Input order is untouched.
	assert.Equal(t, "security", tasks[0].ID)
}

func TestApply_UnknownFilter(t *testing.T) {
	_, err := Apply(sampleTasks(), Filter{Key: "deleted"}, now)
	assert.ErrorIs(t, err, ErrUnknownFilter)
}

func TestSortByDueDate_UndatedLastAndStable(t *testing.T) {
	tasks := []*models.Task{
		task("u1", "", models.StatusPending, nil),
		task("d3", "", models.StatusPending, day(3)),
		task("u2", "", models.StatusPending, nil),
		task("d1a", "", models.StatusPending, day(1)),
		task("u3", "", models.StatusPending, nil),
		task("d1b", "", models.StatusPending, day(1)),
	}

	SortByDueDate(tasks)
	assert.Equal(t, []string{"d1a", "d1b", "d3", "u1", "u2", "u3"}, ids(tasks))
}

func TestComputeProgress(t *testing.T) {
	tests := []struct {
		name      string
		statuses  []string
		completed int
		percent   int
	}{
		{name: "empty", statuses: nil, completed: 0, percent: 0},
		{name: "none done", statuses: []string{models.StatusPending, models.StatusSkipped}, completed: 0, percent: 0},
		{name: "one of three", statuses: []string{models.StatusCompleted, models.StatusPending, models.StatusPending}, completed: 1, percent: 33},
		{name: "two of three", statuses: []string{models.StatusCompleted, models.StatusCompleted, models.StatusPending}, completed: 2, percent: 67},
		{name: "half rounds up", statuses: []string{models.StatusCompleted, models.StatusPending, models.StatusPending, models.StatusPending, models.StatusPending, models.StatusPending, models.StatusPending, models.StatusPending}, completed: 1, percent: 13},
		{name: "all done", statuses: []string{models.StatusCompleted}, completed: 1, percent: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := make([]*models.Task, 0, len(tt.statuses))
			for _, s := range tt.statuses {
				tasks = append(tasks, task("", "", s, nil))
			}

			p := ComputeProgress(tasks)
			assert.Equal(t, len(tt.statuses), p.Total)
			assert.Equal(t, tt.completed, p.Completed)
			assert.Equal(t, tt.percent, p.Percent)
		})
	}
}

func TestToggle_UpdatesProgress(t *testing.T) {
	tasks := sampleTasks()
	before := ComputeProgress(tasks)

	tasks[0].Status = ToggledStatus(tasks[0].Status)
	assert.Equal(t, models.StatusCompleted, tasks[0].Status)
	assert.Equal(t, before.Completed+1, ComputeProgress(tasks).Completed)

	tasks[0].Status = ToggledStatus(tasks[0].Status)
	assert.Equal(t, models.StatusPending, tasks[0].Status)
	assert.Equal(t, before, ComputeProgress(tasks))
}

func TestToggledStatus(t *testing.T) {
	assert.Equal(t, models.StatusPending, ToggledStatus(models.StatusCompleted))
	assert.Equal(t, models.StatusCompleted, ToggledStatus(models.StatusPending))
	assert.Equal(t, models.StatusCompleted, ToggledStatus(models.StatusInProgress))
	assert.Equal(t, models.StatusCompleted, ToggledStatus(models.StatusSkipped))
}
