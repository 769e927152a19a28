// Package tasklist holds the dashboard views over an employee's tasks:
// the sidebar filters, due-date ordering and completion progress.
//
// Everything here works on an in-memory slice. Callers fetch the full
// task list from the store and derive every view from it.
package tasklist

import (
	"errors"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/adanyl0v/launchpad/internal/models"
)

const (
	FilterNext7Days = "next-7-days"
	FilterAll       = "all-tasks"
	FilterPriority  = "priority-tasks"
	FilterStarted   = "get-started"
	FilterKeyword   = "keyword-tasks"
	FilterCompleted = "completed-tasks"
)

const (
	upcomingWindowDays = 7
	priorityWindowDays = 3
)

var ErrUnknownFilter = errors.New("unknown task filter")

// Filter selects a dashboard view. Keyword is only used by FilterKeyword.
type Filter struct {
	Key     string
	Keyword string
}

// Filters lists the sidebar entries in display order.
var Filters = []string{
	FilterNext7Days,
	FilterAll,
	FilterPriority,
	FilterStarted,
	FilterKeyword,
	FilterCompleted,
}

func IsValidFilter(key string) bool {
	return slices.Contains(Filters, key)
}

// Apply returns the tasks selected by the filter, ordered by due date.
// The input slice is not modified.
func Apply(tasks []*models.Task, filter Filter, now time.Time) ([]*models.Task, error) {
	match, err := predicate(filter, calendarDay(now, now.Location()))
	if err != nil {
		return nil, err
	}

	selected := make([]*models.Task, 0, len(tasks))
	for _, task := range tasks {
		if match(task) {
			selected = append(selected, task)
		}
	}

	SortByDueDate(selected)
	return selected, nil
}

func predicate(filter Filter, today time.Time) (func(*models.Task) bool, error) {
	switch filter.Key {
	case FilterNext7Days:
		until := today.AddDate(0, 0, upcomingWindowDays)
		return func(t *models.Task) bool {
			if t.Status == models.StatusCompleted || t.DueDate == nil {
				return false
			}
			due := calendarDay(*t.DueDate, today.Location())
			return !due.Before(today) && !due.After(until)
		}, nil
	case FilterAll, "":
		return func(*models.Task) bool { return true }, nil
	case FilterPriority:
		until := today.AddDate(0, 0, priorityWindowDays)
		return func(t *models.Task) bool {
			if t.Status == models.StatusCompleted || t.DueDate == nil {
				return false
			}
			return !calendarDay(*t.DueDate, today.Location()).After(until)
		}, nil
	case FilterStarted:
		return func(t *models.Task) bool {
			return t.Status == models.StatusPending
		}, nil
	case FilterKeyword:
		keyword := strings.ToLower(strings.TrimSpace(filter.Keyword))
		return func(t *models.Task) bool {
			return strings.Contains(strings.ToLower(t.Title), keyword)
		}, nil
	case FilterCompleted:
		return func(t *models.Task) bool {
			return t.Status == models.StatusCompleted
		}, nil
	default:
		return nil, ErrUnknownFilter
	}
}

// SortByDueDate orders tasks by due date ascending in place. Undated tasks
// go after every dated one and keep their relative order.
func SortByDueDate(tasks []*models.Task) {
	slices.SortStableFunc(tasks, func(a, b *models.Task) int {
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return 0
		case a.DueDate == nil:
			return 1
		case b.DueDate == nil:
			return -1
		default:
			return a.DueDate.Compare(*b.DueDate)
		}
	})
}

type Progress struct {
	Completed int
	Total     int
	Percent   int
}

func ComputeProgress(tasks []*models.Task) Progress {
	p := Progress{Total: len(tasks)}
	for _, task := range tasks {
		if task.Status == models.StatusCompleted {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percent = int(math.Round(100 * float64(p.Completed) / float64(p.Total)))
	}
	return p
}

// ToggledStatus is the status a task moves to when its checkbox is flipped.
func ToggledStatus(status string) string {
	if status == models.StatusCompleted {
		return models.StatusPending
	}
	return models.StatusCompleted
}

// calendarDay places the calendar date of t at midnight in loc. Due dates
// are stored as plain dates, so windows are compared per day.
func calendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
