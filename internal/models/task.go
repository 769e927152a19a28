package models

import "time"

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusSkipped    = "skipped"
)

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted, StatusSkipped:
		return true
	default:
		return false
	}
}

type Task struct {
	ID             string
	Title          string
	Description    *string
	EstimatedHours *int
	AssignedTo     string
	AssignedBy     string
	TemplateID     *string
	GroupID        *string
	Status         string
	DueDate        *time.Time
	CompletedAt    *time.Time
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// AssignedByName is filled by listings that join the assigner's profile.
	AssignedByName *string
}

type TaskComment struct {
	ID        string
	TaskID    string
	UserID    string
	Comment   string
	CreatedAt time.Time
}
