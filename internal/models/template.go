package models

import "time"

type TaskTemplate struct {
	ID             string
	Title          string
	Description    *string
	EstimatedHours *int
	Department     *string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type TaskGroup struct {
	ID          string
	Name        string
	Description *string
	Department  *string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Templates are ordered by their position in the group.
	Templates []*TaskTemplate
}
