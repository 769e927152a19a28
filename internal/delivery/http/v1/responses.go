package v1

import (
	"time"

	"github.com/adanyl0v/launchpad/internal/models"
	"github.com/adanyl0v/launchpad/internal/tasklist"
)

const dateLayout = time.DateOnly

type profileResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    *string   `json:"full_name"`
	Role        string    `json:"role"`
	Department  *string   `json:"department"`
	HireDate    *string   `json:"hire_date"`
	ManagerID   *string   `json:"manager_id"`
	ManagerName *string   `json:"manager_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newProfileResponse(profile *models.Profile) profileResponse {
	return profileResponse{
		ID:         profile.ID,
		Email:      profile.Email,
		FullName:   profile.FullName,
		Role:       profile.Role,
		Department: profile.Department,
		HireDate:   formatDate(profile.HireDate),
		ManagerID:  profile.ManagerID,
		CreatedAt:  profile.CreatedAt,
		UpdatedAt:  profile.UpdatedAt,
	}
}

type taskResponse struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    *string    `json:"description"`
	EstimatedHours *int       `json:"estimated_hours"`
	AssignedTo     string     `json:"assigned_to"`
	AssignedBy     string     `json:"assigned_by"`
	AssignedByName *string    `json:"assigned_by_name,omitempty"`
	TemplateID     *string    `json:"task_template_id"`
	GroupID        *string    `json:"task_group_id"`
	Status         string     `json:"status"`
	DueDate        *string    `json:"due_date"`
	CompletedAt    *time.Time `json:"completed_at"`
	Notes          *string    `json:"notes"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		EstimatedHours: task.EstimatedHours,
		AssignedTo:     task.AssignedTo,
		AssignedBy:     task.AssignedBy,
		AssignedByName: task.AssignedByName,
		TemplateID:     task.TemplateID,
		GroupID:        task.GroupID,
		Status:         task.Status,
		DueDate:        formatDate(task.DueDate),
		CompletedAt:    task.CompletedAt,
		Notes:          task.Notes,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
}

func newTaskResponses(tasks []*models.Task) []taskResponse {
	response := make([]taskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = newTaskResponse(task)
	}
	return response
}

type progressResponse struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

func newProgressResponse(p tasklist.Progress) progressResponse {
	return progressResponse{
		Completed: p.Completed,
		Total:     p.Total,
		Percent:   p.Percent,
	}
}

type templateResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    *string   `json:"description"`
	EstimatedHours *int      `json:"estimated_hours"`
	Department     *string   `json:"department"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func newTemplateResponse(template *models.TaskTemplate) templateResponse {
	return templateResponse{
		ID:             template.ID,
		Title:          template.Title,
		Description:    template.Description,
		EstimatedHours: template.EstimatedHours,
		Department:     template.Department,
		CreatedBy:      template.CreatedBy,
		CreatedAt:      template.CreatedAt,
		UpdatedAt:      template.UpdatedAt,
	}
}

type groupResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description *string            `json:"description"`
	Department  *string            `json:"department"`
	CreatedBy   string             `json:"created_by"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Templates   []templateResponse `json:"templates"`
}

func newGroupResponse(group *models.TaskGroup) groupResponse {
	templates := make([]templateResponse, len(group.Templates))
	for i, template := range group.Templates {
		templates[i] = newTemplateResponse(template)
	}
	return groupResponse{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		Department:  group.Department,
		CreatedBy:   group.CreatedBy,
		CreatedAt:   group.CreatedAt,
		UpdatedAt:   group.UpdatedAt,
		Templates:   templates,
	}
}

type commentResponse struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	UserID    string    `json:"user_id"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func newCommentResponse(comment *models.TaskComment) commentResponse {
	return commentResponse{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		UserID:    comment.UserID,
		Comment:   comment.Comment,
		CreatedAt: comment.CreatedAt,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// parseDate accepts an empty string as "no date".
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
