package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/launchpad/internal/models"
	"github.com/adanyl0v/launchpad/internal/tasklist"
)

const taskColumns = `t.id,
       t.title,
       t.description,
       t.estimated_hours,
       t.assigned_to,
       t.assigned_by,
       t.task_template_id,
       t.task_group_id,
       t.status,
       t.due_date,
       t.completed_at,
       t.notes,
       t.created_at,
       t.updated_at`

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type taskServiceImpl struct {
	logger    zerolog.Logger
	pgPool    pgxPool
	templates TemplateService
}

func NewTaskService(
	logger zerolog.Logger,
	pgPool pgxPool,
	templates TemplateService,
) TaskService {
	return &taskServiceImpl{
		logger:    logger,
		pgPool:    pgPool,
		templates: templates,
	}
}

func (s *taskServiceImpl) GetTasksByAssignee(ctx context.Context, userID string) ([]*models.Task, error) {
	const selectTasksByAssigneeQuery = `
SELECT ` + taskColumns + `,
       p.full_name
FROM tasks t
LEFT JOIN profiles p ON p.id = t.assigned_by
WHERE t.assigned_to = $1
ORDER BY t.created_at DESC
`
	tasks, err := s.selectTasks(ctx, selectTasksByAssigneeQuery, userID, true)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to select tasks by assignee")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("selected tasks by assignee")
	return tasks, nil
}

func (s *taskServiceImpl) GetTasksAssignedBy(ctx context.Context, userID string) ([]*models.Task, error) {
	const selectTasksByAssignerQuery = `
SELECT ` + taskColumns + `
FROM tasks t
WHERE t.assigned_by = $1
ORDER BY t.created_at DESC
`
	tasks, err := s.selectTasks(ctx, selectTasksByAssignerQuery, userID, false)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to select tasks by assigner")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("selected tasks by assigner")
	return tasks, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, userID, taskID string) (*models.Task, error) {
	const selectTaskQuery = `
SELECT ` + taskColumns + `
FROM tasks t
WHERE t.id = $1 AND
      (t.assigned_to = $2 OR t.assigned_by = $2)
`
	task, err := scanTask(s.pgPool.QueryRow(ctx, selectTaskQuery, taskID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Str("task_id", taskID).
				Str("user_id", userID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to select task")
		return nil, err
	}
	return task, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	err := checkDirectReport(ctx, s.pgPool, params.AssignedBy, params.AssignedTo)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("assigned_by", params.AssignedBy).
			Str("assigned_to", params.AssignedTo).
			Msg("failed to check direct report")
		return nil, err
	}

	task := &models.Task{
		Title:          params.Title,
		Description:    params.Description,
		EstimatedHours: params.EstimatedHours,
		AssignedTo:     params.AssignedTo,
		AssignedBy:     params.AssignedBy,
		GroupID:        params.GroupID,
		DueDate:        params.DueDate,
	}
	err = insertTask(ctx, s.pgPool, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("assigned_to", task.AssignedTo).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) UpdateTaskStatus(ctx context.Context, params UpdateTaskStatusParams) (*models.Task, error) {
	if !models.IsValidStatus(params.Status) {
		return nil, ErrInvalidStatus
	}

	now := time.Now()
	var completedAt *time.Time
	if params.Status == models.StatusCompleted {
		completedAt = &now
	}

	const updateTaskStatusQuery = `
UPDATE tasks t
SET status = $1,
    notes = COALESCE($2, t.notes),
    completed_at = $3,
    updated_at = $4
WHERE t.id = $5 AND
      (t.assigned_to = $6 OR t.assigned_by = $6)
RETURNING ` + taskColumns + `
`
	task, err := scanTask(s.pgPool.QueryRow(
		ctx,
		updateTaskStatusQuery,
		params.Status,
		params.Notes,
		completedAt,
		now,
		params.ID,
		params.UserID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Str("task_id", params.ID).
				Str("user_id", params.UserID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", params.ID).
			Msg("failed to update task status")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("status", task.Status).
		Msg("updated task status")
	return task, nil
}

func (s *taskServiceImpl) ToggleTaskCompletion(ctx context.Context, userID, taskID string) (*models.Task, error) {
	task, err := s.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	return s.UpdateTaskStatus(ctx, UpdateTaskStatusParams{
		ID:     task.ID,
		UserID: userID,
		Status: tasklist.ToggledStatus(task.Status),
	})
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, params DeleteTaskParams) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1 AND
      (assigned_to = $2 OR assigned_by = $2)
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteTaskQuery,
		params.ID,
		params.UserID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", params.ID).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Error().
			Str("task_id", params.ID).
			Str("user_id", params.UserID).
			Msg("task not found")
		return ErrTaskNotFound
	}

	s.logger.Info().
		Str("task_id", params.ID).
		Str("user_id", params.UserID).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) AssignFromTemplate(ctx context.Context, params AssignTemplateParams) (*models.Task, error) {
	err := checkDirectReport(ctx, s.pgPool, params.AssignedBy, params.AssignedTo)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("assigned_by", params.AssignedBy).
			Str("assigned_to", params.AssignedTo).
			Msg("failed to check direct report")
		return nil, err
	}

	template, err := s.templates.GetTemplate(ctx, params.TemplateID)
	if err != nil {
		return nil, err
	}

	task := taskFromTemplate(template, params.AssignedTo, params.AssignedBy, params.DueDate, params.GroupID)
	err = insertTask(ctx, s.pgPool, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("template_id", template.ID).
			Msg("failed to insert task from template")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("template_id", template.ID).
		Str("assigned_to", task.AssignedTo).
		Msg("assigned task from template")
	return task, nil
}

func (s *taskServiceImpl) selectTasks(ctx context.Context, query, userID string, withAssigner bool) ([]*models.Task, error) {
	rows, err := s.pgPool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task := new(models.Task)
		dest := taskScanDest(task)
		if withAssigner {
			dest = append(dest, &task.AssignedByName)
		}

		err = rows.Scan(dest...)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func taskFromTemplate(template *models.TaskTemplate, assignedTo, assignedBy string, dueDate *time.Time, groupID *string) *models.Task {
	return &models.Task{
		Title:          template.Title,
		Description:    template.Description,
		EstimatedHours: template.EstimatedHours,
		AssignedTo:     assignedTo,
		AssignedBy:     assignedBy,
		TemplateID:     &template.ID,
		GroupID:        groupID,
		DueDate:        dueDate,
	}
}

// insertTask fills in the ID, pending status and timestamps of task and
// writes it.
func insertTask(ctx context.Context, q querier, task *models.Task) error {
	taskUUID, err := uuid.NewV7()
	if err != nil {
		return err
	}

	now := time.Now()
	task.ID = taskUUID.String()
	task.Status = models.StatusPending
	task.CreatedAt = now
	task.UpdatedAt = now

	const insertTaskQuery = `
INSERT INTO tasks (id,
                   title,
                   description,
                   estimated_hours,
                   assigned_to,
                   assigned_by,
                   task_template_id,
                   task_group_id,
                   status,
                   due_date,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`
	_, err = q.Exec(
		ctx,
		insertTaskQuery,
		task.ID,
		task.Title,
		task.Description,
		task.EstimatedHours,
		task.AssignedTo,
		task.AssignedBy,
		task.TemplateID,
		task.GroupID,
		task.Status,
		task.DueDate,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrProfileNotFound
		}
		return err
	}
	return nil
}

// checkDirectReport returns ErrNotDirectReport unless managerID is a
// manager and employeeID reports to it.
func checkDirectReport(ctx context.Context, q querier, managerID, employeeID string) error {
	const selectDirectReportQuery = `
SELECT EXISTS (SELECT 1
               FROM profiles e
               JOIN profiles m ON m.id = e.manager_id
               WHERE e.id = $1 AND
                     m.id = $2 AND
                     m.role = 'manager')
`
	var ok bool
	err := q.QueryRow(ctx, selectDirectReportQuery, employeeID, managerID).Scan(&ok)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotDirectReport
	}
	return nil
}

func taskScanDest(task *models.Task) []any {
	return []any{
		&task.ID,
		&task.Title,
		&task.Description,
		&task.EstimatedHours,
		&task.AssignedTo,
		&task.AssignedBy,
		&task.TemplateID,
		&task.GroupID,
		&task.Status,
		&task.DueDate,
		&task.CompletedAt,
		&task.Notes,
		&task.CreatedAt,
		&task.UpdatedAt,
	}
}

func scanTask(row pgx.Row) (*models.Task, error) {
	task := new(models.Task)
	err := row.Scan(taskScanDest(task)...)
	if err != nil {
		return nil, err
	}
	return task, nil
}
