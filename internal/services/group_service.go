package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/launchpad/internal/models"
)

const groupTemplateFKey = "task_group_templates_task_template_id_fkey"

type groupServiceImpl struct {
	logger zerolog.Logger
	pgPool pgxPool
}

func NewGroupService(
	logger zerolog.Logger,
	pgPool pgxPool,
) GroupService {
	return &groupServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *groupServiceImpl) ListGroups(ctx context.Context, department string) ([]*models.TaskGroup, error) {
	const selectGroupsQuery = `
SELECT id,
       name,
       description,
       department,
       created_by,
       created_at,
       updated_at
FROM task_groups
WHERE $1 = '' OR
      department = $1 OR
      department IS NULL
ORDER BY name
`
	rows, err := s.pgPool.Query(ctx, selectGroupsQuery, department)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("department", department).
			Msg("failed to select groups")
		return nil, err
	}
	defer rows.Close()

	var groups []*models.TaskGroup
	byID := make(map[string]*models.TaskGroup)
	for rows.Next() {
		group := new(models.TaskGroup)
		err = rows.Scan(
			&group.ID,
			&group.Name,
			&group.Description,
			&group.Department,
			&group.CreatedBy,
			&group.CreatedAt,
			&group.UpdatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan group")
			return nil, err
		}
		groups = append(groups, group)
		byID[group.ID] = group
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	if len(groups) == 0 {
		return groups, nil
	}

	ids := make([]string, 0, len(groups))
	for _, group := range groups {
		ids = append(ids, group.ID)
	}

	const selectGroupTemplatesQuery = `
SELECT gt.task_group_id,
       ` + templateColumns + `
FROM task_group_templates gt
JOIN task_templates tt ON tt.id = gt.task_template_id
WHERE gt.task_group_id = ANY($1)
ORDER BY gt.task_group_id, gt.order_index
`
	templateRows, err := s.pgPool.Query(ctx, selectGroupTemplatesQuery, ids)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select group templates")
		return nil, err
	}
	defer templateRows.Close()

	for templateRows.Next() {
		var groupID string
		template := new(models.TaskTemplate)
		err = templateRows.Scan(
			&groupID,
			&template.ID,
			&template.Title,
			&template.Description,
			&template.EstimatedHours,
			&template.Department,
			&template.CreatedBy,
			&template.CreatedAt,
			&template.UpdatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan group template")
			return nil, err
		}
		if group, ok := byID[groupID]; ok {
			group.Templates = append(group.Templates, template)
		}
	}

	err = templateRows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(groups)).
		Str("department", department).
		Msg("selected groups")
	return groups, nil
}

func (s *groupServiceImpl) CreateGroup(ctx context.Context, params CreateGroupParams) (*models.TaskGroup, error) {
	groupUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate group uuid")
		return nil, err
	}

	now := time.Now()
	group := &models.TaskGroup{
		ID:          groupUUID.String(),
		Name:        params.Name,
		Description: params.Description,
		Department:  params.Department,
		CreatedBy:   params.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	const insertGroupQuery = `
INSERT INTO task_groups (id,
                         name,
                         description,
                         department,
                         created_by,
                         created_at,
                         updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertGroupQuery,
		group.ID,
		group.Name,
		group.Description,
		group.Department,
		group.CreatedBy,
		group.CreatedAt,
		group.UpdatedAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert group")
		return nil, err
	}

	s.logger.Info().
		Str("group_id", group.ID).
		Str("created_by", group.CreatedBy).
		Msg("created group")
	return group, nil
}

func (s *groupServiceImpl) AddTemplateToGroup(ctx context.Context, groupID, templateID string, orderIndex int) error {
	linkUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate group template uuid")
		return err
	}

	const upsertGroupTemplateQuery = `
INSERT INTO task_group_templates (id,
                                  task_group_id,
                                  task_template_id,
                                  order_index)
VALUES ($1, $2, $3, $4)
ON CONFLICT (task_group_id, task_template_id)
DO UPDATE SET order_index = EXCLUDED.order_index
`
	_, err = s.pgPool.Exec(
		ctx,
		upsertGroupTemplateQuery,
		linkUUID.String(),
		groupID,
		templateID,
		orderIndex,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			if pgErr.ConstraintName == groupTemplateFKey {
				return ErrTemplateNotFound
			}
			return ErrGroupNotFound
		}

		s.logger.Error().
			Err(err).
			Str("group_id", groupID).
			Str("template_id", templateID).
			Msg("failed to add template to group")
		return err
	}

	s.logger.Info().
		Str("group_id", groupID).
		Str("template_id", templateID).
		Int("order_index", orderIndex).
		Msg("added template to group")
	return nil
}

func (s *groupServiceImpl) AssignGroup(ctx context.Context, params AssignGroupParams) ([]*models.Task, error) {
	tx, err := s.pgPool.Begin(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = checkDirectReport(ctx, tx, params.AssignedBy, params.AssignedTo)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("assigned_by", params.AssignedBy).
			Str("assigned_to", params.AssignedTo).
			Msg("failed to check direct report")
		return nil, err
	}

	const selectGroupExistsQuery = `
SELECT EXISTS (SELECT 1 FROM task_groups WHERE id = $1)
`
	var exists bool
	err = tx.QueryRow(ctx, selectGroupExistsQuery, params.GroupID).Scan(&exists)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("group_id", params.GroupID).
			Msg("failed to select group")
		return nil, err
	}
	if !exists {
		s.logger.Error().
			Str("group_id", params.GroupID).
			Msg("group not found")
		return nil, ErrGroupNotFound
	}

	const selectGroupTemplatesQuery = `
SELECT ` + templateColumns + `
FROM task_group_templates gt
JOIN task_templates tt ON tt.id = gt.task_template_id
WHERE gt.task_group_id = $1
ORDER BY gt.order_index
`
	rows, err := tx.Query(ctx, selectGroupTemplatesQuery, params.GroupID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("group_id", params.GroupID).
			Msg("failed to select group templates")
		return nil, err
	}

	var templates []*models.TaskTemplate
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			rows.Close()
			s.logger.Error().
				Err(err).
				Msg("failed to scan template")
			return nil, err
		}
		templates = append(templates, template)
	}
	rows.Close()

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	if len(templates) == 0 {
		return nil, ErrGroupEmpty
	}

	tasks := make([]*models.Task, 0, len(templates))
	for _, template := range templates {
		task := taskFromTemplate(template, params.AssignedTo, params.AssignedBy, params.DueDate, &params.GroupID)
		err = insertTask(ctx, tx, task)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("template_id", template.ID).
				Msg("failed to insert task from template")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = tx.Commit(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return nil, err
	}

	s.logger.Info().
		Str("group_id", params.GroupID).
		Str("assigned_to", params.AssignedTo).
		Int("count", len(tasks)).
		Msg("assigned group")
	return tasks, nil
}

