package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/launchpad/internal/models"
)

const templateColumns = `tt.id,
       tt.title,
       tt.description,
       tt.estimated_hours,
       tt.department,
       tt.created_by,
       tt.created_at,
       tt.updated_at`

type templateServiceImpl struct {
	logger zerolog.Logger
	pgPool pgxPool
}

func NewTemplateService(
	logger zerolog.Logger,
	pgPool pgxPool,
) TemplateService {
	return &templateServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *templateServiceImpl) ListTemplates(ctx context.Context, department string) ([]*models.TaskTemplate, error) {
	const selectTemplatesQuery = `
SELECT ` + templateColumns + `
FROM task_templates tt
WHERE $1 = '' OR
      tt.department = $1 OR
      tt.department IS NULL
ORDER BY tt.title
`
	rows, err := s.pgPool.Query(ctx, selectTemplatesQuery, department)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("department", department).
			Msg("failed to select templates")
		return nil, err
	}
	defer rows.Close()

	var templates []*models.TaskTemplate
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan template")
			return nil, err
		}
		templates = append(templates, template)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(templates)).
		Str("department", department).
		Msg("selected templates")
	return templates, nil
}

func (s *templateServiceImpl) GetTemplate(ctx context.Context, id string) (*models.TaskTemplate, error) {
	const selectTemplateByIDQuery = `
SELECT ` + templateColumns + `
FROM task_templates tt
WHERE tt.id = $1
`
	template, err := scanTemplate(s.pgPool.QueryRow(ctx, selectTemplateByIDQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Str("template_id", id).
				Msg("template not found")
			return nil, ErrTemplateNotFound
		}

		s.logger.Error().
			Err(err).
			Str("template_id", id).
			Msg("failed to select template by id")
		return nil, err
	}
	return template, nil
}

func (s *templateServiceImpl) CreateTemplate(ctx context.Context, params CreateTemplateParams) (*models.TaskTemplate, error) {
	templateUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate template uuid")
		return nil, err
	}

	now := time.Now()
	template := &models.TaskTemplate{
		ID:             templateUUID.String(),
		Title:          params.Title,
		Description:    params.Description,
		EstimatedHours: params.EstimatedHours,
		Department:     params.Department,
		CreatedBy:      params.CreatedBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	const insertTemplateQuery = `
INSERT INTO task_templates (id,
                            title,
                            description,
                            estimated_hours,
                            department,
                            created_by,
                            created_at,
                            updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertTemplateQuery,
		template.ID,
		template.Title,
		template.Description,
		template.EstimatedHours,
		template.Department,
		template.CreatedBy,
		template.CreatedAt,
		template.UpdatedAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert template")
		return nil, err
	}

	s.logger.Info().
		Str("template_id", template.ID).
		Str("created_by", template.CreatedBy).
		Msg("created template")
	return template, nil
}

func scanTemplate(row pgx.Row) (*models.TaskTemplate, error) {
	template := new(models.TaskTemplate)
	err := row.Scan(
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
		return nil, err
	}
	return template, nil
}
