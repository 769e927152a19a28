package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/launchpad/internal/models"
)

type commentServiceImpl struct {
	logger zerolog.Logger
	pgPool pgxPool
}

func NewCommentService(
	logger zerolog.Logger,
	pgPool pgxPool,
) CommentService {
	return &commentServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *commentServiceImpl) AddComment(ctx context.Context, userID, taskID, comment string) (*models.TaskComment, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, ErrEmptyComment
	}

	err := s.checkTaskAccess(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	commentUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate comment uuid")
		return nil, err
	}

	taskComment := &models.TaskComment{
		ID:        commentUUID.String(),
		TaskID:    taskID,
		UserID:    userID,
		Comment:   comment,
		CreatedAt: time.Now(),
	}

	const insertCommentQuery = `
INSERT INTO task_comments (id,
                           task_id,
                           user_id,
                           comment,
                           created_at)
VALUES ($1, $2, $3, $4, $5)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertCommentQuery,
		taskComment.ID,
		taskComment.TaskID,
		taskComment.UserID,
		taskComment.Comment,
		taskComment.CreatedAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to insert comment")
		return nil, err
	}

	s.logger.Info().
		Str("comment_id", taskComment.ID).
		Str("task_id", taskID).
		Str("user_id", userID).
		Msg("added comment")
	return taskComment, nil
}

func (s *commentServiceImpl) ListComments(ctx context.Context, userID, taskID string) ([]*models.TaskComment, error) {
	err := s.checkTaskAccess(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	const selectCommentsQuery = `
SELECT id,
       task_id,
       user_id,
       comment,
       created_at
FROM task_comments
WHERE task_id = $1
ORDER BY created_at
`
	rows, err := s.pgPool.Query(ctx, selectCommentsQuery, taskID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to select comments")
		return nil, err
	}
	defer rows.Close()

	var comments []*models.TaskComment
	for rows.Next() {
		comment := new(models.TaskComment)
		err = rows.Scan(
			&comment.ID,
			&comment.TaskID,
			&comment.UserID,
			&comment.Comment,
			&comment.CreatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan comment")
			return nil, err
		}
		comments = append(comments, comment)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	return comments, nil
}

// checkTaskAccess returns ErrTaskNotFound unless the user is the task's
// assignee or assigner.
func (s *commentServiceImpl) checkTaskAccess(ctx context.Context, userID, taskID string) error {
	const selectTaskAccessQuery = `
SELECT EXISTS (SELECT 1
               FROM tasks
               WHERE id = $1 AND
                     (assigned_to = $2 OR assigned_by = $2))
`
	var ok bool
	err := s.pgPool.QueryRow(ctx, selectTaskAccessQuery, taskID, userID).Scan(&ok)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to check task access")
		return err
	}
	if !ok {
		s.logger.Error().
			Str("task_id", taskID).
			Str("user_id", userID).
			Msg("task not found")
		return ErrTaskNotFound
	}
	return nil
}
