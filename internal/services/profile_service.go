package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/launchpad/internal/models"
)

const profileColumns = `id,
       email,
       full_name,
       role,
       department,
       hire_date,
       manager_id,
       created_at,
       updated_at`

type profileServiceImpl struct {
	logger zerolog.Logger
	pgPool pgxPool
}

func NewProfileService(
	logger zerolog.Logger,
	pgPool pgxPool,
) ProfileService {
	return &profileServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *profileServiceImpl) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	const selectProfileByIDQuery = `
SELECT ` + profileColumns + `
FROM profiles
WHERE id = $1
`
	profile, err := scanProfile(s.pgPool.QueryRow(ctx, selectProfileByIDQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Str("user_id", id).
				Msg("profile not found")
			return nil, ErrProfileNotFound
		}

		s.logger.Error().
			Err(err).
			Str("user_id", id).
			Msg("failed to select profile by id")
		return nil, err
	}
	s.logger.Debug().
		Str("user_id", profile.ID).
		Str("role", profile.Role).
		Msg("selected profile")
	return profile, nil
}

func (s *profileServiceImpl) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*models.Profile, error) {
	if params.Role != nil && !models.IsValidRole(*params.Role) {
		s.logger.Error().
			Str("role", *params.Role).
			Msg("invalid role")
		return nil, ErrInvalidRole
	}
	if params.ManagerID != nil && *params.ManagerID != "" {
		err := s.checkManager(ctx, params.ID, *params.ManagerID)
		if err != nil {
			return nil, err
		}
	}

	const updateProfileQuery = `
UPDATE profiles
SET full_name = CASE WHEN $1::text IS NULL THEN full_name ELSE NULLIF($1, '') END,
    department = CASE WHEN $2::text IS NULL THEN department ELSE NULLIF($2, '') END,
    hire_date = CASE WHEN $4 THEN NULL ELSE COALESCE($3, hire_date) END,
    role = COALESCE($5, role),
    manager_id = CASE WHEN $6::text IS NULL THEN manager_id ELSE NULLIF($6, '')::uuid END,
    updated_at = $7
WHERE id = $8
RETURNING ` + profileColumns + `
`
	profile, err := scanProfile(s.pgPool.QueryRow(
		ctx,
		updateProfileQuery,
		params.FullName,
		params.Department,
		params.HireDate,
		params.ClearHireDate,
		params.Role,
		params.ManagerID,
		time.Now(),
		params.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Str("user_id", params.ID).
				Msg("profile not found")
			return nil, ErrProfileNotFound
		}

		s.logger.Error().
			Err(err).
			Str("user_id", params.ID).
			Msg("failed to update profile")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", profile.ID).
		Str("role", profile.Role).
		Msg("updated profile")
	return profile, nil
}

// checkManager verifies that managerID names a manager other than the
// profile being updated.
func (s *profileServiceImpl) checkManager(ctx context.Context, profileID, managerID string) error {
	if profileID == managerID {
		s.logger.Error().
			Str("user_id", profileID).
			Msg("profile cannot manage itself")
		return ErrNotManager
	}

	const selectManagerRoleQuery = `
SELECT role
FROM profiles
WHERE id = $1
`
	var role string
	err := s.pgPool.QueryRow(ctx, selectManagerRoleQuery, managerID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || IsInvalidID(err) {
			s.logger.Error().
				Str("manager_id", managerID).
				Msg("manager not found")
			return ErrNotManager
		}

		s.logger.Error().
			Err(err).
			Str("manager_id", managerID).
			Msg("failed to select manager role")
		return err
	}

	if role != models.RoleManager {
		s.logger.Error().
			Str("manager_id", managerID).
			Str("role", role).
			Msg("profile is not a manager")
		return ErrNotManager
	}
	return nil
}

func (s *profileServiceImpl) ListReports(ctx context.Context, managerID string) ([]*models.Profile, error) {
	const selectProfilesByManagerIDQuery = `
SELECT ` + profileColumns + `
FROM profiles
WHERE manager_id = $1
ORDER BY full_name NULLS LAST, email
`
	rows, err := s.pgPool.Query(ctx, selectProfilesByManagerIDQuery, managerID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("manager_id", managerID).
			Msg("failed to select profiles by manager id")
		return nil, err
	}
	defer rows.Close()

	var reports []*models.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan profile")
			return nil, err
		}
		reports = append(reports, profile)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(reports)).
		Str("manager_id", managerID).
		Msg("selected profiles by manager id")
	return reports, nil
}

func (s *profileServiceImpl) GetReport(ctx context.Context, managerID, employeeID string) (*models.Profile, error) {
	employee, err := s.GetProfile(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	if employee.ManagerID == nil || *employee.ManagerID != managerID {
		s.logger.Warn().
			Str("manager_id", managerID).
			Str("employee_id", employeeID).
			Msg("employee does not report to manager")
		return nil, ErrNotDirectReport
	}
	return employee, nil
}

func (s *profileServiceImpl) GetManager(ctx context.Context, id string) (*models.Profile, error) {
	const selectManagerQuery = `
SELECT m.id,
       m.email,
       m.full_name,
       m.role,
       m.department,
       m.hire_date,
       m.manager_id,
       m.created_at,
       m.updated_at
FROM profiles p
JOIN profiles m ON m.id = p.manager_id
WHERE p.id = $1
`
	manager, err := scanProfile(s.pgPool.QueryRow(ctx, selectManagerQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}

		s.logger.Error().
			Err(err).
			Str("user_id", id).
			Msg("failed to select manager")
		return nil, err
	}
	return manager, nil
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	profile := new(models.Profile)
	err := row.Scan(
		&profile.ID,
		&profile.Email,
		&profile.FullName,
		&profile.Role,
		&profile.Department,
		&profile.HireDate,
		&profile.ManagerID,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return profile, nil
}
