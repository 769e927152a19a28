package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/adanyl0v/launchpad/internal/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserPasswordMismatch = errors.New("user password mismatch")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionExpired       = errors.New("session expired")

	ErrProfileNotFound  = errors.New("profile not found")
	ErrInvalidRole      = errors.New("invalid role")
	ErrNotManager       = errors.New("profile is not a manager")
	ErrNotDirectReport  = errors.New("employee does not report to this manager")
	ErrTaskNotFound     = errors.New("task not found")
	ErrInvalidStatus    = errors.New("invalid task status")
	ErrTemplateNotFound = errors.New("task template not found")
	ErrGroupNotFound    = errors.New("task group not found")
	ErrGroupEmpty       = errors.New("task group has no templates")
	ErrChatDisabled     = errors.New("chat assistant is not configured")
	ErrEmptyMessage     = errors.New("message is empty")
	ErrEmptyComment     = errors.New("comment is empty")
)

// IsInvalidID reports whether Postgres rejected an ID argument as a
// malformed UUID.
func IsInvalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation
}

// pgxPool is the subset of *pgxpool.Pool the services rely on.
type pgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type AuthService interface {
	// Login authenticates the user by email and password.
	//
	// It deletes all sessions with the same user ID and creates
	// a new session and generates a new JWT token pair.
	//
	// It returns ErrUserNotFound if the user with the given
	// email doesn't exist or ErrUserPasswordMismatch if the
	// given password doesn't match the user's password.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Refresh updates the session with the given refresh token.
	//
	// It returns ErrSessionNotFound if the session with the
	// given refresh token doesn't exist or ErrSessionExpired
	// if the session is expired.
	Refresh(ctx context.Context, params RefreshParams) (*LoginResult, error)

	// Register creates a profile with the given email and password.
	//
	// It hashes the password, generates a unique ID and creates a
	// session with the given fingerprint and a fresh JWT token pair.
	// New profiles always get the employee role; roles and managers are
	// assigned later through UpdateProfile.
	//
	// It returns ErrUserAlreadyExists if the profile
	// with the given email already exists.
	Register(ctx context.Context, params RegisterParams) (*LoginResult, error)

	// Logout invalidates all sessions with the given user ID.
	Logout(ctx context.Context, userID string) error

	// ParseJWTToken parses the given JWT token and returns the registered
	// claims or jwt.ErrTokenExpired if the token is expired.
	ParseJWTToken(token string) (*jwt.RegisteredClaims, error)
}

type SessionService interface {
	// GetSessionByID returns ErrSessionNotFound for unknown IDs and
	// ErrSessionExpired once the refresh token has expired.
	GetSessionByID(ctx context.Context, sessionID string) (*models.Session, error)
	// DeleteExpiredSessions removes sessions that expired before now and
	// returns how many were removed.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type ProfileService interface {
	// GetProfile returns ErrProfileNotFound for unknown IDs.
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	// UpdateProfile returns ErrInvalidRole for unknown roles and
	// ErrNotManager when ManagerID is not a manager's profile or is the
	// profile itself.
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (*models.Profile, error)
	// ListReports returns the profiles whose manager is managerID.
	ListReports(ctx context.Context, managerID string) ([]*models.Profile, error)
	// GetReport returns the employee only if it reports to managerID,
	// ErrNotDirectReport otherwise.
	GetReport(ctx context.Context, managerID, employeeID string) (*models.Profile, error)
	// GetManager returns the manager of the profile or ErrProfileNotFound
	// when none is set.
	GetManager(ctx context.Context, id string) (*models.Profile, error)
}

type TaskService interface {
	// GetTasksByAssignee returns every task assigned to the user, newest
	// first, with the assigner's name filled in.
	GetTasksByAssignee(ctx context.Context, userID string) ([]*models.Task, error)
	GetTasksAssignedBy(ctx context.Context, userID string) ([]*models.Task, error)
	// GetTask only returns tasks the user is assigned to or has assigned.
	GetTask(ctx context.Context, userID, taskID string) (*models.Task, error)
	// CreateTask assigns an ad-hoc task. The assignee must be a direct
	// report of the assigner.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)
	// UpdateTaskStatus sets the status and optional notes, keeping
	// completed_at in sync with the completed status.
	UpdateTaskStatus(ctx context.Context, params UpdateTaskStatusParams) (*models.Task, error)
	// ToggleTaskCompletion flips a task between completed and pending.
	ToggleTaskCompletion(ctx context.Context, userID, taskID string) (*models.Task, error)
	DeleteTask(ctx context.Context, params DeleteTaskParams) error
	AssignFromTemplate(ctx context.Context, params AssignTemplateParams) (*models.Task, error)
}

type TemplateService interface {
	// ListTemplates returns templates ordered by title. A non-empty
	// department narrows the list to that department and templates
	// without one.
	ListTemplates(ctx context.Context, department string) ([]*models.TaskTemplate, error)
	GetTemplate(ctx context.Context, id string) (*models.TaskTemplate, error)
	CreateTemplate(ctx context.Context, params CreateTemplateParams) (*models.TaskTemplate, error)
}

type GroupService interface {
	ListGroups(ctx context.Context, department string) ([]*models.TaskGroup, error)
	CreateGroup(ctx context.Context, params CreateGroupParams) (*models.TaskGroup, error)
	AddTemplateToGroup(ctx context.Context, groupID, templateID string, orderIndex int) error
	// AssignGroup creates one task per template of the group for the
	// employee, in group order, within a single transaction.
	AssignGroup(ctx context.Context, params AssignGroupParams) ([]*models.Task, error)
}

type CommentService interface {
	AddComment(ctx context.Context, userID, taskID, comment string) (*models.TaskComment, error)
	ListComments(ctx context.Context, userID, taskID string) ([]*models.TaskComment, error)
}

type ChatService interface {
	// Ask forwards the message to the completion provider with an
	// onboarding system prompt, optionally scoped to a topic.
	Ask(ctx context.Context, message, topic string) (string, error)
}

type LoginParams struct {
	Email       string
	Password    string
	Fingerprint string
}

type RegisterParams struct {
	LoginParams
	FullName   string
	Department string
}

type LoginResult struct {
	UserID                string
	SessionID             string
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

type RefreshParams struct {
	RefreshToken string
	Fingerprint  string
}

// UpdateProfileParams leaves nil fields unchanged. An empty FullName,
// Department or ManagerID clears the column, as does ClearHireDate.
type UpdateProfileParams struct {
	ID            string
	FullName      *string
	Department    *string
	HireDate      *time.Time
	ClearHireDate bool
	Role          *string
	ManagerID     *string
}

type CreateTaskParams struct {
	Title          string
	Description    *string
	EstimatedHours *int
	AssignedTo     string
	AssignedBy     string
	GroupID        *string
	DueDate        *time.Time
}

type UpdateTaskStatusParams struct {
	ID     string
	UserID string
	Status string
	Notes  *string
}

type DeleteTaskParams struct {
	ID     string
	UserID string
}

type AssignTemplateParams struct {
	TemplateID string
	AssignedTo string
	AssignedBy string
	DueDate    *time.Time
	GroupID    *string
}

type CreateTemplateParams struct {
	Title          string
	Description    *string
	EstimatedHours *int
	Department     *string
	CreatedBy      string
}

type CreateGroupParams struct {
	Name        string
	Description *string
	Department  *string
	CreatedBy   string
}

type AssignGroupParams struct {
	GroupID    string
	AssignedTo string
	AssignedBy string
	DueDate    *time.Time
}
