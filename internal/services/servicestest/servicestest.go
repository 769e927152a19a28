// Package servicestest provides function-backed fakes of the service
// interfaces for handler tests. A method whose func field is nil panics.
package servicestest

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adanyl0v/launchpad/internal/models"
	"github.com/adanyl0v/launchpad/internal/services"
)

type Auth struct {
	LoginFunc         func(ctx context.Context, params services.LoginParams) (*services.LoginResult, error)
	RefreshFunc       func(ctx context.Context, params services.RefreshParams) (*services.LoginResult, error)
	RegisterFunc      func(ctx context.Context, params services.RegisterParams) (*services.LoginResult, error)
	LogoutFunc        func(ctx context.Context, userID string) error
	ParseJWTTokenFunc func(token string) (*jwt.RegisteredClaims, error)
}

func (f *Auth) Login(ctx context.Context, params services.LoginParams) (*services.LoginResult, error) {
	return f.LoginFunc(ctx, params)
}

func (f *Auth) Refresh(ctx context.Context, params services.RefreshParams) (*services.LoginResult, error) {
	return f.RefreshFunc(ctx, params)
}

func (f *Auth) Register(ctx context.Context, params services.RegisterParams) (*services.LoginResult, error) {
	return f.RegisterFunc(ctx, params)
}

func (f *Auth) Logout(ctx context.Context, userID string) error {
	return f.LogoutFunc(ctx, userID)
}

func (f *Auth) ParseJWTToken(token string) (*jwt.RegisteredClaims, error) {
	return f.ParseJWTTokenFunc(token)
}

type Sessions struct {
	GetSessionByIDFunc        func(ctx context.Context, sessionID string) (*models.Session, error)
	DeleteExpiredSessionsFunc func(ctx context.Context, now time.Time) (int64, error)
}

func (f *Sessions) GetSessionByID(ctx context.Context, sessionID string) (*models.Session, error) {
	return f.GetSessionByIDFunc(ctx, sessionID)
}

func (f *Sessions) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	return f.DeleteExpiredSessionsFunc(ctx, now)
}

type Profiles struct {
	GetProfileFunc    func(ctx context.Context, id string) (*models.Profile, error)
	UpdateProfileFunc func(ctx context.Context, params services.UpdateProfileParams) (*models.Profile, error)
	ListReportsFunc   func(ctx context.Context, managerID string) ([]*models.Profile, error)
	GetReportFunc     func(ctx context.Context, managerID, employeeID string) (*models.Profile, error)
	GetManagerFunc    func(ctx context.Context, id string) (*models.Profile, error)
}

func (f *Profiles) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	return f.GetProfileFunc(ctx, id)
}

func (f *Profiles) UpdateProfile(ctx context.Context, params services.UpdateProfileParams) (*models.Profile, error) {
	return f.UpdateProfileFunc(ctx, params)
}

func (f *Profiles) ListReports(ctx context.Context, managerID string) ([]*models.Profile, error) {
	return f.ListReportsFunc(ctx, managerID)
}

func (f *Profiles) GetReport(ctx context.Context, managerID, employeeID string) (*models.Profile, error) {
	return f.GetReportFunc(ctx, managerID, employeeID)
}

func (f *Profiles) GetManager(ctx context.Context, id string) (*models.Profile, error) {
	return f.GetManagerFunc(ctx, id)
}

type Tasks struct {
	GetTasksByAssigneeFunc   func(ctx context.Context, userID string) ([]*models.Task, error)
	GetTasksAssignedByFunc   func(ctx context.Context, userID string) ([]*models.Task, error)
	GetTaskFunc              func(ctx context.Context, userID, taskID string) (*models.Task, error)
	CreateTaskFunc           func(ctx context.Context, params services.CreateTaskParams) (*models.Task, error)
	UpdateTaskStatusFunc     func(ctx context.Context, params services.UpdateTaskStatusParams) (*models.Task, error)
	ToggleTaskCompletionFunc func(ctx context.Context, userID, taskID string) (*models.Task, error)
	DeleteTaskFunc           func(ctx context.Context, params services.DeleteTaskParams) error
	AssignFromTemplateFunc   func(ctx context.Context, params services.AssignTemplateParams) (*models.Task, error)
}

func (f *Tasks) GetTasksByAssignee(ctx context.Context, userID string) ([]*models.Task, error) {
	return f.GetTasksByAssigneeFunc(ctx, userID)
}

func (f *Tasks) GetTasksAssignedBy(ctx context.Context, userID string) ([]*models.Task, error) {
	return f.GetTasksAssignedByFunc(ctx, userID)
}

func (f *Tasks) GetTask(ctx context.Context, userID, taskID string) (*models.Task, error) {
	return f.GetTaskFunc(ctx, userID, taskID)
}

func (f *Tasks) CreateTask(ctx context.Context, params services.CreateTaskParams) (*models.Task, error) {
	return f.CreateTaskFunc(ctx, params)
}

func (f *Tasks) UpdateTaskStatus(ctx context.Context, params services.UpdateTaskStatusParams) (*models.Task, error) {
	return f.UpdateTaskStatusFunc(ctx, params)
}

func (f *Tasks) ToggleTaskCompletion(ctx context.Context, userID, taskID string) (*models.Task, error) {
	return f.ToggleTaskCompletionFunc(ctx, userID, taskID)
}

func (f *Tasks) DeleteTask(ctx context.Context, params services.DeleteTaskParams) error {
	return f.DeleteTaskFunc(ctx, params)
}

func (f *Tasks) AssignFromTemplate(ctx context.Context, params services.AssignTemplateParams) (*models.Task, error) {
	return f.AssignFromTemplateFunc(ctx, params)
}

type Templates struct {
	ListTemplatesFunc  func(ctx context.Context, department string) ([]*models.TaskTemplate, error)
	GetTemplateFunc    func(ctx context.Context, id string) (*models.TaskTemplate, error)
	CreateTemplateFunc func(ctx context.Context, params services.CreateTemplateParams) (*models.TaskTemplate, error)
}

func (f *Templates) ListTemplates(ctx context.Context, department string) ([]*models.TaskTemplate, error) {
	return f.ListTemplatesFunc(ctx, department)
}

func (f *Templates) GetTemplate(ctx context.Context, id string) (*models.TaskTemplate, error) {
	return f.GetTemplateFunc(ctx, id)
}

func (f *Templates) CreateTemplate(ctx context.Context, params services.CreateTemplateParams) (*models.TaskTemplate, error) {
	return f.CreateTemplateFunc(ctx, params)
}

type Groups struct {
	ListGroupsFunc         func(ctx context.Context, department string) ([]*models.TaskGroup, error)
	CreateGroupFunc        func(ctx context.Context, params services.CreateGroupParams) (*models.TaskGroup, error)
	AddTemplateToGroupFunc func(ctx context.Context, groupID, templateID string, orderIndex int) error
	AssignGroupFunc        func(ctx context.Context, params services.AssignGroupParams) ([]*models.Task, error)
}

func (f *Groups) ListGroups(ctx context.Context, department string) ([]*models.TaskGroup, error) {
	return f.ListGroupsFunc(ctx, department)
}

func (f *Groups) CreateGroup(ctx context.Context, params services.CreateGroupParams) (*models.TaskGroup, error) {
	return f.CreateGroupFunc(ctx, params)
}

func (f *Groups) AddTemplateToGroup(ctx context.Context, groupID, templateID string, orderIndex int) error {
	return f.AddTemplateToGroupFunc(ctx, groupID, templateID, orderIndex)
}

func (f *Groups) AssignGroup(ctx context.Context, params services.AssignGroupParams) ([]*models.Task, error) {
	return f.AssignGroupFunc(ctx, params)
}

type Comments struct {
	AddCommentFunc   func(ctx context.Context, userID, taskID, comment string) (*models.TaskComment, error)
	ListCommentsFunc func(ctx context.Context, userID, taskID string) ([]*models.TaskComment, error)
}

func (f *Comments) AddComment(ctx context.Context, userID, taskID, comment string) (*models.TaskComment, error) {
	return f.AddCommentFunc(ctx, userID, taskID, comment)
}

func (f *Comments) ListComments(ctx context.Context, userID, taskID string) ([]*models.TaskComment, error) {
	return f.ListCommentsFunc(ctx, userID, taskID)
}

type Chat struct {
	AskFunc func(ctx context.Context, message, topic string) (string, error)
}

func (f *Chat) Ask(ctx context.Context, message, topic string) (string, error) {
	return f.AskFunc(ctx, message, topic)
}

var (
	_ services.AuthService     = (*Auth)(nil)
	_ services.SessionService  = (*Sessions)(nil)
	_ services.ProfileService  = (*Profiles)(nil)
	_ services.TaskService     = (*Tasks)(nil)
	_ services.TemplateService = (*Templates)(nil)
	_ services.GroupService    = (*Groups)(nil)
	_ services.CommentService  = (*Comments)(nil)
	_ services.ChatService     = (*Chat)(nil)
)
