package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/launchpad/internal/delivery/http/httpauth"
	"github.com/adanyl0v/launchpad/internal/services"
)

type Handler interface {
	HandleLogin(c *gin.Context)
	HandleRefresh(c *gin.Context)
	HandleRegister(c *gin.Context)
	HandleLogout(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)
	HandleManagerMiddleware(c *gin.Context)
	HandleHRMiddleware(c *gin.Context)

	HandleGetProfile(c *gin.Context)
	HandleUpdateProfile(c *gin.Context)
	HandleUpdateMemberProfile(c *gin.Context)

	HandleGetTasks(c *gin.Context)
	HandleToggleTask(c *gin.Context)
	HandleSetTaskStatus(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
	HandleGetTaskComments(c *gin.Context)
	HandleAddTaskComment(c *gin.Context)

	HandleGetTemplates(c *gin.Context)
	HandleCreateTemplate(c *gin.Context)
	HandleGetGroups(c *gin.Context)
	HandleCreateGroup(c *gin.Context)
	HandleAddGroupTemplate(c *gin.Context)

	HandleGetReports(c *gin.Context)
	HandleGetReportTasks(c *gin.Context)
	HandleCreateReportTask(c *gin.Context)
	HandleAssignTemplate(c *gin.Context)
	HandleAssignGroup(c *gin.Context)
	HandleGetAssignedTasks(c *gin.Context)

	HandleChat(c *gin.Context)
}

// Services bundles the dependencies of the API handlers.
type Services struct {
	Auth      services.AuthService
	Sessions  services.SessionService
	Profiles  services.ProfileService
	Tasks     services.TaskService
	Templates services.TemplateService
	Groups    services.GroupService
	Comments  services.CommentService
	Chat      services.ChatService
}

type handlerImpl struct {
	logger        zerolog.Logger
	authenticator *httpauth.Authenticator
	taskKeyword   string

	auth      services.AuthService
	profiles  services.ProfileService
	tasks     services.TaskService
	templates services.TemplateService
	groups    services.GroupService
	comments  services.CommentService
	chat      services.ChatService
}

func New(
	logger zerolog.Logger,
	authenticator *httpauth.Authenticator,
	svc Services,
	taskKeyword string,
) Handler {
	return &handlerImpl{
		logger:        logger,
		authenticator: authenticator,
		taskKeyword:   taskKeyword,
		auth:          svc.Auth,
		profiles:      svc.Profiles,
		tasks:         svc.Tasks,
		templates:     svc.Templates,
		groups:        svc.Groups,
		comments:      svc.Comments,
		chat:          svc.Chat,
	}
}
