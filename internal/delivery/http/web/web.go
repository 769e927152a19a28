// Package web serves the server-rendered onboarding pages. It shares the
// session cookies of the JSON API.
package web

import (
	"context"
	"embed"
	"html/template"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/launchpad/internal/delivery/http/httpauth"
	"github.com/adanyl0v/launchpad/internal/services"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler interface {
	HandleIndex(c *gin.Context)
	HandleLoginPage(c *gin.Context)
	HandleLogin(c *gin.Context)
	HandleRegisterPage(c *gin.Context)
	HandleRegister(c *gin.Context)
	HandleLogout(c *gin.Context)
	HandleViewerMiddleware(c *gin.Context)
	HandleManagerMiddleware(c *gin.Context)

	HandleDashboard(c *gin.Context)
	HandleToggleTask(c *gin.Context)
	HandleProfile(c *gin.Context)
	HandleUpdateProfile(c *gin.Context)

	HandleAdmin(c *gin.Context)
	HandleEmployee(c *gin.Context)
	HandleEmployeeCreateTask(c *gin.Context)
	HandleEmployeeAssignTemplate(c *gin.Context)
	HandleEmployeeAssignGroup(c *gin.Context)

	HandleConnectionTest(c *gin.Context)
	HandleTests(c *gin.Context)
	HandleTestsCreateTemplate(c *gin.Context)
}

type Services struct {
	Auth      services.AuthService
	Profiles  services.ProfileService
	Tasks     services.TaskService
	Templates services.TemplateService
	Groups    services.GroupService
}

type Options struct {
	Organization string
	TaskKeyword  string
	ChatEnabled  bool
}

type handlerImpl struct {
	logger        zerolog.Logger
	authenticator *httpauth.Authenticator
	pinger        Pinger
	opts          Options

	auth      services.AuthService
	profiles  services.ProfileService
	tasks     services.TaskService
	templates services.TemplateService
	groups    services.GroupService
}

func New(
	logger zerolog.Logger,
	authenticator *httpauth.Authenticator,
	pinger Pinger,
	svc Services,
	opts Options,
) Handler {
	return &handlerImpl{
		logger:        logger,
		authenticator: authenticator,
		pinger:        pinger,
		opts:          opts,
		auth:          svc.Auth,
		profiles:      svc.Profiles,
		tasks:         svc.Tasks,
		templates:     svc.Templates,
		groups:        svc.Groups,
	}
}

// LoadTemplates parses the embedded page templates.
func LoadTemplates() (*template.Template, error) {
	return template.New("").
		Funcs(template.FuncMap{
			"dueDate":   dueDate,
			"date":      displayDate,
			"isoDate":   isoDate,
			"orDefault": orDefault,
		}).
		ParseFS(templatesFS, "templates/*.html")
}

func RegisterRoutes(router gin.IRouter, h Handler) {
	router.GET("/", h.HandleIndex)
	router.GET("/login", h.HandleLoginPage)
	router.POST("/login", h.HandleLogin)
	router.GET("/register", h.HandleRegisterPage)
	router.POST("/register", h.HandleRegister)
	router.GET("/logout", h.HandleLogout)
	router.POST("/logout", h.HandleLogout)
	router.GET("/connection-test", h.HandleConnectionTest)

	pages := router.Group("", h.HandleViewerMiddleware)
	pages.GET("/dashboard", h.HandleDashboard)
	pages.POST("/dashboard/tasks/:id/toggle", h.HandleToggleTask)
	pages.GET("/profile", h.HandleProfile)
	pages.POST("/profile", h.HandleUpdateProfile)
	pages.GET("/tests", h.HandleTests)
	pages.POST("/tests/templates", h.HandleTestsCreateTemplate)

	managers := pages.Group("", h.HandleManagerMiddleware)
	managers.GET("/admin", h.HandleAdmin)
	managers.GET("/employee/:id", h.HandleEmployee)
	managers.POST("/employee/:id/tasks", h.HandleEmployeeCreateTask)
	managers.POST("/employee/:id/templates", h.HandleEmployeeAssignTemplate)
	managers.POST("/employee/:id/groups", h.HandleEmployeeAssignGroup)
}

func dueDate(t *time.Time) string {
	if t == nil {
		return "No due date"
	}
	return "Due " + t.Format("Jan 2, 2006")
}

func displayDate(t *time.Time, placeholder string) string {
	if t == nil {
		return placeholder
	}
	return t.Format("January 2, 2006")
}

func isoDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

func orDefault(s *string, placeholder string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return placeholder
	}
	return *s
}
