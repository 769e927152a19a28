package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/launchpad/internal/models"
	"github.com/adanyl0v/launchpad/internal/services"
	"github.com/adanyl0v/launchpad/internal/tasklist"
)

const pingTimeout = 5 * time.Second

// page carries what the shared layout needs.
type page struct {
	Title  string
	Viewer *models.Profile
}

type errorPage struct {
	page
	Error string
}

func (h *handlerImpl) renderError(c *gin.Context, status int) {
	c.HTML(status, "error", errorPage{
		page:  page{Title: "Error", Viewer: currentViewer(c)},
		Error: http.StatusText(status),
	})
	c.Abort()
}

type indexPage struct {
	page
	Organization string
}

func (h *handlerImpl) HandleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index", indexPage{
		page:         page{Title: "Welcome", Viewer: h.optionalViewer(c)},
		Organization: h.opts.Organization,
	})
}

type filterLink struct {
	Key   string
	Label string
}

type dashboardPage struct {
	page
	Filters      []filterLink
	ActiveFilter string
	Tasks        []*models.Task
	Progress     tasklist.Progress
}

func (h *handlerImpl) filterLinks() []filterLink {
	keyword := h.opts.TaskKeyword
	if r, size := utf8.DecodeRuneInString(keyword); size > 0 {
		keyword = string(unicode.ToUpper(r)) + keyword[size:]
	}

	labels := map[string]string{
		tasklist.FilterNext7Days: "Next 7 days",
		tasklist.FilterAll:       "All tasks",
		tasklist.FilterPriority:  "Priority tasks",
		tasklist.FilterStarted:   "Get started",
		tasklist.FilterKeyword:   keyword + " tasks",
		tasklist.FilterCompleted: "Completed tasks",
	}

	links := make([]filterLink, len(tasklist.Filters))
	for i, key := range tasklist.Filters {
		links[i] = filterLink{Key: key, Label: labels[key]}
	}
	return links
}

// HandleDashboard falls back to all tasks for unknown filters.
func (h *handlerImpl) HandleDashboard(c *gin.Context) {
	viewer := currentViewer(c)

	filter := tasklist.Filter{
		Key:     c.Query("filter"),
		Keyword: h.opts.TaskKeyword,
	}
	if !tasklist.IsValidFilter(filter.Key) {
		filter.Key = tasklist.FilterAll
	}

	tasks, err := h.tasks.GetTasksByAssignee(c, viewer.ID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get tasks")
		h.renderError(c, http.StatusInternalServerError)
		return
	}

	filtered, err := tasklist.Apply(tasks, filter, time.Now())
	if err != nil {
		h.renderError(c, http.StatusBadRequest)
		return
	}

	c.HTML(http.StatusOK, "dashboard", dashboardPage{
		page:         page{Title: "Dashboard", Viewer: viewer},
		Filters:      h.filterLinks(),
		ActiveFilter: filter.Key,
		Tasks:        filtered,
		Progress:     tasklist.ComputeProgress(tasks),
	})
}

func (h *handlerImpl) HandleToggleTask(c *gin.Context) {
	viewer := currentViewer(c)

	_, err := h.tasks.ToggleTaskCompletion(c, viewer.ID, c.Param("id"))
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", c.Param("id")).
			Msg("failed to toggle task")
		if errors.Is(err, services.ErrTaskNotFound) || services.IsInvalidID(err) {
			h.renderError(c, http.StatusNotFound)
			return
		}
		h.renderError(c, http.StatusInternalServerError)
		return
	}

	location := "/dashboard"
	if filter := c.Query("filter"); tasklist.IsValidFilter(filter) {
		location += "?filter=" + url.QueryEscape(filter)
	}
	c.Redirect(http.StatusSeeOther, location)
}

type profilePage struct {
	page
	Profile     *models.Profile
	ManagerName string
	Error       string
}

func (h *handlerImpl) HandleProfile(c *gin.Context) {
	h.renderProfile(c, http.StatusOK, currentViewer(c), "")
}

func (h *handlerImpl) renderProfile(c *gin.Context, status int, profile *models.Profile, errMsg string) {
	data := profilePage{
		page:    page{Title: "Profile", Viewer: profile},
		Profile: profile,
		Error:   errMsg,
	}

	if profile.ManagerID != nil {
		manager, err := h.profiles.GetManager(c, profile.ID)
		switch {
		case err == nil:
			data.ManagerName = manager.DisplayName()
		case !errors.Is(err, services.ErrProfileNotFound):
			h.logger.Error().
				Err(err).
				Msg("failed to get manager")
		}
	}

	c.HTML(status, "profile", data)
}

func (h *handlerImpl) HandleUpdateProfile(c *gin.Context) {
	viewer := currentViewer(c)

	rawHireDate, hasHireDate := c.GetPostForm("hire_date")
	hireDate, err := parseFormDate(strings.TrimSpace(rawHireDate))
	if err != nil {
		h.renderProfile(c, http.StatusBadRequest, viewer, "Hire date must be a valid date.")
		return
	}

	profile, err := h.profiles.UpdateProfile(c, services.UpdateProfileParams{
		ID:            viewer.ID,
		FullName:      formField(c, "full_name"),
		Department:    formField(c, "department"),
		HireDate:      hireDate,
		ClearHireDate: hasHireDate && hireDate == nil,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to update profile")
		h.renderError(c, http.StatusInternalServerError)
		return
	}

	h.logger.Info().
		Str("user_id", profile.ID).
		Msg("updated profile")
	c.Redirect(http.StatusSeeOther, "/profile")
}

type reportSummary struct {
	Profile  *models.Profile
	Progress tasklist.Progress
}

type adminPage struct {
	page
	Reports  []reportSummary
	Assigned []*models.Task
}

func (h *handlerImpl) HandleAdmin(c *gin.Context) {
	viewer := currentViewer(c)

	reports, err := h.profiles.ListReports(c, viewer.ID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list reports")
		h.renderError(c, http.StatusInternalServerError)
		return
	}

	summaries := make([]reportSummary, len(reports))
	for i, report := range reports {
		tasks, err := h.tasks.GetTasksByAssignee(c, report.ID)
		if err != nil {
			h.logger.Error().
				Err(err).
				Str("employee_id", report.ID).
				Msg("failed to get report tasks")
			h.renderError(c, http.StatusInternalServerError)
			return
		}
		summaries[i] = reportSummary{
			Profile:  report,
			Progress: tasklist.ComputeProgress(tasks),
		}
	}

	assigned, err := h.tasks.GetTasksAssignedBy(c, viewer.ID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get assigned tasks")
		h.renderError(c, http.StatusInternalServerError)
		return
	}
	tasklist.SortByDueDate(assigned)

	c.HTML(http.StatusOK, "admin", adminPage{
		page:     page{Title: "Team", Viewer: viewer},
		Reports:  summaries,
		Assigned: assigned,
	})
}

type employeePage struct {
	page
	Employee  *models.Profile
	Tasks     []*models.Task
	Progress  tasklist.Progress
	Templates []*models.TaskTemplate
	Groups    []*models.TaskGroup
	Error     string
}

func (h *handlerImpl) HandleEmployee(c *gin.Context) {
	h.renderEmployee(c, http.StatusOK, "")
}

// renderEmployee redirects to /admin unless the employee reports to the
// viewer.
func (h *handlerImpl) renderEmployee(c *gin.Context, status int, errMsg string) {
	viewer := currentViewer(c)

	employee, err := h.profiles.GetReport(c, viewer.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotDirectReport) ||
			errors.Is(err, services.ErrProfileNotFound) ||
			services.IsInvalidID(err) {
			h.logger.Warn().
				Err(err).
				Str("employee_id", c.Param("id")).
				Msg("redirecting to admin")
			redirect(c, http.StatusFound, "/admin")
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to get report")
		h.renderError(c, http.StatusInternalServerError)
		return
	}

	data, err := h.employeeData(c, employee)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("employee_id", employee.ID).
			Msg("failed to load employee page")
		h.renderError(c, http.StatusInternalServerError)
		return
	}
	data.page = page{Title: employee.DisplayName(), Viewer: viewer}
	data.Error = errMsg

	c.HTML(status, "employee", data)
}

func (h *handlerImpl) employeeData(ctx context.Context, employee *models.Profile) (employeePage, error) {
	data := employeePage{Employee: employee}

	tasks, err := h.tasks.GetTasksByAssignee(ctx, employee.ID)
	if err != nil {
		return data, err
	}
	tasklist.SortByDueDate(tasks)
	data.Tasks = tasks
	data.Progress = tasklist.ComputeProgress(tasks)

	department := ""
	if employee.Department != nil {
		department = *employee.Department
	}

	data.Templates, err = h.templates.ListTemplates(ctx, department)
	if err != nil {
		return data, err
	}
	data.Groups, err = h.groups.ListGroups(ctx, department)
	if err != nil {
		return data, err
	}
	return data, nil
}

func (h *handlerImpl) HandleEmployeeCreateTask(c *gin.Context) {
	dueDate, err := parseFormDate(c.PostForm("due_date"))
	if err != nil {
		h.renderEmployee(c, http.StatusBadRequest, "Due date must be a valid date.")
		return
	}
	estimatedHours, err := parseFormInt(c.PostForm("estimated_hours"))
	if err != nil {
		h.renderEmployee(c, http.StatusBadRequest, "Estimated hours must be a whole number.")
		return
	}
	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		h.renderEmployee(c, http.StatusBadRequest, "Title is required.")
		return
	}

	_, err = h.tasks.CreateTask(c, services.CreateTaskParams{
		Title:          title,
		Description:    formString(c, "description"),
		EstimatedHours: estimatedHours,
		AssignedTo:     c.Param("id"),
		AssignedBy:     currentViewer(c).ID,
		DueDate:        dueDate,
	})
	h.finishAssignment(c, err)
}

func (h *handlerImpl) HandleEmployeeAssignTemplate(c *gin.Context) {
	dueDate, err := parseFormDate(c.PostForm("due_date"))
	if err != nil {
		h.renderEmployee(c, http.StatusBadRequest, "Due date must be a valid date.")
		return
	}

	_, err = h.tasks.AssignFromTemplate(c, services.AssignTemplateParams{
		TemplateID: c.PostForm("template_id"),
		AssignedTo: c.Param("id"),
		AssignedBy: currentViewer(c).ID,
		DueDate:    dueDate,
	})
	h.finishAssignment(c, err)
}

func (h *handlerImpl) HandleEmployeeAssignGroup(c *gin.Context) {
	dueDate, err := parseFormDate(c.PostForm("due_date"))
	if err != nil {
		h.renderEmployee(c, http.StatusBadRequest, "Due date must be a valid date.")
		return
	}

	_, err = h.groups.AssignGroup(c, services.AssignGroupParams{
		GroupID:    c.PostForm("group_id"),
		AssignedTo: c.Param("id"),
		AssignedBy: currentViewer(c).ID,
		DueDate:    dueDate,
	})
	h.finishAssignment(c, err)
}

func (h *handlerImpl) finishAssignment(c *gin.Context, err error) {
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, "/employee/"+url.PathEscape(c.Param("id")))
	case errors.Is(err, services.ErrNotDirectReport):
		redirect(c, http.StatusSeeOther, "/admin")
	case services.IsInvalidID(err):
		h.renderError(c, http.StatusNotFound)
	case errors.Is(err, services.ErrTemplateNotFound):
		h.renderEmployee(c, http.StatusNotFound, "That template no longer exists.")
	case errors.Is(err, services.ErrGroupNotFound):
		h.renderEmployee(c, http.StatusNotFound, "That task group no longer exists.")
	case errors.Is(err, services.ErrGroupEmpty):
		h.renderEmployee(c, http.StatusBadRequest, "That task group has no templates.")
	default:
		h.logger.Error().
			Err(err).
			Str("employee_id", c.Param("id")).
			Msg("failed to assign tasks")
		h.renderError(c, http.StatusInternalServerError)
	}
}

type connectionTestPage struct {
	page
	DatabaseErr string
	ChatEnabled bool
}

func (h *handlerImpl) HandleConnectionTest(c *gin.Context) {
	data := connectionTestPage{
		page:        page{Title: "Connection test", Viewer: h.optionalViewer(c)},
		ChatEnabled: h.opts.ChatEnabled,
	}

	ctx, cancel := context.WithTimeout(c, pingTimeout)
	defer cancel()

	err := h.pinger.Ping(ctx)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to ping database")
		data.DatabaseErr = err.Error()
	}

	c.HTML(http.StatusOK, "connection-test", data)
}

type testsPage struct {
	page
	Templates []*models.TaskTemplate
	Groups    []*models.TaskGroup
	Error     string
}

func (h *handlerImpl) HandleTests(c *gin.Context) {
	h.renderTests(c, http.StatusOK, "")
}

func (h *handlerImpl) renderTests(c *gin.Context, status int, errMsg string) {
	viewer := currentViewer(c)

	templates, err := h.templates.ListTemplates(c, "")
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list templates")
		h.renderError(c, http.StatusInternalServerError)
		return
	}
	groups, err := h.groups.ListGroups(c, "")
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list groups")
		h.renderError(c, http.StatusInternalServerError)
		return
	}

	c.HTML(status, "tests", testsPage{
		page:      page{Title: "Templates", Viewer: viewer},
		Templates: templates,
		Groups:    groups,
		Error:     errMsg,
	})
}

func (h *handlerImpl) HandleTestsCreateTemplate(c *gin.Context) {
	viewer := currentViewer(c)
	if !viewer.IsManager() {
		h.renderError(c, http.StatusForbidden)
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		h.renderTests(c, http.StatusBadRequest, "Title is required.")
		return
	}
	estimatedHours, err := parseFormInt(c.PostForm("estimated_hours"))
	if err != nil {
		h.renderTests(c, http.StatusBadRequest, "Estimated hours must be a whole number.")
		return
	}

	_, err = h.templates.CreateTemplate(c, services.CreateTemplateParams{
		Title:          title,
		Description:    formString(c, "description"),
		EstimatedHours: estimatedHours,
		Department:     formString(c, "department"),
		CreatedBy:      viewer.ID,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create template")
		h.renderError(c, http.StatusInternalServerError)
		return
	}
	c.Redirect(http.StatusSeeOther, "/tests")
}

// formString returns nil for blank fields.
func formString(c *gin.Context, key string) *string {
	value := strings.TrimSpace(c.PostForm(key))
	if value == "" {
		return nil
	}
	return &value
}

// formField returns the trimmed value, empty when the field was cleared,
// or nil when the form doesn't carry the field at all.
func formField(c *gin.Context, key string) *string {
	value, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	value = strings.TrimSpace(value)
	return &value
}

func parseFormDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseFormInt(value string) (*int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return nil, errors.New("invalid number")
	}
	return &n, nil
}
