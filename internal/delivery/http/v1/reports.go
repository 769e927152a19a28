package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/launchpad/internal/services"
	"github.com/adanyl0v/launchpad/internal/tasklist"
)

type reportResponse struct {
	profileResponse
	Progress progressResponse `json:"progress"`
}

// HandleGetReports lists the manager's direct reports with their
// onboarding progress.
func (h *handlerImpl) HandleGetReports(c *gin.Context) {
	manager := currentProfile(c)

	reports, err := h.profiles.ListReports(c, manager.ID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list reports")
		abortServiceError(c, err)
		return
	}

	response := make([]reportResponse, len(reports))
	for i, report := range reports {
		tasks, err := h.tasks.GetTasksByAssignee(c, report.ID)
		if err != nil {
			h.logger.Error().
				Err(err).
				Str("employee_id", report.ID).
				Msg("failed to get report tasks")
			abortServiceError(c, err)
			return
		}
		response[i] = reportResponse{
			profileResponse: newProfileResponse(report),
			Progress:        newProgressResponse(tasklist.ComputeProgress(tasks)),
		}
	}
	c.JSON(http.StatusOK, response)
}

type reportTasksResponse struct {
	Employee profileResponse  `json:"employee"`
	Tasks    []taskResponse   `json:"tasks"`
	Progress progressResponse `json:"progress"`
}

func (h *handlerImpl) HandleGetReportTasks(c *gin.Context) {
	manager := currentProfile(c)

	employee, err := h.profiles.GetReport(c, manager.ID, c.Param("id"))
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("employee_id", c.Param("id")).
			Msg("failed to get report")
		abortServiceError(c, err)
		return
	}

	tasks, err := h.tasks.GetTasksByAssignee(c, employee.ID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("employee_id", employee.ID).
			Msg("failed to get report tasks")
		abortServiceError(c, err)
		return
	}
	tasklist.SortByDueDate(tasks)

	c.JSON(http.StatusOK, reportTasksResponse{
		Employee: newProfileResponse(employee),
		Tasks:    newTaskResponses(tasks),
		Progress: newProgressResponse(tasklist.ComputeProgress(tasks)),
	})
}

type createReportTaskRequest struct {
	Title          string  `json:"title" binding:"required,max=255"`
	Description    *string `json:"description"`
	EstimatedHours *int    `json:"estimated_hours" binding:"omitempty,min=0"`
	DueDate        *string `json:"due_date"`
}

func (h *handlerImpl) HandleCreateReportTask(c *gin.Context) {
	var req createReportTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.CreateTask(c, services.CreateTaskParams{
		Title:          req.Title,
		Description:    req.Description,
		EstimatedHours: req.EstimatedHours,
		AssignedTo:     c.Param("id"),
		AssignedBy:     currentUserID(c),
		DueDate:        dueDate,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("employee_id", c.Param("id")).
			Msg("failed to create task")
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTaskResponse(task))
}

type assignRequest struct {
	DueDate *string `json:"due_date"`
}

// bindAssignRequest accepts an empty body.
func (h *handlerImpl) bindAssignRequest(c *gin.Context) (assignRequest, bool) {
	var req assignRequest
	if c.Request.ContentLength != 0 {
		err := c.ShouldBindJSON(&req)
		if err != nil {
			h.logger.Error().
				Err(err).
				Msg("failed to bind json")
			abort(c, newBadRequestError(errInvalidRequestBody.Error()))
			return req, false
		}
	}
	return req, true
}

func (h *handlerImpl) HandleAssignTemplate(c *gin.Context) {
	req, ok := h.bindAssignRequest(c)
	if !ok {
		return
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.AssignFromTemplate(c, services.AssignTemplateParams{
		TemplateID: c.Param("templateID"),
		AssignedTo: c.Param("id"),
		AssignedBy: currentUserID(c),
		DueDate:    dueDate,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("employee_id", c.Param("id")).
			Str("template_id", c.Param("templateID")).
			Msg("failed to assign template")
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (h *handlerImpl) HandleAssignGroup(c *gin.Context) {
	req, ok := h.bindAssignRequest(c)
	if !ok {
		return
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	tasks, err := h.groups.AssignGroup(c, services.AssignGroupParams{
		GroupID:    c.Param("groupID"),
		AssignedTo: c.Param("id"),
		AssignedBy: currentUserID(c),
		DueDate:    dueDate,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("employee_id", c.Param("id")).
			Str("group_id", c.Param("groupID")).
			Msg("failed to assign group")
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTaskResponses(tasks))
}

func (h *handlerImpl) HandleGetAssignedTasks(c *gin.Context) {
	tasks, err := h.tasks.GetTasksAssignedBy(c, currentUserID(c))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get assigned tasks")
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponses(tasks))
}
