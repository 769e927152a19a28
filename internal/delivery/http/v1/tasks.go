package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/launchpad/internal/services"
	"github.com/adanyl0v/launchpad/internal/tasklist"
)

type getTasksResponse struct {
	Filter   string           `json:"filter"`
	Tasks    []taskResponse   `json:"tasks"`
	Progress progressResponse `json:"progress"`
}

// HandleGetTasks lists the caller's tasks through one of the dashboard
// filters. Progress always covers every assigned task.
func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	filter := tasklist.Filter{
		Key:     c.Query("filter"),
		Keyword: c.Query("q"),
	}
	if filter.Key == "" {
		filter.Key = tasklist.FilterAll
	}
	if filter.Keyword == "" {
		filter.Keyword = h.taskKeyword
	}
	if !tasklist.IsValidFilter(filter.Key) {
		h.logger.Error().
			Str("filter", filter.Key).
			Msg("unknown filter")
		abort(c, newBadRequestError(tasklist.ErrUnknownFilter.Error()))
		return
	}

	tasks, err := h.tasks.GetTasksByAssignee(c, currentUserID(c))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get tasks")
		abortServiceError(c, err)
		return
	}

	filtered, err := tasklist.Apply(tasks, filter, time.Now())
	if err != nil {
		abortServiceError(c, err)
		return
	}

	h.logger.Debug().
		Str("filter", filter.Key).
		Int("count", len(filtered)).
		Msg("fetched tasks")
	c.JSON(http.StatusOK, getTasksResponse{
		Filter:   filter.Key,
		Tasks:    newTaskResponses(filtered),
		Progress: newProgressResponse(tasklist.ComputeProgress(tasks)),
	})
}

func (h *handlerImpl) HandleToggleTask(c *gin.Context) {
	task, err := h.tasks.ToggleTaskCompletion(c, currentUserID(c), c.Param("id"))
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", c.Param("id")).
			Msg("failed to toggle task")
		abortServiceError(c, err)
		return
	}

	h.logger.Info().
		Str("task_id", task.ID).
		Str("status", task.Status).
		Msg("toggled task")
	c.JSON(http.StatusOK, newTaskResponse(task))
}

type setTaskStatusRequest struct {
	Status string  `json:"status" binding:"required,oneof=pending in_progress completed skipped"`
	Notes  *string `json:"notes" binding:"omitempty,max=2000"`
}

func (h *handlerImpl) HandleSetTaskStatus(c *gin.Context) {
	var req setTaskStatusRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.UpdateTaskStatus(c, services.UpdateTaskStatusParams{
		ID:     c.Param("id"),
		UserID: currentUserID(c),
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", c.Param("id")).
			Msg("failed to update task status")
		abortServiceError(c, err)
		return
	}

	h.logger.Info().
		Str("task_id", task.ID).
		Str("status", task.Status).
		Msg("updated task status")
	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	err := h.tasks.DeleteTask(c, services.DeleteTaskParams{
		ID:     c.Param("id"),
		UserID: currentUserID(c),
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", c.Param("id")).
			Msg("failed to delete task")
		abortServiceError(c, err)
		return
	}

	h.logger.Info().
		Str("task_id", c.Param("id")).
		Msg("deleted task")
	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) HandleGetTaskComments(c *gin.Context) {
	comments, err := h.comments.ListComments(c, currentUserID(c), c.Param("id"))
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", c.Param("id")).
			Msg("failed to list comments")
		abortServiceError(c, err)
		return
	}

	response := make([]commentResponse, len(comments))
	for i, comment := range comments {
		response[i] = newCommentResponse(comment)
	}
	c.JSON(http.StatusOK, response)
}

type addTaskCommentRequest struct {
	Comment string `json:"comment" binding:"required,max=2000"`
}

func (h *handlerImpl) HandleAddTaskComment(c *gin.Context) {
	var req addTaskCommentRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	comment, err := h.comments.AddComment(c, currentUserID(c), c.Param("id"), req.Comment)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", c.Param("id")).
			Msg("failed to add comment")
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCommentResponse(comment))
}
