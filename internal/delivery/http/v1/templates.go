package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/launchpad/internal/services"
)

func (h *handlerImpl) HandleGetTemplates(c *gin.Context) {
	templates, err := h.templates.ListTemplates(c, c.Query("department"))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list templates")
		abortServiceError(c, err)
		return
	}

	response := make([]templateResponse, len(templates))
	for i, template := range templates {
		response[i] = newTemplateResponse(template)
	}
	c.JSON(http.StatusOK, response)
}

type createTemplateRequest struct {
	Title          string  `json:"title" binding:"required,max=255"`
	Description    *string `json:"description"`
	EstimatedHours *int    `json:"estimated_hours" binding:"omitempty,min=0"`
	Department     *string `json:"department" binding:"omitempty,max=255"`
}

func (h *handlerImpl) HandleCreateTemplate(c *gin.Context) {
	var req createTemplateRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	template, err := h.templates.CreateTemplate(c, services.CreateTemplateParams{
		Title:          req.Title,
		Description:    req.Description,
		EstimatedHours: req.EstimatedHours,
		Department:     req.Department,
		CreatedBy:      currentUserID(c),
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create template")
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTemplateResponse(template))
}
