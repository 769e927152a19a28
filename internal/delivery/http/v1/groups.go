package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/launchpad/internal/services"
)

func (h *handlerImpl) HandleGetGroups(c *gin.Context) {
	groups, err := h.groups.ListGroups(c, c.Query("department"))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list groups")
		abortServiceError(c, err)
		return
	}

	response := make([]groupResponse, len(groups))
	for i, group := range groups {
		response[i] = newGroupResponse(group)
	}
	c.JSON(http.StatusOK, response)
}

type createGroupRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
	Department  *string `json:"department" binding:"omitempty,max=255"`
}

func (h *handlerImpl) HandleCreateGroup(c *gin.Context) {
	var req createGroupRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	group, err := h.groups.CreateGroup(c, services.CreateGroupParams{
		Name:        req.Name,
		Description: req.Description,
		Department:  req.Department,
		CreatedBy:   currentUserID(c),
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create group")
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newGroupResponse(group))
}

type addGroupTemplateRequest struct {
	TemplateID string `json:"template_id" binding:"required"`
	OrderIndex int    `json:"order_index" binding:"min=0"`
}

func (h *handlerImpl) HandleAddGroupTemplate(c *gin.Context) {
	var req addGroupTemplateRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	err = h.groups.AddTemplateToGroup(c, c.Param("id"), req.TemplateID, req.OrderIndex)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("group_id", c.Param("id")).
			Msg("failed to add template to group")
		abortServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
