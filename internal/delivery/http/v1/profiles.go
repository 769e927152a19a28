package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/launchpad/internal/services"
)

func (h *handlerImpl) HandleGetProfile(c *gin.Context) {
	userID := currentUserID(c)

	profile, err := h.profiles.GetProfile(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get profile")
		if errors.Is(err, services.ErrProfileNotFound) {
			abort(c, newNotFoundError(services.ErrProfileNotFound.Error()))
			return
		}
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := newProfileResponse(profile)
	if profile.ManagerID != nil {
		manager, err := h.profiles.GetManager(c, userID)
		if err != nil && !errors.Is(err, services.ErrProfileNotFound) {
			h.logger.Error().
				Err(err).
				Msg("failed to get manager")
			abort(c, newStatusTextError(http.StatusInternalServerError))
			return
		}
		if manager != nil {
			name := manager.DisplayName()
			response.ManagerName = &name
		}
	}

	c.JSON(http.StatusOK, response)
}

// updateProfileRequest leaves omitted fields unchanged. Empty strings
// clear the field.
type updateProfileRequest struct {
	FullName   *string `json:"full_name" binding:"omitempty,max=255"`
	Department *string `json:"department" binding:"omitempty,max=255"`
	HireDate   *string `json:"hire_date"`
}

func (r updateProfileRequest) params(id string) (services.UpdateProfileParams, error) {
	hireDate, err := parseDate(r.HireDate)
	if err != nil {
		return services.UpdateProfileParams{}, err
	}
	return services.UpdateProfileParams{
		ID:            id,
		FullName:      r.FullName,
		Department:    r.Department,
		HireDate:      hireDate,
		ClearHireDate: r.HireDate != nil && *r.HireDate == "",
	}, nil
}

func (h *handlerImpl) HandleUpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	params, err := req.params(currentUserID(c))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to parse hire date")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	profile, err := h.profiles.UpdateProfile(c, params)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to update profile")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(profile))
}

type updateMemberProfileRequest struct {
	updateProfileRequest
	Role      *string `json:"role" binding:"omitempty,oneof=manager employee 'individual contributor' hr"`
	ManagerID *string `json:"manager_id"`
}

// HandleUpdateMemberProfile lets HR set anyone's role and manager. An
// empty manager_id removes the manager.
func (h *handlerImpl) HandleUpdateMemberProfile(c *gin.Context) {
	var req updateMemberProfileRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	params, err := req.params(c.Param("id"))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to parse hire date")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}
	params.Role = req.Role
	params.ManagerID = req.ManagerID

	profile, err := h.profiles.UpdateProfile(c, params)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("profile_id", c.Param("id")).
			Msg("failed to update member profile")
		abortServiceError(c, err)
		return
	}

	h.logger.Info().
		Str("profile_id", profile.ID).
		Str("role", profile.Role).
		Str("updated_by", currentUserID(c)).
		Msg("updated member profile")
	c.JSON(http.StatusOK, newProfileResponse(profile))
}
