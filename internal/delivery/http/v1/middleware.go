package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/launchpad/internal/delivery/http/httpauth"
	"github.com/adanyl0v/launchpad/internal/models"
	"github.com/adanyl0v/launchpad/internal/services"
)

const profileCtxKey = "profile"

func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	_, err := h.authenticator.Authenticate(c)
	if err != nil {
		if errors.Is(err, httpauth.ErrUnauthenticated) {
			h.logger.Warn().
				Err(err).
				Msg("unauthenticated request")
			abort(c, newStatusTextError(http.StatusUnauthorized))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to authenticate request")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}
	c.Next()
}

// HandleManagerMiddleware must run after HandleAuthMiddleware. It stores
// the manager's profile in the context.
func (h *handlerImpl) HandleManagerMiddleware(c *gin.Context) {
	h.requireRole(c, models.RoleManager, errManagerOnly)
}

// HandleHRMiddleware must run after HandleAuthMiddleware.
func (h *handlerImpl) HandleHRMiddleware(c *gin.Context) {
	h.requireRole(c, models.RoleHR, errHROnly)
}

func (h *handlerImpl) requireRole(c *gin.Context, role string, denied error) {
	userID, _ := httpauth.UserID(c)

	profile, err := h.profiles.GetProfile(c, userID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			abort(c, newUnauthorizedError(services.ErrProfileNotFound.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to get profile")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	if profile.Role != role {
		h.logger.Warn().
			Str("user_id", userID).
			Str("role", profile.Role).
			Str("required_role", role).
			Msg("role required")
		abort(c, newForbiddenError(denied.Error()))
		return
	}

	c.Set(profileCtxKey, profile)
	c.Next()
}

func currentUserID(c *gin.Context) string {
	userID, _ := httpauth.UserID(c)
	return userID
}

func currentProfile(c *gin.Context) *models.Profile {
	value, _ := c.Get(profileCtxKey)
	profile, _ := value.(*models.Profile)
	return profile
}
