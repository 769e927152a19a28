package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/launchpad/internal/delivery/http/httpauth"
	"github.com/adanyl0v/launchpad/internal/models"
	"github.com/adanyl0v/launchpad/internal/services"
)

const viewerCtxKey = "viewer"

// HandleViewerMiddleware sends anonymous visitors to the login page and
// stores the signed-in profile in the context.
func (h *handlerImpl) HandleViewerMiddleware(c *gin.Context) {
	viewer, err := h.loadViewer(c)
	if err != nil {
		if errors.Is(err, httpauth.ErrUnauthenticated) || errors.Is(err, services.ErrProfileNotFound) {
			h.logger.Debug().
				Err(err).
				Str("path", c.Request.URL.Path).
				Msg("redirecting to login")
			h.authenticator.ClearSessionCookies(c)
			redirect(c, http.StatusFound, "/login")
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to load viewer")
		h.renderError(c, http.StatusInternalServerError)
		return
	}

	c.Set(viewerCtxKey, viewer)
	c.Next()
}

// HandleManagerMiddleware must run after HandleViewerMiddleware.
func (h *handlerImpl) HandleManagerMiddleware(c *gin.Context) {
	viewer := currentViewer(c)
	if viewer == nil || !viewer.IsManager() {
		redirect(c, http.StatusFound, "/dashboard")
		return
	}
	c.Next()
}

func (h *handlerImpl) loadViewer(c *gin.Context) (*models.Profile, error) {
	session, err := h.authenticator.Authenticate(c)
	if err != nil {
		return nil, err
	}
	return h.profiles.GetProfile(c, session.UserID)
}

// optionalViewer returns nil for anonymous visitors.
func (h *handlerImpl) optionalViewer(c *gin.Context) *models.Profile {
	viewer, err := h.loadViewer(c)
	if err != nil {
		return nil
	}
	return viewer
}

func currentViewer(c *gin.Context) *models.Profile {
	value, _ := c.Get(viewerCtxKey)
	viewer, _ := value.(*models.Profile)
	return viewer
}

func redirect(c *gin.Context, code int, location string) {
	c.Redirect(code, location)
	c.Abort()
}
