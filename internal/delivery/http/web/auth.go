package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/launchpad/internal/delivery/http/httpauth"
	"github.com/adanyl0v/launchpad/internal/services"
)

type loginPage struct {
	page
	Email string
	Error string
}

type loginForm struct {
	Email    string `form:"email" binding:"required,email,max=255"`
	Password string `form:"password" binding:"required,max=255"`
}

func (h *handlerImpl) HandleLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login", loginPage{page: page{Title: "Log in"}})
}

// HandleLogin re-renders the form on failure; only a successful login
// redirects.
func (h *handlerImpl) HandleLogin(c *gin.Context) {
	data := loginPage{page: page{Title: "Log in"}}

	var form loginForm
	err := c.ShouldBind(&form)
	if err != nil {
		data.Email = c.PostForm("email")
		data.Error = "Enter a valid email and password."
		c.HTML(http.StatusBadRequest, "login", data)
		return
	}
	data.Email = form.Email

	fingerprint, err := httpauth.Fingerprint(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to generate fingerprint")
		h.renderError(c, http.StatusInternalServerError)
		return
	}

	result, err := h.auth.Login(c, services.LoginParams{
		Email:       form.Email,
		Password:    form.Password,
		Fingerprint: fingerprint,
	})
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) || errors.Is(err, services.ErrUserPasswordMismatch) {
			h.logger.Warn().
				Err(err).
				Str("email", form.Email).
				Msg("failed login attempt")
			data.Error = "Invalid email or password."
			c.HTML(http.StatusUnauthorized, "login", data)
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to login")
		h.renderError(c, http.StatusInternalServerError)
		return
	}

	h.authenticator.SetSessionCookies(c, result)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

type registerPage struct {
	page
	Email      string
	FullName   string
	Department string
	Error      string
}

type registerForm struct {
	Email           string `form:"email" binding:"required,email,max=255"`
	Password        string `form:"password" binding:"required,min=6,max=255"`
	ConfirmPassword string `form:"confirm_password"`
	FullName        string `form:"full_name" binding:"max=255"`
	Department      string `form:"department" binding:"max=255"`
}

func (h *handlerImpl) HandleRegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register", registerPage{
		page: page{Title: "Register"},
	})
}

func (h *handlerImpl) HandleRegister(c *gin.Context) {
	data := registerPage{
		page:       page{Title: "Register"},
		Email:      strings.TrimSpace(c.PostForm("email")),
		FullName:   c.PostForm("full_name"),
		Department: c.PostForm("department"),
	}

	var form registerForm
	err := c.ShouldBind(&form)
	if err != nil {
		data.Error = "Enter a valid email and a password of at least 6 characters."
		c.HTML(http.StatusBadRequest, "register", data)
		return
	}
	if form.Password != form.ConfirmPassword {
		data.Error = "Passwords do not match."
		c.HTML(http.StatusBadRequest, "register", data)
		return
	}

	fingerprint, err := httpauth.Fingerprint(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to generate fingerprint")
		h.renderError(c, http.StatusInternalServerError)
		return
	}

	result, err := h.auth.Register(c, services.RegisterParams{
		LoginParams: services.LoginParams{
			Email:       form.Email,
			Password:    form.Password,
			Fingerprint: fingerprint,
		},
		FullName:   form.FullName,
		Department: form.Department,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserAlreadyExists):
			data.Error = "An account with this email already exists."
			c.HTML(http.StatusConflict, "register", data)
		default:
			h.logger.Error().
				Err(err).
				Msg("failed to register user")
			h.renderError(c, http.StatusInternalServerError)
		}
		return
	}

	h.authenticator.SetSessionCookies(c, result)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *handlerImpl) HandleLogout(c *gin.Context) {
	if viewer := h.optionalViewer(c); viewer != nil {
		err := h.auth.Logout(c, viewer.ID)
		if err != nil {
			h.logger.Error().
				Err(err).
				Msg("failed to logout")
		}
	}

	h.authenticator.ClearSessionCookies(c)
	c.Redirect(http.StatusSeeOther, "/login")
}
