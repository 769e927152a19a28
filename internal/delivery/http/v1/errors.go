package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/launchpad/internal/services"
	"github.com/adanyl0v/launchpad/internal/tasklist"
)

var (
	errInvalidRequestBody      = errors.New("invalid request body")
	errInvalidQuery            = errors.New("invalid query")
	errMandatoryCookieNotFound = errors.New("mandatory cookie not found")
	errManagerOnly             = errors.New("only managers can access this resource")
	errHROnly                  = errors.New("only hr can access this resource")
	errResourceNotFound        = errors.New("resource not found")
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newUnauthorizedError(message string) apiError {
	return newAPIError(http.StatusUnauthorized, message)
}

func newForbiddenError(message string) apiError {
	return newAPIError(http.StatusForbidden, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

func newConflictError(message string) apiError {
	return newAPIError(http.StatusConflict, message)
}

// abortServiceError maps service sentinels to API errors. Anything
// unknown becomes a 500.
func abortServiceError(c *gin.Context, err error) {
	switch {
	case services.IsInvalidID(err):
		abort(c, newNotFoundError(errResourceNotFound.Error()))
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrTemplateNotFound),
		errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrProfileNotFound):
		abort(c, newNotFoundError(err.Error()))
	case errors.Is(err, services.ErrNotDirectReport):
		abort(c, newForbiddenError(err.Error()))
	case errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrNotManager),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrGroupEmpty),
		errors.Is(err, services.ErrEmptyComment),
		errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, tasklist.ErrUnknownFilter):
		abort(c, newBadRequestError(err.Error()))
	default:
		abort(c, newStatusTextError(http.StatusInternalServerError))
	}
}
