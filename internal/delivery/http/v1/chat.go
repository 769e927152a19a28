package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/launchpad/internal/llm"
	"github.com/adanyl0v/launchpad/internal/services"
)

type chatRequest struct {
	Message string `json:"message"`
	Topic   string `json:"topic"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// HandleChat proxies a message to the onboarding assistant. Provider
// failures are passed through with the provider's status and body.
func (h *handlerImpl) HandleChat(c *gin.Context) {
	var req chatRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	reply, err := h.chat.Ask(c, req.Message, req.Topic)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("topic", req.Topic).
			Msg("failed to ask assistant")

		var statusErr *llm.StatusError
		switch {
		case errors.As(err, &statusErr):
			abort(c, newAPIError(statusErr.StatusCode, statusErr.Body))
		case errors.Is(err, services.ErrChatDisabled):
			abort(c, newAPIError(http.StatusInternalServerError, "Missing OpenRouter API key."))
		case errors.Is(err, services.ErrEmptyMessage):
			abort(c, newBadRequestError(services.ErrEmptyMessage.Error()))
		default:
			abort(c, newStatusTextError(http.StatusBadGateway))
		}
		return
	}

	c.JSON(http.StatusOK, chatResponse{Reply: reply})
}
