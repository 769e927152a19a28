package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/launchpad/internal/llm"
)

type completer interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

type chatServiceImpl struct {
	logger       zerolog.Logger
	completer    completer
	organization string
}

// NewChatService returns a ChatService answering through c. A nil c
// yields a service whose Ask always fails with ErrChatDisabled.
func NewChatService(
	logger zerolog.Logger,
	c completer,
	organization string,
) ChatService {
	return &chatServiceImpl{
		logger:       logger,
		completer:    c,
		organization: organization,
	}
}

func (s *chatServiceImpl) Ask(ctx context.Context, message, topic string) (string, error) {
	if s.completer == nil {
		return "", ErrChatDisabled
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}

	reply, err := s.completer.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: SystemPrompt(s.organization, strings.TrimSpace(topic))},
		{Role: llm.RoleUser, Content: message},
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("topic", topic).
			Msg("failed to complete chat message")
		return "", err
	}

	s.logger.Debug().
		Str("topic", topic).
		Int("reply_length", len(reply)).
		Msg("completed chat message")
	return reply, nil
}

// SystemPrompt scopes the assistant to the organization and topic once a
// topic is given.
func SystemPrompt(organization, topic string) string {
	if topic == "" {
		return "You are a helpful onboarding assistant."
	}
	if organization == "" {
		return fmt.Sprintf("You are a helpful onboarding assistant. This conversation is specifically for: %s.", topic)
	}
	return fmt.Sprintf(
		"You are a helpful onboarding assistant for %s specifically. This conversation is specifically for: %s.",
		organization,
		topic,
	)
}
