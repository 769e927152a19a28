package app

import (
	"context"
	"time"

	"github.com/adanyl0v/launchpad/internal/config"
	"github.com/adanyl0v/launchpad/internal/llm"
	"github.com/adanyl0v/launchpad/internal/services"
)

// Services is the set of services backed by the global postgres pool.
type Services struct {
	Auth      services.AuthService
	Sessions  services.SessionService
	Profiles  services.ProfileService
	Tasks     services.TaskService
	Templates services.TemplateService
	Groups    services.GroupService
	Comments  services.CommentService
	Chat      services.ChatService
}

// NewServices must be called after MustConnectPostgres.
func NewServices() Services {
	cfg := config.Global()
	jwtCfg := cfg.JWT

	templates := services.NewTemplateService(componentLogger("templates"), globalPostgresPool)
	svc := Services{
		Auth: services.NewAuthService(
			componentLogger("auth"),
			globalPostgresPool,
			jwtCfg.Issuer,
			[]byte(jwtCfg.SigningKey),
			jwtCfg.AccessTokenTTL,
			jwtCfg.RefreshTokenTTL,
		),
		Sessions:  services.NewSessionService(componentLogger("sessions"), globalPostgresPool),
		Profiles:  services.NewProfileService(componentLogger("profiles"), globalPostgresPool),
		Tasks:     services.NewTaskService(componentLogger("tasks"), globalPostgresPool, templates),
		Templates: templates,
		Groups:    services.NewGroupService(componentLogger("groups"), globalPostgresPool),
		Comments:  services.NewCommentService(componentLogger("comments"), globalPostgresPool),
	}

	chatCfg := cfg.Chat
	if chatCfg.APIKey == "" {
		globalLogger.Warn().Msg("OPENROUTER_API_KEY is not set, chat assistant disabled")
		svc.Chat = services.NewChatService(componentLogger("chat"), nil, chatCfg.Organization)
	} else {
		client := llm.NewClient(llm.Options{
			APIKey:  chatCfg.APIKey,
			BaseURL: chatCfg.BaseURL,
			Model:   chatCfg.Model,
			Timeout: chatCfg.Timeout,
		})
		svc.Chat = services.NewChatService(componentLogger("chat"), client, chatCfg.Organization)
	}

	return svc
}

// PruneExpiredSessions deletes sessions whose refresh tokens have expired.
// Failures are logged and otherwise ignored.
func PruneExpiredSessions(ctx context.Context, sessions services.SessionService) {
	_, err := sessions.DeleteExpiredSessions(ctx, time.Now())
	if err != nil {
		globalLogger.Warn().
			Err(err).
			Msg("failed to prune expired sessions")
	}
}
