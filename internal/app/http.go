package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/launchpad/internal/config"
	"github.com/adanyl0v/launchpad/internal/delivery/http/httpauth"
	"github.com/adanyl0v/launchpad/internal/delivery/http/v1"
	"github.com/adanyl0v/launchpad/internal/delivery/http/web"
)

func MustListenAndServeHTTP(svc Services) {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	mustRegisterRoutes(router, svc)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func mustRegisterRoutes(router *gin.Engine, svc Services) {
	cfg := config.Global()

	tmpl, err := web.LoadTemplates()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to parse page templates")
		panic(err)
	}
	router.SetHTMLTemplate(tmpl)

	httpLogger := componentLogger("http")
	authenticator := httpauth.NewAuthenticator(httpLogger, svc.Auth, svc.Sessions, cfg.HTTP.SecureCookies)

	v1.RegisterRoutes(router, v1.New(httpLogger, authenticator, v1.Services{
		Auth:      svc.Auth,
		Sessions:  svc.Sessions,
		Profiles:  svc.Profiles,
		Tasks:     svc.Tasks,
		Templates: svc.Templates,
		Groups:    svc.Groups,
		Comments:  svc.Comments,
		Chat:      svc.Chat,
	}, cfg.Tasks.Keyword))

	web.RegisterRoutes(router, web.New(httpLogger, authenticator, globalPostgresPool, web.Services{
		Auth:      svc.Auth,
		Profiles:  svc.Profiles,
		Tasks:     svc.Tasks,
		Templates: svc.Templates,
		Groups:    svc.Groups,
	}, web.Options{
		Organization: cfg.Chat.Organization,
		TaskKeyword:  cfg.Tasks.Keyword,
		ChatEnabled:  cfg.Chat.APIKey != "",
	}))
}
