package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/launchpad/internal/config"
)

const serviceName = "launchpad"

var globalLogger zerolog.Logger

func InitDefaultLogger() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimestampFieldName = "timestamp"

	globalLogger = zerolog.New(os.Stdout).
		With().
		Timestamp().
		Caller().
		Str("service", serviceName).
		Int("pid", os.Getpid()).
		Logger()

	globalLogger.Debug().Msg("initialized default logger")
}

func MustInitApplicationLogger() {
	cfg := config.Global()

	level, w, err := loggerOutput(cfg.Env, os.Stdout)
	if err != nil {
		globalLogger.Error().
			Str("env", cfg.Env).
			Msg("unknown env")
		panic(err)
	}

	zerolog.SetGlobalLevel(level)
	globalLogger = globalLogger.Output(w)
	globalLogger.Info().
		Str("level", level.String()).
		Msg("initialized application logger")
}

// loggerOutput picks the level and format for env. Only the local env
// writes human-readable output.
func loggerOutput(env string, out io.Writer) (zerolog.Level, io.Writer, error) {
	switch env {
	case config.EnvDev:
		return zerolog.DebugLevel, out, nil
	case config.EnvProd:
		return zerolog.InfoLevel, out, nil
	case config.EnvLocal:
		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = out
		return zerolog.TraceLevel, consoleWriter, nil
	default:
		return zerolog.NoLevel, nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Logger returns the process-wide logger.
func Logger() zerolog.Logger {
	return globalLogger
}

func componentLogger(component string) zerolog.Logger {
	return globalLogger.With().
		Str("component", component).
		Logger()
}
