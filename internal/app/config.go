package app

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/adanyl0v/launchpad/internal/config"
)

// MustReadEnv reads the configuration from envFile, or from the process
// environment when envFile is empty.
func MustReadEnv(envFile string) {
	var reader config.Reader = config.NewEnvReader()
	if envFile != "" {
		reader = config.NewFileReader(envFile)
	}

	cfg, err := reader.Read()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to read env")
		panic(err)
	}
	globalLogger.Info().
		Str("env", cfg.Env).
		Bool("chat_enabled", cfg.Chat.APIKey != "").
		Msg("read env")

	config.SetGlobal(cfg)
}
