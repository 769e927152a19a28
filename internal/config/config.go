package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env      string `env:"ENV" env-required:"true"`
	HTTP     HTTPConfig
	Postgres PostgresConfig
	JWT      JWTConfig
	Chat     ChatConfig
	Tasks    TasksConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	SecureCookies   bool          `env:"HTTP_SECURE_COOKIES" env-default:"false"`
}

type PostgresConfig struct {
	Host           string        `env:"POSTGRES_HOST" env-required:"true"`
	Port           int           `env:"POSTGRES_PORT" env-default:"5432"`
	Username       string        `env:"POSTGRES_USERNAME" env-required:"true"`
	Password       string        `env:"POSTGRES_PASSWORD" env-required:"true"`
	Database       string        `env:"POSTGRES_DATABASE" env-required:"true"`
	SSLMode        string        `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`
}

type JWTConfig struct {
	Issuer          string        `env:"JWT_ISSUER" env-default:"launchpad"`
	SigningKey      string        `env:"JWT_SIGNING_KEY" env-required:"true"`
	AccessTokenTTL  time.Duration `env:"JWT_ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `env:"JWT_REFRESH_TOKEN_TTL" env-default:"720h"`
}

// ChatConfig points the onboarding assistant at an OpenAI-compatible
// chat completions API. An empty APIKey disables the assistant.
type ChatConfig struct {
	APIKey       string        `env:"OPENROUTER_API_KEY"`
	BaseURL      string        `env:"CHAT_BASE_URL" env-default:"https://openrouter.ai/api/v1"`
	Model        string        `env:"CHAT_MODEL" env-default:"mistralai/mistral-small-3.2-24b-instruct-2506:free"`
	Organization string        `env:"CHAT_ORGANIZATION" env-default:"Microsoft"`
	Timeout      time.Duration `env:"CHAT_TIMEOUT" env-default:"60s"`
}

type TasksConfig struct {
	Keyword string `env:"TASKS_KEYWORD" env-default:"microsoft"`
}
