package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

type Reader interface {
	Read() (*Config, error)
}

// EnvReader reads the configuration from the process environment.
type EnvReader struct{}

func NewEnvReader() EnvReader {
	return EnvReader{}
}

func (EnvReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, validate(cfg)
}

// FileReader reads a .env, .yaml or .json file. Values from a .env file
// are exported to the process environment.
type FileReader struct {
	path string
}

func NewFileReader(path string) FileReader {
	return FileReader{path: path}
}

func (r FileReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadConfig(r.path, cfg)
	if err != nil {
		return nil, err
	}

	return cfg, validate(cfg)
}

func validate(cfg *Config) error {
	if !slices.Contains([]string{EnvDev, EnvProd, EnvLocal}, cfg.Env) {
		return fmt.Errorf("unknown env: %s", cfg.Env)
	}
	cfg.Tasks.Keyword = strings.TrimSpace(cfg.Tasks.Keyword)
	if cfg.Tasks.Keyword == "" {
		return fmt.Errorf("tasks keyword must not be empty")
	}
	cfg.Chat.BaseURL = strings.TrimRight(cfg.Chat.BaseURL, "/")
	return nil
}
