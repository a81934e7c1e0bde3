package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	OpenAI OpenAIConfig `mapstructure:"openai"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port" validate:"required"`
	Host         string        `mapstructure:"host"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	// Directory holding the built single-page application
	StaticDir string `mapstructure:"static_dir" validate:"required"`
}

type OpenAIConfig struct {
	Provider string `mapstructure:"provider" validate:"oneof=openai azure"`
	// Optional at startup; a missing key is reported by the first completion call
	APIKey     string        `mapstructure:"api_key"`
	Endpoint   string        `mapstructure:"endpoint" validate:"required,url"`
	Model      string        `mapstructure:"model" validate:"required"`
	APIVersion string        `mapstructure:"api_version"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxTokens  int64         `mapstructure:"max_tokens" validate:"gte=0"`
	// Sampling temperature, 0-2
	Temperature float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.static_dir", "client/build")

	v.SetDefault("openai.provider", "openai")
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.endpoint", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-3.5-turbo")
	v.SetDefault("openai.api_version", "2023-05-15")
	v.SetDefault("openai.timeout", "30s")
	v.SetDefault("openai.max_tokens", 1000)
	v.SetDefault("openai.temperature", 0)

	v.SetDefault("log.level", "info")
}

// LoadConfig reads config.yaml from the working directory if present and
// applies environment overrides, e.g. OPENAI_API_KEY or SERVER_PORT.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, oops.Errorf("failed to read config file: %w", err)
		}
		slog.Debug("no config file found, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, oops.Errorf("failed to parse config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	if err := checkWriteTimeout(cfg); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	if cfg.OpenAI.APIKey == "" {
		slog.Warn("OPENAI_API_KEY is not set, completion calls will fail")
	}

	slog.Info("configuration loaded successfully")
	return &cfg, nil
}

// A query makes up to completionsPerQuery model calls, each bounded by
// openai.timeout, and its response must still fit in server.write_timeout.
const (
	completionsPerQuery = 3
	writeTimeoutMargin  = 5 * time.Second
)

func checkWriteTimeout(cfg Config) error {
	need := completionsPerQuery*cfg.OpenAI.Timeout + writeTimeoutMargin
	if cfg.Server.WriteTimeout < need {
		return fmt.Errorf("server.write_timeout %s must be at least %s (%d x openai.timeout + %s)",
			cfg.Server.WriteTimeout, need, completionsPerQuery, writeTimeoutMargin)
	}
	return nil
}
