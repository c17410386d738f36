// Package config provides configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Application environments selected by APP_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Environment variables read by Load.
const (
	EnvAppEnv         = "APP_ENV"
	EnvBaseURL        = "RESUME_API_BASE_URL"
	EnvPort           = "PORT"
	EnvLogLevel       = "RESUME_MATCHER_LOG_LEVEL"
	EnvLogFormat      = "RESUME_MATCHER_LOG_FORMAT"
	EnvRequestTimeout = "RESUME_MATCHER_REQUEST_TIMEOUT"
	EnvAllowedOrigins = "API_ALLOWED_ORIGINS"
)

// Config is the resolved client configuration. Every field is optional in the file; missing
// values come from the environment or defaults.
type Config struct {
	AppEnv string `mapstructure:"app_env" json:"app_env" validate:"oneof=development production"`
	// BaseURL is the scoring service root. Empty means same origin.
	BaseURL string `mapstructure:"base_url" json:"base_url" validate:"omitempty,url"`
	// RequestTimeout of zero leaves uploads without a client-imposed deadline.
	RequestTimeout time.Duration `mapstructure:"request_timeout" json:"request_timeout" validate:"gte=0"`
	// AllowedOrigins is a comma-separated CORS allow list for the console, "*" for any.
	AllowedOrigins string `mapstructure:"api_allowed_origins" json:"api_allowed_origins"`

	Log    LogConfig    `mapstructure:"log" json:"log"`
	Server ServerConfig `mapstructure:"server" json:"server"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" json:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" json:"format" validate:"oneof=json console"`
}

type ServerConfig struct {
	Port int `mapstructure:"port" json:"port" validate:"gte=1,lte=65535"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		AppEnv:         EnvDevelopment,
		AllowedOrigins: "*",
		Log:            LogConfig{Level: "info", Format: "console"},
		Server:         ServerConfig{Port: 8080},
	}
}

// IsProduction reports whether APP_ENV selected the production environment.
func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

// Load resolves the configuration from defaults, an optional YAML or JSON file at path, and
// the environment. For the selected environment, DEV_ or PROD_ prefixed variables override
// RESUME_API_BASE_URL and PORT.
func Load(path string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("app_env", def.AppEnv)
	v.SetDefault("base_url", def.BaseURL)
	v.SetDefault("request_timeout", def.RequestTimeout)
	v.SetDefault("api_allowed_origins", def.AllowedOrigins)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("server.port", def.Server.Port)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	bindings := map[string]string{
		"app_env":             EnvAppEnv,
		"base_url":            EnvBaseURL,
		"request_timeout":     EnvRequestTimeout,
		"api_allowed_origins": EnvAllowedOrigins,
		"log.level":           EnvLogLevel,
		"log.format":          EnvLogFormat,
		"server.port":         EnvPort,
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	appEnv := strings.ToLower(strings.TrimSpace(v.GetString("app_env")))
	v.Set("app_env", appEnv)
	prefix := "DEV_"
	if appEnv == EnvProduction {
		prefix = "PROD_"
	}
	if val := os.Getenv(prefix + EnvBaseURL); val != "" {
		v.Set("base_url", val)
	}
	if val := os.Getenv(prefix + EnvPort); val != "" {
		v.Set("server.port", val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	return &cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks that the configuration has valid values. Only the first problem is reported.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("config error: %w", err)
	}

	fe := fieldErrs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	return fmt.Errorf("config error: '%s' %s", field, describe(fe))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", strings.ReplaceAll(fe.Param(), " ", ", "), fmt.Sprint(fe.Value()))
	case "url":
		return fmt.Sprintf("must be an absolute URL, got %q", fmt.Sprint(fe.Value()))
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed the %q check", fe.Tag())
	}
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.AppEnv == "" {
		result.AppEnv = defaults.AppEnv
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.AllowedOrigins == "" {
		result.AllowedOrigins = defaults.AllowedOrigins
	}
	if result.Log.Level == "" {
		result.Log.Level = defaults.Log.Level
	}
	if result.Log.Format == "" {
		result.Log.Format = defaults.Log.Format
	}

	if result.RequestTimeout == 0 {
		result.RequestTimeout = defaults.RequestTimeout
	}
	if result.Server.Port == 0 {
		result.Server.Port = defaults.Server.Port
	}

	return result
}
