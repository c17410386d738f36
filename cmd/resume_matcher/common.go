package main

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/observability"
)

// errSubmitFailed is returned after the failure was already shown to the user.
var errSubmitFailed = errors.New("submission failed")

// loadConfig resolves the configuration with persistent flags taking precedence.
func loadConfig() (*config.Config, error) {
	loaded, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := config.Config{
		BaseURL: baseURL,
		Log: config.LogConfig{
			Level:  logLevel,
			Format: logFormat,
		},
	}
	cfg := flags.MergeWithDefaults(*loaded)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// requireBaseURL rejects a configuration without a scoring service to talk to.
func requireBaseURL(cfg *config.Config) error {
	if cfg.BaseURL == "" {
		return fmt.Errorf("scoring service base URL is required (set %s or use --base-url)", config.EnvBaseURL)
	}
	return nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger.With(zap.String("app_env", cfg.AppEnv)), nil
}
