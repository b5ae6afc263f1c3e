package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/elbship/internal/config"
	"github.com/phrazzld/elbship/internal/platform/logger"
)

// initializeApp loads the configuration and installs the JSON logger.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("configuration loaded",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"notification_path", cfg.Server.NotificationPath,
		"storage_region", cfg.Storage.Region,
		"sink_endpoint", cfg.Sink.Endpoint,
		"sink_tag", cfg.Sink.Tag,
		"sink_format", cfg.Sink.Format,
		"max_tries", cfg.Task.MaxTries)
	l.Debug("credentials configured",
		"storage_key_present", cfg.Storage.AccessKeyID != "",
		"sink_token_present", cfg.Sink.Token != "")

	return cfg, l, nil
}
