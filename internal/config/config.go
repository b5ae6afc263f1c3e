package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Sink    SinkConfig    `mapstructure:"sink" validate:"required"`
	Task    TaskConfig    `mapstructure:"task" validate:"required"`
}

// ServerConfig contains the inbound webhook server settings.
type ServerConfig struct {
	Host             string `mapstructure:"host" validate:"required"`
	Port             int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel         string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	NotificationPath string `mapstructure:"notification_path" validate:"required,startswith=/"`
}

// StorageConfig contains the credentials and transport settings used to fetch
// access log objects.
type StorageConfig struct {
	AccessKeyID     string `mapstructure:"access_key_id" validate:"required"`
	SecretAccessKey string `mapstructure:"secret_access_key" validate:"required"`
	Region          string `mapstructure:"region" validate:"required"`
	Scheme          string `mapstructure:"scheme" validate:"required,oneof=http https"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}

// Timeout returns the per-request fetch timeout.
func (c StorageConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SinkConfig contains the log-aggregation sink settings.
type SinkConfig struct {
	Endpoint       string `mapstructure:"endpoint" validate:"required,url"`
	Token          string `mapstructure:"token" validate:"required"`
	Tag            string `mapstructure:"tag" validate:"required"`
	Format         string `mapstructure:"format" validate:"required,oneof=hybrid json combined"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}

// Timeout returns the per-request forward timeout.
func (c SinkConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// TaskConfig contains the retry worker settings.
type TaskConfig struct {
	// MaxTries is the highest try count a failed task may still be requeued with.
	MaxTries int `mapstructure:"max_tries" validate:"gte=0"`

	// BackoffBaseSeconds scales the 2^tries backoff.
	BackoffBaseSeconds int `mapstructure:"backoff_base_seconds" validate:"gte=1"`

	// IdlePauseSeconds is the fixed pause between worker cycles.
	IdlePauseSeconds int `mapstructure:"idle_pause_seconds" validate:"gte=0"`
}

// BackoffBase returns the backoff unit as a duration.
func (c TaskConfig) BackoffBase() time.Duration {
	return time.Duration(c.BackoffBaseSeconds) * time.Second
}

// IdlePause returns the pause between worker cycles as a duration.
func (c TaskConfig) IdlePause() time.Duration {
	return time.Duration(c.IdlePauseSeconds) * time.Second
}
