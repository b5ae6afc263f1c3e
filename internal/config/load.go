package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration key when read from the environment,
// e.g. sink.token is read from ELBSHIP_SINK_TOKEN.
const EnvPrefix = "ELBSHIP"

// ConfigFileEnv names the environment variable that may point at an explicit config file.
const ConfigFileEnv = EnvPrefix + "_CONFIG_FILE"

// legacyEnv maps configuration keys to the variable names used by earlier
// deployments of the shipper. They are consulted after the prefixed name.
var legacyEnv = map[string][]string{
	"server.host":               {"BIND_HOST"},
	"server.port":               {"BIND_PORT"},
	"storage.access_key_id":     {"AWS_ACCESS_KEY_ID"},
	"storage.secret_access_key": {"AWS_SECRET_KEY", "AWS_SECRET_ACCESS_KEY"},
	"sink.token":                {"LOGGLY_TOKEN"},
	"sink.tag":                  {"LOGGLY_TAG"},
	"task.max_tries":            {"MAX_TRIES"},
}

// keys lists every configuration key so each can be bound to the environment.
var keys = []string{
	"server.host",
	"server.port",
	"server.log_level",
	"server.notification_path",
	"storage.access_key_id",
	"storage.secret_access_key",
	"storage.region",
	"storage.scheme",
	"storage.timeout_seconds",
	"sink.endpoint",
	"sink.token",
	"sink.tag",
	"sink.format",
	"sink.timeout_seconds",
	"task.max_tries",
	"task.backoff_base_seconds",
	"task.idle_pause_seconds",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.notification_path", "/sns")

	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.scheme", "https")
	v.SetDefault("storage.timeout_seconds", 5)

	v.SetDefault("sink.endpoint", "http://logs-01.loggly.com")
	v.SetDefault("sink.tag", "elb")
	v.SetDefault("sink.format", "hybrid")
	v.SetDefault("sink.timeout_seconds", 5)

	v.SetDefault("task.max_tries", 15)
	v.SetDefault("task.backoff_base_seconds", 1)
	v.SetDefault("task.idle_pause_seconds", 10)
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path := os.Getenv(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for _, key := range keys {
		names := append([]string{envName(key)}, legacyEnv[key]...)
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
