package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the full server configuration, loadable from a YAML file with
// environment variable overrides.
type Config struct {
	LogLevel string  `yaml:"log-level" env:"TABLEROOM_LOG_LEVEL" env-default:"info"`
	HTTP     HTTP    `yaml:"http"`
	Storage  Storage `yaml:"storage"`
}

// HTTP holds the listener settings.
type HTTP struct {
	Host            string        `yaml:"host" env:"TABLEROOM_HTTP_HOST" env-default:""`
	Port            int           `yaml:"port" env:"TABLEROOM_HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read-timeout" env:"TABLEROOM_HTTP_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write-timeout" env:"TABLEROOM_HTTP_WRITE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown-timeout" env:"TABLEROOM_HTTP_SHUTDOWN_TIMEOUT" env-default:"30s"`
}

// Storage selects and configures the identity storage backend.
type Storage struct {
	Type        string        `yaml:"type" env:"TABLEROOM_STORAGE_TYPE" env-default:"memory"`
	RedisURL    string        `yaml:"redis-url" env:"TABLEROOM_REDIS_URL" env-default:"redis://localhost:6379/0"`
	IdentityTTL time.Duration `yaml:"identity-ttl" env:"TABLEROOM_IDENTITY_TTL" env-default:"168h"`
}

// Load reads configuration from the given file, falling back to environment
// variables alone when the path is empty or the file does not exist.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, cfg); err != nil {
				return nil, fmt.Errorf("unable to load config file %s: %w", path, err)
			}
			return cfg, nil
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("unable to read config from environment: %w", err)
	}
	return cfg, nil
}
