// Package config loads runtime settings from defaults, an optional YAML file
// and MEIHUA_* environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Journal backends.
const (
	JournalNone   = "none"
	JournalMemory = "memory"
	JournalFile   = "file"
	JournalRedis  = "redis"
)

// Config is the full set of runtime settings.
type Config struct {
	LogLevel string  `yaml:"log_level" env:"MEIHUA_LOG_LEVEL"`
	HTTP     HTTP    `yaml:"http"`
	Journal  Journal `yaml:"journal"`
	Redis    Redis   `yaml:"redis"`
}

type HTTP struct {
	Port int `yaml:"port" env:"MEIHUA_HTTP_PORT"`
}

type Journal struct {
	Backend string        `yaml:"backend" env:"MEIHUA_JOURNAL"`
	Dir     string        `yaml:"dir" env:"MEIHUA_JOURNAL_DIR"`
	TTL     time.Duration `yaml:"ttl" env:"MEIHUA_JOURNAL_TTL"`
}

type Redis struct {
	Addr     string `yaml:"addr" env:"MEIHUA_REDIS_ADDR"`
	Password string `yaml:"password" env:"MEIHUA_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"MEIHUA_REDIS_DB"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "info",
		HTTP:     HTTP{Port: 8080},
		Journal:  Journal{Backend: JournalMemory, Dir: ".meihua/journal"},
		Redis:    Redis{Addr: "localhost:6379"},
	}
}

// Load builds a Config. A missing file at path is not an error; an empty path
// skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Treat as "no config file"
		default:
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated and numeric fields.
func (c Config) Validate() error {
	switch c.Journal.Backend {
	case JournalNone, JournalMemory, JournalFile, JournalRedis:
	default:
		return fmt.Errorf("unknown journal backend %q (want none, memory, file or redis)", c.Journal.Backend)
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http port %d out of range", c.HTTP.Port)
	}
	if c.Journal.TTL < 0 {
		return fmt.Errorf("journal ttl must not be negative")
	}
	return nil
}
