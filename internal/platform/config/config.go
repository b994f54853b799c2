package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"virtual-pet/internal/domain/pets"

	"gopkg.in/yaml.v3"
)

// Drivers de storage soportados.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverGorm     = "gorm"
)

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Decay   DecayConfig   `yaml:"decay"`
}

type HTTPConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type StorageConfig struct {
	// memory | postgres | gorm. Vacío: postgres si hay DSN, si no memory.
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

type DecayConfig struct {
	// 0 = sin scheduler interno (se usa /cron/decay desde afuera).
	Interval time.Duration `yaml:"interval"`
	Rules    pets.Rules    `yaml:"rules"`
}

func defaults() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:         ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			App:    "virtual-pet",
		},
		Decay: DecayConfig{
			Rules: pets.DefaultRules(),
		},
	}
}

// Load arma la config en este orden: defaults -> YAML (si existe) -> env.
// path vacío o inexistente no es error.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.Driver = resolveDriver(cfg.Storage)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Addr = ":" + v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("APP_NAME"); v != "" {
		cfg.Log.App = v
	}
	if v := os.Getenv("DECAY_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("DECAY_INTERVAL: %w", err)
		}
		cfg.Decay.Interval = d
	}
	return nil
}

func resolveDriver(s StorageConfig) string {
	d := strings.ToLower(strings.TrimSpace(s.Driver))
	if d != "" {
		return d
	}
	if strings.TrimSpace(s.DSN) != "" {
		return DriverPostgres
	}
	return DriverMemory
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres, DriverGorm:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("storage driver %q requires a dsn (DB_DSN)", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Decay.Interval < 0 {
		return fmt.Errorf("decay interval must be >= 0, got %s", c.Decay.Interval)
	}
	if err := c.Decay.Rules.Validate(); err != nil {
		return fmt.Errorf("decay rules: %w", err)
	}
	return nil
}
