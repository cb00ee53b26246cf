// Package config provides configuration loading and validation for the premium service.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/premium-calculator/internal/premium"
)

// Environments accepted by Config.Environment.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config represents the service configuration. Values come from defaults,
// an optional JSON file and environment variables, in that order.
type Config struct {
	Port                   int     `json:"port,omitempty" validate:"min=1,max=65535"`
	BasePremium            float64 `json:"base_premium,omitempty" validate:"gt=0,finite"`
	Environment            string  `json:"environment,omitempty" validate:"oneof=development production"`
	LogLevel               string  `json:"log_level,omitempty" validate:"oneof=debug info warn error"`
	ShutdownTimeoutSeconds int     `json:"shutdown_timeout_seconds,omitempty" validate:"min=1,max=600"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Port:                   8080,
		BasePremium:            premium.DefaultBasePremium,
		Environment:            EnvDevelopment,
		LogLevel:               "info",
		ShutdownTimeoutSeconds: 30,
	}
}

// ShutdownTimeout returns the graceful shutdown window.
func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load builds the effective configuration: defaults, then the JSON file at
// path (if non-empty), then environment overrides. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	cfg = cfg.WithEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.BasePremium == 0 {
		result.BasePremium = defaults.BasePremium
	}
	if result.Environment == "" {
		result.Environment = defaults.Environment
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.ShutdownTimeoutSeconds == 0 {
		result.ShutdownTimeoutSeconds = defaults.ShutdownTimeoutSeconds
	}

	return result
}

// WithEnv returns a copy of c with environment variable overrides applied.
// Unparseable values are ignored.
func (c Config) WithEnv() Config {
	c.Port = getEnvInt("PORT", c.Port)
	c.BasePremium = getEnvFloat("BASE_PREMIUM", c.BasePremium)
	c.Environment = strings.ToLower(getEnvString("APP_ENV", c.Environment))
	c.LogLevel = strings.ToLower(getEnvString("LOG_LEVEL", c.LogLevel))
	c.ShutdownTimeoutSeconds = getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", c.ShutdownTimeoutSeconds)
	return c
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// gt=0 lets +Inf through and the calculator cannot work with it.
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return v
}

// Validate checks that the configuration has valid values.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("config error: %w", err)
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("'%s' failed '%s=%s' (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("'%s' failed '%s' (got %v)", fe.Field(), fe.Tag(), fe.Value()))
		}
	}
	return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
}
