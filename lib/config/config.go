// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rosterdesk/rosterdesk/lib/employeeapi"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "ROSTERDESK_"

// Config is the complete configuration.
type Config struct {
	API APIConfig `yaml:"api" envPrefix:"API_"`
	UI  UIConfig  `yaml:"ui" envPrefix:"UI_"`
	Log LogConfig `yaml:"log" envPrefix:"LOG_"`

	// SessionFile overrides where the operator session is stored.
	// Empty means the session package's default location.
	SessionFile string `yaml:"session_file" env:"SESSION_FILE"`
}

// APIConfig configures the employee API client.
type APIConfig struct {
	// BaseURL is the API root, e.g. http://localhost:7777/api/v1/employee.
	BaseURL string `yaml:"base_url" env:"BASE_URL" validate:"required,http_url"`

	// Timeout bounds each request attempt.
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT" validate:"gt=0"`

	// RetryAttempts is how many times list and delete are tried on
	// transient failures. 1 disables retry.
	RetryAttempts int `yaml:"retry_attempts" env:"RETRY_ATTEMPTS" validate:"gte=1,lte=10"`

	// RetryBackoff is the wait before the first retry; it doubles for
	// each later one.
	RetryBackoff time.Duration `yaml:"retry_backoff" env:"RETRY_BACKOFF" validate:"gt=0"`
}

// UIConfig configures the terminal UI.
type UIConfig struct {
	// NoticeDuration is how long a status-bar notice stays visible.
	NoticeDuration time.Duration `yaml:"notice_duration" env:"NOTICE_DURATION" validate:"gt=0"`

	// EditorPlugin is the program that edits one employee, given its
	// id. A bare name is looked up next to the rosterdesk executable,
	// then on PATH.
	EditorPlugin string `yaml:"editor_plugin" env:"EDITOR_PLUGIN" validate:"required"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level" env:"LEVEL" validate:"oneof=debug info warn error"`

	// Format is text, json, or auto (text on a terminal, json
	// otherwise).
	Format string `yaml:"format" env:"FORMAT" validate:"oneof=auto text json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:       employeeapi.DefaultBaseURL,
			Timeout:       15 * time.Second,
			RetryAttempts: 3,
			RetryBackoff:  500 * time.Millisecond,
		},
		UI: UIConfig{
			NoticeDuration: 4 * time.Second,
			EditorPlugin:   "rosterdesk-edit",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Options controls where Load looks.
type Options struct {
	// Path is the config file from --config. Empty falls back to
	// ROSTERDESK_CONFIG, and then to no file.
	Path string

	// EnvFiles are dotenv files read if they exist. Nil means
	// .env and .env.local in the working directory.
	EnvFiles []string

	// Environment replaces the process environment when non-nil.
	Environment map[string]string
}

// Load builds the configuration from defaults, the optional YAML file
// and the environment, then validates it.
func Load(options Options) (*Config, error) {
	environment, err := buildEnvironment(options)
	if err != nil {
		return nil, err
	}

	config := Default()

	path := options.Path
	if path == "" {
		path = environment[EnvPrefix+"CONFIG"]
	}
	if path != "" {
		if err := config.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(config, env.Options{
		Prefix:      EnvPrefix,
		Environment: environment,
	}); err != nil {
		return nil, fmt.Errorf("reading %s* environment: %w", EnvPrefix, err)
	}

	config.SessionFile = expandVariables(config.SessionFile, environment)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// buildEnvironment merges dotenv files under the process (or supplied)
// environment.
func buildEnvironment(options Options) (map[string]string, error) {
	environment := options.Environment
	if environment == nil {
		environment = make(map[string]string)
		for _, entry := range os.Environ() {
			if key, value, ok := strings.Cut(entry, "="); ok {
				environment[key] = value
			}
		}
	}

	envFiles := options.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env", ".env.local"}
	}
	var existing []string
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return environment, nil
	}

	fromFiles, err := godotenv.Read(existing...)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", strings.Join(existing, ", "), err)
	}
	merged := make(map[string]string, len(environment)+len(fromFiles))
	for key, value := range fromFiles {
		merged[key] = value
	}
	for key, value := range environment {
		merged[key] = value
	}
	return merged, nil
}

func (config *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

var variablePattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVariables expands ${VAR} and ${VAR:-default} from environment.
func expandVariables(value string, environment map[string]string) string {
	expanded := variablePattern.ReplaceAllStringFunc(value, func(match string) string {
		parts := variablePattern.FindStringSubmatch(match)
		if resolved := environment[parts[1]]; resolved != "" {
			return resolved
		}
		return parts[2]
	})
	if strings.HasPrefix(expanded, "~/") {
		if home := environment["HOME"]; home != "" {
			expanded = filepath.Join(home, expanded[2:])
		}
	}
	return expanded
}

var validate = newValidator()

func newValidator() *validator.Validate {
	instance := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their YAML names so errors match the file.
	instance.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return instance
}

// Validate checks the configuration, reporting every invalid field.
func (config *Config) Validate() error {
	err := validate.Struct(config)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validating config: %w", err)
	}
	var problems []error
	for _, fieldError := range validationErrors {
		problems = append(problems, fmt.Errorf("%s: %s", yamlPath(fieldError.Namespace()), describeRule(fieldError)))
	}
	return fmt.Errorf("invalid configuration: %w", errors.Join(problems...))
}

// yamlPath turns "Config.api.base_url" into "api.base_url".
func yamlPath(namespace string) string {
	_, path, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return path
}

func describeRule(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "is required"
	case "http_url":
		return fmt.Sprintf("%q is not an http(s) URL", fieldError.Value())
	case "oneof":
		return fmt.Sprintf("%v is not one of: %s", fieldError.Value(), fieldError.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fieldError.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fieldError.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fieldError.Param())
	}
	return fmt.Sprintf("failed %q", fieldError.Tag())
}

// SlogLevel returns the configured log level.
func (config *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(config.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// ClientOptions returns the API client options this configuration
// describes. Callers add the clock and logger.
func (config *Config) ClientOptions() employeeapi.Options {
	return employeeapi.Options{
		Timeout:        config.API.Timeout,
		MaxAttempts:    config.API.RetryAttempts,
		InitialBackoff: config.API.RetryBackoff,
	}
}
