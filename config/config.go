// Package config loads the generator settings: embedded defaults, overlaid by
// a project YAML file and by VIEWSTATEGEN_* environment variables.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "VIEWSTATEGEN_"

// Config holds the settings of a generator run
type Config struct {
	StrategyAnnotation string `yaml:"strategy_annotation" validate:"required"`
	DefaultStrategy    string `yaml:"default_strategy" validate:"required"`
	ObservableType     string `yaml:"observable_type"`
	ViewStateSuffix    string `yaml:"view_state_suffix" validate:"required"`

	PresenterAnnotation string `yaml:"presenter_annotation"`
	PresenterBase       string `yaml:"presenter_base"`

	Views []string `yaml:"views" validate:"dive,required"`

	OutputDir string `yaml:"output_dir" validate:"required"`
	// Workers bounds parallel parsing and resolution, 0 means one per CPU
	Workers   int `yaml:"workers" validate:"gte=0"`
	CacheSize int `yaml:"cache_size" validate:"gt=0"`

	LogLevel  string `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" validate:"oneof=auto text json"`
}

// Default returns the embedded defaults
func Default() (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	return &cfg, nil
}

// Load reads the defaults, then the YAML file at path if path is not empty,
// then the environment, including a .env file in the working directory when
// present. The result is validated.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) applyEnv(lookup func(string) (string, bool)) error {
	textFields := map[string]*string{
		"STRATEGY_ANNOTATION":  &cfg.StrategyAnnotation,
		"DEFAULT_STRATEGY":     &cfg.DefaultStrategy,
		"OBSERVABLE_TYPE":      &cfg.ObservableType,
		"VIEW_STATE_SUFFIX":    &cfg.ViewStateSuffix,
		"PRESENTER_ANNOTATION": &cfg.PresenterAnnotation,
		"PRESENTER_BASE":       &cfg.PresenterBase,
		"OUTPUT_DIR":           &cfg.OutputDir,
		"LOG_LEVEL":            &cfg.LogLevel,
		"LOG_FORMAT":           &cfg.LogFormat,
	}
	for name, field := range textFields {
		if value, ok := lookup(EnvPrefix + name); ok {
			*field = value
		}
	}

	intFields := map[string]*int{
		"WORKERS":    &cfg.Workers,
		"CACHE_SIZE": &cfg.CacheSize,
	}
	for name, field := range intFields {
		value, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*field = parsed
	}

	if value, ok := lookup(EnvPrefix + "VIEWS"); ok {
		cfg.Views = splitList(value)
	}
	return nil
}

// Validate checks every field of the config
func (cfg *Config) Validate() error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// WorkerCount is the number of workers to use, resolving 0 to one per CPU
func (cfg *Config) WorkerCount() int {
	if cfg.Workers > 0 {
		return cfg.Workers
	}
	return runtime.NumCPU()
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
