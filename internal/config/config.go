package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const defaultSQLitePath = "site_dispatch.db"

// SolverConfig holds the default search limits for the CLI
type SolverConfig struct {
	MaxSteps int           `yaml:"maxSteps" validate:"min=0"`
	Timeout  time.Duration `yaml:"timeout" validate:"min=0"`
	Parallel bool          `yaml:"parallel"`
}

// Config represents the application configuration
type Config struct {
	// DatabaseURL selects PostgreSQL when set; otherwise runs are stored in SQLitePath
	DatabaseURL    string       `yaml:"databaseURL,omitempty" validate:"omitempty,url"`
	SQLitePath     string       `yaml:"sqlitePath,omitempty"`
	PublishSheetID string       `yaml:"publishSheetID,omitempty"`
	Solver         SolverConfig `yaml:"solver"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from site_dispatch_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration for an environment
// For example, env="test" will look for "site_dispatch_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.SQLitePath == "" {
		cfg.SQLitePath = defaultSQLitePath
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// findConfigFile searches the current directory then the home directory
func findConfigFile(env string) (string, error) {
	configFileName := "site_dispatch_config.yaml"
	if env != "" {
		configFileName = "site_dispatch_config." + env + ".yaml"
	}

	return findFile(configFileName)
}

func findFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", name)
}
