package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds user preferences
type Config struct {
	BaseURL       string        `yaml:"base_url" env:"PLOTLINE_BASE_URL, overwrite"`             // Backend REST API root
	Timeout       time.Duration `yaml:"timeout" env:"PLOTLINE_TIMEOUT, overwrite"`               // Per-request HTTP timeout
	ConfirmDelete bool          `yaml:"confirm_delete" env:"PLOTLINE_CONFIRM_DELETE, overwrite"` // Require confirmation for delete
	StoragePath   string        `yaml:"storage_path" env:"PLOTLINE_STORAGE_PATH, overwrite"`     // Durable session storage

	// Logging configuration
	LogLevel   string `yaml:"log_level" env:"PLOTLINE_LOG_LEVEL, overwrite"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" env:"PLOTLINE_LOG_FILE, overwrite"`       // Path to log file
	LogConsole bool   `yaml:"log_console" env:"PLOTLINE_LOG_CONSOLE, overwrite"` // Enable console logging
}

// Dir returns the plotline home directory (~/.plotline)
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".plotline"), nil
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	dir, _ := Dir()
	logPath, storagePath := "", ""
	if dir != "" {
		logPath = filepath.Join(dir, "logs", "plotline.log")
		storagePath = filepath.Join(dir, "storage.db")
	}

	return &Config{
		BaseURL:       "http://localhost:8080",
		Timeout:       30 * time.Second,
		ConfirmDelete: true,
		StoragePath:   storagePath,
		LogLevel:      "INFO",
		LogFile:       logPath,
		LogConsole:    false,
	}
}

// Load loads config from ~/.plotline/config.yaml and applies PLOTLINE_* environment overrides
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFile(filepath.Join(dir, "config.yaml"))
}

// LoadFile loads config from path, falling back to defaults if the file does not exist
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := envconfig.Process(context.Background(), cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	return cfg, nil
}

// Save saves config to ~/.plotline/config.yaml
func (c *Config) Save() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return c.SaveFile(filepath.Join(dir, "config.yaml"))
}

// SaveFile writes the config as YAML to path
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
