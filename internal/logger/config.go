package logger

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds logging configuration.
type Config struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
	Format  string `yaml:"format"` // "text" or "json"

	File           bool   `yaml:"file"`
	FilePath       string `yaml:"file_path"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
}

// fileConfig wraps Config under a "logging" key for YAML parsing.
type fileConfig struct {
	Logging Config `yaml:"logging"`
}

// DefaultConfig returns console-only text logging at INFO.
func DefaultConfig() Config {
	return Config{
		Level:          "INFO",
		Console:        true,
		Format:         "text",
		File:           false,
		FilePath:       "logs/delvegen.log",
		FileMaxSizeMB:  10,
		FileMaxBackups: 5,
		FileMaxAgeDays: 30,
	}
}

// LoadConfig loads logging configuration from a YAML file. A missing or
// unreadable file returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var parsed fileConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return cfg, err
	}

	loaded := parsed.Logging
	if loaded.Level != "" {
		cfg.Level = loaded.Level
	}
	cfg.Console = loaded.Console
	cfg.File = loaded.File
	if loaded.Format != "" {
		cfg.Format = loaded.Format
	}
	if loaded.FilePath != "" {
		cfg.FilePath = loaded.FilePath
	}
	if loaded.FileMaxSizeMB > 0 {
		cfg.FileMaxSizeMB = loaded.FileMaxSizeMB
	}
	if loaded.FileMaxBackups > 0 {
		cfg.FileMaxBackups = loaded.FileMaxBackups
	}
	if loaded.FileMaxAgeDays > 0 {
		cfg.FileMaxAgeDays = loaded.FileMaxAgeDays
	}
	return cfg, nil
}
