package config

import "github.com/tgienger/kanban/internal/models"

// Config represents the full kanban configuration
type Config struct {
	// Where the board is persisted
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`

	// Columns and people
	Board BoardConfig `yaml:"board" mapstructure:"board"`

	// Logging
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// StorageConfig selects the key-value backend
type StorageConfig struct {
	Backend  string `yaml:"backend" mapstructure:"backend"`
	Path     string `yaml:"path" mapstructure:"path"`
	Key      string `yaml:"key" mapstructure:"key"`
	RedisURL string `yaml:"redis_url" mapstructure:"redis_url"`
}

// BoardConfig defines the columns, in display order, and the known users
type BoardConfig struct {
	Columns         models.Columns `yaml:"columns" mapstructure:"columns"`
	Users           []string       `yaml:"users" mapstructure:"users"`
	DefaultAssignee string         `yaml:"default_assignee" mapstructure:"default_assignee"`
}

// LogConfig configures the logger
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file" mapstructure:"file"`
}
