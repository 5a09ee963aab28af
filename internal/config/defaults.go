package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tgienger/kanban/internal/models"
	"github.com/tgienger/kanban/internal/storage"
)

// DefaultUsers is the closed set of assignees in the reference configuration
var DefaultUsers = []string{"John Doe", "Jane Smith", "Sarah Wilson", "Mike Johnson"}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	dataDir := DataDir()
	return &Config{
		Storage: StorageConfig{
			Backend: storage.BackendSQLite,
			Path:    filepath.Join(dataDir, "kanban.db"),
			Key:     storage.DefaultKey,
		},
		Board: BoardConfig{
			Columns:         models.DefaultColumns(),
			Users:           append([]string(nil), DefaultUsers...),
			DefaultAssignee: DefaultUsers[0],
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dataDir, "kanban.log"),
		},
	}
}

const header = `# kanban configuration
#
# storage.backend is "sqlite" (path) or "redis" (redis_url).
# board.columns is ordered; each key is a valid task status and drop target.
`

// WriteDefault writes the default configuration to path
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte(header+"\n"), data...), 0644)
}

// DataDir returns the directory for the database and log file, following
// XDG_DATA_HOME with a ~/.local/share fallback
func DataDir() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "kanban")
}

// Path returns the default config file path, following XDG_CONFIG_HOME
// with a ~/.config fallback
func Path() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml"
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "kanban", "config.yaml")
}
