package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/tgienger/kanban/internal/models"
	"github.com/tgienger/kanban/internal/storage"
)

// ErrInvalidColumns is returned when the configured column set is unusable
var ErrInvalidColumns = errors.New("invalid board columns")

// Load returns the defaults merged with the file at path (Path() when empty)
// and KANBAN_* environment variables. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = Path()
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("KANBAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Scalars need a default for AutomaticEnv to see them.
	v.SetDefault("storage.backend", cfg.Storage.Backend)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("storage.key", cfg.Storage.Key)
	v.SetDefault("storage.redis_url", cfg.Storage.RedisURL)
	v.SetDefault("board.default_assignee", cfg.Board.DefaultAssignee)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// Lists from the file replace the defaults instead of merging by index.
	if v.IsSet("board.columns") {
		cfg.Board.Columns = nil
	}
	if v.IsSet("board.users") {
		cfg.Board.Users = nil
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the column set, users and storage backend
func (c *Config) Validate() error {
	if len(c.Board.Columns) == 0 {
		return fmt.Errorf("%w: at least one column is required", ErrInvalidColumns)
	}
	seen := map[models.Status]bool{}
	for _, col := range c.Board.Columns {
		key := models.Status(strings.TrimSpace(string(col.Key)))
		if key == "" {
			return fmt.Errorf("%w: empty column key", ErrInvalidColumns)
		}
		if seen[key] {
			return fmt.Errorf("%w: duplicate column %q", ErrInvalidColumns, key)
		}
		seen[key] = true
	}

	if strings.TrimSpace(c.Board.DefaultAssignee) == "" {
		return errors.New("board.default_assignee must not be empty")
	}
	if len(c.Board.Users) > 0 && !c.IsUser(c.Board.DefaultAssignee) {
		c.Board.Users = append(c.Board.Users, c.Board.DefaultAssignee)
	}

	switch c.Storage.Backend {
	case storage.BackendSQLite, storage.BackendRedis:
	default:
		return fmt.Errorf("%w: %q", storage.ErrUnknownBackend, c.Storage.Backend)
	}
	return nil
}

// IsUser reports whether name is one of the configured users
func (c *Config) IsUser(name string) bool {
	for _, u := range c.Board.Users {
		if u == name {
			return true
		}
	}
	return false
}

// StorageOptions converts the storage section for storage.Open
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:  c.Storage.Backend,
		Path:     c.Storage.Path,
		RedisURL: c.Storage.RedisURL,
	}
}
