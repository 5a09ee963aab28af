package cli

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/tgienger/kanban/internal/board"
	"github.com/tgienger/kanban/internal/config"
	"github.com/tgienger/kanban/internal/logging"
	"github.com/tgienger/kanban/internal/storage"
)

// session is everything a command needs to work on the board
type session struct {
	cfg   *config.Config
	store *board.Store
	kv    storage.KV
	logs  io.Closer
}

// openSession loads the config, configures logging and opens the board.
// toFile sends logs to the configured file, which the TUI needs because it
// owns the terminal. A storage backend that cannot be opened is logged and
// the board runs in memory.
func openSession(ctx context.Context, toFile bool) (*session, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logFile := ""
	if toFile {
		logFile = cfg.Log.File
	}
	logs, err := logging.Setup(cfg.Log.Level, logFile)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	s := newSession(ctx, cfg)
	s.logs = logs
	return s, nil
}

func newSession(ctx context.Context, cfg *config.Config) *session {
	s := &session{cfg: cfg}
	env := board.NewEnv(cfg.Board.Columns, cfg.Board.DefaultAssignee)

	kv, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		log.WithError(err).WithField("backend", cfg.Storage.Backend).Warn("storage unavailable, board will not be saved")
		s.store = board.NewStore(env, nil)
		return s
	}

	snap := storage.NewSnapshot(kv, cfg.Storage.Key)
	s.kv = kv
	s.store = board.NewStore(env, snap)
	s.store.Hydrate(ctx, snap)
	return s
}

// Close releases the storage backend and the log file
func (s *session) Close() {
	if s.kv != nil {
		if err := s.kv.Close(); err != nil {
			log.WithError(err).Warn("failed to close storage")
		}
	}
	if s.logs != nil {
		_ = s.logs.Close()
	}
}
