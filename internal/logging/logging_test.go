package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
)

// These tests mutate the standard logger and are not parallel.

func TestSetupFile(t *testing.T) {
	t.Setenv("DEBUG", "")
	path := filepath.Join(t.TempDir(), "logs", "kanban.log")

	closer, err := Setup("warn", path)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	log.Info("dropped")
	log.WithField("key", "kanban-tasks").Warn("kept")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 record, got %d: %q", len(lines), data)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("Expected JSON record, got %q", lines[0])
	}
	if rec["msg"] != "kept" || rec["key"] != "kanban-tasks" {
		t.Errorf("Unexpected record %v", rec)
	}
}

func TestSetupDebugEnv(t *testing.T) {
	t.Setenv("DEBUG", "true")

	if _, err := Setup("error", ""); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if log.GetLevel() != log.DebugLevel {
		t.Errorf("Expected debug level, got %s", log.GetLevel())
	}
}

func TestSetupBadLevel(t *testing.T) {
	if _, err := Setup("loud", ""); err == nil {
		t.Error("Expected error for unknown level")
	}
}
