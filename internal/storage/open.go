package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

const DefaultSlotKey = "@ignite-timer:cycles-state-1.0.0"

func (b Backend) IsValid() bool {
	switch b {
	case BackendFile, BackendSQLite, BackendMemory:
		return true
	default:
		return false
	}
}

type Options struct {
	Backend   Backend
	StatePath string
	DBPath    string
	Key       string
}

// Open returns the slot for the configured backend.
func Open(opts Options) (Slot, error) {
	key := strings.TrimSpace(opts.Key)
	if key == "" {
		key = DefaultSlotKey
	}
	switch opts.Backend {
	case BackendFile, "":
		slot, err := NewFileSlot(opts.StatePath)
		if err != nil {
			return nil, err
		}
		return slot, nil
	case BackendSQLite:
		path := strings.TrimSpace(opts.DBPath)
		if path == "" {
			return nil, fmt.Errorf("storage: empty db path")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
		slot, err := OpenSQLite(path, key)
		if err != nil {
			return nil, err
		}
		return slot, nil
	case BackendMemory:
		return NewMemorySlot(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", opts.Backend)
	}
}
