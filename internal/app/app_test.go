package app

import (
	"bytes"
	"context"
	"log"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sandeepkv93/ignite/internal/config"
	"github.com/sandeepkv93/ignite/internal/storage"
)

func testConfig(t *testing.T, backend storage.Backend) config.RuntimeConfig {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultRuntimeConfig()
	cfg.StorageBackend = backend
	cfg.StatePath = filepath.Join(dir, "cycles.json")
	cfg.DBPath = filepath.Join(dir, "ignite.db")
	return cfg
}

func TestNewRestoresAcrossRestarts(t *testing.T) {
	for _, backend := range []storage.Backend{storage.BackendFile, storage.BackendSQLite} {
		cfg := testConfig(t, backend)
		ctx := context.Background()

		first, err := New(ctx, cfg, nil)
		if err != nil {
			t.Fatalf("%s: new: %v", backend, err)
		}
		created, err := first.Store.CreateCycle(ctx, "Write report", 25)
		if err != nil {
			t.Fatalf("%s: create: %v", backend, err)
		}
		if err := first.Close(); err != nil {
			t.Fatalf("%s: close: %v", backend, err)
		}

		second, err := New(ctx, cfg, nil)
		if err != nil {
			t.Fatalf("%s: reopen: %v", backend, err)
		}
		active, ok := second.Store.ActiveCycle()
		if !ok || active.ID != created.ID {
			t.Fatalf("%s: expected %s active after restart, got %+v ok=%v", backend, created.ID, active, ok)
		}
		if err := second.Close(); err != nil {
			t.Fatalf("%s: close: %v", backend, err)
		}
	}
}

func TestNewFallsBackToMemory(t *testing.T) {
	cfg := testConfig(t, storage.BackendFile)
	cfg.StatePath = ""
	var logs bytes.Buffer

	a, err := New(context.Background(), cfg, log.New(&logs, "", 0))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer a.Close()
	if !a.Store.Degraded() {
		t.Fatal("expected in-memory store when storage cannot be opened")
	}
	if _, err := a.Store.CreateCycle(context.Background(), "Task", 5); err != nil {
		t.Fatalf("create in memory: %v", err)
	}
	if !strings.Contains(logs.String(), "continuing in memory") {
		t.Fatalf("expected fallback log, got %q", logs.String())
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	a, err := New(context.Background(), testConfig(t, storage.BackendSQLite), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
