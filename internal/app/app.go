// Package app wires the storage slot and cycle store together once at
// startup and tears them down on exit.
package app

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/sandeepkv93/ignite/internal/config"
	"github.com/sandeepkv93/ignite/internal/cycles"
	"github.com/sandeepkv93/ignite/internal/storage"
)

type App struct {
	Config config.RuntimeConfig
	Store  *cycles.Store
	Logger *log.Logger
	slot   storage.Slot
	unsub  func()
}

// New opens the configured slot and rehydrates the store from it. Failing to
// open the slot leaves the store running in memory for the session.
func New(ctx context.Context, cfg config.RuntimeConfig, logger *log.Logger, opts ...cycles.Option) (*App, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	slot, err := storage.Open(cfg.StorageOptions())
	if err != nil {
		logger.Printf("app: open %s storage failed, continuing in memory: %v", cfg.StorageBackend, err)
		slot = nil
	}
	storeOpts := append([]cycles.Option{cycles.WithLogger(logger)}, opts...)
	a := &App{
		Config: cfg,
		Logger: logger,
		slot:   slot,
	}
	a.Store = cycles.Open(ctx, slot, storeOpts...)
	a.unsub = a.Store.Subscribe(func(st cycles.State) {
		logger.Printf("app: state changed: cycles=%d active=%q", len(st.Cycles), st.ActiveCycleID)
	})
	if err := ctx.Err(); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("app: %w", err)
	}
	return a, nil
}

func (a *App) Close() error {
	if a.unsub != nil {
		a.unsub()
		a.unsub = nil
	}
	if a.slot == nil {
		return nil
	}
	slot := a.slot
	a.slot = nil
	return slot.Close()
}
