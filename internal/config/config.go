package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/ignite/internal/model"
	"github.com/sandeepkv93/ignite/internal/storage"
)

const appName = "ignite"

type RuntimeConfig struct {
	StorageBackend       storage.Backend
	StatePath            string
	DBPath               string
	SlotKey              string
	TickInterval         time.Duration
	DefaultMinutes       int
	TaskSuggestions      []string
	DesktopNotifications bool
	LogFile              string
}

func DefaultRuntimeConfig() RuntimeConfig {
	dir := DefaultDir()
	return RuntimeConfig{
		StorageBackend:       storage.BackendFile,
		StatePath:            filepath.Join(dir, "cycles.json"),
		DBPath:               filepath.Join(dir, "ignite.db"),
		SlotKey:              storage.DefaultSlotKey,
		TickInterval:         time.Second,
		DefaultMinutes:       25,
		TaskSuggestions:      []string{"Check e-mails", "Wordpress plugins update", "Design system", "Office projects"},
		DesktopNotifications: false,
	}
}

// DefaultDir is the per-user directory holding ignite's state and config.
func DefaultDir() string {
	base, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(base) == "" {
		return "." + appName
	}
	return filepath.Join(base, appName)
}

func (c RuntimeConfig) StorageOptions() storage.Options {
	return storage.Options{
		Backend:   c.StorageBackend,
		StatePath: c.StatePath,
		DBPath:    c.DBPath,
		Key:       c.SlotKey,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("IGNITE_STORAGE_BACKEND"); ok {
		if backend := storage.Backend(strings.ToLower(v)); backend.IsValid() {
			cfg.StorageBackend = backend
		}
	}
	if v, ok := getEnvString("IGNITE_STATE_FILE"); ok {
		cfg.StatePath = v
	}
	if v, ok := getEnvString("IGNITE_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("IGNITE_SLOT_KEY"); ok {
		cfg.SlotKey = v
	}
	if v, ok := getEnvInt("IGNITE_TICK_MS"); ok && v > 0 {
		cfg.TickInterval = time.Duration(v) * time.Millisecond
	}
	if v, ok := getEnvInt("IGNITE_DEFAULT_MINUTES"); ok && validMinutes(v) {
		cfg.DefaultMinutes = v
	}
	if v, ok := getEnvString("IGNITE_TASK_SUGGESTIONS"); ok {
		cfg.TaskSuggestions = splitList(v)
	}
	if v, ok := getEnvBool("IGNITE_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvString("IGNITE_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	return cfg
}

func validMinutes(v int) bool {
	return v >= model.MinDurationMinutes && v <= model.MaxDurationMinutes
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw, ok := getEnvString(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
