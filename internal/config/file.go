package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sandeepkv93/ignite/internal/storage"
	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

type yamlConfig struct {
	Storage struct {
		Backend   string `yaml:"backend"`
		StateFile string `yaml:"state_file"`
		DBPath    string `yaml:"db_path"`
		SlotKey   string `yaml:"slot_key"`
	} `yaml:"storage"`
	Timer struct {
		TickMillis     int      `yaml:"tick_millis"`
		DefaultMinutes int      `yaml:"default_minutes"`
		Suggestions    []string `yaml:"suggestions"`
	} `yaml:"timer"`
	DesktopNotifications *bool  `yaml:"desktop_notifications"`
	LogFile              string `yaml:"log_file"`
}

// FilePath returns IGNITE_CONFIG when set, otherwise config.yaml in DefaultDir.
func FilePath() string {
	if v, ok := getEnvString("IGNITE_CONFIG"); ok {
		return v
	}
	return filepath.Join(DefaultDir(), configFileName)
}

// Load layers defaults, the YAML file, and the environment. A .env file in
// the working directory is read into the environment first when present.
// A broken YAML file is reported but the remaining layers still apply.
func Load() (RuntimeConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return RuntimeConfigFromEnv(DefaultRuntimeConfig()), fmt.Errorf("load .env: %w", err)
	}
	cfg, err := LoadFile(DefaultRuntimeConfig(), FilePath())
	return RuntimeConfigFromEnv(cfg), err
}

// LoadFile applies the YAML file at path on top of base. A missing file
// returns base unchanged.
func LoadFile(base RuntimeConfig, path string) (RuntimeConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return base, fmt.Errorf("read config file: %w", err)
	}
	var fileData yamlConfig
	if err := yaml.Unmarshal(raw, &fileData); err != nil {
		return base, fmt.Errorf("parse config yaml: %w", err)
	}
	return applyYamlConfig(base, fileData), nil
}

func applyYamlConfig(base RuntimeConfig, fileData yamlConfig) RuntimeConfig {
	cfg := base
	if backend := storage.Backend(strings.ToLower(strings.TrimSpace(fileData.Storage.Backend))); backend.IsValid() {
		cfg.StorageBackend = backend
	}
	if v := strings.TrimSpace(fileData.Storage.StateFile); v != "" {
		cfg.StatePath = v
	}
	if v := strings.TrimSpace(fileData.Storage.DBPath); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(fileData.Storage.SlotKey); v != "" {
		cfg.SlotKey = v
	}
	if fileData.Timer.TickMillis > 0 {
		cfg.TickInterval = time.Duration(fileData.Timer.TickMillis) * time.Millisecond
	}
	if validMinutes(fileData.Timer.DefaultMinutes) {
		cfg.DefaultMinutes = fileData.Timer.DefaultMinutes
	}
	if len(fileData.Timer.Suggestions) > 0 {
		suggestions := make([]string, 0, len(fileData.Timer.Suggestions))
		for _, s := range fileData.Timer.Suggestions {
			if s = strings.TrimSpace(s); s != "" {
				suggestions = append(suggestions, s)
			}
		}
		cfg.TaskSuggestions = suggestions
	}
	if fileData.DesktopNotifications != nil {
		cfg.DesktopNotifications = *fileData.DesktopNotifications
	}
	if v := strings.TrimSpace(fileData.LogFile); v != "" {
		cfg.LogFile = v
	}
	return cfg
}

// SaveFile writes cfg as YAML to path, creating the directory.
func SaveFile(path string, cfg RuntimeConfig) error {
	var fileData yamlConfig
	fileData.Storage.Backend = string(cfg.StorageBackend)
	fileData.Storage.StateFile = cfg.StatePath
	fileData.Storage.DBPath = cfg.DBPath
	fileData.Storage.SlotKey = cfg.SlotKey
	fileData.Timer.TickMillis = int(cfg.TickInterval / time.Millisecond)
	fileData.Timer.DefaultMinutes = cfg.DefaultMinutes
	fileData.Timer.Suggestions = cfg.TaskSuggestions
	notify := cfg.DesktopNotifications
	fileData.DesktopNotifications = &notify
	fileData.LogFile = cfg.LogFile

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
