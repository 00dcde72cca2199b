package samas

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultConfigFile = "config.json"

// Environment variables that override config.json. They are applied after the file
// is read, so deployments can reuse one config for several datasets.
const (
	EnvDataset    = "SAMAS_DATASET"
	EnvExpandMode = "SAMAS_EXPAND_MODE"
	EnvAddr       = "SAMAS_ADDR"
)

// ConfigPath resolves the config file location; an empty path means ./config.json.
func ConfigPath(path string) string {
	if strings.TrimSpace(path) == "" {
		return defaultConfigFile
	}
	return path
}

// LoadConfig reads config.json (or path) and applies the SAMAS_* environment
// overrides. A missing file is not an error: the defaults are returned instead.
func LoadConfig(path string) (Config, error) {
	cfg, err := LoadConfigFile(path)
	if err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	cfg.ApplyDefaults()
	return cfg, nil
}

// LoadConfigFile reads the config file alone, without environment overrides. Use it
// for configs that are edited and saved back.
func LoadConfigFile(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(ConfigPath(path))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("decode config: %w", err)
		}
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvDataset)); v != "" {
		cfg.Dataset = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvExpandMode)); v != "" {
		cfg.ExpandMode = ExpandMode(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvAddr)); v != "" {
		cfg.Server.Addr = v
	}
}

// SaveConfig writes cfg with defaults applied. The file is replaced atomically.
func SaveConfig(path string, cfg Config) error {
	path = ConfigPath(path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	cfg.ApplyDefaults()

	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(cfg); err != nil {
		tmp.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}
