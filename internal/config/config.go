package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/taskpad/internal/storage"
)

const DefaultDateLayout = "Jan 02, 2006, 03:04 PM"

var ErrInvalidConfig = errors.New("config: invalid")

type RuntimeConfig struct {
	Backend    string `yaml:"backend"`
	DataDir    string `yaml:"data_dir"`
	StorageKey string `yaml:"storage_key"`
	DateLayout string `yaml:"date_layout"`
	LogFile    string `yaml:"log_file"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Backend:    storage.BackendFile,
		DataDir:    defaultDataDir(),
		StorageKey: storage.DefaultTaskKey,
		DateLayout: DefaultDateLayout,
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "taskpad")
	}
	return ".taskpad"
}

// Load layers defaults, the optional YAML file at path, and environment
// overrides, then validates the result. A missing file is not an error.
func Load(path string) (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()
	if strings.TrimSpace(path) == "" {
		path = strings.TrimSpace(os.Getenv("TASKPAD_CONFIG"))
	}
	if path != "" {
		fromFile, err := FromFile(cfg, path)
		if err != nil {
			return RuntimeConfig{}, err
		}
		cfg = fromFile
	}
	cfg = RuntimeConfigFromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return RuntimeConfig{}, err
	}
	return cfg, nil
}

// FromFile overlays the YAML document at path on base. Keys missing from
// the file keep their base values.
func FromFile(base RuntimeConfig, path string) (RuntimeConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return RuntimeConfig{}, fmt.Errorf("read config: %w", err)
	}
	cfg := base
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return RuntimeConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TASKPAD_BACKEND"); ok {
		cfg.Backend = strings.ToLower(v)
	}
	if v, ok := getEnvString("TASKPAD_DATA_DIR"); ok {
		cfg.DataDir = v
	}
	if v, ok := getEnvString("TASKPAD_STORAGE_KEY"); ok {
		cfg.StorageKey = v
	}
	if v, ok := getEnvString("TASKPAD_DATE_LAYOUT"); ok {
		cfg.DateLayout = v
	}
	if v, ok := getEnvString("TASKPAD_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	return cfg
}

func (c RuntimeConfig) Validate() error {
	switch c.Backend {
	case storage.BackendFile, storage.BackendSQLite, storage.BackendMemory:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}
	if c.Backend != storage.BackendMemory && strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("%w: data_dir is required for backend %q", ErrInvalidConfig, c.Backend)
	}
	key := strings.TrimSpace(c.StorageKey)
	if key == "" || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("%w: bad storage_key %q", ErrInvalidConfig, c.StorageKey)
	}
	if strings.TrimSpace(c.DateLayout) == "" {
		return fmt.Errorf("%w: date_layout is empty", ErrInvalidConfig)
	}
	return nil
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}
