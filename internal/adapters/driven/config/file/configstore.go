// Package file provides TOML file-backed application configuration,
// stored in the PastePDF config directory.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the tunable settings of the application.
type Config struct {
	// StorageDir is where uploaded document bytes live.
	// Empty means the file store's default.
	StorageDir string `toml:"storage_dir"`

	// DataDir is where the registry database lives.
	// Empty means the store's default.
	DataDir string `toml:"data_dir"`

	// MaxUploadBytes rejects larger uploads. Zero disables the check.
	MaxUploadBytes int64 `toml:"max_upload_bytes"`

	// ThumbnailScale is the default preview scale factor.
	ThumbnailScale float64 `toml:"thumbnail_scale"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		MaxUploadBytes: 50 << 20,
		ThumbnailScale: 1.0,
	}
}

// ConfigStore is a file-based configuration store using TOML.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
}

// NewConfigStore creates a config store under configDir.
// If configDir is empty, defaults to ~/.pastepdf/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".pastepdf")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	return &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Load reads the configuration, falling back to defaults for a missing
// file and for unset fields.
func (s *ConfigStore) Load() (Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg := DefaultConfig()

	data, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.ThumbnailScale <= 0 {
		cfg.ThumbnailScale = DefaultConfig().ThumbnailScale
	}
	return cfg, nil
}

// Save writes the configuration to disk.
func (s *ConfigStore) Save(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Path returns the config file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
