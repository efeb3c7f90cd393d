package service

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/xolan/lifelog/internal/config"
)

// ErrConfigExists is returned by Init when a config file is already present.
var ErrConfigExists = errors.New("config file already exists")

// ConfigService owns the config file. Storage settings changed through it
// apply on the next start; theme changes apply immediately.
type ConfigService struct {
	path string

	mu  sync.RWMutex
	cfg config.Config
}

// NewConfigService wraps cfg, which was loaded from (or defaults for) path.
func NewConfigService(path string, cfg config.Config) *ConfigService {
	return &ConfigService{path: path, cfg: cfg}
}

// Get returns a copy of the current configuration.
func (s *ConfigService) Get() config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// GetPath returns the config file location.
func (s *ConfigService) GetPath() string {
	return s.path
}

// Exists reports whether the config file is on disk.
func (s *ConfigService) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Update normalizes and validates cfg, persists it and makes it current.
func (s *ConfigService) Update(cfg config.Config) error {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	content, err := config.Encode(cfg)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := writeFileAtomic(s.path, []byte(content)); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	s.cfg = cfg
	return nil
}

// SetTheme persists a new theme, keeping every other setting.
func (s *ConfigService) SetTheme(name string) error {
	cfg := s.Get()
	cfg.Theme = name
	return s.Update(cfg)
}

// Init writes the commented sample config. It never overwrites.
func (s *ConfigService) Init() error {
	if s.Exists() {
		return fmt.Errorf("%w at %s", ErrConfigExists, s.path)
	}
	if err := writeFileAtomic(s.path, []byte(config.GenerateSampleConfig())); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// writeFileAtomic replaces path via a temp file in the same directory so a
// crash never leaves a half-written config behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(fs.FileMode(0644)); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
